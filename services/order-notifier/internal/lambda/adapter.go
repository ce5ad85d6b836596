package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"storefront-order-system/services/order-notifier/internal/notifier"
	"storefront-order-system/shared/pkg/web"
)

type Submitter interface {
	Submit(ctx context.Context, req notifier.Request) notifier.Response
}

// Adapter serves the notifier behind an API Gateway proxy integration.
type Adapter struct {
	Notifier       Submitter
	AllowedOrigins []string
	MaxBodyBytes   int64
	Log            zerolog.Logger
}

// Handle never returns an error: a Lambda error turns into an opaque 502
// at the gateway, so every failure is answered in the JSON contract instead.
func (a *Adapter) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	cid := header(req.Headers, web.HeaderCorrelationID)
	if cid == "" {
		cid = req.RequestContext.RequestID
	}

	headers := web.CORSHeaders(a.AllowedOrigins, header(req.Headers, "Origin"))
	headers["Content-Type"] = "application/json"
	if cid != "" {
		headers[web.HeaderCorrelationID] = cid
	}

	if req.HTTPMethod == http.MethodOptions && header(req.Headers, "Access-Control-Request-Method") != "" {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent, Headers: headers}, nil
	}

	// The method decides before the body is looked at, so a large PUT is a 405.
	if req.HTTPMethod != http.MethodPost {
		return a.respond(headers, a.Notifier.Submit(ctx, notifier.Request{
			Method:        req.HTTPMethod,
			CorrelationID: cid,
		})), nil
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			a.Log.Warn().Err(err).Str("correlation_id", cid).Msg("order body is not valid base64")
			return a.respond(headers, notifier.Response{
				Status: http.StatusBadRequest,
				Body:   notifier.ErrorBody{Error: notifier.MsgInvalidBody},
			}), nil
		}
		body = decoded
	}
	if a.MaxBodyBytes > 0 && int64(len(body)) > a.MaxBodyBytes {
		return a.respond(headers, notifier.Response{
			Status: http.StatusRequestEntityTooLarge,
			Body:   notifier.ErrorBody{Error: "request body too large"},
		}), nil
	}

	resp := a.Notifier.Submit(ctx, notifier.Request{
		Method:        req.HTTPMethod,
		Body:          body,
		CorrelationID: cid,
	})
	return a.respond(headers, resp), nil
}

func (a *Adapter) respond(headers map[string]string, resp notifier.Response) events.APIGatewayProxyResponse {
	b, err := json.Marshal(resp.Body)
	if err != nil {
		a.Log.Error().Err(err).Msg("encode response failed")
		b = []byte(`{"error":"internal server error"}`)
		resp.Status = http.StatusInternalServerError
	}
	return events.APIGatewayProxyResponse{
		StatusCode: resp.Status,
		Headers:    headers,
		Body:       string(b),
	}
}

// API Gateway passes headers with whatever casing the client used.
func header(h map[string]string, name string) string {
	if v, ok := h[name]; ok {
		return v
	}
	for k, v := range h {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
