package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"storefront-order-system/services/order-notifier/internal/notifier"
	"storefront-order-system/shared/pkg/web"
)

type Submitter interface {
	Submit(ctx context.Context, req notifier.Request) notifier.Response
}

type SubmitOrderHandler struct {
	Notifier     Submitter
	MaxBodyBytes int64
	Log          zerolog.Logger
}

func (h *SubmitOrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cid := web.GetCorrelationID(r.Context())

	// The method decides before the body is read, so a large PUT is a 405.
	if r.Method != http.MethodPost {
		resp := h.Notifier.Submit(r.Context(), notifier.Request{Method: r.Method, CorrelationID: cid})
		web.WriteJSON(w, resp.Status, resp.Body, h.Log)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			web.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large", h.Log)
			return
		}
		h.Log.Warn().Err(err).Msg("read order body failed")
		web.WriteError(w, http.StatusBadRequest, notifier.MsgInvalidBody, h.Log)
		return
	}

	resp := h.Notifier.Submit(r.Context(), notifier.Request{
		Method:        r.Method,
		Body:          body,
		CorrelationID: cid,
	})
	web.WriteJSON(w, resp.Status, resp.Body, h.Log)
}
