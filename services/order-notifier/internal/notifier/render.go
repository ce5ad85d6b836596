package notifier

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/shopspring/decimal"

	"storefront-order-system/shared/pkg/config"
	"storefront-order-system/shared/pkg/models"
)

const (
	FormatText = config.FormatText
	FormatHTML = config.FormatHTML
)

// Placeholders for absent fields. Customers see none of these; the shop
// owner does, so they must never read as "undefined" or an empty gap.
const (
	PlaceholderField = "-"
	PlaceholderNote  = "None"
	NoItemsText      = "No items"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	textTmpl = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/order.txt.tmpl"))
	htmlTmpl = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/order.html.tmpl"))
)

// View is an order with every value already formatted and every gap filled.
type View struct {
	Ref     string
	Name    string
	Phone   string
	Email   string
	Address string
	Note    string
	Items   []ItemView
	NoItems string
	Total   string
}

type ItemView struct {
	Label     string
	Quantity  string
	UnitPrice string
	LineTotal string
}

// Renderer turns a View into a message body.
type Renderer interface {
	Format() string
	Render(v View) (string, error)
}

type TextRenderer struct{}

func (TextRenderer) Format() string { return FormatText }

func (TextRenderer) Render(v View) (string, error) {
	var buf bytes.Buffer
	if err := textTmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render text: %w", err)
	}
	return buf.String(), nil
}

// HTMLRenderer escapes customer input; a note of "<script>" stays text.
type HTMLRenderer struct{}

func (HTMLRenderer) Format() string { return FormatHTML }

func (HTMLRenderer) Render(v View) (string, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func NewRenderer(format string) (Renderer, error) {
	switch format {
	case FormatText, "":
		return TextRenderer{}, nil
	case FormatHTML:
		return HTMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown message format %q", format)
	}
}

func NewView(s models.OrderSubmission, ref, currency string) View {
	v := View{
		Ref:     ref,
		Name:    orPlaceholder(s.CustomerName, PlaceholderField),
		Phone:   orPlaceholder(s.CustomerPhone, PlaceholderField),
		Email:   orPlaceholder(s.CustomerEmail, PlaceholderField),
		Address: orPlaceholder(s.DeliveryAddress, PlaceholderField),
		Note:    orPlaceholder(s.Note, PlaceholderNote),
		NoItems: NoItemsText,
		Total:   PlaceholderField,
	}

	for _, li := range s.LineItems {
		v.Items = append(v.Items, ItemView{
			Label:     orPlaceholder(li.Label, PlaceholderField),
			Quantity:  li.Quantity.String(),
			UnitPrice: money(currency, li.UnitPrice),
			LineTotal: money(currency, li.LineTotal()),
		})
	}
	if total, ok := s.EffectiveTotal(); ok {
		v.Total = money(currency, total)
	}
	return v
}

func money(currency string, d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
