package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidBody = errors.New("invalid order body")

// OrderSubmission is the order a customer posts from the storefront.
// It is never stored: it is decoded, rendered into one e-mail and dropped.
type OrderSubmission struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	DeliveryAddress string
	Note            string
	LineItems       []LineItem
	// Total is the client-supplied total, nil when the body had none.
	Total *decimal.Decimal
}

type LineItem struct {
	Label     string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

func (li LineItem) LineTotal() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// ComputedTotal sums the line items. ok is false when there are none.
func (s OrderSubmission) ComputedTotal() (total decimal.Decimal, ok bool) {
	if len(s.LineItems) == 0 {
		return decimal.Zero, false
	}
	for _, li := range s.LineItems {
		total = total.Add(li.LineTotal())
	}
	return total, true
}

// EffectiveTotal is the total shown to the operator. Line items win over a
// supplied total; the supplied one is used only for an item-less order.
func (s OrderSubmission) EffectiveTotal() (decimal.Decimal, bool) {
	if total, ok := s.ComputedTotal(); ok {
		return total, true
	}
	if s.Total != nil {
		return *s.Total, true
	}
	return decimal.Zero, false
}

// TotalMismatch reports whether the client sent a total that disagrees
// with the line items.
func (s OrderSubmission) TotalMismatch() bool {
	computed, ok := s.ComputedTotal()
	return ok && s.Total != nil && !s.Total.Equal(computed)
}

// Amounts outside this range are rejected: a short exponent literal such as
// 1e1000000 would otherwise render as megabytes of digits.
const (
	maxAmountExponent = 18
	maxAmountDigits   = 30
)

// Two storefront builds post the same order with different field names
// (items/total vs cart, name vs customerName); both decode here.
type submissionWire struct {
	Name            *text            `json:"name"`
	CustomerName    *text            `json:"customerName"`
	Phone           *text            `json:"phone"`
	CustomerPhone   *text            `json:"customerPhone"`
	Email           *text            `json:"email"`
	CustomerEmail   *text            `json:"customerEmail"`
	Address         *text            `json:"address"`
	DeliveryAddress *text            `json:"deliveryAddress"`
	Note            *text            `json:"note"`
	Items           []LineItem       `json:"items"`
	Cart            []LineItem       `json:"cart"`
	LineItems       []LineItem       `json:"lineItems"`
	Total           *decimal.Decimal `json:"total"`
}

type lineItemWire struct {
	Title     *text            `json:"title"`
	Name      *text            `json:"name"`
	Label     *text            `json:"label"`
	Qty       *decimal.Decimal `json:"qty"`
	Quantity  *decimal.Decimal `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

// text is a free-form field. Forms often post a phone number as a JSON
// number, so numbers are kept as their literal; other types are rejected.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*t = text(n.String())
	return nil
}

func checkAmount(field string, vals ...*decimal.Decimal) error {
	for _, d := range vals {
		if d == nil {
			continue
		}
		exp := d.Exponent()
		if exp > maxAmountExponent || exp < -maxAmountExponent || d.NumDigits() > maxAmountDigits {
			return fmt.Errorf("%s out of range", field)
		}
	}
	return nil
}

func (li *LineItem) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		return fmt.Errorf("line item must be an object")
	}
	var w lineItemWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if err := checkAmount("quantity", w.Qty, w.Quantity); err != nil {
		return err
	}
	if err := checkAmount("price", w.Price, w.UnitPrice); err != nil {
		return err
	}
	*li = LineItem{
		Label:     firstString(w.Title, w.Name, w.Label),
		Quantity:  firstDecimal(w.Qty, w.Quantity),
		UnitPrice: firstDecimal(w.Price, w.UnitPrice),
	}
	return nil
}

func (s *OrderSubmission) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		return fmt.Errorf("order must be an object")
	}
	var w submissionWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if err := checkAmount("total", w.Total); err != nil {
		return err
	}

	items := w.Items
	switch {
	case items != nil:
	case w.Cart != nil:
		items = w.Cart
	default:
		items = w.LineItems
	}

	*s = OrderSubmission{
		CustomerName:    firstString(w.Name, w.CustomerName),
		CustomerPhone:   firstString(w.Phone, w.CustomerPhone),
		CustomerEmail:   firstString(w.Email, w.CustomerEmail),
		DeliveryAddress: firstString(w.Address, w.DeliveryAddress),
		Note:            firstString(w.Note),
		LineItems:       items,
		Total:           w.Total,
	}
	return nil
}

// DecodeSubmission parses a request body. Every failure wraps ErrInvalidBody.
// Absent fields are not an error; only bodies that are not a JSON object, or
// fields of the wrong JSON type, are rejected.
func DecodeSubmission(body []byte) (OrderSubmission, error) {
	var s OrderSubmission
	if len(bytes.TrimSpace(body)) == 0 {
		return s, fmt.Errorf("%w: empty body", ErrInvalidBody)
	}
	if err := json.Unmarshal(body, &s); err != nil {
		return OrderSubmission{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return s, nil
}

func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

func firstString(vals ...*text) string {
	for _, v := range vals {
		if v != nil {
			return string(*v)
		}
	}
	return ""
}

func firstDecimal(vals ...*decimal.Decimal) decimal.Decimal {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return decimal.Zero
}
