package form

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"orderdesk/internal/model"
)

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// BuildCreateRequest turns the draft into a creation request. Rows with an
// empty productId are skipped; the rest keep their form order. Numbers are
// read leniently from their leading digits and anything unreadable is sent
// as null: range and format checks belong to the backend.
func BuildCreateRequest(d *Draft) model.CreateOrderRequest {
	req := model.CreateOrderRequest{
		UserID:          ParseInt(d.UserID),
		ShippingAddress: d.ShippingAddress,
		OrderItems:      make([]model.DraftLineItem, 0, len(d.rows)),
	}

	for _, r := range d.rows {
		if r.ProductID() == "" {
			continue
		}
		req.OrderItems = append(req.OrderItems, model.DraftLineItem{
			ProductID:   ParseInt(r.ProductID()),
			ProductName: r.ProductName(),
			Quantity:    ParseInt(r.Quantity()),
			UnitPrice:   ParseDecimal(r.UnitPrice()),
		})
	}

	return req
}

// ParseInt reads the leading integer of s, ignoring surrounding whitespace
// and any trailing garbage ("12abc" is 12, "3.7" is 3). It returns nil when
// s does not start with a digit, and also when the number does not fit in
// 64 bits: ids and quantities that large are rejected by the backend either
// way.
func ParseInt(s string) *int64 {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseDecimal reads the leading number of s the same way, with float64
// range: values that overflow to infinity are null, values that underflow
// are zero.
func ParseDecimal(s string) decimal.NullDecimal {
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.NullDecimal{}
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(f))
}
