package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Status is treated as an opaque value: it is only compared for equality
// and used to pick a display class.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// KnownStatuses is the order offered by status pickers.
var KnownStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Status          Status          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	OrderDate       Timestamp       `json:"orderDate"`
	ShippingAddress string          `json:"shippingAddress"`
	OrderItems      []OrderItem     `json:"orderItems,omitempty"`
}

type OrderItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// DraftLineItem is the write shape of an order item. Numeric fields that
// could not be parsed are sent as null and left for the backend to reject.
type DraftLineItem struct {
	ProductID   *int64              `json:"productId"`
	ProductName string              `json:"productName"`
	Quantity    *int64              `json:"quantity"`
	UnitPrice   decimal.NullDecimal `json:"unitPrice"`
}

type CreateOrderRequest struct {
	UserID          *int64          `json:"userId"`
	ShippingAddress string          `json:"shippingAddress"`
	OrderItems      []DraftLineItem `json:"orderItems"`
}

type StatusUpdate struct {
	Status Status `json:"status"`
}

// Timestamp is a display-only order date. The backend emits zone-less local
// date-times, which time.Time cannot decode on its own.
type Timestamp struct {
	time.Time
	Raw string
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode order date: %w", err)
	}

	t.Raw = raw
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	// Unparsable dates are kept verbatim for display.
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Display renders the date in the console's local time zone.
func (t Timestamp) Display() string {
	if t.Time.IsZero() {
		if t.Raw != "" {
			return t.Raw
		}
		return "Invalid Date"
	}
	return t.Time.Local().Format("1/2/2006, 3:04:05 PM")
}
