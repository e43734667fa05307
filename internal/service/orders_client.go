package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"orderdesk/internal/model"
)

const ordersPath = "/api/orders"

// OrdersClient talks to the order backend. Every call is one round trip:
// no retries, no caching and no deduplication of concurrent calls.
type OrdersClient struct {
	baseURL string
	client  *http.Client
	log     logrus.FieldLogger
}

func NewOrdersClient(baseURL string, timeout time.Duration, logger logrus.FieldLogger) *OrdersClient {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OrdersClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     logger.WithField("component", "orders_client"),
	}
}

func (c *OrdersClient) ListOrders(ctx context.Context) ([]model.Order, error) {
	c.log.Debug("listing orders")

	resp, err := c.do(ctx, http.MethodGet, ordersPath, nil)
	if err != nil {
		return nil, &TransportError{Op: "list orders", Err: err}
	}
	defer resp.Body.Close()

	if !successful(resp.StatusCode) {
		drain(resp.Body)
		return nil, statusError("list orders", resp.StatusCode)
	}

	var orders []model.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, &TransportError{Op: "list orders", Err: fmt.Errorf("decode response: %w", err)}
	}
	return orders, nil
}

func (c *OrdersClient) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	c.log.WithField("order_id", id).Debug("fetching order")

	resp, err := c.do(ctx, http.MethodGet, orderPath(id), nil)
	if err != nil {
		return nil, &TransportError{Op: "get order", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case successful(resp.StatusCode):
		var order model.Order
		if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
			return nil, &TransportError{Op: "get order", Err: fmt.Errorf("decode response: %w", err)}
		}
		return &order, nil
	case resp.StatusCode == http.StatusNotFound:
		drain(resp.Body)
		return nil, &NotFoundError{ID: id, Transport: statusError("get order", resp.StatusCode)}
	default:
		drain(resp.Body)
		return nil, statusError("get order", resp.StatusCode)
	}
}

func (c *OrdersClient) CreateOrder(ctx context.Context, payload model.CreateOrderRequest) (*model.Order, error) {
	c.log.WithField("items", len(payload.OrderItems)).Debug("creating order")

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, ordersPath, body)
	if err != nil {
		return nil, &TransportError{Op: "create order", Err: err}
	}
	defer resp.Body.Close()

	if !successful(resp.StatusCode) {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &ValidationError{StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var order model.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, &TransportError{Op: "create order", Err: fmt.Errorf("decode response: %w", err)}
	}
	return &order, nil
}

func (c *OrdersClient) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	if status == "" {
		return ErrNoStatus
	}
	c.log.WithFields(logrus.Fields{"order_id": id, "status": status}).Debug("updating order status")

	body, err := json.Marshal(model.StatusUpdate{Status: status})
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPut, orderPath(id)+"/status", body)
	if err != nil {
		return &TransportError{Op: "update status", Err: err}
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if !successful(resp.StatusCode) {
		return statusError("update status", resp.StatusCode)
	}
	return nil
}

func (c *OrdersClient) CancelOrder(ctx context.Context, id int64) error {
	c.log.WithField("order_id", id).Debug("cancelling order")

	resp, err := c.do(ctx, http.MethodDelete, orderPath(id), nil)
	if err != nil {
		return &TransportError{Op: "cancel order", Err: err}
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if !successful(resp.StatusCode) {
		return statusError("cancel order", resp.StatusCode)
	}
	return nil
}

// do issues the request detached from ctx cancellation: once sent, a request
// runs to completion even if the action that triggered it goes away.
func (c *OrdersClient) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

func orderPath(id int64) string {
	return fmt.Sprintf("%s/%d", ordersPath, id)
}

func successful(code int) bool {
	return code >= 200 && code < 300
}

func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, body)
}
