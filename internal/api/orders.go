package api

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// Order is a customer request a vendor can quote against.
type Order struct {
	OrderID      int64     `json:"orderId"`
	ProductName  string    `json:"productName"`
	Description  string    `json:"description"`
	Quantity     int       `json:"quantity"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customerName"`
	City         string    `json:"city"`
	OffersCount  int       `json:"offersCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OrderPage is a paginated order listing.
type OrderPage struct {
	Items      []Order `json:"items"`
	PageNumber int     `json:"pageNumber"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
	TotalCount int     `json:"totalCount"`
}

func pageQuery(pageNumber, pageSize int) url.Values {
	return url.Values{
		"pageNumber": {strconv.Itoa(pageNumber)},
		"pageSize":   {strconv.Itoa(pageSize)},
	}
}

// VendorOrders lists orders visible to the current vendor.
func (c *Client) VendorOrders(ctx context.Context, pageNumber, pageSize int) (*OrderPage, error) {
	var out OrderPage
	if err := c.get(ctx, vendorOrdersPath, pageQuery(pageNumber, pageSize), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderDetails returns one order.
func (c *Client) OrderDetails(ctx context.Context, orderID int64) (*Order, error) {
	var out Order
	if err := c.get(ctx, orderDetailsPath(orderID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminOrders lists all orders for admins.
func (c *Client) AdminOrders(ctx context.Context, pageNumber, pageSize int) (*OrderPage, error) {
	var out OrderPage
	if err := c.get(ctx, adminOrdersPath, pageQuery(pageNumber, pageSize), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CloseOrder closes an order (admin only).
func (c *Client) CloseOrder(ctx context.Context, orderID int64) error {
	return c.post(ctx, closeOrderPath(orderID), nil, nil, nil)
}
