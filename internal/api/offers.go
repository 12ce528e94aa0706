package api

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// Offer is a vendor's price quote against an order.
type Offer struct {
	OfferID            int64     `json:"offerId"`
	OrderID            int64     `json:"orderId"`
	VendorName         string    `json:"vendorName"`
	ProductName        string    `json:"productName"`
	ProductDescription string    `json:"productDescription"`
	Price              float64   `json:"price"`
	DiscountPercentage float64   `json:"discountPercentage"`
	Status             string    `json:"status"`
	ExpiresAt          time.Time `json:"expiresAt"`
	CreatedAt          time.Time `json:"createdAt"`
}

// OfferPage is a paginated offer listing.
type OfferPage struct {
	Items      []Offer `json:"items"`
	PageNumber int     `json:"pageNumber"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
	TotalCount int     `json:"totalCount"`
}

// SpecialOffer is an optional buy-X-get-Y promotion attached to a quote.
type SpecialOffer struct {
	PayCount           int     `yaml:"payCount" json:"payCount"`
	GetCount           int     `yaml:"getCount" json:"getCount"`
	ProductName        string  `yaml:"productName" json:"productName"`
	DiscountPercentage float64 `yaml:"discountPercentage" json:"discountPercentage"`
}

// OfferInput is the price-quote form. The yaml tags let drafts be loaded from
// a file by the CLI.
type OfferInput struct {
	ProductName        string        `yaml:"productName" json:"productName"`
	ProductDescription string        `yaml:"productDescription" json:"productDescription"`
	Price              float64       `yaml:"price" json:"price"`
	DiscountPercentage float64       `yaml:"discountPercentage" json:"discountPercentage"`
	ExpiresIn          string        `yaml:"expiresIn" json:"expiresIn"`
	Special            *SpecialOffer `yaml:"specialOffer" json:"specialOffer"`
	MediaPaths         []string      `yaml:"media" json:"media"`
}

// CreateOffer submits a price quote for an order as multipart form data.
// Field names (including "ExpierdIn") are the backend's.
func (c *Client) CreateOffer(ctx context.Context, orderID int64, input OfferInput) (*Offer, error) {
	build := func(w *multipart.Writer) error {
		fields := map[string]string{
			"ExpierdIn":          input.ExpiresIn,
			"ProductName":        input.ProductName,
			"ProductDescription": input.ProductDescription,
			"Price":              strconv.FormatFloat(input.Price, 'f', -1, 64),
			"DiscountPercentage": strconv.FormatFloat(input.DiscountPercentage, 'f', -1, 64),
		}
		for name, value := range fields {
			if err := w.WriteField(name, value); err != nil {
				return err
			}
		}

		if input.Special != nil {
			special := map[string]string{
				"SpecialOffer.PayCount":           strconv.Itoa(input.Special.PayCount),
				"SpecialOffer.GetCount":           strconv.Itoa(input.Special.GetCount),
				"SpecialOffer.ProductName":        input.Special.ProductName,
				"SpecialOffer.DiscountPercentage": strconv.FormatFloat(input.Special.DiscountPercentage, 'f', -1, 64),
			}
			for name, value := range special {
				if err := w.WriteField(name, value); err != nil {
					return err
				}
			}
		}

		for _, path := range input.MediaPaths {
			if err := attachFile(w, "Media", path); err != nil {
				return err
			}
		}

		return nil
	}

	var out Offer
	if err := c.postMultipart(ctx, http.MethodPost, createOfferPath(orderID), build, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// OfferDetails returns one offer.
func (c *Client) OfferDetails(ctx context.Context, offerID int64) (*Offer, error) {
	var out Offer
	if err := c.get(ctx, offerDetailsPath(offerID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VendorOffersToManage lists the current vendor's offers awaiting action.
func (c *Client) VendorOffersToManage(ctx context.Context, pageNumber, pageSize int) (*OfferPage, error) {
	var out OfferPage
	if err := c.get(ctx, vendorOffersToManagePath, pageQuery(pageNumber, pageSize), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminOffersToManage lists offers awaiting admin action.
func (c *Client) AdminOffersToManage(ctx context.Context, pageNumber, pageSize int) (*OfferPage, error) {
	var out OfferPage
	if err := c.get(ctx, adminOffersToManagePath, pageQuery(pageNumber, pageSize), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptOffer accepts an offer on behalf of the vendor.
func (c *Client) AcceptOffer(ctx context.Context, offerID int64) error {
	return c.post(ctx, acceptOfferPath(offerID), nil, nil, nil)
}

// RejectOffer rejects an offer on behalf of the vendor.
func (c *Client) RejectOffer(ctx context.Context, offerID int64) error {
	return c.post(ctx, rejectOfferPath(offerID), nil, nil, nil)
}

// MarkOfferDelivered marks an accepted offer as delivered (admin only).
func (c *Client) MarkOfferDelivered(ctx context.Context, offerID int64) error {
	return c.post(ctx, markOfferDeliveredPath(offerID), nil, nil, nil)
}

// MarkOfferCompleted marks a delivered offer as completed (admin only).
func (c *Client) MarkOfferCompleted(ctx context.Context, offerID int64) error {
	return c.post(ctx, markOfferCompletedPath(offerID), nil, nil, nil)
}
