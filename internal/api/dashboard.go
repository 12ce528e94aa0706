package api

import (
	"context"
	"net/url"
)

// Summary is the headline dashboard aggregate.
type Summary struct {
	TotalOrders    int     `json:"totalOrders"`
	TotalOffers    int     `json:"totalOffers"`
	AcceptedOffers int     `json:"acceptedOffers"`
	PendingOffers  int     `json:"pendingOffers"`
	TotalProfit    float64 `json:"totalProfit"`
}

// VendorDashboard is the vendor landing aggregate.
type VendorDashboard struct {
	Summary      Summary `json:"summary"`
	RecentOrders []Order `json:"recentOrders"`
	RecentOffers []Offer `json:"recentOffers"`
}

// AdminDashboard is the admin landing aggregate.
type AdminDashboard struct {
	Summary       Summary `json:"summary"`
	ActiveVendors int     `json:"activeVendors"`
	OpenOrders    int     `json:"openOrders"`
	RecentOrders  []Order `json:"recentOrders"`
}

// ProfitPoint is one month of the profit-by-year series.
type ProfitPoint struct {
	Month  int     `json:"month"`
	Profit float64 `json:"profit"`
}

// TopProduct is one row of the top-products ranking.
type TopProduct struct {
	ProductName string  `json:"productName"`
	SalesCount  int     `json:"salesCount"`
	Revenue     float64 `json:"revenue"`
}

// ChartData is the raw series payload; rendering is the caller's concern.
type ChartData struct {
	Labels []string             `json:"labels"`
	Series map[string][]float64 `json:"series"`
}

// Dashboard aggregates go through the caching client: the backend marks them
// cacheable and they are re-requested on every console invocation.

func (c *Client) VendorDashboard(ctx context.Context) (*VendorDashboard, error) {
	var out VendorDashboard
	if err := c.getCached(ctx, dashboardVendorPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	var out AdminDashboard
	if err := c.getCached(ctx, dashboardAdminPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DashboardSummary(ctx context.Context) (*Summary, error) {
	var out Summary
	if err := c.getCached(ctx, dashboardSummaryPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProfitByYear(ctx context.Context, year int) ([]ProfitPoint, error) {
	query := url.Values{}
	if year > 0 {
		query.Set("year", formatID(int64(year)))
	}

	var out []ProfitPoint
	if err := c.getCached(ctx, profitByYearPath, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TopProducts(ctx context.Context) ([]TopProduct, error) {
	var out []TopProduct
	if err := c.getCached(ctx, topProductsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Charts(ctx context.Context) (*ChartData, error) {
	var out ChartData
	if err := c.getCached(ctx, chartsPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportDashboard fetches the dashboard export in the given format (csv,
// xlsx) as raw bytes.
func (c *Client) ExportDashboard(ctx context.Context, format string) ([]byte, error) {
	query := url.Values{"format": {format}}
	return c.getBytes(ctx, dashboardExportPath, query)
}
