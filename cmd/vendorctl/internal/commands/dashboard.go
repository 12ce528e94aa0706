package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tajerhq/vendorctl/internal/api"
)

// DashboardCmd shows the landing figures for the current role.
type DashboardCmd struct {
	Show   DashboardShowCmd   `cmd:"" default:"withargs" help:"Show the dashboard summary"`
	Profit DashboardProfitCmd `cmd:"" help:"Show the monthly profit series"`
	Top    DashboardTopCmd    `cmd:"" help:"Show the best selling products"`
	Export DashboardExportCmd `cmd:"" help:"Export the dashboard to a file"`
}

type DashboardShowCmd struct {
	ConnFlags
}

func (d *DashboardShowCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, d.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("dashboard"); err != nil {
		return err
	}

	if a.session.User().UserRole == api.RoleAdmin {
		return d.showAdmin(ctx, a)
	}
	return d.showVendor(ctx, a)
}

func (d *DashboardShowCmd) showVendor(ctx context.Context, a *app) error {
	dash, err := a.client.VendorDashboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	printSummary(dash.Summary)

	if len(dash.RecentOrders) > 0 {
		fmt.Println("\nRecent orders:")
		printOrders(dash.RecentOrders)
	}
	if len(dash.RecentOffers) > 0 {
		fmt.Println("\nRecent offers:")
		printOffers(dash.RecentOffers)
	}

	return nil
}

func (d *DashboardShowCmd) showAdmin(ctx context.Context, a *app) error {
	dash, err := a.client.AdminDashboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	printSummary(dash.Summary)
	fmt.Printf("Active vendors: %d\n", dash.ActiveVendors)
	fmt.Printf("Open orders: %d\n", dash.OpenOrders)

	if len(dash.RecentOrders) > 0 {
		fmt.Println("\nRecent orders:")
		printOrders(dash.RecentOrders)
	}

	return nil
}

type DashboardProfitCmd struct {
	ConnFlags
	Year int `help:"Year to report on (default: current year)"`
}

func (d *DashboardProfitCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, d.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("dashboard profit"); err != nil {
		return err
	}

	year := d.Year
	if year == 0 {
		year = time.Now().Year()
	}

	points, err := a.client.ProfitByYear(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to load profit series: %w", err)
	}

	fmt.Printf("Profit by month, %d:\n", year)

	table := newTable()
	fmt.Fprintln(table, "MONTH\tPROFIT")
	for _, point := range points {
		fmt.Fprintf(table, "%s\t%.2f\n", time.Month(point.Month), point.Profit)
	}
	return table.Flush()
}

type DashboardTopCmd struct {
	ConnFlags
}

func (d *DashboardTopCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, d.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("dashboard top"); err != nil {
		return err
	}

	products, err := a.client.TopProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load top products: %w", err)
	}

	table := newTable()
	fmt.Fprintln(table, "PRODUCT\tSALES\tREVENUE")
	for _, product := range products {
		fmt.Fprintf(table, "%s\t%d\t%.2f\n", product.ProductName, product.SalesCount, product.Revenue)
	}
	return table.Flush()
}

type DashboardExportCmd struct {
	ConnFlags
	Format string `help:"Export format (csv, xlsx)" default:"csv" enum:"csv,xlsx"`
	Output string `help:"Output file (default: dashboard.<format>)" short:"o"`
}

func (d *DashboardExportCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, d.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("dashboard export"); err != nil {
		return err
	}

	data, err := a.client.ExportDashboard(ctx, d.Format)
	if err != nil {
		return fmt.Errorf("failed to export dashboard: %w", err)
	}

	output := d.Output
	if output == "" {
		output = "dashboard." + d.Format
	}

	if err := os.WriteFile(output, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Println(a.lang.T("export_saved", map[string]string{"file": output}))
	return nil
}

func printSummary(summary api.Summary) {
	fmt.Printf("Orders: %d  Offers: %d (accepted %d, pending %d)  Profit: %.2f\n",
		summary.TotalOrders,
		summary.TotalOffers,
		summary.AcceptedOffers,
		summary.PendingOffers,
		summary.TotalProfit)
}

func printOrders(orders []api.Order) {
	table := newTable()
	fmt.Fprintln(table, "ID\tPRODUCT\tQTY\tSTATUS\tCUSTOMER\tCITY\tOFFERS\tCREATED")
	for _, order := range orders {
		fmt.Fprintf(table, "%d\t%s\t%d\t%s\t%s\t%s\t%d\t%s\n",
			order.OrderID,
			truncate(order.ProductName, 25),
			order.Quantity,
			order.Status,
			truncate(order.CustomerName, 20),
			order.City,
			order.OffersCount,
			order.CreatedAt.Format("2006-01-02 15:04"))
	}
	table.Flush() //nolint:errcheck
}

func printOffers(offers []api.Offer) {
	table := newTable()
	fmt.Fprintln(table, "ID\tORDER\tPRODUCT\tPRICE\tDISCOUNT\tSTATUS\tEXPIRES")
	for _, offer := range offers {
		fmt.Fprintf(table, "%d\t%d\t%s\t%.2f\t%.0f%%\t%s\t%s\n",
			offer.OfferID,
			offer.OrderID,
			truncate(offer.ProductName, 25),
			offer.Price,
			offer.DiscountPercentage,
			offer.Status,
			offer.ExpiresAt.Format("2006-01-02"))
	}
	table.Flush() //nolint:errcheck
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-3]) + "..."
}
