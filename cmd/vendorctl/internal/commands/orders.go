package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/tajerhq/vendorctl/internal/api"
)

// OrdersCmd browses customer orders. Vendors see orders they can quote
// against; admins see everything and can close orders.
type OrdersCmd struct {
	List  OrdersListCmd  `cmd:"" default:"withargs" help:"List orders"`
	Show  OrdersShowCmd  `cmd:"" help:"Show one order"`
	Close OrdersCloseCmd `cmd:"" help:"Close an order (admin)"`
}

type OrdersListCmd struct {
	ConnFlags
	Page     int  `help:"Page number" default:"1"`
	PageSize int  `help:"Orders per page" default:"20"`
	Watch    bool `help:"Watch for changes (refresh every 10 seconds)" default:"false"`
}

func (o *OrdersListCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("orders"); err != nil {
		return err
	}

	if o.Watch {
		return o.watch(ctx, a)
	}

	return o.list(ctx, a)
}

func (o *OrdersListCmd) list(ctx context.Context, a *app) error {
	page, err := o.fetch(ctx, a)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}

	if len(page.Items) == 0 {
		fmt.Println("No orders found.")
		return nil
	}

	printOrders(page.Items)

	if page.TotalPages > 1 {
		fmt.Printf("\nPage %d/%d (%d orders total)\n", page.PageNumber, page.TotalPages, page.TotalCount)
		if page.PageNumber < page.TotalPages {
			fmt.Printf("Use --page=%d to see the next page\n", page.PageNumber+1)
		}
	}

	return nil
}

// watch polls the listing, retrying transient failures with exponential
// backoff so a flaky connection does not end the watch.
func (o *OrdersListCmd) watch(ctx context.Context, a *app) error {
	fmt.Println("Watching orders (press Ctrl+C to stop)...")
	fmt.Println()

	if err := o.list(ctx, a); err != nil {
		return err
	}

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			page, err := backoff.Retry(ctx, func() (*api.OrderPage, error) {
				page, err := o.fetch(ctx, a)
				if err != nil {
					var apiErr *api.Error
					if errors.As(err, &apiErr) && apiErr.Status < 500 {
						// Client errors will not heal on retry.
						return nil, backoff.Permanent(err)
					}
					return nil, err
				}
				return page, nil
			}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(4))
			if err != nil {
				return fmt.Errorf("failed to refresh orders: %w", err)
			}

			fmt.Print("\033[2J\033[H")
			fmt.Printf("Orders (updated at %s)\n\n", time.Now().Format("15:04:05"))
			printOrders(page.Items)
		}
	}
}

func (o *OrdersListCmd) fetch(ctx context.Context, a *app) (*api.OrderPage, error) {
	if a.session.User().UserRole == api.RoleAdmin {
		return a.client.AdminOrders(ctx, o.Page, o.PageSize)
	}
	return a.client.VendorOrders(ctx, o.Page, o.PageSize)
}

type OrdersShowCmd struct {
	ConnFlags
	ID int64 `arg:"" help:"Order ID"`
}

func (o *OrdersShowCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("orders show"); err != nil {
		return err
	}

	order, err := a.client.OrderDetails(ctx, o.ID)
	if err != nil {
		return fmt.Errorf("failed to load order %d: %w", o.ID, err)
	}

	table := newTable()
	fmt.Fprintf(table, "Order ID\t%d\n", order.OrderID)
	fmt.Fprintf(table, "Product\t%s\n", order.ProductName)
	fmt.Fprintf(table, "Description\t%s\n", order.Description)
	fmt.Fprintf(table, "Quantity\t%d\n", order.Quantity)
	fmt.Fprintf(table, "Status\t%s\n", order.Status)
	fmt.Fprintf(table, "Customer\t%s\n", order.CustomerName)
	fmt.Fprintf(table, "City\t%s\n", order.City)
	fmt.Fprintf(table, "Offers\t%d\n", order.OffersCount)
	fmt.Fprintf(table, "Created\t%s\n", order.CreatedAt.Format(time.RFC3339))
	return table.Flush()
}

type OrdersCloseCmd struct {
	ConnFlags
	ID  int64 `arg:"" help:"Order ID"`
	Yes bool  `help:"Skip the confirmation prompt" short:"y"`
}

func (o *OrdersCloseCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("orders close"); err != nil {
		return err
	}

	if !o.Yes && !confirm(fmt.Sprintf("Close order %d? %s", o.ID, a.lang.T("confirm_prompt", nil))) {
		return nil
	}

	if err := a.client.CloseOrder(ctx, o.ID); err != nil {
		return fmt.Errorf("failed to close order %d: %w", o.ID, err)
	}

	fmt.Println(a.lang.T("order_closed", nil))
	return nil
}
