package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tajerhq/vendorctl/internal/api"
)

// OffersCmd creates and manages price quotes. Accepting and rejecting are
// vendor actions; delivered and completed are admin actions.
type OffersCmd struct {
	Create    OffersCreateCmd    `cmd:"" help:"Submit a quote against an order"`
	Show      OffersShowCmd      `cmd:"" help:"Show one offer"`
	Manage    OffersManageCmd    `cmd:"" help:"List offers awaiting action"`
	Accept    OffersAcceptCmd    `cmd:"" help:"Accept an offer"`
	Reject    OffersRejectCmd    `cmd:"" help:"Reject an offer"`
	Delivered OffersDeliveredCmd `cmd:"" help:"Mark an offer as delivered (admin)"`
	Completed OffersCompletedCmd `cmd:"" help:"Mark an offer as completed (admin)"`
}

type OffersCreateCmd struct {
	ConnFlags
	OrderID  int64    `arg:"" help:"Order to quote against"`
	Draft    string   `help:"YAML draft file with the offer fields" type:"existingfile"`
	Product  string   `help:"Product name"`
	Desc     string   `help:"Product description"`
	Price    float64  `help:"Quoted price"`
	Discount float64  `help:"Discount percentage"`
	Expires  string   `help:"Expiry date (YYYY-MM-DD)"`
	Media    []string `help:"Media file to attach (repeatable)" type:"existingfile"`
}

func (o *OffersCreateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("offers create"); err != nil {
		return err
	}

	input, err := o.buildInput()
	if err != nil {
		return err
	}
	if input.ProductName == "" || input.Price <= 0 {
		return fmt.Errorf("a product name and a positive price are required")
	}

	offer, err := a.client.CreateOffer(ctx, o.OrderID, input)
	if err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	fmt.Println(a.lang.T("offer_created", nil))
	fmt.Printf("Offer ID: %d\n", offer.OfferID)

	return nil
}

// buildInput loads the draft file when given; flags override draft fields.
func (o *OffersCreateCmd) buildInput() (api.OfferInput, error) {
	var input api.OfferInput

	if o.Draft != "" {
		data, err := os.ReadFile(o.Draft)
		if err != nil {
			return input, fmt.Errorf("failed to read draft: %w", err)
		}
		if err := yaml.Unmarshal(data, &input); err != nil {
			return input, fmt.Errorf("failed to parse draft %s: %w", o.Draft, err)
		}
	}

	if o.Product != "" {
		input.ProductName = o.Product
	}
	if o.Desc != "" {
		input.ProductDescription = o.Desc
	}
	if o.Price > 0 {
		input.Price = o.Price
	}
	if o.Discount > 0 {
		input.DiscountPercentage = o.Discount
	}
	if o.Expires != "" {
		input.ExpiresIn = o.Expires
	}
	if len(o.Media) > 0 {
		input.MediaPaths = o.Media
	}

	return input, nil
}

type OffersShowCmd struct {
	ConnFlags
	ID int64 `arg:"" help:"Offer ID"`
}

func (o *OffersShowCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("offers show"); err != nil {
		return err
	}

	offer, err := a.client.OfferDetails(ctx, o.ID)
	if err != nil {
		return fmt.Errorf("failed to load offer %d: %w", o.ID, err)
	}

	table := newTable()
	fmt.Fprintf(table, "Offer ID\t%d\n", offer.OfferID)
	fmt.Fprintf(table, "Order ID\t%d\n", offer.OrderID)
	fmt.Fprintf(table, "Vendor\t%s\n", offer.VendorName)
	fmt.Fprintf(table, "Product\t%s\n", offer.ProductName)
	fmt.Fprintf(table, "Description\t%s\n", offer.ProductDescription)
	fmt.Fprintf(table, "Price\t%.2f\n", offer.Price)
	fmt.Fprintf(table, "Discount\t%.0f%%\n", offer.DiscountPercentage)
	fmt.Fprintf(table, "Status\t%s\n", offer.Status)
	fmt.Fprintf(table, "Expires\t%s\n", offer.ExpiresAt.Format(time.RFC3339))
	return table.Flush()
}

type OffersManageCmd struct {
	ConnFlags
	Page     int `help:"Page number" default:"1"`
	PageSize int `help:"Offers per page" default:"20"`
}

func (o *OffersManageCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("offers manage"); err != nil {
		return err
	}

	var page *api.OfferPage
	if a.session.User().UserRole == api.RoleAdmin {
		page, err = a.client.AdminOffersToManage(ctx, o.Page, o.PageSize)
	} else {
		page, err = a.client.VendorOffersToManage(ctx, o.Page, o.PageSize)
	}
	if err != nil {
		return fmt.Errorf("failed to list offers: %w", err)
	}

	if len(page.Items) == 0 {
		fmt.Println("No offers awaiting action.")
		return nil
	}

	printOffers(page.Items)

	if page.TotalPages > 1 {
		fmt.Printf("\nPage %d/%d (%d offers total)\n", page.PageNumber, page.TotalPages, page.TotalCount)
	}

	return nil
}

// offerAction runs one of the status transitions behind a confirmation.
func offerAction(ctx context.Context, a *app, offerID int64, skipConfirm bool, verb, messageKey string, call func(context.Context, int64) error) error {
	if !skipConfirm && !confirm(fmt.Sprintf("%s offer %d? %s", verb, offerID, a.lang.T("confirm_prompt", nil))) {
		return nil
	}

	if err := call(ctx, offerID); err != nil {
		return fmt.Errorf("failed to %s offer %d: %w", verb, offerID, err)
	}

	fmt.Println(a.lang.T(messageKey, nil))
	return nil
}

type OffersAcceptCmd struct {
	ConnFlags
	ID  int64 `arg:"" help:"Offer ID"`
	Yes bool  `help:"Skip the confirmation prompt" short:"y"`
}

func (o *OffersAcceptCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}
	if err := a.requirePrivate("offers accept"); err != nil {
		return err
	}
	return offerAction(ctx, a, o.ID, o.Yes, "accept", "offer_accepted", a.client.AcceptOffer)
}

type OffersRejectCmd struct {
	ConnFlags
	ID  int64 `arg:"" help:"Offer ID"`
	Yes bool  `help:"Skip the confirmation prompt" short:"y"`
}

func (o *OffersRejectCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}
	if err := a.requirePrivate("offers reject"); err != nil {
		return err
	}
	return offerAction(ctx, a, o.ID, o.Yes, "reject", "offer_rejected", a.client.RejectOffer)
}

type OffersDeliveredCmd struct {
	ConnFlags
	ID  int64 `arg:"" help:"Offer ID"`
	Yes bool  `help:"Skip the confirmation prompt" short:"y"`
}

func (o *OffersDeliveredCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}
	if err := a.requirePrivate("offers delivered"); err != nil {
		return err
	}
	return offerAction(ctx, a, o.ID, o.Yes, "deliver", "offer_delivered", a.client.MarkOfferDelivered)
}

type OffersCompletedCmd struct {
	ConnFlags
	ID  int64 `arg:"" help:"Offer ID"`
	Yes bool  `help:"Skip the confirmation prompt" short:"y"`
}

func (o *OffersCompletedCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}
	if err := a.requirePrivate("offers completed"); err != nil {
		return err
	}
	return offerAction(ctx, a, o.ID, o.Yes, "complete", "offer_completed", a.client.MarkOfferCompleted)
}
