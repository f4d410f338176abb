package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/transellia/admin-console/internal/admin/models"
)

func (a *App) Subs(ctx context.Context, args []string) error {
	page, search := parseListArgs(args)
	res, err := a.subscriptions.List(ctx, page, defaultPageSize, search)
	if err != nil {
		return a.fail(err)
	}
	printSubscriptions(a.out, res)
	return nil
}

func (a *App) Sub(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("sub <id>")
	}
	s, err := a.subscriptions.Get(ctx, args[0])
	if err != nil {
		return a.fail(err)
	}
	printSubscription(a.out, s)
	return nil
}

// AddSub prompts for a new plan. Numeric fields that do not parse are
// reported before anything is sent.
func (a *App) AddSub(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	priceText, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		return a.fail(fmt.Errorf("price %q is not a number", priceText))
	}
	currency, err := getSimpleText(a.reader, "Currency (e.g. IDR)", a.out)
	if err != nil {
		return err
	}
	valueText, err := getSimpleText(a.reader, "Duration value", a.out)
	if err != nil {
		return err
	}
	value, err := strconv.Atoi(valueText)
	if err != nil {
		return a.fail(fmt.Errorf("duration %q is not a whole number", valueText))
	}
	unit, err := getSimpleText(a.reader, "Duration unit [day/week/month/year]", a.out)
	if err != nil {
		return err
	}
	status, err := getSimpleText(a.reader, "Status [active/inactive] (default active)", a.out)
	if err != nil {
		return err
	}
	if status == "" {
		status = "active"
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	features, err := GetList(a.reader, "Features", a.out)
	if err != nil {
		return err
	}

	req := models.CreateSubscriptionRequest{
		Name:     name,
		Price:    price,
		Currency: strings.ToUpper(currency),
		Duration: models.Duration{Value: value, Unit: strings.ToLower(unit)},
		Features: features,
		Status:   strings.ToLower(status),
	}
	if description != "" {
		req.Description = &description
	}

	s, err := a.subscriptions.Create(ctx, req)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Created subscription %s (%s)\n", s.ID, s.Name)
	return nil
}

// EditSub prompts for the plan fields to change. The duration is replaced as
// a whole, so value and unit must be given together.
func (a *App) EditSub(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("editsub <id>")
	}

	var req models.UpdateSubscriptionRequest
	var err error
	if req.Name, err = a.optionalText("Name"); err != nil {
		return err
	}
	priceText, err := a.optionalText("Price")
	if err != nil {
		return err
	}
	if priceText != nil {
		price, err := strconv.ParseFloat(*priceText, 64)
		if err != nil {
			return a.fail(fmt.Errorf("price %q is not a number", *priceText))
		}
		req.Price = &price
	}
	if req.Currency, err = a.optionalText("Currency"); err != nil {
		return err
	}
	if req.Currency != nil {
		cur := strings.ToUpper(*req.Currency)
		req.Currency = &cur
	}
	valueText, err := a.optionalText("Duration value")
	if err != nil {
		return err
	}
	unit, err := a.optionalText("Duration unit [day/week/month/year]")
	if err != nil {
		return err
	}
	switch {
	case valueText != nil && unit != nil:
		value, err := strconv.Atoi(*valueText)
		if err != nil {
			return a.fail(fmt.Errorf("duration %q is not a whole number", *valueText))
		}
		req.Duration = &models.Duration{Value: value, Unit: strings.ToLower(*unit)}
	case valueText != nil || unit != nil:
		return a.fail(errors.New("duration needs both a value and a unit"))
	}
	if req.Status, err = a.optionalText("Status [active/inactive]"); err != nil {
		return err
	}
	if req.Status != nil {
		status := strings.ToLower(*req.Status)
		req.Status = &status
	}
	if req.Description, err = a.optionalText("Description"); err != nil {
		return err
	}
	if req.Features, err = GetList(a.reader, "Features (empty to keep)", a.out); err != nil {
		return err
	}
	if len(req.Features) == 0 {
		req.Features = nil
	}

	if isEmptySubscriptionUpdate(req) {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	s, err := a.subscriptions.Update(ctx, args[0], req)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Updated subscription %s (%s)\n", s.ID, s.Name)
	return nil
}

func isEmptySubscriptionUpdate(r models.UpdateSubscriptionRequest) bool {
	return r.Name == nil && r.Price == nil && r.Currency == nil && r.Description == nil &&
		r.Duration == nil && r.Features == nil && r.Status == nil
}

func (a *App) DelSub(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("delsub <id>")
	}
	if !confirm(a.reader, fmt.Sprintf("Delete subscription %s?", args[0]), a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.subscriptions.Delete(ctx, args[0]); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}
