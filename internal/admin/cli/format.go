package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/transellia/admin-console/internal/admin/client"
	"github.com/transellia/admin-console/internal/admin/models"
)

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func printUsers(w io.Writer, page *models.UsersPage) {
	if len(page.Users) == 0 {
		fmt.Fprintln(w, "No users found.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tPLAN")
		for _, u := range page.Users {
			plan := orDash(u.SubscriptionID)
			if u.Subscription != nil {
				plan = u.Subscription.Name
			}
			name := u.DisplayName()
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, orDash(&name), u.Email, orDash(u.Role), plan)
		}
		_ = tw.Flush()
	}
	m := page.Meta
	fmt.Fprintf(w, "page %d of %d (%d users)\n", m.Page, m.TotalPages, m.Total)
}

func printUser(w io.Writer, u *models.BackendUser) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", u.ID)
	fmt.Fprintf(tw, "email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "role:\t%s\n", orDash(u.Role))
	if d := u.UserDetails; d != nil {
		fmt.Fprintf(tw, "name:\t%s\n", orDash(d.Name))
		fmt.Fprintf(tw, "phone:\t%s\n", orDash(d.PhoneNumber))
		fmt.Fprintf(tw, "address:\t%s\n", orDash(d.Address))
	}
	fmt.Fprintf(tw, "subscription:\t%s\n", orDash(u.SubscriptionID))
	if u.IsEmployee != nil {
		fmt.Fprintf(tw, "employee:\t%t\n", *u.IsEmployee)
	}
	fmt.Fprintf(tw, "created:\t%s\n", formatTimestamp(u.CreatedAt))
	_ = tw.Flush()
}

func printSubscriptions(w io.Writer, page *models.SubscriptionsPage) {
	if len(page.Subscriptions) == 0 {
		fmt.Fprintln(w, "No subscriptions found.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPRICE\tDURATION\tSTATUS")
		for _, s := range page.Subscriptions {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, formatPrice(s), formatDuration(s.Duration), s.Status)
		}
		_ = tw.Flush()
	}
	p := page.Pagination
	fmt.Fprintf(w, "page %d of %d (%d plans)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
}

func printSubscription(w io.Writer, s *models.Subscription) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", s.ID)
	fmt.Fprintf(tw, "name:\t%s\n", s.Name)
	fmt.Fprintf(tw, "price:\t%s\n", formatPrice(*s))
	fmt.Fprintf(tw, "duration:\t%s\n", formatDuration(s.Duration))
	fmt.Fprintf(tw, "status:\t%s\n", s.Status)
	fmt.Fprintf(tw, "description:\t%s\n", orDash(s.Description))
	if len(s.Features) > 0 {
		fmt.Fprintf(tw, "features:\t%s\n", strings.Join(s.Features, ", "))
	}
	if s.SubscribersCount != nil {
		fmt.Fprintf(tw, "subscribers:\t%d\n", *s.SubscribersCount)
	}
	fmt.Fprintf(tw, "updated:\t%s\n", formatTimestamp(s.UpdatedAt))
	_ = tw.Flush()
}

// formatTimestamp prints "-" for times the backend sent empty or unreadable.
func formatTimestamp(t models.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatPrice(s models.Subscription) string {
	return strconv.FormatFloat(s.Price, 'f', -1, 64) + " " + s.Currency
}

func formatDuration(d models.Duration) string {
	unit := d.Unit
	if d.Value != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", d.Value, unit)
}

// describeError expands field errors onto separate lines.
func describeError(err error) string {
	var apiErr *client.Error
	if !errors.As(err, &apiErr) || len(apiErr.Fields) == 0 {
		return err.Error()
	}
	var b strings.Builder
	b.WriteString(apiErr.Message)
	for _, f := range apiErr.Fields {
		fmt.Fprintf(&b, "\n  %s: %s", f.Field, f.Message)
	}
	return b.String()
}
