package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/transellia/admin-console/internal/admin/models"
	"github.com/transellia/admin-console/internal/common"
)

var errUsage = errors.New("invalid usage")

// parseListArgs reads "[page] [search...]". A first argument that is not a
// positive number is part of the search term.
func parseListArgs(args []string) (int, string) {
	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			page = n
			args = args[1:]
		}
	}
	return page, strings.Join(args, " ")
}

func (a *App) usage(text string) error {
	fmt.Fprintln(a.out, "Usage:", text)
	return errUsage
}

func (a *App) Users(ctx context.Context, args []string) error {
	page, search := parseListArgs(args)
	res, err := a.userService.List(ctx, page, defaultPageSize, search)
	if err != nil {
		return a.fail(err)
	}
	printUsers(a.out, res)
	return nil
}

func (a *App) User(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("user <id>")
	}
	u, err := a.userService.Get(ctx, args[0])
	if err != nil {
		return a.fail(err)
	}
	printUser(a.out, u)
	return nil
}

// AddUser prompts for a new account. Role defaults to USER.
func (a *App) AddUser(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone number (optional)", a.out)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Role [USER/ADMIN] (default USER)", a.out)
	if err != nil {
		return err
	}
	role = strings.ToUpper(role)
	if role == "" {
		role = "USER"
	}

	req := models.CreateUserRequest{
		Email:       email,
		Password:    string(password),
		Role:        role,
		UserDetails: &models.UserDetailsInput{Name: name, PhoneNumber: phone},
	}
	u, err := a.userService.Create(ctx, req)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Created user %s (%s)\n", u.ID, u.Email)
	return nil
}

// optionalText prompts for a value the user may leave blank to keep the
// current one. Blank comes back as nil.
func (a *App) optionalText(prompt string) (*string, error) {
	v, err := getSimpleText(a.reader, prompt+" (empty to keep)", a.out)
	if err != nil || v == "" {
		return nil, err
	}
	return &v, nil
}

// EditUser prompts for the fields to change and sends only those.
func (a *App) EditUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("edituser <id>")
	}

	var req models.UpdateUserRequest
	var details models.UserDetailsPatch
	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"Email", &req.Email},
		{"Name", &details.Name},
		{"Phone number", &details.PhoneNumber},
		{"Address", &details.Address},
		{"Role [USER/ADMIN]", &req.Role},
	} {
		v, err := a.optionalText(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	if req.Role != nil {
		role := strings.ToUpper(*req.Role)
		req.Role = &role
	}
	if details != (models.UserDetailsPatch{}) {
		req.UserDetails = &details
	}
	if req == (models.UpdateUserRequest{}) {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	u, err := a.userService.Update(ctx, args[0], req)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Updated user %s (%s)\n", u.ID, u.Email)
	return nil
}

func (a *App) DelUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("deluser <id>")
	}
	if !confirm(a.reader, fmt.Sprintf("Delete user %s?", args[0]), a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.userService.Delete(ctx, args[0]); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// SetSub assigns a plan to a user; "none" removes it.
func (a *App) SetSub(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.usage("setsub <userID> <subscriptionID|none>")
	}
	var subID *string
	if !strings.EqualFold(args[1], "none") {
		subID = &args[1]
	}
	if err := a.userService.SetSubscription(ctx, args[0], subID); err != nil {
		return a.fail(err)
	}
	if subID == nil {
		fmt.Fprintf(a.out, "Removed subscription from %s.\n", args[0])
	} else {
		fmt.Fprintf(a.out, "Assigned %s to %s.\n", *subID, args[0])
	}
	return nil
}
