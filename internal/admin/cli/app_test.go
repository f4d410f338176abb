package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transellia/admin-console/internal/admin/client"
	"github.com/transellia/admin-console/internal/admin/guard"
	"github.com/transellia/admin-console/internal/admin/models"
	"github.com/transellia/admin-console/internal/admin/services"
	"github.com/transellia/admin-console/internal/admin/session"
	"github.com/transellia/admin-console/internal/logging"
)

// ------------ helpers ------------

type memPersister struct{ saved *session.Persisted }

func (m *memPersister) Load(ctx context.Context) (*session.Persisted, error) { return m.saved, nil }
func (m *memPersister) Save(ctx context.Context, p session.Persisted) error {
	m.saved = &p
	return nil
}

type fakeLoginAPI struct {
	resp client.Response[models.LoginContent]
}

func (f *fakeLoginAPI) Login(ctx context.Context, req models.LoginRequest) client.Response[models.LoginContent] {
	return f.resp
}

func strPtr(s string) *string { return &s }

func adminLogin(token string) client.Response[models.LoginContent] {
	return client.Response[models.LoginContent]{
		Success: true,
		Token:   token,
		Data: &models.LoginContent{User: &models.BackendUser{
			ID:          "u1",
			Email:       "ann@x.io",
			Role:        strPtr("ADMIN"),
			UserDetails: &models.UserDetails{Name: strPtr("Ann")},
		}},
	}
}

type fakeUsers struct {
	listPage   int
	listSearch string
	listOut    *models.UsersPage
	getOut     *models.BackendUser
	created    models.CreateUserRequest
	updatedID  string
	updated    models.UpdateUserRequest
	deleted    string
	setUser    string
	setSub     *string
	err        error
}

func (f *fakeUsers) List(ctx context.Context, page, limit int, search string) (*models.UsersPage, error) {
	f.listPage, f.listSearch = page, search
	return f.listOut, f.err
}
func (f *fakeUsers) Get(ctx context.Context, id string) (*models.BackendUser, error) {
	return f.getOut, f.err
}
func (f *fakeUsers) Create(ctx context.Context, req models.CreateUserRequest) (*models.BackendUser, error) {
	f.created = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BackendUser{ID: "new", Email: req.Email}, nil
}
func (f *fakeUsers) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.BackendUser, error) {
	f.updatedID, f.updated = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BackendUser{ID: id, Email: "ann@x.io"}, nil
}
func (f *fakeUsers) Delete(ctx context.Context, id string) error {
	f.deleted = id
	return f.err
}
func (f *fakeUsers) SetSubscription(ctx context.Context, userID string, subscriptionID *string) error {
	f.setUser, f.setSub = userID, subscriptionID
	return f.err
}

type fakeSubs struct {
	listOut *models.SubscriptionsPage
	getOut  *models.Subscription
	created models.CreateSubscriptionRequest
	updated *models.UpdateSubscriptionRequest
	deleted string
	err     error
}

func (f *fakeSubs) List(ctx context.Context, page, limit int, search string) (*models.SubscriptionsPage, error) {
	return f.listOut, f.err
}
func (f *fakeSubs) Get(ctx context.Context, id string) (*models.Subscription, error) {
	return f.getOut, f.err
}
func (f *fakeSubs) Create(ctx context.Context, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	f.created = req
	return &models.Subscription{ID: "pro", Name: req.Name}, f.err
}
func (f *fakeSubs) Update(ctx context.Context, id string, req models.UpdateSubscriptionRequest) (*models.Subscription, error) {
	f.updated = &req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Subscription{ID: id, Name: "Pro"}, nil
}
func (f *fakeSubs) Delete(ctx context.Context, id string) error {
	f.deleted = id
	return f.err
}

type fakeLocalData struct {
	wiped int
	err   error
}

func (f *fakeLocalData) Wipe(ctx context.Context) error {
	f.wiped++
	return f.err
}

type testApp struct {
	*App
	out   *bytes.Buffer
	login *fakeLoginAPI
	users *fakeUsers
	subs  *fakeSubs
	local *fakeLocalData
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	origPw := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte("pw"), nil }
	t.Cleanup(func() { getPassword = origPw })

	store := session.NewStore(&memPersister{}, logging.Nop())
	store.Init(context.Background())

	login := &fakeLoginAPI{resp: adminLogin("tok1")}
	users := &fakeUsers{}
	subs := &fakeSubs{}
	local := &fakeLocalData{}
	out := &bytes.Buffer{}

	app := &App{
		logger:        logging.Nop(),
		localData:     local,
		store:         store,
		authService:   services.NewAuthService(login, store, logging.Nop()),
		userService:   users,
		subscriptions: subs,
		guard:         guard.New(store),
		reader:        bufio.NewReader(strings.NewReader(input)),
		out:           out,
		now:           time.Now,
	}
	return &testApp{App: app, out: out, login: login, users: users, subs: subs, local: local}
}

// ------------ tests ------------

func TestApp_LoginAndLogout(t *testing.T) {
	a := newTestApp(t, "ann@x.io\n")

	require.NoError(t, a.Login(context.Background()))
	assert.Contains(t, a.out.String(), "Welcome, Ann!")
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(Ann)", a.status())
	assert.Equal(t, guard.Allow, a.enter(guard.ViewUsers).Decision)

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "", a.status())
	assert.Equal(t, guard.Outcome{Decision: guard.Redirect, View: guard.ViewLogin}, a.enter(guard.ViewUsers))
}

func TestApp_LoginRejectedNonAdmin(t *testing.T) {
	a := newTestApp(t, "bob@x.io\n")
	a.login.resp.Data.User.Role = strPtr("USER")

	err := a.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, a.out.String(), services.MsgAccessDenied)
	assert.False(t, a.isLoggedIn())
}

func TestApp_LoginMissingEmail(t *testing.T) {
	a := newTestApp(t, "\n")

	require.Error(t, a.Login(context.Background()))
	assert.Contains(t, a.out.String(), "Please enter both email and password.")
}

func TestApp_WhoAmI(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	a := newTestApp(t, "ann@x.io\n")
	a.login.resp.Token = token
	require.NoError(t, a.Login(context.Background()))
	a.out.Reset()

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, a.out.String(), "Ann <ann@x.io>")
	assert.Contains(t, a.out.String(), "role: admin")
	assert.Contains(t, a.out.String(), "token: valid until")

	a.now = func() time.Time { return exp.Add(time.Minute) }
	a.out.Reset()
	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, a.out.String(), "token: expired at")
}

func TestApp_Users(t *testing.T) {
	a := newTestApp(t, "")
	a.users.listOut = &models.UsersPage{
		Users: []models.BackendUser{{ID: "u7", Email: "ann@x.io", Role: strPtr("ADMIN"), UserDetails: &models.UserDetails{Name: strPtr("Ann")}}},
		Meta:  models.UsersMeta{Page: 2, TotalPages: 3, Total: 21},
	}

	require.NoError(t, a.Users(context.Background(), []string{"2", "ann"}))
	assert.Equal(t, 2, a.users.listPage)
	assert.Equal(t, "ann", a.users.listSearch)
	assert.Contains(t, a.out.String(), "u7")
	assert.Contains(t, a.out.String(), "page 2 of 3 (21 users)")

	a.users.listOut = &models.UsersPage{}
	a.out.Reset()
	require.NoError(t, a.Users(context.Background(), nil))
	assert.Contains(t, a.out.String(), "No users found.")
}

func TestApp_UserErrorsAndUsage(t *testing.T) {
	a := newTestApp(t, "")

	require.ErrorIs(t, a.User(context.Background(), nil), errUsage)
	assert.Contains(t, a.out.String(), "Usage: user <id>")

	a.users.err = &client.Error{Message: "Validation failed", Fields: []client.FieldError{{Field: "id", Message: "is invalid"}}}
	require.Error(t, a.User(context.Background(), []string{"x"}))
	assert.Contains(t, a.out.String(), "Error: Validation failed\n  id: is invalid")
}

func TestApp_AddUser(t *testing.T) {
	a := newTestApp(t, "new@x.io\nNew Person\n\n\n")

	require.NoError(t, a.AddUser(context.Background()))
	assert.Equal(t, models.CreateUserRequest{
		Email:       "new@x.io",
		Password:    "pw",
		Role:        "USER",
		UserDetails: &models.UserDetailsInput{Name: "New Person"},
	}, a.users.created)
	assert.Contains(t, a.out.String(), "Created user new (new@x.io)")
}

func TestApp_DelUserConfirms(t *testing.T) {
	a := newTestApp(t, "n\ny\n")

	require.NoError(t, a.DelUser(context.Background(), []string{"u1"}))
	assert.Empty(t, a.users.deleted)
	assert.Contains(t, a.out.String(), "Cancelled.")

	require.NoError(t, a.DelUser(context.Background(), []string{"u1"}))
	assert.Equal(t, "u1", a.users.deleted)
}

func TestApp_SetSub(t *testing.T) {
	a := newTestApp(t, "")

	require.NoError(t, a.SetSub(context.Background(), []string{"u1", "pro"}))
	assert.Equal(t, "u1", a.users.setUser)
	require.NotNil(t, a.users.setSub)
	assert.Equal(t, "pro", *a.users.setSub)

	require.NoError(t, a.SetSub(context.Background(), []string{"u1", "NONE"}))
	assert.Nil(t, a.users.setSub)
	assert.Contains(t, a.out.String(), "Removed subscription from u1.")

	require.ErrorIs(t, a.SetSub(context.Background(), []string{"u1"}), errUsage)
}

func TestApp_SubsAndSub(t *testing.T) {
	a := newTestApp(t, "")
	a.subs.listOut = &models.SubscriptionsPage{
		Subscriptions: []models.Subscription{{ID: "pro", Name: "Pro", Price: 99000, Currency: "IDR", Duration: models.Duration{Value: 1, Unit: "month"}, Status: "active"}},
		Pagination:    models.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 1},
	}
	a.subs.getOut = &models.Subscription{ID: "pro", Name: "Pro", Price: 99000, Currency: "IDR", Duration: models.Duration{Value: 3, Unit: "month"}, Features: []string{"reports", "api"}}

	require.NoError(t, a.Subs(context.Background(), nil))
	assert.Contains(t, a.out.String(), "99000 IDR")
	assert.Contains(t, a.out.String(), "1 month")
	assert.Contains(t, a.out.String(), "page 1 of 1 (1 plans)")

	a.out.Reset()
	require.NoError(t, a.Sub(context.Background(), []string{"pro"}))
	assert.Contains(t, a.out.String(), "3 months")
	assert.Contains(t, a.out.String(), "reports, api")
}

func TestApp_AddSub(t *testing.T) {
	input := strings.Join([]string{
		"Pro",
		"99000",
		"idr",
		"1",
		"Month",
		"",
		"For growing stores",
		"",
		"reports, api",
	}, "\n") + "\n"
	a := newTestApp(t, input)

	require.NoError(t, a.AddSub(context.Background()))
	desc := "For growing stores"
	assert.Equal(t, models.CreateSubscriptionRequest{
		Name:        "Pro",
		Price:       99000,
		Currency:    "IDR",
		Description: &desc,
		Duration:    models.Duration{Value: 1, Unit: "month"},
		Features:    []string{"reports", "api"},
		Status:      "active",
	}, a.subs.created)
	assert.Contains(t, a.out.String(), "Created subscription pro (Pro)")
}

func TestApp_AddSubBadPrice(t *testing.T) {
	a := newTestApp(t, "Pro\ncheap\n")

	require.Error(t, a.AddSub(context.Background()))
	assert.Contains(t, a.out.String(), `price "cheap" is not a number`)
	assert.Empty(t, a.subs.created.Name)
}

func TestApp_DelSub(t *testing.T) {
	a := newTestApp(t, "yes\n")
	a.subs.err = errors.New("Subscription not found")

	require.Error(t, a.DelSub(context.Background(), []string{"gone"}))
	assert.Equal(t, "gone", a.subs.deleted)
	assert.Contains(t, a.out.String(), "Error: Subscription not found")
}

func TestApp_Forget(t *testing.T) {
	a := newTestApp(t, "ann@x.io\nn\ny\n")
	require.NoError(t, a.Login(context.Background()))

	require.NoError(t, a.Forget(context.Background()))
	assert.Zero(t, a.local.wiped)
	assert.True(t, a.isLoggedIn())

	require.NoError(t, a.Forget(context.Background()))
	assert.Equal(t, 1, a.local.wiped)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, a.out.String(), "Local session data removed.")
}

func TestApp_ForgetWipeFails(t *testing.T) {
	a := newTestApp(t, "y\n")
	a.local.err = errors.New("wipe local data: disk I/O error")

	require.Error(t, a.Forget(context.Background()))
	assert.Contains(t, a.out.String(), "Error: wipe local data: disk I/O error")
	assert.NotContains(t, a.out.String(), "Local session data removed.")
}

func TestApp_EditUser(t *testing.T) {
	a := newTestApp(t, "\nAnn Lee\n\n\nadmin\n")

	require.NoError(t, a.EditUser(context.Background(), []string{"u1"}))
	assert.Equal(t, "u1", a.users.updatedID)
	assert.Equal(t, models.UpdateUserRequest{
		Role:        strPtr("ADMIN"),
		UserDetails: &models.UserDetailsPatch{Name: strPtr("Ann Lee")},
	}, a.users.updated)
	assert.Contains(t, a.out.String(), "Updated user u1 (ann@x.io)")
}

func TestApp_EditUserNothingToChange(t *testing.T) {
	a := newTestApp(t, "\n\n\n\n\n")

	require.NoError(t, a.EditUser(context.Background(), []string{"u1"}))
	assert.Empty(t, a.users.updatedID)
	assert.Contains(t, a.out.String(), "Nothing to change.")

	require.ErrorIs(t, a.EditUser(context.Background(), nil), errUsage)
}

func TestApp_EditUserBackendError(t *testing.T) {
	a := newTestApp(t, "bad\n\n\n\n\n")
	a.users.err = &client.Error{Message: client.MsgValidationFailed, Fields: []client.FieldError{{Field: "email", Message: "must be a valid email"}}}

	require.Error(t, a.EditUser(context.Background(), []string{"u1"}))
	require.NotNil(t, a.users.updated.Email)
	assert.Equal(t, "bad", *a.users.updated.Email)
	assert.Contains(t, a.out.String(), "email: must be a valid email")
}

func TestApp_EditSub(t *testing.T) {
	input := strings.Join([]string{
		"",         // name
		"120000",   // price
		"",         // currency
		"3",        // duration value
		"Month",    // duration unit
		"INACTIVE", // status
		"",         // description
		"reports, api",
	}, "\n") + "\n"
	a := newTestApp(t, input)

	require.NoError(t, a.EditSub(context.Background(), []string{"pro"}))
	require.NotNil(t, a.subs.updated)
	price := 120000.0
	assert.Equal(t, models.UpdateSubscriptionRequest{
		Price:    &price,
		Duration: &models.Duration{Value: 3, Unit: "month"},
		Status:   strPtr("inactive"),
		Features: []string{"reports", "api"},
	}, *a.subs.updated)
	assert.Contains(t, a.out.String(), "Updated subscription pro (Pro)")
}

func TestApp_EditSubRejectsPartialDuration(t *testing.T) {
	a := newTestApp(t, "\n\n\n2\n\n")

	require.Error(t, a.EditSub(context.Background(), []string{"pro"}))
	assert.Nil(t, a.subs.updated)
	assert.Contains(t, a.out.String(), "duration needs both a value and a unit")
}

func TestApp_EditSubNothingToChange(t *testing.T) {
	a := newTestApp(t, strings.Repeat("\n", 8))

	require.NoError(t, a.EditSub(context.Background(), []string{"pro"}))
	assert.Nil(t, a.subs.updated)
	assert.Contains(t, a.out.String(), "Nothing to change.")
}

func TestApp_UserShowsTimestamps(t *testing.T) {
	a := newTestApp(t, "")
	var u models.BackendUser
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","email":"ann@x.io","createdAt":"2024-01-01 10:00:00"}`), &u))
	a.users.getOut = &u

	require.NoError(t, a.User(context.Background(), []string{"u1"}))
	assert.Contains(t, a.out.String(), u.CreatedAt.Local().Format("2006-01-02 15:04"))

	a.subs.getOut = &models.Subscription{ID: "pro", Name: "Pro"}
	a.out.Reset()
	require.NoError(t, a.Sub(context.Background(), []string{"pro"}))
	assert.Regexp(t, `updated:\s+-`, a.out.String())
}
