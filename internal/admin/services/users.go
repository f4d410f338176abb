package services

import (
	"context"
	"encoding/json"

	"github.com/transellia/admin-console/internal/admin/client"
	"github.com/transellia/admin-console/internal/admin/models"
)

// UsersAPI is the part of the API client the user service needs.
type UsersAPI interface {
	GetUsers(ctx context.Context, page, limit int) client.Response[models.UsersPage]
	GetUser(ctx context.Context, id string) client.Response[models.UserContent]
	CreateUser(ctx context.Context, req models.CreateUserRequest) client.Response[models.UserContent]
	UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) client.Response[models.UserContent]
	DeleteUser(ctx context.Context, id string) client.Response[json.RawMessage]
	UpdateUserSubscription(ctx context.Context, id string, req models.UpdateUserSubscriptionRequest) client.Response[json.RawMessage]
}

// UserService manages backend user accounts. Failed calls come back as
// *client.Error.
type UserService interface {
	List(ctx context.Context, page, limit int, search string) (*models.UsersPage, error)
	Get(ctx context.Context, id string) (*models.BackendUser, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.BackendUser, error)
	Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.BackendUser, error)
	Delete(ctx context.Context, id string) error
	SetSubscription(ctx context.Context, userID string, subscriptionID *string) error
}

type userService struct {
	api UsersAPI
}

func NewUserService(api UsersAPI) UserService {
	return &userService{api: api}
}

// List fetches one page and narrows it to users whose name or email contains
// search. Meta still describes the unfiltered page.
func (s *userService) List(ctx context.Context, page, limit int, search string) (*models.UsersPage, error) {
	resp := s.api.GetUsers(ctx, page, limit)
	if err := resp.Err(); err != nil {
		return nil, err
	}
	out := &models.UsersPage{}
	if resp.Data != nil {
		*out = *resp.Data
	}
	out.Users = models.FilterUsers(out.Users, search)
	return out, nil
}

func (s *userService) Get(ctx context.Context, id string) (*models.BackendUser, error) {
	return unwrapUser(s.api.GetUser(ctx, id))
}

func (s *userService) Create(ctx context.Context, req models.CreateUserRequest) (*models.BackendUser, error) {
	return unwrapUser(s.api.CreateUser(ctx, req))
}

// Update sends only the fields set in req.
func (s *userService) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.BackendUser, error) {
	return unwrapUser(s.api.UpdateUser(ctx, id, req))
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteUser(ctx, id).Err()
}

// SetSubscription assigns subscriptionID to the user; nil removes the plan.
func (s *userService) SetSubscription(ctx context.Context, userID string, subscriptionID *string) error {
	req := models.UpdateUserSubscriptionRequest{SubscriptionID: subscriptionID}
	return s.api.UpdateUserSubscription(ctx, userID, req).Err()
}

func unwrapUser(resp client.Response[models.UserContent]) (*models.BackendUser, error) {
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &client.Error{Message: client.MsgUnexpectedResponse}
	}
	return &resp.Data.User, nil
}
