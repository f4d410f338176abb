package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/transellia/admin-console/internal/admin/models"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

func pageQuery(page, limit int) string {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return fmt.Sprintf("?page=%d&limit=%d", page, limit)
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) Response[models.LoginContent] {
	if r, ok := check[models.LoginContent](c, req); !ok {
		return r
	}
	return Post[models.LoginContent](ctx, c, "/v1/auth/login", req)
}

func (c *Client) GetSubscriptions(ctx context.Context, page, limit int) Response[models.SubscriptionsPage] {
	return Get[models.SubscriptionsPage](ctx, c, "/v1/subscriptions"+pageQuery(page, limit))
}

func (c *Client) GetSubscription(ctx context.Context, id string) Response[models.SubscriptionContent] {
	return Get[models.SubscriptionContent](ctx, c, "/v1/subscriptions/"+url.PathEscape(id))
}

func (c *Client) CreateSubscription(ctx context.Context, req models.CreateSubscriptionRequest) Response[models.SubscriptionContent] {
	if r, ok := check[models.SubscriptionContent](c, req); !ok {
		return r
	}
	return Post[models.SubscriptionContent](ctx, c, "/v1/subscriptions", req)
}

func (c *Client) UpdateSubscription(ctx context.Context, id string, req models.UpdateSubscriptionRequest) Response[models.SubscriptionContent] {
	if r, ok := check[models.SubscriptionContent](c, req); !ok {
		return r
	}
	return Put[models.SubscriptionContent](ctx, c, "/v1/subscriptions/"+url.PathEscape(id), req)
}

func (c *Client) DeleteSubscription(ctx context.Context, id string) Response[models.SubscriptionContent] {
	return Delete[models.SubscriptionContent](ctx, c, "/v1/subscriptions/"+url.PathEscape(id))
}

func (c *Client) GetUsers(ctx context.Context, page, limit int) Response[models.UsersPage] {
	return Get[models.UsersPage](ctx, c, "/v1/users"+pageQuery(page, limit))
}

func (c *Client) GetUser(ctx context.Context, id string) Response[models.UserContent] {
	return Get[models.UserContent](ctx, c, "/v1/users/"+url.PathEscape(id))
}

func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) Response[models.UserContent] {
	if r, ok := check[models.UserContent](c, req); !ok {
		return r
	}
	return Post[models.UserContent](ctx, c, "/v1/users", req)
}

func (c *Client) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) Response[models.UserContent] {
	if r, ok := check[models.UserContent](c, req); !ok {
		return r
	}
	return Put[models.UserContent](ctx, c, "/v1/users/"+url.PathEscape(id), req)
}

func (c *Client) DeleteUser(ctx context.Context, id string) Response[json.RawMessage] {
	return Delete[json.RawMessage](ctx, c, "/v1/users/"+url.PathEscape(id))
}

// UpdateUserSubscription assigns a plan to a user; a nil SubscriptionID removes it.
func (c *Client) UpdateUserSubscription(ctx context.Context, id string, req models.UpdateUserSubscriptionRequest) Response[json.RawMessage] {
	return Patch[json.RawMessage](ctx, c, "/v1/users/"+url.PathEscape(id)+"/subscription", req)
}
