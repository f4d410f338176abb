package services

import (
	"context"

	"github.com/transellia/admin-console/internal/admin/client"
	"github.com/transellia/admin-console/internal/admin/models"
)

// SubscriptionsAPI is the part of the API client the subscription service needs.
type SubscriptionsAPI interface {
	GetSubscriptions(ctx context.Context, page, limit int) client.Response[models.SubscriptionsPage]
	GetSubscription(ctx context.Context, id string) client.Response[models.SubscriptionContent]
	CreateSubscription(ctx context.Context, req models.CreateSubscriptionRequest) client.Response[models.SubscriptionContent]
	UpdateSubscription(ctx context.Context, id string, req models.UpdateSubscriptionRequest) client.Response[models.SubscriptionContent]
	DeleteSubscription(ctx context.Context, id string) client.Response[models.SubscriptionContent]
}

// SubscriptionService manages subscription plans.
type SubscriptionService interface {
	List(ctx context.Context, page, limit int, search string) (*models.SubscriptionsPage, error)
	Get(ctx context.Context, id string) (*models.Subscription, error)
	Create(ctx context.Context, req models.CreateSubscriptionRequest) (*models.Subscription, error)
	Update(ctx context.Context, id string, req models.UpdateSubscriptionRequest) (*models.Subscription, error)
	Delete(ctx context.Context, id string) error
}

type subscriptionService struct {
	api SubscriptionsAPI
}

func NewSubscriptionService(api SubscriptionsAPI) SubscriptionService {
	return &subscriptionService{api: api}
}

func (s *subscriptionService) List(ctx context.Context, page, limit int, search string) (*models.SubscriptionsPage, error) {
	resp := s.api.GetSubscriptions(ctx, page, limit)
	if err := resp.Err(); err != nil {
		return nil, err
	}
	out := &models.SubscriptionsPage{}
	if resp.Data != nil {
		*out = *resp.Data
	}
	out.Subscriptions = models.FilterSubscriptions(out.Subscriptions, search)
	return out, nil
}

func (s *subscriptionService) Get(ctx context.Context, id string) (*models.Subscription, error) {
	return unwrapSubscription(s.api.GetSubscription(ctx, id))
}

func (s *subscriptionService) Create(ctx context.Context, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	return unwrapSubscription(s.api.CreateSubscription(ctx, req))
}

func (s *subscriptionService) Update(ctx context.Context, id string, req models.UpdateSubscriptionRequest) (*models.Subscription, error) {
	return unwrapSubscription(s.api.UpdateSubscription(ctx, id, req))
}

func (s *subscriptionService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteSubscription(ctx, id).Err()
}

func unwrapSubscription(resp client.Response[models.SubscriptionContent]) (*models.Subscription, error) {
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &client.Error{Message: client.MsgUnexpectedResponse}
	}
	return &resp.Data.Subscription, nil
}
