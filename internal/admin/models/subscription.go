package models

type Duration struct {
	Value int    `json:"value" validate:"required,min=1"`
	Unit  string `json:"unit" validate:"required,oneof=day week month year"`
}

// Subscription is a plan users can be assigned to.
type Subscription struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Price            float64   `json:"price"`
	Currency         string    `json:"currency"`
	Description      *string   `json:"description"`
	Duration         Duration  `json:"duration"`
	Features         []string  `json:"features"`
	Status           string    `json:"status"`
	SubscribersCount *int      `json:"subscribersCount,omitempty"`
	TotalRevenue     *float64  `json:"totalRevenue,omitempty"`
	CreatedAt        Timestamp `json:"createdAt"`
	UpdatedAt        Timestamp `json:"updatedAt"`
}

type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// SubscriptionsPage is the content of GET /v1/subscriptions.
type SubscriptionsPage struct {
	Subscriptions []Subscription `json:"subscriptions"`
	Pagination    Pagination     `json:"pagination"`
}

type SubscriptionContent struct {
	Subscription Subscription `json:"subscription"`
}

type CreateSubscriptionRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Price       float64  `json:"price" validate:"gte=0"`
	Currency    string   `json:"currency" validate:"required,len=3"`
	Description *string  `json:"description"`
	Duration    Duration `json:"duration"`
	Features    []string `json:"features" validate:"dive,required"`
	Status      string   `json:"status" validate:"required,oneof=active inactive"`
}

type UpdateSubscriptionRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency    *string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	Description *string   `json:"description,omitempty"`
	Duration    *Duration `json:"duration,omitempty"`
	Features    []string  `json:"features,omitempty" validate:"omitempty,dive,required"`
	Status      *string   `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}
