// Package models defines the shapes exchanged with the backend and the
// frontend-side identity kept in the session.
package models

// RoleAdmin is the only role a console session may carry.
const RoleAdmin = "admin"

// BackendRoleAdmin is the role string the backend uses for administrators.
const BackendRoleAdmin = "ADMIN"

// User is the identity stored in the session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserDetails is the nested profile record of a backend user.
type UserDetails struct {
	Name         *string `json:"name"`
	ImageProfile *string `json:"imageProfile"`
	PhoneNumber  *string `json:"phoneNumber"`
	Address      *string `json:"address"`
}

// BackendUser is the user record as returned by the backend.
type BackendUser struct {
	ID             string        `json:"id"`
	Email          string        `json:"email"`
	Role           *string       `json:"role"`
	SubscriptionID *string       `json:"subscriptionId"`
	Subscription   *Subscription `json:"subscription,omitempty"`
	UserDetails    *UserDetails  `json:"UserDetails"`
	IsEmployee     *bool         `json:"isEmployee"`
	CreatedAt      Timestamp     `json:"createdAt"`
	UpdatedAt      Timestamp     `json:"updatedAt"`
}

// DisplayName returns the profile name or "" when the backend has none.
func (u BackendUser) DisplayName() string {
	if u.UserDetails == nil || u.UserDetails.Name == nil {
		return ""
	}
	return *u.UserDetails.Name
}

// RoleName returns the role or "" when it is null.
func (u BackendUser) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return *u.Role
}

type UsersMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// UsersPage is the content of GET /v1/users.
type UsersPage struct {
	Users []BackendUser `json:"users"`
	Meta  UsersMeta     `json:"meta"`
}

// UserContent wraps a single user, as in GET/POST/PUT /v1/users.
type UserContent struct {
	User BackendUser `json:"user"`
}

type UserDetailsInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,max=32"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=255"`
}

type CreateUserRequest struct {
	Email       string            `json:"email" validate:"required,email,max=255"`
	Password    string            `json:"password" validate:"required,min=8,max=128"`
	Role        string            `json:"role,omitempty" validate:"omitempty,oneof=ADMIN USER"`
	IsEmployee  *bool             `json:"isEmployee,omitempty"`
	UserDetails *UserDetailsInput `json:"userDetails,omitempty"`
}

type UserDetailsPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,max=32"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

type UpdateUserRequest struct {
	Email          *string           `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Role           *string           `json:"role,omitempty" validate:"omitempty,oneof=ADMIN USER"`
	IsEmployee     *bool             `json:"isEmployee,omitempty"`
	SubscriptionID *string           `json:"subscriptionId,omitempty"`
	UserDetails    *UserDetailsPatch `json:"userDetails,omitempty"`
}

// UpdateUserSubscriptionRequest assigns (or clears, with nil) a user's plan.
type UpdateUserSubscriptionRequest struct {
	SubscriptionID *string `json:"subscriptionId"`
}
