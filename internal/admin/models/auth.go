package models

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginContent is the content of a successful POST /v1/auth/login.
// The bearer token travels in the envelope's meta, not here.
type LoginContent struct {
	User *BackendUser `json:"user"`
}
