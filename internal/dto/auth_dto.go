package dto

// LoginRequest is bound from the form-encoded body of POST /token.
type LoginRequest struct {
	Username string `form:"username" validate:"required,min=1"`
	Password string `form:"password" validate:"required,min=1"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
