package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateClientRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=120"`
	Email string `json:"email" validate:"required,email"`
	CPF   string `json:"cpf"   validate:"required,min=11,max=14"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1,max=120"`
	Email *string `json:"email" validate:"omitempty,email"`
	CPF   *string `json:"cpf"   validate:"omitempty,min=11,max=14"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ClientFilter struct {
	Name  string `form:"name"`
	Email string `form:"email"`
	Skip  int    `form:"skip,default=0"   validate:"min=0"`
	Limit int    `form:"limit,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	CPF     string `json:"cpf"`
	OwnerID string `json:"owner_id"`
}
