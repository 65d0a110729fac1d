package request

import "time"

type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=8,max=100,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// TodoCreateRequest accepts done/done_at so that clients sending them get a
// well-formed bind, but creation always starts the todo in the pending state.
type TodoCreateRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description" validate:"max=1000"`
	Done        *bool      `json:"done,omitempty"`
	DoneAt      *time.Time `json:"done_at,omitempty"`
}
