package domain

import "time"

// Todo invariant: DoneAt is non-nil if and only if Done is true.
type Todo struct {
	ID          int64
	Title       string `validate:"required,max=255"`
	Description string `validate:"max=1000"`
	Done        bool
	DoneAt      *time.Time
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
