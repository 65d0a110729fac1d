package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is one issued bearer credential. A user may hold any number of
// tokens at once; logout removes every token the user owns.
type Token struct {
	ID        int64
	UUID      uuid.UUID
	UserID    int64
	Name      string
	CreatedAt time.Time
}
