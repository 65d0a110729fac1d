package domain

import "time"

type User struct {
	ID                int64
	Name              string `validate:"required,min=2,max=255"`
	Email             string `validate:"required,email,max=255"`
	EncryptedPassword string `validate:"required"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
