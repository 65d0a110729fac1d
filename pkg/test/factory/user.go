package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"

	"todoapi/internal/core/domain"
)

// NewUser builds a user with fabricated fields. EncryptedPassword defaults
// to a bcrypt hash of "12345678" unless overridden.
func NewUser(customData ...map[string]any) domain.User {
	instance := fab.New(domain.User{})

	hasEncryptedPassword := false

	for _, data := range customData {
		if _, exists := data["EncryptedPassword"]; exists {
			hasEncryptedPassword = true
			break
		}
	}

	if !hasEncryptedPassword {
		encryptedPassword, _ := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.DefaultCost)

		customData = append(customData, map[string]any{
			"EncryptedPassword": string(encryptedPassword),
		})
	}

	user := instance.Build(customData...)
	user.ID = 0

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	return user
}
