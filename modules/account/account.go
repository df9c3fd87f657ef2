package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is a stored registration.
type Account struct {
	ID           uuid.UUID
	Username     string
	Email        string // normalized, see sanitizer.NormalizeEmail
	PasswordHash []byte
	CreatedAt    time.Time
}
