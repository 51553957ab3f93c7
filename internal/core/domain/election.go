package domain

import (
	"time"

	"github.com/google/uuid"
)

type Election struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
