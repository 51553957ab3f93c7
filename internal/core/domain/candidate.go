package domain

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Party     string    `json:"party"`
	Bio       string    `json:"bio,omitempty"`
	ImageRef  string    `json:"image_ref,omitempty"`
	Position  int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
