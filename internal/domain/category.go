package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common category validation errors
var (
	ErrEmptyCategoryID   = errors.New("category ID cannot be empty")
	ErrEmptyCategoryName = errors.New("category name cannot be empty")
)

// Category is a named muscle group (e.g. "Legs", "Back") that owns a set
// of exercises. Category names are unique across the application.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCategory creates a new Category with the given name and image URL.
func NewCategory(name, imageURL string) (*Category, error) {
	category := &Category{
		ID:        uuid.New(),
		Name:      name,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}
	return nil
}
