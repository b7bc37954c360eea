package entity

import "time"

// Category agrupa productos para organización del catálogo.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
