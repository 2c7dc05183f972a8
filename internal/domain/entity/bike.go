package entity

import (
	"errors"
	"time"
)

type Bike struct {
	ID             string
	Brand          string
	Model          string
	ProductionYear int
	Engine         string
	Description    string
	Price          float64
	Location       string
	OwnerID        string
	IsSold         bool
	Published      time.Time
}

var ErrMissingRequiredFields = errors.New("all required fields must be provided")

// Validate checks the fields that must be present and truthy on creation.
func (b *Bike) Validate() error {
	if b.Brand == "" || b.Model == "" || b.ProductionYear == 0 || b.Engine == "" ||
		b.Price <= 0 || b.Location == "" || b.OwnerID == "" {
		return ErrMissingRequiredFields
	}
	return nil
}
