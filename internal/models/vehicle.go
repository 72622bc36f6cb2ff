package models

import "time"

// Vehicle represents a customer vehicle seen by the workshop.
type Vehicle struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	WorkshopID   string    `bson:"workshop_id" json:"workshop_id"`
	CustomerID   string    `bson:"customer_id" json:"customer_id"`
	Make         string    `bson:"make" json:"make"`
	Model        string    `bson:"model" json:"model"`
	Year         int       `bson:"year,omitempty" json:"year,omitempty"`
	Registration string    `bson:"registration,omitempty" json:"registration,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
