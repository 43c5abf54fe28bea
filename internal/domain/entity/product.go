package entity

import "time"

// Product is a read-only catalog record from the cart's perspective; cart
// line items embed a snapshot of it rather than referencing it by id.
type Product struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string    `bson:"name" json:"name"`
	Cost      float64   `bson:"cost" json:"cost"`
	ImageURL  string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
