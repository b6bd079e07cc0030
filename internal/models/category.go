package models

// Category represents a product category.
//
// ID is omitted from JSON when empty so that a name-only resolution of a
// category reference serializes as {"name": ...}, matching the projected
// populate on the single-product endpoint.
type Category struct {
	ID       string `json:"id,omitempty" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	Name     string `json:"name" bson:"name"`
	ImageURL string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}
