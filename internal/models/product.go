package models

import "time"

// Comment is a comment on a product. Comments only exist embedded inside
// their parent Product document; they have no collection of their own and
// are created, updated and removed through the parent.
type Comment struct {
	ID        string    `json:"id" bson:"_id"`
	Text      string    `json:"text,omitempty" bson:"text,omitempty"`
	LikeCount int       `json:"likeCount" bson:"likeCount"`
	Username  string    `json:"username" bson:"username"`
	Date      time.Time `json:"date" bson:"date"`
	UserID    string    `json:"userId" bson:"user"`
}

// Product represents a catalog article. It is the aggregate root for its
// embedded comments: every comment mutation loads the product, changes the
// comments slice and persists the whole document again.
//
// CategoryIDs holds references into the categories collection; they are
// resolved to Category values by the product service, not by the store.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	Title       string    `json:"title" bson:"title"`
	Author      string    `json:"author" bson:"author"`
	Description string    `json:"description" bson:"description"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty" bson:"videoUrl,omitempty"`
	Date        time.Time `json:"date" bson:"date"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	CategoryIDs []string  `json:"category" bson:"category" gorm:"serializer:json"`
	Comments    []Comment `json:"comments" bson:"comments" gorm:"serializer:json"`
}

// CommentView is a comment as shown in product listings: the embedded id is
// suppressed.
type CommentView struct {
	Text      string    `json:"text,omitempty"`
	LikeCount int       `json:"likeCount"`
	Username  string    `json:"username"`
	Date      time.Time `json:"date"`
	UserID    string    `json:"userId"`
}

// ProductView is the listing projection: category references resolved to the
// full Category objects, isActive and the embedded comment ids suppressed.
type ProductView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Description string        `json:"description"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	VideoURL    string        `json:"videoUrl,omitempty"`
	Date        time.Time     `json:"date"`
	Categories  []Category    `json:"category"`
	Comments    []CommentView `json:"comments"`
}

// ProductDetail is a full product with its category references resolved.
// Callers decide how much of each Category is filled in: the single-product
// endpoint resolves names only, the by-category endpoint resolves everything.
type ProductDetail struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	VideoURL    string     `json:"videoUrl,omitempty"`
	Date        time.Time  `json:"date"`
	IsActive    bool       `json:"isActive"`
	Categories  []Category `json:"category"`
	Comments    []Comment  `json:"comments"`
}
