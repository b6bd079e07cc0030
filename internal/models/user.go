package models

import "time"

// User represents a registered user. The password field holds the bcrypt
// hash, never the plaintext, and is excluded from JSON entirely.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password  string    `json:"-" bson:"password" gorm:"type:varchar(255)"`
	IsAdmin   bool      `json:"isAdmin" bson:"isAdmin"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// UserInfo is the public projection of a user: name and email only.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
