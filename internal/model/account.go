package model

import "time"

type Account struct {
	ID        string    `gorm:"primaryKey;size:64;not null" bson:"_id" json:"_id"`
	Name      string    `gorm:"size:255;not null" bson:"name" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" bson:"email" json:"email"`
	Password  string    `gorm:"size:255;not null" bson:"password" json:"-"` // bcrypt hash
	Image     string    `gorm:"size:512" bson:"image,omitempty" json:"image"`
	Cart      Cart      `gorm:"serializer:json" bson:"cartData" json:"cartData"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
