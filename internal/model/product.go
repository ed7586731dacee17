package model

import "time"

type Product struct {
	ID          string    `gorm:"primaryKey;size:64;not null" bson:"_id" json:"_id"`
	Name        string    `gorm:"size:255;not null" bson:"name" json:"name"`
	Description string    `gorm:"type:text" bson:"description" json:"description"`
	Price       float64   `gorm:"not null" bson:"price" json:"price"`
	Images      []string  `gorm:"serializer:json" bson:"image" json:"image"`
	Category    string    `gorm:"size:64;index" bson:"category" json:"category"`
	SubCategory string    `gorm:"size:64" bson:"subCategory" json:"subCategory"`
	Sizes       []string  `gorm:"serializer:json" bson:"sizes" json:"sizes"`
	Bestseller  bool      `bson:"bestseller" json:"bestseller"`
	Date        time.Time `bson:"date" json:"date"`
}
