package models

import "gorm.io/gorm"

// Product represents a product in the catalogue. Price is the CURRENT
// catalogue price; order items snapshot it at insertion and are never
// affected by later changes here.
type Product struct {
	gorm.Model
	Name        string     `gorm:"size:255;not null;index" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"not null;default:0" json:"price"`
	ImgURL      string     `gorm:"size:512" json:"img_url"`
	Categories  []Category `gorm:"many2many:product_categories" json:"categories,omitempty"`
}

// Category groups products in the catalogue.
type Category struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name"`
}
