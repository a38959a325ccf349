package models

import "time"

type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Image       string    `json:"image" gorm:"not null"` // path relative to the media root
	Text        string    `json:"text" gorm:"not null"`
	CookingTime int       `json:"cooking_time" gorm:"not null"` // minutes
	PubDate     time.Time `json:"pub_date" gorm:"autoCreateTime;index"`

	// associations
	Author      *User              `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tags        []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
}

func (Recipe) TableName() string {
	return "recipes"
}
