package models

import "time"

type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_user_favorite;not null"`
	RecipeID  int64     `json:"recipe_id" gorm:"uniqueIndex:idx_user_favorite;not null"`
	CreatedAt time.Time `json:"created_at"`

	Recipe *Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID"`
}

func (Favorite) TableName() string {
	return "favorites"
}
