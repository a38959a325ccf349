package models

// explicit join model so the (tag, recipe) pair carries its own unique index
type RecipeTag struct {
	RecipeID int64 `json:"recipe_id" gorm:"primaryKey;uniqueIndex:idx_recipe_tag"`
	TagID    int64 `json:"tag_id" gorm:"primaryKey;uniqueIndex:idx_recipe_tag"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
