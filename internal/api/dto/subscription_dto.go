package dto

// SubscriptionResponse is the author representation returned for
// subscription listings: a user plus a bounded recipe preview.
type SubscriptionResponse struct {
	Email        string                `json:"email"`
	ID           int64                 `json:"id"`
	Username     string                `json:"username"`
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	IsSubscribed bool                  `json:"is_subscribed"`
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}
