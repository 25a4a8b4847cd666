package models

import "time"

type User struct {
	UserID        string    `json:"id" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password"`
	FirstName     string    `json:"first_name" bson:"first_name"`
	LastName      string    `json:"last_name" bson:"last_name"`
	Avatar        string    `json:"avatar" bson:"avatar"`
	AvatarThumb   string    `json:"-" bson:"avatar_thumb,omitempty"`
	CreatedAt     time.Time `json:"-" bson:"created_at"`
	LastLogin     time.Time `json:"-" bson:"last_login"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
}

// UserResponse is the read projection of a user, with the subscription
// flag scoped to the requesting user.
type UserResponse struct {
	UserID       string `json:"id" bson:"userid"`
	Username     string `json:"username" bson:"username"`
	Email        string `json:"email" bson:"email"`
	FirstName    string `json:"first_name" bson:"first_name"`
	LastName     string `json:"last_name" bson:"last_name"`
	Avatar       string `json:"avatar" bson:"avatar"`
	IsSubscribed bool   `json:"is_subscribed" bson:"-"`
}

type Subscription struct {
	UserID    string    `json:"userid" bson:"userid"`
	AuthorID  string    `json:"authorid" bson:"authorid"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// SubscriptionResponse is an author entry in the subscriptions list,
// carrying a trimmed set of their recipes.
type SubscriptionResponse struct {
	UserResponse `bson:",inline"`
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}
