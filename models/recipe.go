package models

import "time"

type Ingredient struct {
	IngredientID    string `json:"id" bson:"ingredientid"`
	Name            string `json:"name" bson:"name"`
	MeasurementUnit string `json:"measurement_unit" bson:"measurement_unit"`
}

type Tag struct {
	TagID string `json:"id" bson:"tagid"`
	Name  string `json:"name" bson:"name"`
	Color string `json:"color" bson:"color"`
	Slug  string `json:"slug" bson:"slug"`
}

type Recipe struct {
	RecipeID    string    `json:"id" bson:"recipeid"`
	AuthorID    string    `json:"-" bson:"authorid"`
	Name        string    `json:"name" bson:"name"`
	Image       string    `json:"image" bson:"image"`
	Text        string    `json:"text" bson:"text"`
	CookingTime int       `json:"cooking_time" bson:"cooking_time"`
	Tags        []string  `json:"-" bson:"tags"`
	ShortCode   string    `json:"-" bson:"shortcode,omitempty"`
	PubDate     time.Time `json:"-" bson:"pub_date"`
}

// RecipeIngredient is a junction row: one ingredient of one recipe with
// its amount. Unique per (recipeid, ingredientid).
type RecipeIngredient struct {
	RecipeID     string `json:"-" bson:"recipeid"`
	IngredientID string `json:"id" bson:"ingredientid"`
	Amount       int    `json:"amount" bson:"amount"`
}

// IngredientAmount is the read shape of a junction row joined to its
// ingredient.
type IngredientAmount struct {
	IngredientID    string `json:"id" bson:"ingredientid"`
	Name            string `json:"name" bson:"name"`
	MeasurementUnit string `json:"measurement_unit" bson:"measurement_unit"`
	Amount          int    `json:"amount" bson:"amount"`
}

// RecipeResponse is the full read projection of a recipe.
type RecipeResponse struct {
	RecipeID         string             `json:"id"`
	Name             string             `json:"name"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
	Image            string             `json:"image"`
	Author           UserResponse       `json:"author"`
	Ingredients      []IngredientAmount `json:"ingredients"`
	Tags             []Tag              `json:"tags"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
}

// RecipeShort is the trimmed recipe shape used for favorites, carts and
// subscription listings.
type RecipeShort struct {
	RecipeID    string `json:"id" bson:"recipeid"`
	Name        string `json:"name" bson:"name"`
	Image       string `json:"image" bson:"image"`
	CookingTime int    `json:"cooking_time" bson:"cooking_time"`
}

// Relation links a user to a recipe (favorites and shopping carts share
// the shape; uniqueness is enforced per collection).
type Relation struct {
	UserID    string    `json:"userid" bson:"userid"`
	RecipeID  string    `json:"recipeid" bson:"recipeid"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}
