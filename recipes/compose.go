package recipes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodgram/db"
	"foodgram/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// recipeInput is the write payload for create and update. Ingredients is
// a pointer so an update can tell "omitted" (leave as is) apart from an
// explicit empty list (rejected).
type recipeInput struct {
	Name        string                     `json:"name"`
	Text        string                     `json:"text"`
	CookingTime int                        `json:"cooking_time"`
	Image       string                     `json:"image"`
	Ingredients *[]models.RecipeIngredient `json:"ingredients"`
	Tags        []string                   `json:"tags"`
}

type fieldError struct {
	field string
	msg   string
}

func (e *fieldError) Error() string {
	return e.field + ": " + e.msg
}

// validateRecipe checks the write payload in a fixed order so clients see
// one deterministic error at a time: image, ingredient list, duplicate
// ingredients, tags, cooking time, amounts. Duplicate-ingredient errors
// name the offending ingredient. Catalog lookups are injected so the
// rules stay checkable in isolation.
func validateRecipe(in *recipeInput, forUpdate bool, ingredientName func(id string) (string, bool), tagExists func(id string) bool) *fieldError {
	if !forUpdate && strings.TrimSpace(in.Image) == "" {
		return &fieldError{"image", "Image is required"}
	}

	var names []string
	if in.Ingredients != nil {
		if len(*in.Ingredients) == 0 {
			return &fieldError{"ingredients", "At least one ingredient is required"}
		}
		seen := make(map[string]bool, len(*in.Ingredients))
		for _, row := range *in.Ingredients {
			name, ok := ingredientName(row.IngredientID)
			if !ok {
				return &fieldError{"ingredients", fmt.Sprintf("Ingredient %q does not exist", row.IngredientID)}
			}
			if seen[row.IngredientID] {
				return &fieldError{"ingredients", fmt.Sprintf("Duplicate ingredient: %s", name)}
			}
			seen[row.IngredientID] = true
			names = append(names, name)
		}
	} else if !forUpdate {
		return &fieldError{"ingredients", "At least one ingredient is required"}
	}

	seenTags := make(map[string]bool, len(in.Tags))
	for _, tagID := range in.Tags {
		if seenTags[tagID] {
			return &fieldError{"tags", "Duplicate tag"}
		}
		seenTags[tagID] = true
		if !tagExists(tagID) {
			return &fieldError{"tags", fmt.Sprintf("Tag %q does not exist", tagID)}
		}
	}

	if !forUpdate || in.CookingTime != 0 {
		if in.CookingTime < 1 {
			return &fieldError{"cooking_time", "Cooking time must be at least 1 minute"}
		}
	}

	if in.Ingredients != nil {
		for i, row := range *in.Ingredients {
			if row.Amount < 1 {
				return &fieldError{"amount", fmt.Sprintf("Amount for %s must be at least 1", names[i])}
			}
		}
	}

	return nil
}

// catalogIngredientName and catalogTagExists back validateRecipe with the
// live catalogs.
func catalogIngredientName(ctx context.Context) func(id string) (string, bool) {
	return func(id string) (string, bool) {
		var ing models.Ingredient
		if err := db.IngredientCollection.FindOne(ctx, bson.M{"ingredientid": id}).Decode(&ing); err != nil {
			return "", false
		}
		return ing.Name, true
	}
}

func catalogTagExists(ctx context.Context) func(id string) bool {
	return func(id string) bool {
		count, err := db.TagCollection.CountDocuments(ctx, bson.M{"tagid": id})
		return err == nil && count > 0
	}
}

// createRecipe persists the recipe document and its junction rows in one
// transaction, so a half-written recipe is never visible.
func createRecipe(ctx context.Context, recipe *models.Recipe, rows []models.RecipeIngredient) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := db.RecipeCollection.InsertOne(sc, recipe); err != nil {
			return nil, err
		}
		return nil, insertIngredientRows(sc, recipe.RecipeID, rows)
	})
	return err
}

// updateRecipe applies the changed fields and, when rows is non-nil,
// replaces the junction rows wholesale. A nil rows slice leaves the
// existing ingredient set untouched.
func updateRecipe(ctx context.Context, recipeID string, set bson.M, rows []models.RecipeIngredient) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if len(set) > 0 {
			if _, err := db.RecipeCollection.UpdateOne(sc, bson.M{"recipeid": recipeID}, bson.M{"$set": set}); err != nil {
				return nil, err
			}
		}
		if rows == nil {
			return nil, nil
		}
		if _, err := db.RecipeIngredientCollection.DeleteMany(sc, bson.M{"recipeid": recipeID}); err != nil {
			return nil, err
		}
		return nil, insertIngredientRows(sc, recipeID, rows)
	})
	return err
}

func insertIngredientRows(ctx context.Context, recipeID string, rows []models.RecipeIngredient) error {
	docs := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		row.RecipeID = recipeID
		docs = append(docs, row)
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := db.RecipeIngredientCollection.InsertMany(ctx, docs)
	return err
}

// deleteRecipe removes the recipe with its junction rows and relations.
func deleteRecipe(ctx context.Context, recipeID string) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"recipeid": recipeID}
		if _, err := db.RecipeIngredientCollection.DeleteMany(sc, filter); err != nil {
			return nil, err
		}
		if _, err := db.FavoriteCollection.DeleteMany(sc, filter); err != nil {
			return nil, err
		}
		if _, err := db.ShoppingCartCollection.DeleteMany(sc, filter); err != nil {
			return nil, err
		}
		_, err := db.RecipeCollection.DeleteOne(sc, filter)
		return nil, err
	})
	return err
}

// pubDateNow exists so tests can pin recipe timestamps.
var pubDateNow = time.Now
