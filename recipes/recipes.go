package recipes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"foodgram/db"
	"foodgram/filemgr"
	"foodgram/models"
	"foodgram/mq"
	"foodgram/profile"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recipeThumbWidth = 300

// GetRecipes handles GET /api/recipes: newest first, filterable by
// author, tag slugs (OR), favorites and cart membership.
func GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requesterID := utils.GetUserIDFromRequest(r)
	page := utils.ParsePage(r, 6, 100)

	filter, err := buildListFilter(ctx, r, requesterID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build filter")
		return
	}

	count, err := db.RecipeCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count recipes")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "pub_date", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(page.Limit64())
	cursor, err := db.RecipeCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode recipes")
		return
	}

	results := []models.RecipeResponse{}
	for _, recipe := range recipes {
		resp, err := buildRecipeResponse(ctx, recipe, requesterID)
		if err != nil {
			continue
		}
		results = append(results, resp)
	}

	utils.RespondWithJSON(w, http.StatusOK, page.Envelope(r, count, results))
}

// GetRecipe handles GET /api/recipes/recipe/:id.
func GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"recipeid": ps.ByName("id")}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	resp, err := buildRecipeResponse(ctx, recipe, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load recipe")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// CreateRecipe handles POST /api/recipes.
func CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var in recipeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "name", "Name is required")
		return
	}
	if ferr := validateRecipe(&in, false, catalogIngredientName(ctx), catalogTagExists(ctx)); ferr != nil {
		utils.RespondWithFieldError(w, http.StatusBadRequest, ferr.field, ferr.msg)
		return
	}

	imagePath, _, err := filemgr.SaveBase64Image(in.Image, filemgr.EntityRecipe, recipeThumbWidth)
	if err != nil {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "image", "Invalid image payload")
		return
	}

	recipe := models.Recipe{
		RecipeID:    utils.GenerateID("r"),
		AuthorID:    userID,
		Name:        in.Name,
		Image:       imagePath,
		Text:        in.Text,
		CookingTime: in.CookingTime,
		Tags:        in.Tags,
		PubDate:     pubDateNow(),
	}
	if recipe.Tags == nil {
		recipe.Tags = []string{}
	}

	if err := createRecipe(ctx, &recipe, *in.Ingredients); err != nil {
		filemgr.RemoveImage(imagePath)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create recipe")
		return
	}

	go mq.Emit("recipe-created", models.Index{EntityType: "recipe", EntityId: recipe.RecipeID, ItemId: userID, Method: "POST"})

	resp, err := buildRecipeResponse(ctx, recipe, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load recipe")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// UpdateRecipe handles PATCH /api/recipes/recipe/:id. Only the author may
// edit. Omitting the ingredient list leaves it untouched; sending one
// replaces it wholesale.
func UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	recipeID := ps.ByName("id")

	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"recipeid": recipeID}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if recipe.AuthorID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the author can edit this recipe")
		return
	}

	var in recipeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if ferr := validateRecipe(&in, true, catalogIngredientName(ctx), catalogTagExists(ctx)); ferr != nil {
		utils.RespondWithFieldError(w, http.StatusBadRequest, ferr.field, ferr.msg)
		return
	}

	set := bson.M{}
	if name := strings.TrimSpace(in.Name); name != "" {
		set["name"] = name
	}
	if in.Text != "" {
		set["text"] = in.Text
	}
	if in.CookingTime > 0 {
		set["cooking_time"] = in.CookingTime
	}
	if in.Tags != nil {
		set["tags"] = in.Tags
	}

	var oldImage string
	if strings.TrimSpace(in.Image) != "" {
		imagePath, _, err := filemgr.SaveBase64Image(in.Image, filemgr.EntityRecipe, recipeThumbWidth)
		if err != nil {
			utils.RespondWithFieldError(w, http.StatusBadRequest, "image", "Invalid image payload")
			return
		}
		set["image"] = imagePath
		oldImage = recipe.Image
	}

	var rows []models.RecipeIngredient
	if in.Ingredients != nil {
		rows = *in.Ingredients
	}
	if err := updateRecipe(ctx, recipeID, set, rows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update recipe")
		return
	}
	if oldImage != "" {
		filemgr.RemoveImage(oldImage)
	}

	go mq.Emit("recipe-updated", models.Index{EntityType: "recipe", EntityId: recipeID, ItemId: userID, Method: "PATCH"})

	if err := db.RecipeCollection.FindOne(ctx, bson.M{"recipeid": recipeID}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load recipe")
		return
	}
	resp, err := buildRecipeResponse(ctx, recipe, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load recipe")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// DeleteRecipe handles DELETE /api/recipes/recipe/:id. Author only.
func DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	recipeID := ps.ByName("id")

	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"recipeid": recipeID}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if recipe.AuthorID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the author can delete this recipe")
		return
	}

	if err := deleteRecipe(ctx, recipeID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete recipe")
		return
	}
	filemgr.RemoveImage(recipe.Image)

	go mq.Emit("recipe-deleted", models.Index{EntityType: "recipe", EntityId: recipeID, ItemId: userID, Method: "DELETE"})

	w.WriteHeader(http.StatusNoContent)
}

// buildRecipeResponse joins a recipe document with its author, tags,
// junction rows and the requester's favorite/cart flags.
func buildRecipeResponse(ctx context.Context, recipe models.Recipe, requesterID string) (models.RecipeResponse, error) {
	author, err := profile.FetchUserResponse(ctx, recipe.AuthorID, requesterID)
	if err != nil {
		return models.RecipeResponse{}, err
	}

	ingredients, err := recipeIngredients(ctx, recipe.RecipeID)
	if err != nil {
		return models.RecipeResponse{}, err
	}

	tags := []models.Tag{}
	if len(recipe.Tags) > 0 {
		cursor, err := db.TagCollection.Find(ctx, bson.M{"tagid": bson.M{"$in": recipe.Tags}})
		if err != nil {
			return models.RecipeResponse{}, err
		}
		if err := cursor.All(ctx, &tags); err != nil {
			return models.RecipeResponse{}, err
		}
	}

	return models.RecipeResponse{
		RecipeID:         recipe.RecipeID,
		Name:             recipe.Name,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		Image:            recipe.Image,
		Author:           author,
		Ingredients:      ingredients,
		Tags:             tags,
		IsFavorited:      inRelation(ctx, db.FavoriteCollection, requesterID, recipe.RecipeID),
		IsInShoppingCart: inRelation(ctx, db.ShoppingCartCollection, requesterID, recipe.RecipeID),
	}, nil
}

// recipeIngredients joins the junction rows of one recipe to the catalog
// via $lookup.
func recipeIngredients(ctx context.Context, recipeID string) ([]models.IngredientAmount, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"recipeid": recipeID}},
		bson.M{"$lookup": bson.M{
			"from":         "ingredients",
			"localField":   "ingredientid",
			"foreignField": "ingredientid",
			"as":           "ingredient",
		}},
		bson.M{"$unwind": "$ingredient"},
		bson.M{"$project": bson.M{
			"ingredientid":     "$ingredientid",
			"name":             "$ingredient.name",
			"measurement_unit": "$ingredient.measurement_unit",
			"amount":           "$amount",
		}},
	}
	cursor, err := db.RecipeIngredientCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []models.IngredientAmount{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
