package recipes

import (
	"context"
	"net/http"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/mq"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Favorite and shopping cart are the same add/remove machinery over two
// collections; only the wording and the event names differ.

func AddFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	addRelation(w, r, ps, db.FavoriteCollection, "favorites list", "recipe-favorited")
}

func RemoveFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	removeRelation(w, r, ps, db.FavoriteCollection, "favorites list", "recipe-unfavorited")
}

func AddToCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	addRelation(w, r, ps, db.ShoppingCartCollection, "shopping cart", "cart-added")
}

func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	removeRelation(w, r, ps, db.ShoppingCartCollection, "shopping cart", "cart-removed")
}

// addRelation inserts a (user, recipe) row and answers with the short
// recipe card. The unique index makes a repeated add a 400, including
// under concurrency.
func addRelation(w http.ResponseWriter, r *http.Request, ps httprouter.Params, coll *mongo.Collection, listName, event string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	recipeID := ps.ByName("id")

	var recipe models.RecipeShort
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"recipeid": recipeID}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	row := models.Relation{UserID: userID, RecipeID: recipeID, CreatedAt: time.Now()}
	if _, err := coll.InsertOne(ctx, row); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithErrors(w, http.StatusBadRequest, "Recipe already added to "+listName)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add recipe")
		return
	}

	go mq.Emit(event, models.Index{EntityType: "recipe", EntityId: recipeID, ItemId: userID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, recipe)
}

// removeRelation deletes a (user, recipe) row. Removing a row that is not
// there is a 400, not a no-op.
func removeRelation(w http.ResponseWriter, r *http.Request, ps httprouter.Params, coll *mongo.Collection, listName, event string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	recipeID := ps.ByName("id")

	if count, err := db.RecipeCollection.CountDocuments(ctx, bson.M{"recipeid": recipeID}); err != nil || count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	res, err := coll.DeleteOne(ctx, bson.M{"userid": userID, "recipeid": recipeID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove recipe")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithErrors(w, http.StatusBadRequest, "Recipe not found in "+listName)
		return
	}

	go mq.Emit(event, models.Index{EntityType: "recipe", EntityId: recipeID, ItemId: userID, Method: "DELETE"})

	w.WriteHeader(http.StatusNoContent)
}
