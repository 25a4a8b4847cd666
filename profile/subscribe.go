package profile

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/mq"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Subscribe handles POST /api/users/user/:id/subscribe. The unique
// (userid, authorid) index resolves concurrent duplicates: the loser gets
// a duplicate-key error and a 400, never a 500.
func Subscribe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	authorID := ps.ByName("id")

	if userID == authorID {
		utils.RespondWithErrors(w, http.StatusBadRequest, "Cannot subscribe to yourself")
		return
	}

	var author models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": authorID}).Decode(&author); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	sub := models.Subscription{
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	if _, err := db.SubscriptionCollection.InsertOne(ctx, sub); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithErrors(w, http.StatusBadRequest, "Already subscribed to this author")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to subscribe")
		return
	}

	go mq.Emit("subscribed", models.Index{EntityType: "subscription", EntityId: userID, ItemId: authorID, Method: "POST"})

	resp, err := authorEntry(ctx, author, userID, recipesLimit(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load author")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// Unsubscribe handles DELETE /api/users/user/:id/subscribe. Deleting a
// subscription that does not exist is a 400.
func Unsubscribe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	authorID := ps.ByName("id")

	if count, err := db.UserCollection.CountDocuments(ctx, bson.M{"userid": authorID}); err != nil || count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	res, err := db.SubscriptionCollection.DeleteOne(ctx, bson.M{"userid": userID, "authorid": authorID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to unsubscribe")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithErrors(w, http.StatusBadRequest, "You were not subscribed to this author")
		return
	}

	go mq.Emit("unsubscribed", models.Index{EntityType: "subscription", EntityId: userID, ItemId: authorID, Method: "DELETE"})

	w.WriteHeader(http.StatusNoContent)
}

// GetSubscriptions handles GET /api/users/subscriptions: the authors the
// caller follows, each with a trimmed recipe list and recipe count.
func GetSubscriptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	page := utils.ParsePage(r, 6, 100)

	filter := bson.M{"userid": userID}
	count, err := db.SubscriptionCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count subscriptions")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(page.Limit64())
	cursor, err := db.SubscriptionCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch subscriptions")
		return
	}
	defer cursor.Close(ctx)

	var subs []models.Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode subscriptions")
		return
	}

	limit := recipesLimit(r)
	results := []models.SubscriptionResponse{}
	for _, sub := range subs {
		var author models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": sub.AuthorID}).Decode(&author); err != nil {
			continue
		}
		entry, err := authorEntry(ctx, author, userID, limit)
		if err != nil {
			continue
		}
		results = append(results, entry)
	}

	utils.RespondWithJSON(w, http.StatusOK, page.Envelope(r, count, results))
}

func recipesLimit(r *http.Request) int64 {
	if v := r.URL.Query().Get("recipes_limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return int64(n)
		}
	}
	return 0
}

func authorEntry(ctx context.Context, author models.User, requesterID string, limit int64) (models.SubscriptionResponse, error) {
	filter := bson.M{"authorid": author.UserID}

	recipesCount, err := db.RecipeCollection.CountDocuments(ctx, filter)
	if err != nil {
		return models.SubscriptionResponse{}, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "pub_date", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := db.RecipeCollection.Find(ctx, filter, opts)
	if err != nil {
		return models.SubscriptionResponse{}, err
	}
	defer cursor.Close(ctx)

	recipes := []models.RecipeShort{}
	if err := cursor.All(ctx, &recipes); err != nil {
		return models.SubscriptionResponse{}, err
	}

	return models.SubscriptionResponse{
		UserResponse: toUserResponse(ctx, author, requesterID),
		Recipes:      recipes,
		RecipesCount: recipesCount,
	}, nil
}
