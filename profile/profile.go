package profile

import (
	"context"
	"net/http"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IsSubscribed reports whether user follows author. Anonymous users and
// self-lookups are never subscribed.
func IsSubscribed(ctx context.Context, userID, authorID string) bool {
	if userID == "" || userID == authorID {
		return false
	}
	count, err := db.SubscriptionCollection.CountDocuments(ctx, bson.M{
		"userid":   userID,
		"authorid": authorID,
	})
	return err == nil && count > 0
}

func toUserResponse(ctx context.Context, user models.User, requesterID string) models.UserResponse {
	return models.UserResponse{
		UserID:       user.UserID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Avatar:       user.Avatar,
		IsSubscribed: IsSubscribed(ctx, requesterID, user.UserID),
	}
}

// FetchUserResponse loads one user as the read projection scoped to the
// requesting user.
func FetchUserResponse(ctx context.Context, userID, requesterID string) (models.UserResponse, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return models.UserResponse{}, err
	}
	return toUserResponse(ctx, user, requesterID), nil
}

func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	requesterID := utils.GetUserIDFromRequest(r)
	page := utils.ParsePage(r, 6, 100)

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "userid", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(page.Limit64())
	cursor, err := db.UserCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode users")
		return
	}

	results := []models.UserResponse{}
	for _, u := range users {
		results = append(results, toUserResponse(ctx, u, requesterID))
	}

	utils.RespondWithJSON(w, http.StatusOK, page.Envelope(r, count, results))
}

func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp, err := FetchUserResponse(ctx, ps.ByName("id"), utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func GetMe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	resp, err := FetchUserResponse(ctx, userID, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
