package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"foodgram/db"
	"foodgram/filemgr"
	"foodgram/models"
	"foodgram/mq"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// SetAvatar handles PUT /api/users/me/avatar with a base64 image payload.
func SetAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var payload struct {
		Avatar string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Avatar == "" {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "avatar", "This field may not be blank.")
		return
	}

	origName, thumbName, err := filemgr.SaveBase64Image(payload.Avatar, filemgr.EntityUser, 100)
	if err != nil {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "avatar", "Invalid image payload.")
		return
	}

	var previous models.User
	_ = db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&previous)

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatar": origName, "avatar_thumb": thumbName}},
	)
	if err != nil || res.MatchedCount == 0 {
		filemgr.RemoveImage(origName)
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	filemgr.RemoveImage(previous.Avatar)

	go mq.Notify("avatar-uploaded", models.Index{EntityType: "user", EntityId: userID, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"avatar": origName})
}

// DeleteAvatar handles DELETE /api/users/me/avatar. Removing an unset
// avatar is a 400.
func DeleteAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if user.Avatar == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Avatar is not set")
		return
	}

	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatar": "", "avatar_thumb": ""}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove avatar")
		return
	}
	filemgr.RemoveImage(user.Avatar)

	w.WriteHeader(http.StatusNoContent)
}
