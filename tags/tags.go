package tags

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugRe  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// GetTags handles GET /api/tags. The catalog is small, no pagination.
func GetTags(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.TagCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}
	defer cursor.Close(ctx)

	results := []models.Tag{}
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode tags")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}

// GetTag handles GET /api/tags/:id.
func GetTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var tag models.Tag
	if err := db.TagCollection.FindOne(ctx, bson.M{"tagid": ps.ByName("id")}).Decode(&tag); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Tag not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tag)
}

// CreateTag handles POST /api/tags. Name and slug are unique; the index
// turns a concurrent duplicate into a 400.
func CreateTag(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var tag models.Tag
	if err := json.NewDecoder(r.Body).Decode(&tag); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "name", "Name is required")
		return
	}
	if !colorRe.MatchString(tag.Color) {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "color", "Color must be a hex value like #49B64E")
		return
	}
	if tag.Slug == "" {
		tag.Slug = strings.ToLower(strings.ReplaceAll(tag.Name, " ", "-"))
	}
	if !slugRe.MatchString(tag.Slug) {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "slug", "Slug may only contain letters, digits, hyphens and underscores")
		return
	}

	tag.TagID = utils.GenerateID("t")
	if _, err := db.TagCollection.InsertOne(ctx, tag); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Tag with this name or slug already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create tag")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, tag)
}
