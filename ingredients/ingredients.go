package ingredients

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"regexp"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetIngredients handles GET /api/ingredients. The optional `name`
// parameter is a case-insensitive prefix match, so typing "mi" surfaces
// "milk" but not "vermicelli".
func GetIngredients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if name := r.URL.Query().Get("name"); name != "" {
		filter["name"] = bson.M{"$regex": "^" + regexp.QuoteMeta(name), "$options": "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := db.IngredientCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ingredients")
		return
	}
	defer cursor.Close(ctx)

	results := []models.Ingredient{}
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode ingredients")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}

// GetIngredient handles GET /api/ingredients/:id.
func GetIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var ing models.Ingredient
	err := db.IngredientCollection.FindOne(ctx, bson.M{"ingredientid": ps.ByName("id")}).Decode(&ing)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ing)
}

type seedIngredient struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// LoadFromFile seeds the ingredient catalog from a JSON file of
// {name, measurement_unit} entries. Re-running is safe: existing names
// are upserted, not duplicated. Returns the number of entries processed.
func LoadFromFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var entries []seedIngredient
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, err
	}

	writes := make([]mongo.WriteModel, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		filter := bson.M{"name": e.Name, "measurement_unit": e.MeasurementUnit}
		update := bson.M{
			"$set":         bson.M{"measurement_unit": e.MeasurementUnit},
			"$setOnInsert": bson.M{"ingredientid": utils.GenerateID("i"), "name": e.Name},
		}
		writes = append(writes, mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true))
	}
	if len(writes) == 0 {
		return 0, nil
	}

	if _, err := db.IngredientCollection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return 0, err
	}
	return len(writes), nil
}
