package recipes

import (
	"context"
	"net/http"
	"os"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/rdx"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

const shortCodeLen = 6

// GetShortLink handles GET /api/recipes/recipe/:id/get-link. The code is
// minted once, stored on the recipe and cached in Redis for the redirect
// path.
func GetShortLink(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	recipeID := ps.ByName("id")

	code, err := ensureShortCode(ctx, recipeID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"short-link": baseURL(r) + "/s/" + code})
}

// ResolveShortLink handles GET /s/:code with a redirect to the recipe
// page. Redis first, recipe collection as fallback.
func ResolveShortLink(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	code := ps.ByName("code")

	recipeID, err := rdx.RdxGet("shortlink:" + code)
	if err != nil || recipeID == "" {
		var recipe models.Recipe
		if err := db.RecipeCollection.FindOne(ctx, bson.M{"shortcode": code}).Decode(&recipe); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Unknown short link")
			return
		}
		recipeID = recipe.RecipeID
		rdx.RdxSet("shortlink:"+code, recipeID)
	}

	http.Redirect(w, r, "/recipes/"+recipeID, http.StatusFound)
}

// ShortLinkQR handles GET /api/recipes/recipe/:id/qr with a PNG encoding
// of the short link.
func ShortLinkQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	recipeID := ps.ByName("id")

	code, err := ensureShortCode(ctx, recipeID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	png, err := qrcode.Encode(baseURL(r)+"/s/"+code, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func ensureShortCode(ctx context.Context, recipeID string) (string, error) {
	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"recipeid": recipeID}).Decode(&recipe); err != nil {
		return "", err
	}
	if recipe.ShortCode != "" {
		return recipe.ShortCode, nil
	}

	code := utils.GenerateRandomString(shortCodeLen)
	_, err := db.RecipeCollection.UpdateOne(ctx, bson.M{"recipeid": recipeID}, bson.M{"$set": bson.M{"shortcode": code}})
	if err != nil {
		return "", err
	}
	rdx.RdxSet("shortlink:"+code, recipeID)
	return code, nil
}

func baseURL(r *http.Request) string {
	if base := os.Getenv("BASE_URL"); base != "" {
		return base
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
