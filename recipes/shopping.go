package recipes

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
)

// shoppingItem is one aggregated line of the shopping list: every cart
// recipe's amounts for the same (name, unit) pair summed together.
type shoppingItem struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart.
// Plain text by default, `?format=pdf` for a printable version. An empty
// cart is a 400, not an empty file.
func DownloadShoppingCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	items, err := aggregateCart(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build shopping list")
		return
	}
	if len(items) == 0 {
		utils.RespondWithErrors(w, http.StatusBadRequest, "Shopping cart is empty")
		return
	}

	if r.URL.Query().Get("format") == "pdf" {
		data, err := renderShoppingListPDF(items)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render PDF")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="shopping_list.pdf"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(renderShoppingList(items)))
}

// aggregateCart joins the user's cart recipes to their junction rows and
// the ingredient catalog, then folds the rows into (name, unit) lines
// with a summed amount, sorted by name.
func aggregateCart(ctx context.Context, userID string) ([]shoppingItem, error) {
	recipeIDs, err := relationRecipeIDs(ctx, db.ShoppingCartCollection, userID)
	if err != nil {
		return nil, err
	}
	if len(recipeIDs) == 0 {
		return []shoppingItem{}, nil
	}

	pipeline := bson.A{
		bson.M{"$match": bson.M{"recipeid": bson.M{"$in": recipeIDs}}},
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

	rows := []models.IngredientAmount{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return mergeShoppingItems(rows), nil
}

func renderShoppingList(items []shoppingItem) string {
	var b strings.Builder
	b.WriteString("Shopping list\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%s) — %d\n", item.Name, item.MeasurementUnit, item.Total)
	}
	return b.String()
}

func renderShoppingListPDF(items []shoppingItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Shopping list")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	for _, item := range items {
		line := fmt.Sprintf("%s (%s) - %d", item.Name, item.MeasurementUnit, item.Total)
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// mergeShoppingItems folds raw ingredient rows into aggregated lines:
// one line per (name, unit) pair with amounts summed, sorted by name.
func mergeShoppingItems(rows []models.IngredientAmount) []shoppingItem {
	type key struct{ name, unit string }
	totals := map[key]int{}
	order := []key{}
	for _, row := range rows {
		k := key{row.Name, row.MeasurementUnit}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] += row.Amount
	}

	items := make([]shoppingItem, 0, len(order))
	for _, k := range order {
		items = append(items, shoppingItem{Name: k.name, MeasurementUnit: k.unit, Total: totals[k]})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}
