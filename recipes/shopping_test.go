package recipes

import (
	"bytes"
	"strings"
	"testing"

	"foodgram/models"
)

func TestMergeShoppingItemsSumsAcrossRecipes(t *testing.T) {
	rows := []models.IngredientAmount{
		{Name: "flour", MeasurementUnit: "g", Amount: 100},
		{Name: "milk", MeasurementUnit: "ml", Amount: 300},
		{Name: "flour", MeasurementUnit: "g", Amount: 50},
	}

	items := mergeShoppingItems(rows)
	if len(items) != 2 {
		t.Fatalf("expected 2 merged lines, got %d", len(items))
	}
	if items[0].Name != "flour" || items[0].Total != 150 {
		t.Fatalf("expected flour 150 first, got %+v", items[0])
	}
	if items[1].Name != "milk" || items[1].Total != 300 {
		t.Fatalf("expected milk 300 second, got %+v", items[1])
	}
}

// The same ingredient name with a different unit stays a separate line.
func TestMergeShoppingItemsKeepsUnitsApart(t *testing.T) {
	rows := []models.IngredientAmount{
		{Name: "sugar", MeasurementUnit: "g", Amount: 20},
		{Name: "sugar", MeasurementUnit: "tbsp", Amount: 2},
	}

	items := mergeShoppingItems(rows)
	if len(items) != 2 {
		t.Fatalf("expected 2 lines for distinct units, got %d", len(items))
	}
}

func TestRenderShoppingListFormat(t *testing.T) {
	items := []shoppingItem{
		{Name: "flour", MeasurementUnit: "g", Total: 150},
		{Name: "milk", MeasurementUnit: "ml", Total: 300},
	}

	out := renderShoppingList(items)
	if !strings.Contains(out, "- flour (g) — 150\n") {
		t.Fatalf("missing flour line in:\n%s", out)
	}
	if !strings.Contains(out, "- milk (ml) — 300\n") {
		t.Fatalf("missing milk line in:\n%s", out)
	}
	if !strings.HasPrefix(out, "Shopping list\n") {
		t.Fatalf("missing header in:\n%s", out)
	}
}

func TestRenderShoppingListPDF(t *testing.T) {
	items := []shoppingItem{
		{Name: "flour", MeasurementUnit: "g", Total: 150},
	}

	data, err := renderShoppingListPDF(items)
	if err != nil {
		t.Fatalf("pdf render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
}
