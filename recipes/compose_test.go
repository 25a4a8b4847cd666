package recipes

import (
	"strings"
	"testing"

	"foodgram/models"
)

var testCatalog = map[string]string{
	"i-flour": "flour",
	"i-milk":  "milk",
	"i-eggs":  "eggs",
}

var testTags = map[string]bool{
	"t-breakfast": true,
	"t-dinner":    true,
}

func lookupName(id string) (string, bool) {
	name, ok := testCatalog[id]
	return name, ok
}

func lookupTag(id string) bool {
	return testTags[id]
}

func rows(pairs ...models.RecipeIngredient) *[]models.RecipeIngredient {
	s := append([]models.RecipeIngredient{}, pairs...)
	return &s
}

func validInput() *recipeInput {
	return &recipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Image:       "iVBORw0KGgo=",
		Tags:        []string{"t-breakfast"},
		Ingredients: rows(
			models.RecipeIngredient{IngredientID: "i-flour", Amount: 200},
			models.RecipeIngredient{IngredientID: "i-milk", Amount: 300},
		),
	}
}

func TestValidateRecipeAccepts(t *testing.T) {
	if err := validateRecipe(validInput(), false, lookupName, lookupTag); err != nil {
		t.Fatalf("expected valid input to pass, got %v", err)
	}
}

func TestValidateRecipeRequiresImage(t *testing.T) {
	in := validInput()
	in.Image = "   "
	err := validateRecipe(in, false, lookupName, lookupTag)
	if err == nil || err.field != "image" {
		t.Fatalf("expected image error, got %v", err)
	}
}

func TestValidateRecipeRequiresIngredients(t *testing.T) {
	in := validInput()
	in.Ingredients = nil
	err := validateRecipe(in, false, lookupName, lookupTag)
	if err == nil || err.field != "ingredients" {
		t.Fatalf("expected ingredients error for omitted list, got %v", err)
	}

	in = validInput()
	in.Ingredients = rows()
	err = validateRecipe(in, false, lookupName, lookupTag)
	if err == nil || err.field != "ingredients" {
		t.Fatalf("expected ingredients error for empty list, got %v", err)
	}
}

func TestValidateRecipeDuplicateIngredientNamesIt(t *testing.T) {
	in := validInput()
	in.Ingredients = rows(
		models.RecipeIngredient{IngredientID: "i-flour", Amount: 100},
		models.RecipeIngredient{IngredientID: "i-flour", Amount: 50},
	)
	err := validateRecipe(in, false, lookupName, lookupTag)
	if err == nil || err.field != "ingredients" {
		t.Fatalf("expected duplicate-ingredient error, got %v", err)
	}
	if !strings.Contains(err.msg, "flour") {
		t.Fatalf("duplicate error should name the ingredient, got %q", err.msg)
	}
}

func TestValidateRecipeUnknownIngredient(t *testing.T) {
	in := validInput()
	in.Ingredients = rows(models.RecipeIngredient{IngredientID: "i-unicorn", Amount: 1})
	err := validateRecipe(in, false, lookupName, lookupTag)
	if err == nil || err.field != "ingredients" {
		t.Fatalf("expected unknown-ingredient error, got %v", err)
	}
}

func TestValidateRecipeDuplicateTag(t *testing.T) {
	in := validInput()
	in.Tags = []string{"t-breakfast", "t-breakfast"}
	err := validateRecipe(in, false, lookupName, lookupTag)
	if err == nil || err.field != "tags" {
		t.Fatalf("expected duplicate-tag error, got %v", err)
	}
}

func TestValidateRecipeUnknownTag(t *testing.T) {
	in := validInput()
	in.Tags = []string{"t-midnight-snack"}
	err := validateRecipe(in, false, lookupName, lookupTag)
	if err == nil || err.field != "tags" {
		t.Fatalf("expected unknown-tag error, got %v", err)
	}
}

func TestValidateRecipeCookingTime(t *testing.T) {
	in := validInput()
	in.CookingTime = 0
	err := validateRecipe(in, false, lookupName, lookupTag)
	if err == nil || err.field != "cooking_time" {
		t.Fatalf("expected cooking_time error, got %v", err)
	}
}

func TestValidateRecipeAmountNamesIngredient(t *testing.T) {
	in := validInput()
	in.Ingredients = rows(
		models.RecipeIngredient{IngredientID: "i-flour", Amount: 100},
		models.RecipeIngredient{IngredientID: "i-milk", Amount: 0},
	)
	err := validateRecipe(in, false, lookupName, lookupTag)
	if err == nil || err.field != "amount" {
		t.Fatalf("expected amount error, got %v", err)
	}
	if !strings.Contains(err.msg, "milk") {
		t.Fatalf("amount error should name the ingredient, got %q", err.msg)
	}
}

// On update, an omitted ingredient list means "leave as is" while an
// explicit empty list stays rejected.
func TestValidateRecipeUpdateIngredientAsymmetry(t *testing.T) {
	in := &recipeInput{Name: "Renamed"}
	if err := validateRecipe(in, true, lookupName, lookupTag); err != nil {
		t.Fatalf("update without ingredients should pass, got %v", err)
	}

	in = &recipeInput{Name: "Renamed", Ingredients: rows()}
	err := validateRecipe(in, true, lookupName, lookupTag)
	if err == nil || err.field != "ingredients" {
		t.Fatalf("update with empty list should fail, got %v", err)
	}
}

func TestValidateRecipeUpdateSkipsImage(t *testing.T) {
	in := &recipeInput{CookingTime: 5}
	if err := validateRecipe(in, true, lookupName, lookupTag); err != nil {
		t.Fatalf("update without image should pass, got %v", err)
	}
}

// Image is checked before ingredients so a request missing both reports
// the image first.
func TestValidateRecipeErrorOrder(t *testing.T) {
	in := &recipeInput{Name: "Bare"}
	err := validateRecipe(in, false, lookupName, lookupTag)
	if err == nil || err.field != "image" {
		t.Fatalf("expected image error first, got %v", err)
	}
}
