package recipes

import (
	"context"
	"net/http"

	"foodgram/db"
	"foodgram/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// buildListFilter turns the list query parameters into a Mongo filter.
// Repeated tag slugs are OR-ed; favorite and cart filters resolve the
// requester's relation rows into a recipeid $in. Anonymous requesters
// have no relations, so both relation filters are ignored for them and
// the list stays unfiltered.
func buildListFilter(ctx context.Context, r *http.Request, requesterID string) (bson.M, error) {
	q := r.URL.Query()
	filter := bson.M{}

	if author := q.Get("author"); author != "" {
		filter["authorid"] = author
	}

	if slugs := q["tags"]; len(slugs) > 0 {
		tagIDs, err := tagIDsBySlug(ctx, slugs)
		if err != nil {
			return nil, err
		}
		filter["tags"] = bson.M{"$in": tagIDs}
	}

	if requesterID == "" {
		return filter, nil
	}

	if q.Get("is_favorited") == "1" {
		ids, err := relationRecipeIDs(ctx, db.FavoriteCollection, requesterID)
		if err != nil {
			return nil, err
		}
		filter["recipeid"] = bson.M{"$in": ids}
	}

	if q.Get("is_in_shopping_cart") == "1" {
		ids, err := relationRecipeIDs(ctx, db.ShoppingCartCollection, requesterID)
		if err != nil {
			return nil, err
		}
		if existing, ok := filter["recipeid"]; ok {
			filter["$and"] = bson.A{
				bson.M{"recipeid": existing},
				bson.M{"recipeid": bson.M{"$in": ids}},
			}
			delete(filter, "recipeid")
		} else {
			filter["recipeid"] = bson.M{"$in": ids}
		}
	}

	return filter, nil
}

func tagIDsBySlug(ctx context.Context, slugs []string) ([]string, error) {
	cursor, err := db.TagCollection.Find(ctx, bson.M{"slug": bson.M{"$in": slugs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tags []models.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.TagID)
	}
	return ids, nil
}

// relationRecipeIDs lists the recipe ids a user has in favorites or in
// the cart. An anonymous requester matches nothing.
func relationRecipeIDs(ctx context.Context, coll *mongo.Collection, userID string) ([]string, error) {
	if userID == "" {
		return []string{}, nil
	}
	cursor, err := coll.Find(ctx, bson.M{"userid": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.Relation
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.RecipeID)
	}
	return ids, nil
}

func inRelation(ctx context.Context, coll *mongo.Collection, userID, recipeID string) bool {
	if userID == "" {
		return false
	}
	count, err := coll.CountDocuments(ctx, bson.M{"userid": userID, "recipeid": recipeID})
	return err == nil && count > 0
}
