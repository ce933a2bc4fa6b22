package collections

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"sparkle/db"
	"sparkle/models"
	"sparkle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// slugify derives a URL slug from a title when none is supplied.
func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// mergeProducts combines explicitly assigned products with tag-matched
// ones, assigned first, without duplicates.
func mergeProducts(assigned, tagged []models.Product) []models.Product {
	seen := make(map[string]bool, len(assigned))
	out := make([]models.Product, 0, len(assigned)+len(tagged))
	for _, p := range assigned {
		if !seen[p.ProductID] {
			seen[p.ProductID] = true
			out = append(out, p)
		}
	}
	for _, p := range tagged {
		if !seen[p.ProductID] {
			seen[p.ProductID] = true
			out = append(out, p)
		}
	}
	return out
}

// GetCollections lists active festival collections in display order.
// GET /api/collections
func GetCollections(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.CollectionsCollection.Find(ctx,
		bson.M{"isactive": true},
		options.Find().SetSort(bson.D{{Key: "sortorder", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch collections")
		return
	}
	defer cursor.Close(ctx)

	cols := []models.FestivalCollection{}
	if err := cursor.All(ctx, &cols); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode collections")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cols)
}

// GetCollectionBySlug returns one active collection with its product set:
// explicit assignments, plus every tag match when the collection opts in.
// GET /api/collections/:slug
func GetCollectionBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var col models.FestivalCollection
	err := db.CollectionsCollection.FindOne(ctx, bson.M{"slug": ps.ByName("slug"), "isactive": true}).Decode(&col)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Collection not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch collection")
		return
	}

	assigned := []models.Product{}
	if len(col.AssignedProducts) > 0 {
		cursor, err := db.ProductCollection.Find(ctx, bson.M{"productid": bson.M{"$in": col.AssignedProducts}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch collection products")
			return
		}
		if err := cursor.All(ctx, &assigned); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode collection products")
			return
		}
	}

	tagged := []models.Product{}
	if col.ShowAllTaggedProduct && len(col.Tags) > 0 {
		cursor, err := db.ProductCollection.Find(ctx, bson.M{"tags": bson.M{"$in": col.Tags}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tagged products")
			return
		}
		if err := cursor.All(ctx, &tagged); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode tagged products")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"collection": col,
		"products":   mergeProducts(assigned, tagged),
	})
}

func slugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	filter := bson.M{"slug": slug}
	if excludeID != "" {
		filter["collectionid"] = bson.M{"$ne": excludeID}
	}
	count, err := db.CollectionsCollection.CountDocuments(ctx, filter)
	return count > 0, err
}

// CreateCollection adds a festival collection. Admin only.
// POST /api/collections
func CreateCollection(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var col models.FestivalCollection
	if err := json.NewDecoder(r.Body).Decode(&col); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if col.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Collection title is required")
		return
	}
	if col.Slug == "" {
		col.Slug = slugify(col.Title)
	}
	if !slugRe.MatchString(col.Slug) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	taken, err := slugTaken(ctx, col.Slug, "")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check slug")
		return
	}
	if taken {
		utils.RespondWithError(w, http.StatusConflict, "A collection with this slug already exists")
		return
	}

	col.CollectionID = utils.GetUUID()
	if col.AssignedProducts == nil {
		col.AssignedProducts = []string{}
	}
	for i := range col.CustomPacks {
		if col.CustomPacks[i].PackID == "" {
			col.CustomPacks[i].PackID = utils.GetUUID()
			col.CustomPacks[i].CreatedAt = time.Now()
		}
	}
	col.CreatedAt = time.Now()
	col.UpdatedAt = col.CreatedAt

	if _, err := db.CollectionsCollection.InsertOne(ctx, col); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create collection")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, col)
}

// UpdateCollection replaces a collection's editable fields. Admin only.
// PUT /api/collections/:collectionid
func UpdateCollection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collectionID := ps.ByName("collectionid")

	var col models.FestivalCollection
	if err := json.NewDecoder(r.Body).Decode(&col); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if col.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Collection title is required")
		return
	}
	if col.Slug == "" {
		col.Slug = slugify(col.Title)
	}
	if !slugRe.MatchString(col.Slug) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	taken, err := slugTaken(ctx, col.Slug, collectionID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check slug")
		return
	}
	if taken {
		utils.RespondWithError(w, http.StatusConflict, "A collection with this slug already exists")
		return
	}

	var existing models.FestivalCollection
	err = db.CollectionsCollection.FindOne(ctx, bson.M{"collectionid": collectionID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Collection not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch collection")
		return
	}

	col.CollectionID = collectionID
	col.CreatedAt = existing.CreatedAt
	col.UpdatedAt = time.Now()
	if col.AssignedProducts == nil {
		col.AssignedProducts = []string{}
	}
	for i := range col.CustomPacks {
		if col.CustomPacks[i].PackID == "" {
			col.CustomPacks[i].PackID = utils.GetUUID()
			col.CustomPacks[i].CreatedAt = time.Now()
		}
	}

	if _, err := db.CollectionsCollection.ReplaceOne(ctx, bson.M{"collectionid": collectionID}, col); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update collection")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, col)
}

// DeleteCollection removes a collection. Products are untouched.
// Admin only. DELETE /api/collections/:collectionid
func DeleteCollection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.CollectionsCollection.DeleteOne(ctx, bson.M{"collectionid": ps.ByName("collectionid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete collection")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Collection not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Collection deleted"})
}
