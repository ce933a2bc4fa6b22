package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"sparkle/db"
	"sparkle/models"
	"sparkle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetCategories lists all categories alphabetically. GET /api/categories
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.CategoryCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	defer cursor.Close(ctx)

	cats := []models.Category{}
	if err := cursor.All(ctx, &cats); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode categories")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cats)
}

// GetCategory returns one category. GET /api/categories/:categoryid
func GetCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var cat models.Category
	err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryid": ps.ByName("categoryid")}).Decode(&cat)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cat)
}

func nameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: "^" + name + "$", Options: "i"}}
	if excludeID != "" {
		filter["categoryid"] = bson.M{"$ne": excludeID}
	}
	count, err := db.CategoryCollection.CountDocuments(ctx, filter)
	return count > 0, err
}

// CreateCategory adds a category with a unique name. Admin only.
// POST /api/categories
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var cat models.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if cat.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	taken, err := nameTaken(ctx, cat.Name, "")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check category name")
		return
	}
	if taken {
		utils.RespondWithError(w, http.StatusConflict, "A category with this name already exists")
		return
	}

	cat.CategoryID = utils.GetUUID()
	cat.CreatedAt = time.Now()
	cat.UpdatedAt = cat.CreatedAt

	if _, err := db.CategoryCollection.InsertOne(ctx, cat); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, cat)
}

// UpdateCategory edits a category. Admin only. PUT /api/categories/:categoryid
func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categoryID := ps.ByName("categoryid")

	var in models.Category
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	taken, err := nameTaken(ctx, in.Name, categoryID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check category name")
		return
	}
	if taken {
		utils.RespondWithError(w, http.StatusConflict, "A category with this name already exists")
		return
	}

	update := bson.M{
		"name":        in.Name,
		"description": in.Description,
		"heroimage":   in.HeroImage,
		"icon":        in.Icon,
		"updatedat":   time.Now(),
	}
	res := db.CategoryCollection.FindOneAndUpdate(ctx,
		bson.M{"categoryid": categoryID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var cat models.Category
	if err := res.Decode(&cat); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Category not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cat)
}

// DeleteCategory removes a category, refusing while products still
// reference it. Admin only. DELETE /api/categories/:categoryid
func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categoryID := ps.ByName("categoryid")

	inUse, err := db.ProductCollection.CountDocuments(ctx, bson.M{"categoryid": categoryID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check category usage")
		return
	}
	if inUse > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Category still has products assigned")
		return
	}

	res, err := db.CategoryCollection.DeleteOne(ctx, bson.M{"categoryid": categoryID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Category deleted"})
}
