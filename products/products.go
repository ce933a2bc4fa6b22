package products

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
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

// buildListFilter translates catalog query params into a Mongo filter.
func buildListFilter(r *http.Request) bson.M {
	filter := bson.M{}
	q := r.URL.Query()

	if categoryID := q.Get("categoryId"); categoryID != "" {
		filter["categoryid"] = categoryID
	}
	if tag := q.Get("tag"); tag != "" {
		filter["tags"] = tag
	}
	switch q.Get("flag") {
	case "new":
		filter["isnewarrival"] = true
	case "bestseller":
		filter["isbestseller"] = true
	case "sale":
		filter["isonsale"] = true
	}
	if search := q.Get("search"); search != "" {
		safe := regexp.QuoteMeta(search)
		filter["$or"] = []bson.M{
			{"name": primitive.Regex{Pattern: safe, Options: "i"}},
			{"description": primitive.Regex{Pattern: safe, Options: "i"}},
			{"tags": primitive.Regex{Pattern: safe, Options: "i"}},
		}
	}
	return filter
}

func sortSpec(key string) bson.D {
	switch key {
	case "price_asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price_desc":
		return bson.D{{Key: "price", Value: -1}}
	case "rating":
		return bson.D{{Key: "rating", Value: -1}}
	case "newest":
		return bson.D{{Key: "createdat", Value: -1}}
	default:
		return bson.D{{Key: "createdat", Value: -1}}
	}
}

// GetProducts lists the catalog with filtering, search, sorting and
// pagination. GET /api/products
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := buildListFilter(r)
	page, limit, skip := utils.ParsePagination(r, 24)

	total, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count products")
		return
	}

	opts := options.Find().
		SetSort(sortSpec(r.URL.Query().Get("sort"))).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := db.ProductCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode products")
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"products":      products,
		"currentPage":   page,
		"totalPages":    totalPages,
		"totalProducts": total,
	})
}

// GetProduct returns one product. GET /api/products/:productid
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetProductsByCategory lists a category's products without pagination,
// for category landing pages. GET /api/categories/:categoryid/products
func GetProductsByCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ProductCollection.Find(ctx,
		bson.M{"categoryid": ps.ByName("categoryid")},
		options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode products")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, products)
}

func validateProduct(p *models.Product) string {
	if p.Name == "" {
		return "Product name is required"
	}
	if p.CategoryID == "" {
		return "Category is required"
	}
	if p.Price <= 0 {
		return "Price must be positive"
	}
	if p.MRP > 0 && p.Price > p.MRP {
		return "Price cannot exceed MRP"
	}
	if p.Stock < 0 {
		return "Stock cannot be negative"
	}
	return ""
}

// CreateProduct adds a catalog item. Admin only. POST /api/products
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateProduct(&product); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	count, err := db.CategoryCollection.CountDocuments(ctx, bson.M{"categoryid": product.CategoryID})
	if err != nil || count == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown category: "+product.CategoryID)
		return
	}

	product.ProductID = utils.GetUUID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct applies a partial update. Fields absent from the body are
// left untouched. Admin only. PUT /api/products/:productid
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var patch models.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	patch.Apply(&product)
	if msg := validateProduct(&product); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	if patch.CategoryID != nil {
		count, err := db.CategoryCollection.CountDocuments(ctx, bson.M{"categoryid": product.CategoryID})
		if err != nil || count == 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown category: "+product.CategoryID)
			return
		}
	}

	if _, err := db.ProductCollection.ReplaceOne(ctx, bson.M{"productid": product.ProductID}, product); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a catalog item. Existing orders keep their
// snapshots. Admin only. DELETE /api/products/:productid
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": ps.ByName("productid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product deleted"})
}
