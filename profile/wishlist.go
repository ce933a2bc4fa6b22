package profile

import (
	"context"
	"net/http"
	"time"

	"sparkle/db"
	"sparkle/models"
	"sparkle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetWishlist returns the caller's wishlist populated with product data.
// Removed products are dropped silently. GET /api/profile/wishlist
func GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": utils.GetUserIDFromRequest(r)}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	products := []models.Product{}
	if len(user.Wishlist) > 0 {
		cursor, err := db.ProductCollection.Find(ctx, bson.M{"productid": bson.M{"$in": user.Wishlist}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch wishlist products")
			return
		}
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &products); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode wishlist products")
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, products)
}

// AddToWishlist adds a product id, idempotently.
// POST /api/profile/wishlist/:productid
func AddToWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	count, err := db.ProductCollection.CountDocuments(ctx, bson.M{"productid": productID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check product")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": utils.GetUserIDFromRequest(r)},
		bson.M{"$addToSet": bson.M{"wishlist": productID}, "$set": bson.M{"updatedat": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Added to wishlist"})
}

// RemoveFromWishlist removes a product id, idempotently.
// DELETE /api/profile/wishlist/:productid
func RemoveFromWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": utils.GetUserIDFromRequest(r)},
		bson.M{"$pull": bson.M{"wishlist": ps.ByName("productid")}, "$set": bson.M{"updatedat": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Removed from wishlist"})
}
