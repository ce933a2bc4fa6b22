package cart

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
	"go.mongodb.org/mongo-driver/mongo"
)

func loadCart(ctx context.Context, userID string) ([]models.CartEntry, error) {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return user.Cart, nil
}

func saveCart(ctx context.Context, userID string, cart []models.CartEntry) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"cart": cart, "updatedat": time.Now()}})
	return err
}

// cartLine is a cart entry joined with live product data.
type cartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
}

// GetCart returns the cart populated with current product details.
// Entries whose product has been removed from the catalog are dropped.
// GET /api/cart
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	lines := []cartLine{}
	var subtotal float64
	for _, entry := range cart {
		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": entry.ProductID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch cart products")
			return
		}
		lines = append(lines, cartLine{
			ProductID: product.ProductID,
			Name:      product.Name,
			Image:     product.FirstImage(),
			Price:     product.Price,
			Stock:     product.Stock,
			Quantity:  entry.Quantity,
		})
		subtotal += product.Price * float64(entry.Quantity)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":    lines,
		"subtotal": subtotal,
	})
}

type addRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddToCart adds a product, merging quantities when it is already in the
// cart. The merged quantity may not exceed current stock. POST /api/cart
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "productId and a positive quantity are required")
		return
	}

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": req.ProductID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	cart, err := loadCart(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	merged := false
	for i := range cart {
		if cart[i].ProductID == req.ProductID {
			cart[i].Quantity += req.Quantity
			if cart[i].Quantity > product.Stock {
				utils.RespondWithError(w, http.StatusConflict,
					"Requested quantity exceeds available stock")
				return
			}
			merged = true
			break
		}
	}
	if !merged {
		if req.Quantity > product.Stock {
			utils.RespondWithError(w, http.StatusConflict, "Requested quantity exceeds available stock")
			return
		}
		cart = append(cart, models.CartEntry{ProductID: req.ProductID, Quantity: req.Quantity})
	}

	if err := saveCart(ctx, userID, cart); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Added to cart", "cart": cart})
}

type updateRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets a cart line's quantity; zero or below removes the
// line. PUT /api/cart/:productid
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	productID := ps.ByName("productid")
	userID := utils.GetUserIDFromRequest(r)
	cart, err := loadCart(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	updated := make([]models.CartEntry, 0, len(cart))
	found := false
	for _, entry := range cart {
		if entry.ProductID == productID {
			found = true
			if req.Quantity <= 0 {
				continue
			}
			var product models.Product
			if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err == nil && req.Quantity > product.Stock {
				utils.RespondWithError(w, http.StatusConflict, "Requested quantity exceeds available stock")
				return
			}
			entry.Quantity = req.Quantity
		}
		updated = append(updated, entry)
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Product not in cart")
		return
	}

	if err := saveCart(ctx, userID, updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Cart updated", "cart": updated})
}

// RemoveFromCart deletes one line. DELETE /api/cart/:productid
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	userID := utils.GetUserIDFromRequest(r)
	cart, err := loadCart(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	updated := make([]models.CartEntry, 0, len(cart))
	for _, entry := range cart {
		if entry.ProductID != productID {
			updated = append(updated, entry)
		}
	}
	if len(updated) == len(cart) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not in cart")
		return
	}

	if err := saveCart(ctx, userID, updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Removed from cart", "cart": updated})
}

// ClearCart empties the cart, typically after a successful checkout.
// DELETE /api/cart
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := saveCart(ctx, utils.GetUserIDFromRequest(r), []models.CartEntry{}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Cart cleared"})
}
