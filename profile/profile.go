package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"sparkle/db"
	"sparkle/models"
	"sparkle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile returns the caller's account without credentials.
// GET /api/profile
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": utils.GetUserIDFromRequest(r)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// UpdateProfile edits name, phone, email, and password. A changed email
// must stay unique; a changed password is re-hashed. Role is not editable
// here. PUT /api/profile
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := utils.GetUserIDFromRequest(r)

	update := bson.M{"updatedat": time.Now()}
	if req.FirstName != nil {
		if *req.FirstName == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "First name cannot be empty")
			return
		}
		update["firstname"] = *req.FirstName
	}
	if req.LastName != nil {
		update["lastname"] = *req.LastName
	}
	if req.Phone != nil {
		if *req.Phone != "" && !utils.ValidPhone(*req.Phone) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid phone number")
			return
		}
		update["phone"] = *req.Phone
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !utils.ValidEmail(email) {
			utils.RespondWithError(w, http.StatusBadRequest, "Please provide a valid email")
			return
		}
		taken, err := db.UserCollection.CountDocuments(ctx,
			bson.M{"email": email, "userid": bson.M{"$ne": userID}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check email")
			return
		}
		if taken > 0 {
			utils.RespondWithError(w, http.StatusConflict, "Email is already in use")
			return
		}
		update["email"] = email
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update password")
			return
		}
		update["password"] = string(hashed)
	}
	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
