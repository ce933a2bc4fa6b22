package profile

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

// GetUsers lists accounts for the admin dashboard with optional ?search=
// over name and email. GET /api/users
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if search := r.URL.Query().Get("search"); search != "" {
		safe := regexp.QuoteMeta(search)
		filter["$or"] = []bson.M{
			{"firstname": primitive.Regex{Pattern: safe, Options: "i"}},
			{"lastname": primitive.Regex{Pattern: safe, Options: "i"}},
			{"email": primitive.Regex{Pattern: safe, Options: "i"}},
		}
	}

	page, limit, skip := utils.ParsePagination(r, 20)

	total, err := db.UserCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdat", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := db.UserCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode users")
		return
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"users":       summaries,
		"currentPage": page,
		"totalPages":  totalPages,
		"totalUsers":  total,
	})
}

// GetUser returns one account in full. Admin only. GET /api/users/:userid
func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": ps.ByName("userid")}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

type adminUserUpdate struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// UpdateUser changes role or active flag. Admins cannot demote or
// deactivate themselves. PUT /api/users/:userid
func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	targetID := ps.ByName("userid")
	if targetID == utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot modify your own account here")
		return
	}

	var req adminUserUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := bson.M{"updatedat": time.Now()}
	if req.Role != nil {
		if *req.Role != "user" && *req.Role != "admin" {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid role: "+*req.Role)
			return
		}
		update["role"] = *req.Role
	}
	if req.IsActive != nil {
		update["isactive"] = *req.IsActive
	}

	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": targetID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User updated"})
}

// DeleteUser removes a customer account. Admin accounts cannot be deleted;
// demote them first. DELETE /api/users/:userid
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	targetID := ps.ByName("userid")

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": targetID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	if user.Role == "admin" {
		utils.RespondWithError(w, http.StatusForbidden, "Admin accounts cannot be deleted")
		return
	}

	if _, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": targetID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User deleted"})
}
