package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"sparkle/db"
	"sparkle/mailer"
	"sparkle/models"
	"sparkle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 15 * time.Minute

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ForgotPassword issues a single-use reset token and mails the reset link.
// Responds identically whether or not the email exists.
func ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	okResponse := utils.M{"message": "If that email is registered, a reset link has been sent"}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		utils.RespondWithJSON(w, http.StatusOK, okResponse)
		return
	}

	token := utils.GetUUID()
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{
			"resettokenhash":   hashToken(token),
			"resettokenexpiry": time.Now().Add(resetTokenTTL),
			"updatedat":        time.Now(),
		}},
	)
	if err != nil {
		log.Println("ForgotPassword UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error issuing reset token")
		return
	}

	if err := mailer.SendPasswordReset(user.Email, token); err != nil {
		log.Println("ForgotPassword mail error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send reset email")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, okResponse)
}

// ResetPassword consumes a reset token and sets a new password.
func ResetPassword(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token := ps.ByName("token")
	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if len(input.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{
		"resettokenhash":   hashToken(token),
		"resettokenexpiry": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		log.Println("ResetPassword hash error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error resetting password")
		return
	}

	// Consume the token along with the password change
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{
			"$set":   bson.M{"password": hashed, "updatedat": time.Now()},
			"$unset": bson.M{"resettokenhash": "", "resettokenexpiry": ""},
		},
	)
	if err != nil {
		log.Println("ResetPassword UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error resetting password")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Password has been reset"})
}
