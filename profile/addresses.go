package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"sparkle/apperr"
	"sparkle/db"
	"sparkle/models"
	"sparkle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// The address book keeps one invariant: whenever it is non-empty, exactly
// one entry is the default. The transforms below are pure so the rule can
// be checked without a database.

func validateAddress(a *models.Address) error {
	if a.Name == "" || a.Street == "" || a.City == "" || a.State == "" {
		return apperr.New(apperr.Validation, "Missing required address field")
	}
	if !utils.ValidPincode(a.Pincode) {
		return apperr.New(apperr.Validation, "Invalid pincode")
	}
	if !utils.ValidPhone(a.Phone) {
		return apperr.New(apperr.Validation, "Invalid phone number")
	}
	return nil
}

// addAddress appends addr. The first address always becomes the default;
// a new default demotes the previous one.
func addAddress(list []models.Address, addr models.Address) []models.Address {
	if len(list) == 0 {
		addr.IsDefault = true
	} else if addr.IsDefault {
		for i := range list {
			list[i].IsDefault = false
		}
	}
	return append(list, addr)
}

// updateAddress replaces the entry with in.AddressID. Clearing the default
// flag on the current default is ignored; some address must stay default.
func updateAddress(list []models.Address, in models.Address) ([]models.Address, bool) {
	idx := -1
	for i := range list {
		if list[i].AddressID == in.AddressID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return list, false
	}

	if in.IsDefault {
		for i := range list {
			list[i].IsDefault = false
		}
	} else if list[idx].IsDefault {
		in.IsDefault = true
	}
	list[idx] = in
	return list, true
}

// removeAddress deletes by id, promoting the first remaining entry when
// the default was removed.
func removeAddress(list []models.Address, addressID string) ([]models.Address, bool) {
	idx := -1
	for i := range list {
		if list[i].AddressID == addressID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return list, false
	}

	wasDefault := list[idx].IsDefault
	list = append(list[:idx], list[idx+1:]...)
	if wasDefault && len(list) > 0 {
		list[0].IsDefault = true
	}
	return list, true
}

// setDefaultAddress makes addressID the sole default.
func setDefaultAddress(list []models.Address, addressID string) ([]models.Address, bool) {
	found := false
	for i := range list {
		list[i].IsDefault = list[i].AddressID == addressID
		if list[i].IsDefault {
			found = true
		}
	}
	return list, found
}

func loadAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return nil, err
	}
	return user.Addresses, nil
}

func saveAddresses(ctx context.Context, userID string, list []models.Address) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"addresses": list, "updatedat": time.Now()}})
	return err
}

// GetAddresses lists the caller's address book. GET /api/profile/addresses
func GetAddresses(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, err := loadAddresses(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch addresses")
		return
	}
	if list == nil {
		list = []models.Address{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// AddAddress appends a new address. POST /api/profile/addresses
func AddAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateAddress(&addr); err != nil {
		apperr.Respond(w, err)
		return
	}
	addr.AddressID = utils.GetUUID()

	userID := utils.GetUserIDFromRequest(r)
	list, err := loadAddresses(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch addresses")
		return
	}

	list = addAddress(list, addr)
	if err := saveAddresses(ctx, userID, list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save address")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, list)
}

// UpdateAddress edits an existing address. PUT /api/profile/addresses/:addressid
func UpdateAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	addr.AddressID = ps.ByName("addressid")
	if err := validateAddress(&addr); err != nil {
		apperr.Respond(w, err)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	list, err := loadAddresses(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch addresses")
		return
	}

	list, ok := updateAddress(list, addr)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}
	if err := saveAddresses(ctx, userID, list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save address")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// DeleteAddress removes an address. DELETE /api/profile/addresses/:addressid
func DeleteAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	list, err := loadAddresses(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch addresses")
		return
	}

	list, ok := removeAddress(list, ps.ByName("addressid"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}
	if err := saveAddresses(ctx, userID, list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save addresses")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// SetDefaultAddress marks one address as the default.
// PUT /api/profile/addresses/:addressid/default
func SetDefaultAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	list, err := loadAddresses(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch addresses")
		return
	}

	list, ok := setDefaultAddress(list, ps.ByName("addressid"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}
	if err := saveAddresses(ctx, userID, list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save addresses")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}
