package profile

import (
	"testing"

	"sparkle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCount(list []models.Address) int {
	n := 0
	for _, a := range list {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func addr(id string, isDefault bool) models.Address {
	return models.Address{
		AddressID: id,
		Name:      "Asha Rao",
		Street:    "14 Market Road",
		City:      "Sivakasi",
		State:     "Tamil Nadu",
		Pincode:   "626123",
		Phone:     "+919876543210",
		IsDefault: isDefault,
	}
}

func TestAddAddressFirstBecomesDefault(t *testing.T) {
	list := addAddress(nil, addr("a1", false))
	require.Len(t, list, 1)
	assert.True(t, list[0].IsDefault)
}

func TestAddAddressNewDefaultDemotesOld(t *testing.T) {
	list := addAddress(nil, addr("a1", false))
	list = addAddress(list, addr("a2", true))

	assert.Equal(t, 1, defaultCount(list))
	assert.False(t, list[0].IsDefault)
	assert.True(t, list[1].IsDefault)
}

func TestAddAddressNonDefaultKeepsExisting(t *testing.T) {
	list := addAddress(nil, addr("a1", false))
	list = addAddress(list, addr("a2", false))

	assert.Equal(t, 1, defaultCount(list))
	assert.True(t, list[0].IsDefault)
}

func TestUpdateAddressCannotClearOnlyDefault(t *testing.T) {
	list := addAddress(nil, addr("a1", false))

	updated := addr("a1", false)
	updated.Street = "7 Temple Street"
	list, ok := updateAddress(list, updated)
	require.True(t, ok)

	assert.Equal(t, "7 Temple Street", list[0].Street)
	assert.True(t, list[0].IsDefault, "sole address must stay default")
}

func TestUpdateAddressPromoteDemotesOthers(t *testing.T) {
	list := addAddress(nil, addr("a1", false))
	list = addAddress(list, addr("a2", false))

	list, ok := updateAddress(list, addr("a2", true))
	require.True(t, ok)
	assert.Equal(t, 1, defaultCount(list))
	assert.True(t, list[1].IsDefault)
}

func TestUpdateAddressUnknownID(t *testing.T) {
	list := addAddress(nil, addr("a1", false))
	_, ok := updateAddress(list, addr("ghost", true))
	assert.False(t, ok)
}

func TestRemoveAddressPromotesNewDefault(t *testing.T) {
	list := addAddress(nil, addr("a1", false)) // default
	list = addAddress(list, addr("a2", false))
	list = addAddress(list, addr("a3", false))

	list, ok := removeAddress(list, "a1")
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, 1, defaultCount(list))
	assert.True(t, list[0].IsDefault)
}

func TestRemoveAddressNonDefaultKeepsDefault(t *testing.T) {
	list := addAddress(nil, addr("a1", false))
	list = addAddress(list, addr("a2", false))

	list, ok := removeAddress(list, "a2")
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsDefault)
}

func TestRemoveLastAddress(t *testing.T) {
	list := addAddress(nil, addr("a1", false))
	list, ok := removeAddress(list, "a1")
	require.True(t, ok)
	assert.Empty(t, list)
}

func TestSetDefaultAddress(t *testing.T) {
	list := addAddress(nil, addr("a1", false))
	list = addAddress(list, addr("a2", false))
	list = addAddress(list, addr("a3", false))

	list, ok := setDefaultAddress(list, "a3")
	require.True(t, ok)
	assert.Equal(t, 1, defaultCount(list))
	assert.True(t, list[2].IsDefault)

	_, ok = setDefaultAddress(list, "ghost")
	assert.False(t, ok)
}

func TestValidateAddress(t *testing.T) {
	good := addr("a1", false)
	assert.NoError(t, validateAddress(&good))

	badPin := addr("a1", false)
	badPin.Pincode = "012345"
	assert.Error(t, validateAddress(&badPin))

	badPhone := addr("a1", false)
	badPhone.Phone = "12"
	assert.Error(t, validateAddress(&badPhone))

	missing := addr("a1", false)
	missing.City = ""
	assert.Error(t, validateAddress(&missing))
}
