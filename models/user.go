package models

import "time"

// Address is embedded on the user. At most one address per user carries
// isDefault=true, and if any address exists exactly one must be default.
type Address struct {
	AddressID string `json:"addressId" bson:"addressid"`
	Label     string `json:"label" bson:"label"`
	Name      string `json:"name" bson:"name"`
	Street    string `json:"street" bson:"street"`
	City      string `json:"city" bson:"city"`
	State     string `json:"state" bson:"state"`
	Pincode   string `json:"pincode" bson:"pincode"`
	Phone     string `json:"phone" bson:"phone"`
	IsDefault bool   `json:"isDefault" bson:"isdefault"`
}

// CartEntry is one (product, quantity) pair in the user's cart. One entry
// per product; quantity is always >= 1.
type CartEntry struct {
	ProductID string `json:"productId" bson:"productid"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

type User struct {
	UserID    string      `json:"userId" bson:"userid"`
	FirstName string      `json:"firstName" bson:"firstname"`
	LastName  string      `json:"lastName" bson:"lastname"`
	Email     string      `json:"email" bson:"email"`
	Phone     string      `json:"phone" bson:"phone"`
	Password  string      `json:"-" bson:"password"`
	Role      string      `json:"role" bson:"role"` // "user" or "admin"
	IsActive  bool        `json:"isActive" bson:"isactive"`
	Addresses []Address   `json:"addresses" bson:"addresses"`
	Cart      []CartEntry `json:"cart" bson:"cart"`
	Wishlist  []string    `json:"wishlist" bson:"wishlist"`

	// Password reset, single-use and time-boxed. Only the hash is stored.
	ResetTokenHash   string    `json:"-" bson:"resettokenhash,omitempty"`
	ResetTokenExpiry time.Time `json:"-" bson:"resettokenexpiry,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdat"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedat"`
}

// UserSummary is the user shape returned to clients; credentials and reset
// fields never leave the server.
type UserSummary struct {
	UserID    string    `json:"userId" bson:"userid"`
	FirstName string    `json:"firstName" bson:"firstname"`
	LastName  string    `json:"lastName" bson:"lastname"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Role      string    `json:"role" bson:"role"`
	IsActive  bool      `json:"isActive" bson:"isactive"`
	Addresses []Address `json:"addresses" bson:"addresses"`
	CreatedAt time.Time `json:"createdAt" bson:"createdat"`
}

func (u *User) Summary() UserSummary {
	addrs := u.Addresses
	if addrs == nil {
		addrs = []Address{}
	}
	return UserSummary{
		UserID:    u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		Addresses: addrs,
		CreatedAt: u.CreatedAt,
	}
}
