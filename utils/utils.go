package utils

import (
	rndm "math/rand"
	"net/http"
	"regexp"
	"strconv"

	"sparkle/globals"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var digitRunes = []rune("0123456789")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateRandomDigitString creates a random numeric string of length n.
func GenerateRandomDigitString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = digitRunes[rndm.Intn(len(digitRunes))]
	}
	return string(b)
}

func GetUUID() string {
	return uuid.New().String()
}

// --- Request Context Helpers ---

func GetUserIDFromRequest(r *http.Request) string {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

func GetRoleFromRequest(r *http.Request) string {
	role, ok := r.Context().Value(globals.RoleKey).(string)
	if !ok {
		return ""
	}
	return role
}

func IsAdminRequest(r *http.Request) bool {
	return GetRoleFromRequest(r) == "admin"
}

// --- Pagination ---

// ParsePagination reads ?page= and ?limit= with sane bounds.
func ParsePagination(r *http.Request, defaultLimit int) (page, limit, skip int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

// --- Field Validation ---

var pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)
var phoneRe = regexp.MustCompile(`^[+]?[1-9][\d\s\-()]{8,15}$`)
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidPincode(p string) bool { return pincodeRe.MatchString(p) }
func ValidPhone(p string) bool   { return phoneRe.MatchString(p) }
func ValidEmail(e string) bool   { return emailRe.MatchString(e) }
