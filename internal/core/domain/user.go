package domain

import (
	"errors"
	"regexp"
	"time"
)

// Role is the privilege level of an account. Roles form a strict order:
// guest < admin < owner.
type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// roleRank assigns each role its position in the privilege order.
// Unknown roles rank below guest.
var roleRank = map[Role]int{
	RoleGuest: 1,
	RoleAdmin: 2,
	RoleOwner: 3,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries at least the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrOwnerExists = errors.New("owner account already exists")
var ErrNotAdminAccount = errors.New("account is not an admin")

// emailPattern mirrors the format check enforced at registration:
// word characters with optional dot/dash separators, 2-3 letter TLD.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidEmail reports whether email has an acceptable format.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// MinPasswordLength is the minimum accepted password length for any account.
const MinPasswordLength = 6

// User models an account in the portal.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	LastLogin    time.Time `json:"lastLogin"`
}
