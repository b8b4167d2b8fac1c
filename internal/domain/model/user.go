package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is an account holder: either a loan applicant or an administrator.
// Supporting record, not an aggregate; the loan lifecycle only references
// its ID.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Phone        string
	Occupation   string
	AnnualIncome decimal.Decimal
	DateOfBirth  string
	Address      string
	Company      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	return s == RoleCustomer || s == RoleAdmin
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(plain string) error {
	if plain == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
