package identity

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mandi/backend/internal/domain/shared"
)

// Password cost for bcrypt
const bcryptCost = 12

// MaxPartners caps the number of business partners stored per account.
const MaxPartners = 10

// User is a commission-agent account. Each account is its own tenant: the
// user's ID doubles as the tenant ID scoping every bill, merchant and
// transaction it owns.
type User struct {
	shared.BaseAggregateRoot
	CompanyName  string
	Email        string
	Mobile       string
	Address      string
	PasswordHash string
	Partners     []string
}

// NewUser creates a new account with a hashed password.
func NewUser(companyName, email, mobile, address, password string, partners []string) (*User, error) {
	if strings.TrimSpace(companyName) == "" {
		return nil, shared.NewValidationError("Company name cannot be empty")
	}
	if len(companyName) > 200 {
		return nil, shared.NewValidationError("Company name cannot exceed 200 characters")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(mobile) == "" {
		return nil, shared.NewValidationError("Mobile cannot be empty")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	cleaned, err := cleanPartners(partners)
	if err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyName:       strings.TrimSpace(companyName),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Mobile:            strings.TrimSpace(mobile),
		Address:           strings.TrimSpace(address),
		PasswordHash:      passwordHash,
		Partners:          cleaned,
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// UpdateProfile applies new contact fields; empty values keep the current
// ones.
func (u *User) UpdateProfile(companyName, mobile, address string) error {
	if companyName != "" {
		if len(companyName) > 200 {
			return shared.NewValidationError("Company name cannot exceed 200 characters")
		}
		u.CompanyName = strings.TrimSpace(companyName)
	}
	if mobile != "" {
		u.Mobile = strings.TrimSpace(mobile)
	}
	if address != "" {
		u.Address = strings.TrimSpace(address)
	}
	u.Touch()
	return nil
}

// SetPartners replaces the partner list.
func (u *User) SetPartners(partners []string) error {
	cleaned, err := cleanPartners(partners)
	if err != nil {
		return err
	}
	u.Partners = cleaned
	u.Touch()
	return nil
}

// ChangePassword changes the password after verifying the current one.
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = passwordHash
	u.Touch()
	return nil
}

func cleanPartners(partners []string) ([]string, error) {
	cleaned := make([]string, 0, len(partners))
	for _, p := range partners {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		cleaned = append(cleaned, p)
	}
	if len(cleaned) > MaxPartners {
		return nil, shared.NewValidationError("Cannot have more than 10 partners")
	}
	return cleaned, nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewValidationError("Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewValidationError("Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewValidationError("Password cannot exceed 128 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewValidationError("Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewValidationError("Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("Invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
