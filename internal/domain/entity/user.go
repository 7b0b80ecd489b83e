package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
)

// User represents an account holder. The ID comes from the corporate
// directory, so it is supplied by the caller rather than generated here.
type User struct {
	ID            string    // Directory identifier, unique across the system
	FirstName     string    // Given name, may be empty
	LastName      string    // Surname, may be empty
	Email         string    // Contact address, always present
	ProfilePicURL string    // Avatar location, may be empty
	PhoneNumber   string    // Contact number, may be empty
	CreatedAt     time.Time // When the user was first stored
	UpdatedAt     time.Time // When the user was last updated
}

// NewUser creates a user from submitted profile data
func NewUser(id, firstName, lastName, email, profilePicURL, phoneNumber string, timeProvider coreport.TimeProvider) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.ErrInvalidUserID
	}
	if strings.TrimSpace(email) == "" {
		return nil, errs.ErrInvalidEmail
	}

	now := timeProvider.Now()
	return &User{
		ID:            id,
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		ProfilePicURL: profilePicURL,
		PhoneNumber:   phoneNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// FullName returns the display form of the user's name, falling back to
// the email address when both name parts are empty
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
