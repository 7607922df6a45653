package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the user's tier. Transitions free -> premium only via
// a confirmed payment; never automatically downgraded.
type SubscriptionStatus string

const (
	SubscriptionFree    SubscriptionStatus = "free"
	SubscriptionPremium SubscriptionStatus = "premium"
)

// UserProfile holds the onboarding profile. ProfileCompleted on User is true
// iff FirstName, LastName and DateOfBirth are all non-empty.
type UserProfile struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	DateOfBirth    string   `json:"date_of_birth"` // YYYY-MM-DD
	ProfilePicture string   `json:"profile_picture,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Location       string   `json:"location,omitempty"`
	Interests      []string `json:"interests,omitempty"`
}

type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Don't return password hash in JSON

	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	ProfileCompleted   bool               `json:"profile_completed"`
	Profile            *UserProfile       `json:"profile,omitempty"`
}

// IsPremium reports whether the user is on the premium tier.
func (u *User) IsPremium() bool {
	return u.SubscriptionStatus == SubscriptionPremium
}
