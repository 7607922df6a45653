package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/moodflow-ai/moodflow-backend/internal/database"
	"github.com/moodflow-ai/moodflow-backend/internal/models"
	"github.com/moodflow-ai/moodflow-backend/pkg/crypto"
)

var (
	// ErrAccountExists is returned when signing up with an already registered email.
	ErrAccountExists = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned on email/password mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a user id has no row (stale session).
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileValidation is returned when required profile fields are missing.
	ErrProfileValidation = errors.New("profile validation failed")
)

const dateOfBirthFormat = "2006-01-02"

// CreateUser registers a new account with tier defaults (free, profile incomplete).
func CreateUser(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// Check if user already exists
	var existingEmail string
	err := database.PostgresDB.QueryRow("SELECT email FROM users WHERE LOWER(email) = $1", email).Scan(&existingEmail)
	if err == nil {
		return nil, ErrAccountExists
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	userID := uuid.New()
	now := time.Now()

	_, err = database.PostgresDB.Exec(`
		INSERT INTO users (id, created_at, updated_at, email, password_hash, subscription_status, profile_completed)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
	`, userID, now, now, email, hashedPassword, models.SubscriptionFree)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:                 userID,
		CreatedAt:          now,
		UpdatedAt:          now,
		Email:              email,
		SubscriptionStatus: models.SubscriptionFree,
		ProfileCompleted:   false,
	}, nil
}

// AuthenticateUser verifies email + password and returns the user.
func AuthenticateUser(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := getUserBy("LOWER(email) = $1", email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID loads a user row by id.
func GetUserByID(id uuid.UUID) (*models.User, error) {
	return getUserBy("id = $1", id)
}

func getUserBy(where string, arg interface{}) (*models.User, error) {
	var (
		user        models.User
		status      string
		firstName   sql.NullString
		lastName    sql.NullString
		dateOfBirth sql.NullTime
		picture     sql.NullString
		bio         sql.NullString
		location    sql.NullString
		interests   pq.StringArray
	)

	err := database.PostgresDB.QueryRow(`
		SELECT id, created_at, updated_at, email, password_hash, subscription_status, profile_completed,
		       first_name, last_name, date_of_birth, profile_picture, bio, location, interests
		FROM users WHERE `+where,
		arg,
	).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Email, &user.PasswordHash, &status, &user.ProfileCompleted,
		&firstName, &lastName, &dateOfBirth, &picture, &bio, &location, &interests,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.SubscriptionStatus = models.SubscriptionStatus(status)
	if firstName.Valid || lastName.Valid || dateOfBirth.Valid {
		profile := &models.UserProfile{
			FirstName:      firstName.String,
			LastName:       lastName.String,
			ProfilePicture: picture.String,
			Bio:            bio.String,
			Location:       location.String,
			Interests:      []string(interests),
		}
		if dateOfBirth.Valid {
			profile.DateOfBirth = dateOfBirth.Time.Format(dateOfBirthFormat)
		}
		user.Profile = profile
	}
	return &user, nil
}

// ValidateProfile checks the locally required fields before any persistence.
func ValidateProfile(profile *models.UserProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is required", ErrProfileValidation)
	}
	if strings.TrimSpace(profile.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrProfileValidation)
	}
	if strings.TrimSpace(profile.LastName) == "" {
		return fmt.Errorf("%w: last name is required", ErrProfileValidation)
	}
	if strings.TrimSpace(profile.DateOfBirth) == "" {
		return fmt.Errorf("%w: date of birth is required", ErrProfileValidation)
	}
	if _, err := time.Parse(dateOfBirthFormat, profile.DateOfBirth); err != nil {
		return fmt.Errorf("%w: date of birth must be YYYY-MM-DD", ErrProfileValidation)
	}
	return nil
}

// UpdateUserProfile persists the profile and marks the account complete.
// Validation failures never reach the database.
func UpdateUserProfile(userID uuid.UUID, profile *models.UserProfile) error {
	if err := ValidateProfile(profile); err != nil {
		return err
	}

	dob, _ := time.Parse(dateOfBirthFormat, profile.DateOfBirth)
	_, err := database.PostgresDB.Exec(`
		UPDATE users
		SET first_name = $1, last_name = $2, date_of_birth = $3, bio = $4, location = $5,
		    interests = $6, profile_completed = TRUE, updated_at = NOW()
		WHERE id = $7
	`, strings.TrimSpace(profile.FirstName), strings.TrimSpace(profile.LastName), dob,
		profile.Bio, profile.Location, pq.Array(profile.Interests), userID)
	return err
}

// SetProfilePicture stores the hosted picture URL on the user row.
func SetProfilePicture(userID uuid.UUID, url string) error {
	_, err := database.PostgresDB.Exec(`
		UPDATE users SET profile_picture = $1, updated_at = NOW() WHERE id = $2
	`, url, userID)
	return err
}

// UpgradeToPremium flips the subscription tier. Must only be called after a
// confirmed payment, otherwise the tier and the real entitlement diverge.
func UpgradeToPremium(userID uuid.UUID) error {
	_, err := database.PostgresDB.Exec(`
		UPDATE users SET subscription_status = $1, updated_at = NOW() WHERE id = $2
	`, models.SubscriptionPremium, userID)
	return err
}

// RecordPayment stores a confirmed transaction.
func RecordPayment(userID uuid.UUID, phoneNumber string, amount int, transactionID string) error {
	_, err := database.PostgresDB.Exec(`
		INSERT INTO payments (id, created_at, user_id, phone_number, amount, currency, transaction_id)
		VALUES ($1, NOW(), $2, $3, $4, 'KES', $5)
	`, uuid.New(), userID, phoneNumber, amount, transactionID)
	return err
}
