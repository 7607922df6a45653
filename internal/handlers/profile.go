package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moodflow-ai/moodflow-backend/internal/config"
	"github.com/moodflow-ai/moodflow-backend/internal/models"
	"github.com/moodflow-ai/moodflow-backend/internal/services"
)

var cloudinaryService *services.CloudinaryService

func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

type ProfileResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

// GetProfile returns the authenticated user's account and profile.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Success: true, User: user})
}

// UpdateProfile validates and persists the onboarding profile. A successful
// write completes the profile, moving the account out of the setup flow.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return
	}

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := services.UpdateUserProfile(user.ID, &profile); err != nil {
		if errors.Is(err, services.ErrProfileValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save profile. Please try again.")
		return
	}

	updated, err := services.GetUserByID(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{
		Success: true,
		Message: "Profile saved",
		User:    updated,
	})
}

type UploadPictureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadProfilePicture stores the user's avatar on Cloudinary and saves the
// hosted URL on the profile.
func UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return
	}

	if cloudinaryService == nil {
		writeError(w, http.StatusInternalServerError, "File upload service not available")
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	url, err := cloudinaryService.UploadFile(r.Context(), file, "moodflow/avatars")
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to upload picture. Please try again.")
		return
	}

	if err := services.SetProfilePicture(user.ID, url); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save picture")
		return
	}

	writeJSON(w, http.StatusOK, UploadPictureResponse{
		Success: true,
		Message: "Picture uploaded",
		URL:     url,
	})
}
