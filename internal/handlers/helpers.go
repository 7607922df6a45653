package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
	"github.com/moodflow-ai/moodflow-backend/internal/services"
)

// Response is the JSON envelope every API endpoint uses.
type Response struct {
	Success         bool   `json:"success"`
	Message         string `json:"message,omitempty"`
	UpgradeRequired bool   `json:"upgrade_required,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// writeUpgradePrompt surfaces a tier denial as an upgrade prompt rather than a
// hard error.
func writeUpgradePrompt(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, Response{Success: false, Message: message, UpgradeRequired: true})
}

// extractBearerToken returns the token from an "Authorization: Bearer x" header.
func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireUser validates the session token and loads the authenticated user.
// Writes a 401 envelope and returns ok=false when not authenticated.
func requireUser(w http.ResponseWriter, r *http.Request) (*models.User, string, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return nil, "", false
	}

	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return nil, "", false
	}

	user, err := services.GetUserByID(userID)
	if err != nil {
		// Session points at a deleted row; treat as logged out
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return nil, "", false
	}
	return user, token, true
}
