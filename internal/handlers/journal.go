package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
	"github.com/moodflow-ai/moodflow-backend/internal/services"
)

// analysisService is the configured Analyzer (Gemini or mock). Set from main.
var analysisService services.Analyzer

func InitAnalysisService(a services.Analyzer) {
	analysisService = a
}

const entryLimitMessage = "You have reached the 5-entry limit for the free tier. Please upgrade to premium for unlimited entries."
const analysisFailedMessage = "Failed to get AI analysis. Please try again later."

type CreateEntryRequest struct {
	Mood models.Mood `json:"mood"`
	Text string      `json:"text"`
}

// UpdateEntryRequest carries a partial update; omitted fields keep their
// stored values.
type UpdateEntryRequest struct {
	Mood *models.Mood `json:"mood,omitempty"`
	Text *string      `json:"text,omitempty"`
}

type EntryResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Entry   *models.JournalEntry `json:"entry,omitempty"`
}

type ListEntriesResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Entries []models.JournalEntry `json:"entries"`
	Total   int                   `json:"total"`
}

func journalCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}

// ListEntries returns the user's entries, newest first.
func ListEntries(w http.ResponseWriter, r *http.Request) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := journalCtx(r)
	defer cancel()

	entries, err := services.ListEntries(ctx, user.ID.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}

	writeJSON(w, http.StatusOK, ListEntriesResponse{
		Success: true,
		Entries: entries,
		Total:   len(entries),
	})
}

// CreateEntry analyzes the text and inserts a new entry. The analysis runs
// first: if it fails, nothing is saved. The free-tier cap is enforced before
// the insert.
func CreateEntry(w http.ResponseWriter, r *http.Request) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Mood.Valid() {
		writeError(w, http.StatusBadRequest, "Mood must be one of Awesome, Good, Okay, Bad, Terrible")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Entry text is required")
		return
	}

	ctx, cancel := journalCtx(r)
	defer cancel()

	// Cheap pre-check so a capped user doesn't pay for an analysis call
	// that can never be saved. CreateEntry re-checks before the insert.
	count, err := services.CountEntries(ctx, user.ID.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create entry")
		return
	}
	if !services.CanPerform(services.ActionCreateEntry, user, count) {
		writeUpgradePrompt(w, entryLimitMessage)
		return
	}

	analysis, err := analysisService.AnalyzeEntry(ctx, req.Text)
	if err != nil {
		log.Printf("[CreateEntry] analysis failed for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, analysisFailedMessage)
		return
	}

	entry, err := services.CreateEntry(ctx, user, req.Mood, req.Text, analysis)
	if err != nil {
		if errors.Is(err, services.ErrEntryLimit) {
			writeUpgradePrompt(w, entryLimitMessage)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create entry")
		return
	}

	services.InvalidateUserInsights(user.ID.String())
	services.PublishJournalEvent(ctx, services.JournalEvent{
		Type:    services.EventEntryCreated,
		UserID:  user.ID.String(),
		EntryID: entry.ID.Hex(),
		Mood:    entry.Mood,
	})

	writeJSON(w, http.StatusCreated, EntryResponse{
		Success: true,
		Message: "Entry created successfully",
		Entry:   entry,
	})
}

// UpdateEntry merges the partial update into the stored entry. The stored
// analysis is reused when the text is unchanged and replaced otherwise; an
// analysis failure aborts the update.
func UpdateEntry(w http.ResponseWriter, r *http.Request) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := journalCtx(r)
	defer cancel()

	existing, err := services.GetEntry(ctx, user.ID.String(), id)
	if err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			// Normal flow only offers actions on known entries
			log.Printf("[UpdateEntry] entry %s not found for user %s", id.Hex(), user.ID)
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load entry")
		return
	}

	mood := existing.Mood
	if req.Mood != nil {
		if !req.Mood.Valid() {
			writeError(w, http.StatusBadRequest, "Mood must be one of Awesome, Good, Okay, Bad, Terrible")
			return
		}
		mood = *req.Mood
	}
	text := existing.Text
	if req.Text != nil {
		if *req.Text == "" {
			writeError(w, http.StatusBadRequest, "Entry text is required")
			return
		}
		text = *req.Text
	}

	analysis, err := services.ResolveAnalysis(ctx, analysisService, existing, text)
	if err != nil {
		log.Printf("[UpdateEntry] analysis failed for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, analysisFailedMessage)
		return
	}

	entry, err := services.UpdateEntry(ctx, user.ID.String(), id, mood, text, analysis)
	if err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update entry")
		return
	}

	services.InvalidateUserInsights(user.ID.String())
	services.PublishJournalEvent(ctx, services.JournalEvent{
		Type:    services.EventEntryUpdated,
		UserID:  user.ID.String(),
		EntryID: entry.ID.Hex(),
		Mood:    entry.Mood,
	})

	writeJSON(w, http.StatusOK, EntryResponse{
		Success: true,
		Message: "Entry updated successfully",
		Entry:   entry,
	})
}

// DeleteEntry removes an entry wholesale.
func DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	ctx, cancel := journalCtx(r)
	defer cancel()

	if err := services.DeleteEntry(ctx, user.ID.String(), id); err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			log.Printf("[DeleteEntry] entry %s not found for user %s", id.Hex(), user.ID)
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete entry")
		return
	}

	services.InvalidateUserInsights(user.ID.String())
	services.PublishJournalEvent(ctx, services.JournalEvent{
		Type:    services.EventEntryDeleted,
		UserID:  user.ID.String(),
		EntryID: id.Hex(),
	})

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Entry deleted"})
}
