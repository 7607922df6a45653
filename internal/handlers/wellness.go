package handlers

import (
	"log"
	"net/http"

	"github.com/moodflow-ai/moodflow-backend/internal/services"
)

const wellnessUpgradeMessage = "Wellness insights are a premium feature. Upgrade to unlock trigger analysis and personalized recommendations."

type TriggersResponse struct {
	Success  bool                    `json:"success"`
	Message  string                  `json:"message,omitempty"`
	Triggers *services.TriggerReport `json:"triggers,omitempty"`
}

type RecommendationsResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message,omitempty"`
	Recommendations []string `json:"recommendations"`
}

// WellnessTriggers returns AI-identified positive/negative mood triggers.
// Results are cached; the cache is dropped whenever the journal changes.
func WellnessTriggers(w http.ResponseWriter, r *http.Request) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	if !services.CanPerform(services.ActionViewWellness, user, 0) {
		writeUpgradePrompt(w, wellnessUpgradeMessage)
		return
	}

	var cached services.TriggerReport
	if hit, _ := services.InsightCacheGet(services.TriggerCacheKey(user.ID.String()), &cached); hit {
		writeJSON(w, http.StatusOK, TriggersResponse{Success: true, Triggers: &cached})
		return
	}

	ctx, cancel := journalCtx(r)
	defer cancel()

	entries, err := services.ListEntries(ctx, user.ID.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}
	if len(entries) == 0 {
		writeJSON(w, http.StatusOK, TriggersResponse{
			Success:  true,
			Message:  "Write a few entries first to unlock trigger analysis.",
			Triggers: &services.TriggerReport{Positive: []string{}, Negative: []string{}},
		})
		return
	}

	report, err := analysisService.AnalyzeTriggers(ctx, entries)
	if err != nil {
		log.Printf("[WellnessTriggers] analysis failed for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, analysisFailedMessage)
		return
	}

	if err := services.InsightCacheSet(services.TriggerCacheKey(user.ID.String()), report); err != nil {
		log.Printf("[WellnessTriggers] failed to cache insight for user %s: %v", user.ID, err)
	}

	writeJSON(w, http.StatusOK, TriggersResponse{Success: true, Triggers: report})
}

// WellnessRecommendations returns personalized self-care recommendations.
func WellnessRecommendations(w http.ResponseWriter, r *http.Request) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	if !services.CanPerform(services.ActionViewWellness, user, 0) {
		writeUpgradePrompt(w, wellnessUpgradeMessage)
		return
	}

	var cached []string
	if hit, _ := services.InsightCacheGet(services.RecommendationCacheKey(user.ID.String()), &cached); hit {
		writeJSON(w, http.StatusOK, RecommendationsResponse{Success: true, Recommendations: cached})
		return
	}

	ctx, cancel := journalCtx(r)
	defer cancel()

	entries, err := services.ListEntries(ctx, user.ID.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}
	if len(entries) == 0 {
		writeJSON(w, http.StatusOK, RecommendationsResponse{
			Success:         true,
			Message:         "Write a few entries first to get personalized recommendations.",
			Recommendations: []string{},
		})
		return
	}

	recs, err := analysisService.Recommend(ctx, entries)
	if err != nil {
		log.Printf("[WellnessRecommendations] analysis failed for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, analysisFailedMessage)
		return
	}

	if err := services.InsightCacheSet(services.RecommendationCacheKey(user.ID.String()), recs); err != nil {
		log.Printf("[WellnessRecommendations] failed to cache insight for user %s: %v", user.ID, err)
	}

	writeJSON(w, http.StatusOK, RecommendationsResponse{Success: true, Recommendations: recs})
}
