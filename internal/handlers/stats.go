package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
	"github.com/moodflow-ai/moodflow-backend/internal/services"
)

// DashboardResponse is the summary strip at the top of the dashboard.
type DashboardResponse struct {
	Success      bool   `json:"success"`
	Streak       int    `json:"streak"`
	TodayMood    string `json:"today_mood"`
	AverageMood  string `json:"average_mood"`
	TotalEntries int    `json:"total_entries"`
	EntryLimit   int    `json:"entry_limit"` // 0 means unlimited
}

type MoodSeriesResponse struct {
	Success bool                 `json:"success"`
	Points  []services.MoodPoint `json:"points"`
}

type EmotionsResponse struct {
	Success  bool                    `json:"success"`
	Emotions []services.EmotionTotal `json:"emotions"`
}

type HeatmapResponse struct {
	Success bool                  `json:"success"`
	Days    []services.HeatmapDay `json:"days"`
}

func loadEntriesForStats(w http.ResponseWriter, r *http.Request) (*models.User, []models.JournalEntry, bool) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return nil, nil, false
	}

	ctx, cancel := journalCtx(r)
	defer cancel()

	entries, err := services.ListEntries(ctx, user.ID.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entries")
		return nil, nil, false
	}
	return user, entries, true
}

// Dashboard returns the headline numbers: writing streak, today's mood,
// overall average mood and the entry count against the tier limit.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	user, entries, ok := loadEntriesForStats(w, r)
	if !ok {
		return
	}

	todayMood := "N/A"
	today := time.Now().UTC().Format("2006-01-02")
	for _, e := range entries {
		if e.Date.UTC().Format("2006-01-02") == today {
			todayMood = string(e.Mood)
			break
		}
	}

	averageMood := "N/A"
	if label, ok := services.AverageMoodLabel(entries); ok {
		averageMood = string(label)
	}

	limit := 0
	if !user.IsPremium() {
		limit = services.FreeEntryLimit
	}

	writeJSON(w, http.StatusOK, DashboardResponse{
		Success:      true,
		Streak:       services.Streak(entries),
		TodayMood:    todayMood,
		AverageMood:  averageMood,
		TotalEntries: len(entries),
		EntryLimit:   limit,
	})
}

// Moods returns the chronological mood-over-time series for the line chart.
func Moods(w http.ResponseWriter, r *http.Request) {
	_, entries, ok := loadEntriesForStats(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, MoodSeriesResponse{
		Success: true,
		Points:  services.MoodSeries(entries),
	})
}

// Emotions returns the aggregated emotion distribution for the pie chart.
func Emotions(w http.ResponseWriter, r *http.Request) {
	_, entries, ok := loadEntriesForStats(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, EmotionsResponse{
		Success:  true,
		Emotions: services.EmotionDistribution(entries),
	})
}

// MoodHeatmap returns per-day averaged moods for the calendar heatmap.
// An optional ?month=YYYY-MM query narrows the result to one month.
func MoodHeatmap(w http.ResponseWriter, r *http.Request) {
	_, entries, ok := loadEntriesForStats(w, r)
	if !ok {
		return
	}

	days := services.Heatmap(entries)

	if month := r.URL.Query().Get("month"); month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			writeError(w, http.StatusBadRequest, "month must be formatted as YYYY-MM")
			return
		}
		filtered := days[:0]
		for _, d := range days {
			if strings.HasPrefix(d.Day, month+"-") {
				filtered = append(filtered, d)
			}
		}
		days = filtered
	}

	writeJSON(w, http.StatusOK, HeatmapResponse{Success: true, Days: days})
}
