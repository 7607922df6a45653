package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
	"github.com/moodflow-ai/moodflow-backend/internal/services"
)

const reportUpgradeMessage = "PDF reports are a premium feature. Upgrade to export your journal."

const reportQueryDateFormat = "2006-01-02"

// ExportJournalReport streams a PDF of the user's entries within the requested
// period. Query params from/to are YYYY-MM-DD; omitted, the last 30 days are
// used. The period is inclusive of both end dates.
func ExportJournalReport(w http.ResponseWriter, r *http.Request) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	if !services.CanPerform(services.ActionExportReport, user, 0) {
		writeUpgradePrompt(w, reportUpgradeMessage)
		return
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse(reportQueryDateFormat, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "from must be formatted as YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse(reportQueryDateFormat, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "to must be formatted as YYYY-MM-DD")
			return
		}
		to = parsed
	}
	if from.After(to) {
		from, to = to, from
	}
	toEnd := to.AddDate(0, 0, 1) // exclusive upper bound covering all of `to`

	ctx, cancel := journalCtx(r)
	defer cancel()

	entries, err := services.ListEntries(ctx, user.ID.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}

	inRange := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Date.Before(from) && e.Date.Before(toEnd) {
			inRange = append(inRange, e)
		}
	}

	data := services.ReportData{
		Entries: inRange,
		From:    from,
		To:      to,
		Email:   user.Email,
	}
	if user.Profile != nil {
		data.FirstName = user.Profile.FirstName
		data.LastName = user.Profile.LastName
	}

	pdf, err := services.GenerateJournalReport(data)
	if err != nil {
		log.Printf("[ExportJournalReport] generation failed for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, "Failed to generate report. Please try again later.")
		return
	}

	filename := fmt.Sprintf("journal-report-%s-to-%s.pdf",
		from.Format(reportQueryDateFormat), to.Format(reportQueryDateFormat))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
