package services

import "github.com/moodflow-ai/moodflow-backend/internal/models"

// Action is a gated user action.
type Action string

const (
	ActionCreateEntry  Action = "create_entry"
	ActionExportReport Action = "export_report"
	ActionViewWellness Action = "view_wellness"
)

// FreeEntryLimit is the maximum number of journal entries a free-tier user may hold.
const FreeEntryLimit = 5

// CanPerform is the tier policy. Denials are surfaced to the client as an
// upgrade prompt, not a hard error.
//
// CreateEntry is denied iff the user is on the free tier and already holds
// FreeEntryLimit entries. ExportReport and ViewWellness are premium-only.
func CanPerform(action Action, user *models.User, entryCount int64) bool {
	switch action {
	case ActionCreateEntry:
		return user.IsPremium() || entryCount < FreeEntryLimit
	case ActionExportReport, ActionViewWellness:
		return user.IsPremium()
	}
	return false
}
