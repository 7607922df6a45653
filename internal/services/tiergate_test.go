package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
)

func TestCanPerform(t *testing.T) {
	free := &models.User{SubscriptionStatus: models.SubscriptionFree}
	premium := &models.User{SubscriptionStatus: models.SubscriptionPremium}

	t.Run("create entry", func(t *testing.T) {
		assert.True(t, CanPerform(ActionCreateEntry, free, 0))
		assert.True(t, CanPerform(ActionCreateEntry, free, FreeEntryLimit-1))
		assert.False(t, CanPerform(ActionCreateEntry, free, FreeEntryLimit))
		assert.False(t, CanPerform(ActionCreateEntry, free, FreeEntryLimit+3))

		assert.True(t, CanPerform(ActionCreateEntry, premium, FreeEntryLimit))
		assert.True(t, CanPerform(ActionCreateEntry, premium, 10_000))
	})

	t.Run("premium-only actions", func(t *testing.T) {
		assert.False(t, CanPerform(ActionExportReport, free, 0))
		assert.False(t, CanPerform(ActionViewWellness, free, 0))
		assert.True(t, CanPerform(ActionExportReport, premium, 0))
		assert.True(t, CanPerform(ActionViewWellness, premium, 0))
	})

	t.Run("unknown action is denied", func(t *testing.T) {
		assert.False(t, CanPerform(Action("delete_everything"), premium, 0))
	})
}
