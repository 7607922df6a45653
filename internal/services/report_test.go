package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
)

func TestGenerateJournalReport(t *testing.T) {
	now := time.Now().UTC()

	t.Run("empty period still renders a valid document", func(t *testing.T) {
		pdf, err := GenerateJournalReport(ReportData{
			From:  now.AddDate(0, 0, -30),
			To:    now,
			Email: "user@example.com",
		})
		require.NoError(t, err)
		require.NotEmpty(t, pdf)
		assert.Equal(t, "%PDF", string(pdf[:4]))
	})

	t.Run("full report with analysis", func(t *testing.T) {
		entries := []models.JournalEntry{
			{
				Date: now,
				Mood: models.MoodGood,
				Text: "Went for a long walk and felt great.",
				Analysis: &models.AnalysisResult{
					OverallSentiment: models.SentimentPositive,
					Emotions:         []models.Emotion{{Emotion: "Joy", Score: 85}},
					Summary:          "A genuinely positive day.",
				},
			},
			{
				Date: now.AddDate(0, 0, -1),
				Mood: models.MoodBad,
				Text: "Deadline stress all day.",
			},
		}

		pdf, err := GenerateJournalReport(ReportData{
			Entries:   entries,
			From:      now.AddDate(0, 0, -7),
			To:        now,
			FirstName: "Amina",
			LastName:  "Odhiambo",
			Email:     "amina@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(pdf[:4]))
	})

	t.Run("large journals are capped, not rejected", func(t *testing.T) {
		entries := make([]models.JournalEntry, 0, 50)
		for i := 0; i < 50; i++ {
			entries = append(entries, models.JournalEntry{
				Date: now.AddDate(0, 0, -i),
				Mood: models.MoodOkay,
				Text: fmt.Sprintf("Entry number %d with some text.", i),
			})
		}

		pdf, err := GenerateJournalReport(ReportData{
			Entries: entries,
			From:    now.AddDate(0, 0, -60),
			To:      now,
		})
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(pdf[:4]))
	})
}
