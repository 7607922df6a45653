package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
)

func entryOn(date time.Time, mood models.Mood) models.JournalEntry {
	return models.JournalEntry{Date: date, Mood: mood}
}

func entryWithEmotions(mood models.Mood, emotions ...models.Emotion) models.JournalEntry {
	return models.JournalEntry{
		Date: time.Now().UTC(),
		Mood: mood,
		Analysis: &models.AnalysisResult{
			OverallSentiment: models.SentimentNeutral,
			Emotions:         emotions,
			Summary:          "summary",
		},
	}
}

func TestStreak(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Now().UTC().AddDate(0, 0, -offset)
	}

	t.Run("consecutive days", func(t *testing.T) {
		entries := []models.JournalEntry{
			entryOn(day(0), models.MoodGood),
			entryOn(day(1), models.MoodOkay),
			entryOn(day(2), models.MoodBad),
		}
		assert.Equal(t, 3, Streak(entries))
	})

	t.Run("gap breaks the streak", func(t *testing.T) {
		entries := []models.JournalEntry{
			entryOn(day(0), models.MoodGood),
			entryOn(day(2), models.MoodOkay),
		}
		assert.Equal(t, 1, Streak(entries))
	})

	t.Run("multiple entries on one day count once", func(t *testing.T) {
		entries := []models.JournalEntry{
			entryOn(day(0), models.MoodGood),
			entryOn(day(0).Add(-2*time.Hour), models.MoodOkay),
			entryOn(day(1), models.MoodBad),
		}
		assert.Equal(t, 2, Streak(entries))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0, Streak(nil))
	})
}

func TestAverageMoodLabel(t *testing.T) {
	t.Run("rounds to nearest mood", func(t *testing.T) {
		// (5+4+4+3)/4 = 4.0 -> Good
		entries := []models.JournalEntry{
			entryOn(time.Now(), models.MoodAwesome),
			entryOn(time.Now(), models.MoodGood),
			entryOn(time.Now(), models.MoodGood),
			entryOn(time.Now(), models.MoodOkay),
		}
		label, ok := AverageMoodLabel(entries)
		require.True(t, ok)
		assert.Equal(t, models.MoodGood, label)
	})

	t.Run("rounds half up", func(t *testing.T) {
		// (5+4)/2 = 4.5 -> rounds to 5 -> Awesome
		entries := []models.JournalEntry{
			entryOn(time.Now(), models.MoodAwesome),
			entryOn(time.Now(), models.MoodGood),
		}
		label, ok := AverageMoodLabel(entries)
		require.True(t, ok)
		assert.Equal(t, models.MoodAwesome, label)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := AverageMoodLabel(nil)
		assert.False(t, ok)
	})
}

func TestMoodSeriesIsChronological(t *testing.T) {
	now := time.Now().UTC()
	entries := []models.JournalEntry{
		entryOn(now, models.MoodGood),
		entryOn(now.AddDate(0, 0, -2), models.MoodBad),
		entryOn(now.AddDate(0, 0, -1), models.MoodOkay),
	}

	points := MoodSeries(entries)
	require.Len(t, points, 3)
	assert.Equal(t, []int{1, 3, 4}, []int{points[0].Value, points[1].Value, points[2].Value})
	assert.True(t, points[0].Date.Before(points[1].Date))
	assert.True(t, points[1].Date.Before(points[2].Date))
}

func TestEmotionDistribution(t *testing.T) {
	entries := []models.JournalEntry{
		entryWithEmotions(models.MoodGood, models.Emotion{Emotion: "Joy", Score: 80}),
		entryWithEmotions(models.MoodBad,
			models.Emotion{Emotion: "Joy", Score: 20},
			models.Emotion{Emotion: "Sadness", Score: 50},
		),
		{Date: time.Now(), Mood: models.MoodOkay}, // no analysis
	}

	dist := EmotionDistribution(entries)
	require.Len(t, dist, 2)
	assert.Equal(t, EmotionTotal{Emotion: "Joy", Score: 100}, dist[0])
	assert.Equal(t, EmotionTotal{Emotion: "Sadness", Score: 50}, dist[1])
}

func TestTopEmotionsByCount(t *testing.T) {
	entries := []models.JournalEntry{
		entryWithEmotions(models.MoodGood, models.Emotion{Emotion: "Joy", Score: 10}),
		entryWithEmotions(models.MoodGood, models.Emotion{Emotion: "Joy", Score: 10}),
		entryWithEmotions(models.MoodBad, models.Emotion{Emotion: "Anxiety", Score: 90}),
	}

	top := TopEmotionsByCount(entries, 1)
	require.Len(t, top, 1)
	assert.Equal(t, EmotionCount{Emotion: "Joy", Count: 2}, top[0])
}

func TestHeatmap(t *testing.T) {
	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	t.Run("averages multiple entries per day", func(t *testing.T) {
		entries := []models.JournalEntry{
			entryOn(day, models.MoodAwesome),               // 5
			entryOn(day.Add(4*time.Hour), models.MoodBad),  // 2
			entryOn(day.AddDate(0, 0, 1), models.MoodGood), // 4
		}

		days := Heatmap(entries)
		require.Len(t, days, 2)
		// (5+2)/2 = 3.5 -> rounds to 4 -> lime
		assert.Equal(t, HeatmapDay{Day: "2026-08-10", Value: 4, Color: "lime"}, days[0])
		assert.Equal(t, HeatmapDay{Day: "2026-08-11", Value: 4, Color: "lime"}, days[1])
	})

	t.Run("color bands", func(t *testing.T) {
		cases := []struct {
			mood  models.Mood
			color string
		}{
			{models.MoodAwesome, "green"},
			{models.MoodGood, "lime"},
			{models.MoodOkay, "yellow"},
			{models.MoodBad, "orange"},
			{models.MoodTerrible, "red"},
		}
		for _, tc := range cases {
			days := Heatmap([]models.JournalEntry{entryOn(day, tc.mood)})
			require.Len(t, days, 1)
			assert.Equal(t, tc.color, days[0].Color, "mood %s", tc.mood)
		}
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Heatmap(nil))
	})
}

func TestMostFrequentMood(t *testing.T) {
	entries := []models.JournalEntry{
		entryOn(time.Now(), models.MoodGood),
		entryOn(time.Now(), models.MoodGood),
		entryOn(time.Now(), models.MoodBad),
	}
	mood, ok := MostFrequentMood(entries)
	require.True(t, ok)
	assert.Equal(t, models.MoodGood, mood)

	_, ok = MostFrequentMood(nil)
	assert.False(t, ok)
}
