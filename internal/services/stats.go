package services

import (
	"math"
	"sort"
	"time"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
)

// Aggregation over an immutable snapshot of the entry list. Everything here is
// recomputed per request; at journal scale a linear scan is cheaper than any
// cache invalidation scheme.

// MoodPoint is one point of the mood-over-time chart.
type MoodPoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// EmotionTotal is an emotion with its score summed across all analyses.
type EmotionTotal struct {
	Emotion string `json:"emotion"`
	Score   int    `json:"score"`
}

// EmotionCount is an emotion with the number of analyses it appears in.
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}

// HeatmapDay is one calendar day's averaged mood for the heatmap calendar.
type HeatmapDay struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Value int    `json:"value"`
	Color string `json:"color"`
}

const dayFormat = "2006-01-02"

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SortEntriesDesc sorts entries newest-first by date, in place.
func SortEntriesDesc(entries []models.JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}

// Streak counts consecutive calendar days with at least one entry, walking
// backward from the most recent unique entry date and stopping at the first
// gap of more than one day. Empty entry set -> 0.
func Streak(entries []models.JournalEntry) int {
	if len(entries) == 0 {
		return 0
	}

	seen := make(map[time.Time]struct{}, len(entries))
	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		d := dayOf(e.Date)
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	last := days[0]
	for _, d := range days[1:] {
		if last.Sub(d) != 24*time.Hour {
			break
		}
		streak++
		last = d
	}
	return streak
}

// AverageMoodScore returns the mean mood value across all entries (0 when empty).
func AverageMoodScore(entries []models.JournalEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Mood.Value()
	}
	return float64(sum) / float64(len(entries))
}

// AverageMoodLabel maps the rounded mean mood value back to its label.
// Falls back to Okay when no mood matches the rounded value exactly.
// ok is false for an empty entry set.
func AverageMoodLabel(entries []models.JournalEntry) (models.Mood, bool) {
	if len(entries) == 0 {
		return "", false
	}
	rounded := int(math.Round(AverageMoodScore(entries)))
	if mood, ok := models.MoodFromValue(rounded); ok {
		return mood, true
	}
	return models.MoodOkay, true
}

// MoodSeries returns the chronological (oldest -> newest) mood-over-time series.
func MoodSeries(entries []models.JournalEntry) []MoodPoint {
	points := make([]MoodPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, MoodPoint{Date: e.Date, Value: e.Mood.Value()})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// EmotionDistribution sums emotion scores across all entries' analyses,
// grouped by emotion name, descending by total score.
func EmotionDistribution(entries []models.JournalEntry) []EmotionTotal {
	totals := make(map[string]int)
	for _, e := range entries {
		if e.Analysis == nil {
			continue
		}
		for _, em := range e.Analysis.Emotions {
			totals[em.Emotion] += em.Score
		}
	}

	out := make([]EmotionTotal, 0, len(totals))
	for name, score := range totals {
		out = append(out, EmotionTotal{Emotion: name, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Emotion < out[j].Emotion
	})
	return out
}

// TopEmotionsByCount returns the n emotions appearing in the most analyses,
// descending by occurrence count. Used by the PDF report.
func TopEmotionsByCount(entries []models.JournalEntry, n int) []EmotionCount {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Analysis == nil {
			continue
		}
		for _, em := range e.Analysis.Emotions {
			counts[em.Emotion]++
		}
	}

	out := make([]EmotionCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, EmotionCount{Emotion: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Emotion < out[j].Emotion
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MoodCounts returns how many entries carry each mood.
func MoodCounts(entries []models.JournalEntry) map[models.Mood]int {
	counts := make(map[models.Mood]int)
	for _, e := range entries {
		counts[e.Mood]++
	}
	return counts
}

// MostFrequentMood returns the mood with the most entries (ties broken by
// higher mood value). ok is false for an empty entry set.
func MostFrequentMood(entries []models.JournalEntry) (models.Mood, bool) {
	counts := MoodCounts(entries)
	if len(counts) == 0 {
		return "", false
	}
	var best models.Mood
	bestCount := -1
	for _, m := range []models.Mood{models.MoodAwesome, models.MoodGood, models.MoodOkay, models.MoodBad, models.MoodTerrible} {
		if c := counts[m]; c > bestCount {
			best = m
			bestCount = c
		}
	}
	return best, true
}

// moodColor maps a rounded daily mood value to the 5-band heatmap scale.
func moodColor(value int) string {
	switch {
	case value >= 5:
		return "green"
	case value >= 4:
		return "lime"
	case value >= 3:
		return "yellow"
	case value >= 2:
		return "orange"
	case value >= 1:
		return "red"
	}
	return "gray" // no data
}

// Heatmap buckets entries per calendar day: the day's entries' mood values are
// averaged, rounded to the nearest integer and mapped to the color scale.
// Days are returned in ascending order.
func Heatmap(entries []models.JournalEntry) []HeatmapDay {
	type acc struct {
		total int
		count int
	}
	byDay := make(map[time.Time]*acc)
	for _, e := range entries {
		d := dayOf(e.Date)
		a, ok := byDay[d]
		if !ok {
			a = &acc{}
			byDay[d] = a
		}
		a.total += e.Mood.Value()
		a.count++
	}

	out := make([]HeatmapDay, 0, len(byDay))
	for d, a := range byDay {
		value := int(math.Round(float64(a.total) / float64(a.count)))
		out = append(out, HeatmapDay{
			Day:   d.Format(dayFormat),
			Value: value,
			Color: moodColor(value),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}
