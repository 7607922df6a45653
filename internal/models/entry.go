package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mood is one of the five fixed mood labels a journal entry can carry.
type Mood string

const (
	MoodAwesome  Mood = "Awesome"
	MoodGood     Mood = "Good"
	MoodOkay     Mood = "Okay"
	MoodBad      Mood = "Bad"
	MoodTerrible Mood = "Terrible"
)

// moodValues maps each mood to its numeric score (Terrible=1 .. Awesome=5).
var moodValues = map[Mood]int{
	MoodAwesome:  5,
	MoodGood:     4,
	MoodOkay:     3,
	MoodBad:      2,
	MoodTerrible: 1,
}

// Valid reports whether m is one of the five fixed mood labels.
func (m Mood) Valid() bool {
	_, ok := moodValues[m]
	return ok
}

// Value returns the numeric score for a mood (0 for an unknown mood).
func (m Mood) Value() int {
	return moodValues[m]
}

// MoodFromValue maps a numeric score back to its mood label.
// Returns ok=false when no mood matches the value exactly.
func MoodFromValue(v int) (Mood, bool) {
	for m, val := range moodValues {
		if val == v {
			return m, true
		}
	}
	return "", false
}

// Sentiment is the overall sentiment label returned by the analysis service.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
	SentimentMixed    Sentiment = "Mixed"
)

// Valid reports whether s is one of the four sentiment labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative, SentimentMixed:
		return true
	}
	return false
}

// Emotion is a single detected emotion with its intensity (0-100).
type Emotion struct {
	Emotion string `bson:"emotion" json:"emotion"`
	Score   int    `bson:"score" json:"score"`
}

// AnalysisResult is the structured output of the AI analysis for one entry.
// Immutable once attached; replaced wholesale when the entry text changes.
type AnalysisResult struct {
	OverallSentiment Sentiment `bson:"overall_sentiment" json:"overallSentiment"`
	Emotions         []Emotion `bson:"emotions" json:"emotions"`
	Summary          string    `bson:"summary" json:"summary"`
	Keywords         []string  `bson:"keywords" json:"keywords"`
}

// JournalEntry represents one journal submission (mood + free text + optional AI analysis).
// Date is assigned at creation and re-stamped on every update; entries are always
// listed ordered by Date descending.
type JournalEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id,omitempty"`
	Date      time.Time          `bson:"date" json:"date"`
	Mood      Mood               `bson:"mood" json:"mood"`
	Text      string             `bson:"text" json:"text"`
	Analysis  *AnalysisResult    `bson:"analysis,omitempty" json:"analysis,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
