package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodValues(t *testing.T) {
	assert.Equal(t, 5, MoodAwesome.Value())
	assert.Equal(t, 4, MoodGood.Value())
	assert.Equal(t, 3, MoodOkay.Value())
	assert.Equal(t, 2, MoodBad.Value())
	assert.Equal(t, 1, MoodTerrible.Value())
	assert.Equal(t, 0, Mood("Meh").Value())
}

func TestMoodValid(t *testing.T) {
	for _, m := range []Mood{MoodAwesome, MoodGood, MoodOkay, MoodBad, MoodTerrible} {
		assert.True(t, m.Valid(), "mood %s", m)
	}
	assert.False(t, Mood("").Valid())
	assert.False(t, Mood("awesome").Valid()) // labels are case sensitive
}

func TestMoodFromValue(t *testing.T) {
	for v := 1; v <= 5; v++ {
		mood, ok := MoodFromValue(v)
		require.True(t, ok)
		assert.Equal(t, v, mood.Value())
	}

	_, ok := MoodFromValue(0)
	assert.False(t, ok)
	_, ok = MoodFromValue(6)
	assert.False(t, ok)
}

func TestSentimentValid(t *testing.T) {
	for _, s := range []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative, SentimentMixed} {
		assert.True(t, s.Valid(), "sentiment %s", s)
	}
	assert.False(t, Sentiment("Ecstatic").Valid())
	assert.False(t, Sentiment("").Valid())
}
