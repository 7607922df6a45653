package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
)

// countingAnalyzer records how often AnalyzeEntry runs.
type countingAnalyzer struct {
	MockAnalyzer
	calls int
}

func (c *countingAnalyzer) AnalyzeEntry(ctx context.Context, text string) (*models.AnalysisResult, error) {
	c.calls++
	return c.MockAnalyzer.AnalyzeEntry(ctx, text)
}

func TestResolveAnalysis(t *testing.T) {
	stored := &models.AnalysisResult{
		OverallSentiment: models.SentimentPositive,
		Summary:          "stored analysis",
	}

	t.Run("unchanged text reuses the stored analysis", func(t *testing.T) {
		analyzer := &countingAnalyzer{}
		entry := &models.JournalEntry{Text: "same text", Analysis: stored}

		result, err := ResolveAnalysis(context.Background(), analyzer, entry, "same text")
		require.NoError(t, err)
		assert.Same(t, stored, result)
		assert.Equal(t, 0, analyzer.calls)
	})

	t.Run("changed text re-runs the analyzer", func(t *testing.T) {
		analyzer := &countingAnalyzer{}
		entry := &models.JournalEntry{Text: "old text", Analysis: stored}

		result, err := ResolveAnalysis(context.Background(), analyzer, entry, "new text")
		require.NoError(t, err)
		assert.NotSame(t, stored, result)
		assert.Equal(t, 1, analyzer.calls)
	})

	t.Run("missing analysis re-runs even with unchanged text", func(t *testing.T) {
		analyzer := &countingAnalyzer{}
		entry := &models.JournalEntry{Text: "same text"}

		result, err := ResolveAnalysis(context.Background(), analyzer, entry, "same text")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 1, analyzer.calls)
	})
}
