package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
)

// geminiTestServer returns a server that wraps payload as the single candidate
// text part, the way the generativelanguage API responds in JSON mode.
func geminiTestServer(t *testing.T, status int, payload string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.NotEmpty(t, r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": payload}},
				}},
			},
		})
	}))
}

func TestGeminiAnalyzeEntry(t *testing.T) {
	t.Run("conforming response", func(t *testing.T) {
		srv := geminiTestServer(t, http.StatusOK, `{
			"overallSentiment": "Positive",
			"emotions": [{"emotion": "Joy", "score": 85}],
			"summary": "A genuinely positive day.",
			"keywords": ["walk", "sunshine"]
		}`)
		defer srv.Close()

		analyzer := NewGeminiAnalyzer("test-key", "gemini-2.5-flash", srv.URL, srv.Client())
		result, err := analyzer.AnalyzeEntry(context.Background(), "Went for a walk in the sunshine.")
		require.NoError(t, err)
		assert.Equal(t, models.SentimentPositive, result.OverallSentiment)
		require.Len(t, result.Emotions, 1)
		assert.Equal(t, models.Emotion{Emotion: "Joy", Score: 85}, result.Emotions[0])
		assert.Equal(t, "A genuinely positive day.", result.Summary)
	})

	t.Run("invalid sentiment fails validation", func(t *testing.T) {
		srv := geminiTestServer(t, http.StatusOK, `{
			"overallSentiment": "Ecstatic",
			"emotions": [],
			"summary": "ok",
			"keywords": []
		}`)
		defer srv.Close()

		analyzer := NewGeminiAnalyzer("test-key", "gemini-2.5-flash", srv.URL, srv.Client())
		_, err := analyzer.AnalyzeEntry(context.Background(), "text")
		assert.ErrorIs(t, err, ErrAnalysisFailed)
	})

	t.Run("out-of-range emotion score fails validation", func(t *testing.T) {
		srv := geminiTestServer(t, http.StatusOK, `{
			"overallSentiment": "Neutral",
			"emotions": [{"emotion": "Joy", "score": 150}],
			"summary": "ok",
			"keywords": []
		}`)
		defer srv.Close()

		analyzer := NewGeminiAnalyzer("test-key", "gemini-2.5-flash", srv.URL, srv.Client())
		_, err := analyzer.AnalyzeEntry(context.Background(), "text")
		assert.ErrorIs(t, err, ErrAnalysisFailed)
	})

	t.Run("non-JSON payload fails", func(t *testing.T) {
		srv := geminiTestServer(t, http.StatusOK, "I am not JSON")
		defer srv.Close()

		analyzer := NewGeminiAnalyzer("test-key", "gemini-2.5-flash", srv.URL, srv.Client())
		_, err := analyzer.AnalyzeEntry(context.Background(), "text")
		assert.ErrorIs(t, err, ErrAnalysisFailed)
	})

	t.Run("non-200 status fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		analyzer := NewGeminiAnalyzer("test-key", "gemini-2.5-flash", srv.URL, srv.Client())
		_, err := analyzer.AnalyzeEntry(context.Background(), "text")
		assert.ErrorIs(t, err, ErrAnalysisFailed)
	})
}

func TestGeminiAnalyzeTriggers(t *testing.T) {
	srv := geminiTestServer(t, http.StatusOK, `{
		"positive": ["family time", "walks"],
		"negative": ["deadlines"]
	}`)
	defer srv.Close()

	analyzer := NewGeminiAnalyzer("test-key", "gemini-2.5-flash", srv.URL, srv.Client())
	report, err := analyzer.AnalyzeTriggers(context.Background(), []models.JournalEntry{
		{Mood: models.MoodGood, Text: "Spent time with family."},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"family time", "walks"}, report.Positive)
	assert.Equal(t, []string{"deadlines"}, report.Negative)
}

func TestGeminiRecommend(t *testing.T) {
	srv := geminiTestServer(t, http.StatusOK, `{
		"recommendations": ["Take a short walk.", "Wind down before bed."]
	}`)
	defer srv.Close()

	analyzer := NewGeminiAnalyzer("test-key", "gemini-2.5-flash", srv.URL, srv.Client())
	recs, err := analyzer.Recommend(context.Background(), []models.JournalEntry{
		{Mood: models.MoodOkay, Text: "Average day."},
	})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestMockAnalyzer(t *testing.T) {
	mock := &MockAnalyzer{}

	result, err := mock.AnalyzeEntry(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNeutral, result.OverallSentiment)
	assert.NotEmpty(t, result.Summary)

	report, err := mock.AnalyzeTriggers(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Positive)
	assert.NotEmpty(t, report.Negative)

	recs, err := mock.Recommend(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, recs)
}
