package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moodflow-ai/moodflow-backend/internal/config"
	"github.com/moodflow-ai/moodflow-backend/internal/models"
)

// ErrAnalysisFailed is returned for any analysis-service failure: transport
// errors, non-200 responses and responses that do not conform to the strict
// output schema. No automatic retry; the caller aborts the enclosing action.
var ErrAnalysisFailed = errors.New("analysis service failed")

// TriggerReport lists recurring keywords/themes correlated with positive and
// negative moods across recent entries.
type TriggerReport struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// Analyzer is the capability interface for the external text-analysis service.
// The Gemini-backed implementation and the keyless mock are interchangeable.
type Analyzer interface {
	AnalyzeEntry(ctx context.Context, text string) (*models.AnalysisResult, error)
	AnalyzeTriggers(ctx context.Context, entries []models.JournalEntry) (*TriggerReport, error)
	Recommend(ctx context.Context, entries []models.JournalEntry) ([]string, error)
}

// NewAnalyzer picks the Gemini client when an API key is configured and the
// deterministic mock otherwise, so keyless environments stay fully usable.
func NewAnalyzer(cfg *config.Config) Analyzer {
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️  WARNING: GEMINI_API_KEY not set. Using mock analysis results.")
		return &MockAnalyzer{}
	}
	return NewGeminiAnalyzer(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, nil)
}

const (
	geminiTimeout        = 30 * time.Second
	triggerEntryWindow   = 20
	recommendEntryWindow = 10
)

// GeminiAnalyzer calls the generativelanguage REST API with a prompt plus a
// strict JSON response schema.
type GeminiAnalyzer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiAnalyzer(apiKey, model, baseURL string, client *http.Client) *GeminiAnalyzer {
	if client == nil {
		client = &http.Client{Timeout: geminiTimeout}
	}
	return &GeminiAnalyzer{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// analysisResponseSchema constrains the entry analysis output.
const analysisResponseSchema = `{
  "type": "OBJECT",
  "properties": {
    "overallSentiment": {
      "type": "STRING",
      "description": "The overall sentiment of the text.",
      "enum": ["Positive", "Negative", "Neutral", "Mixed"]
    },
    "emotions": {
      "type": "ARRAY",
      "description": "A list of detected emotions and their scores from 0 to 100.",
      "items": {
        "type": "OBJECT",
        "properties": {
          "emotion": {"type": "STRING", "description": "The name of the emotion (e.g., Joy, Sadness, Anger, Anxiety)."},
          "score": {"type": "INTEGER", "description": "A score from 0 to 100 representing the intensity of the emotion."}
        },
        "required": ["emotion", "score"]
      }
    },
    "summary": {
      "type": "STRING",
      "description": "A short, compassionate, one or two-sentence summary of the user's emotional state."
    },
    "keywords": {
      "type": "ARRAY",
      "description": "A list of 3-5 main keywords or topics from the text.",
      "items": {"type": "STRING"}
    }
  },
  "required": ["overallSentiment", "emotions", "summary", "keywords"]
}`

const triggerResponseSchema = `{
  "type": "OBJECT",
  "properties": {
    "positive": {
      "type": "ARRAY",
      "description": "A list of 3-5 keywords or short themes associated with positive moods.",
      "items": {"type": "STRING"}
    },
    "negative": {
      "type": "ARRAY",
      "description": "A list of 3-5 keywords or short themes associated with negative moods.",
      "items": {"type": "STRING"}
    }
  },
  "required": ["positive", "negative"]
}`

const recommendationResponseSchema = `{
  "type": "OBJECT",
  "properties": {
    "recommendations": {
      "type": "ARRAY",
      "description": "A list of 2-3 personalized self-care recommendation strings.",
      "items": {"type": "STRING"}
    }
  },
  "required": ["recommendations"]
}`

// generate runs one prompt through the model and unmarshals the schema-bound
// JSON output into out.
func (g *GeminiAnalyzer) generate(ctx context.Context, prompt string, schema string, out interface{}) error {
	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   json.RawMessage(schema),
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrAnalysisFailed, resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("%w: empty response", ErrAnalysisFailed)
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: non-conforming response: %v", ErrAnalysisFailed, err)
	}
	return nil
}

// AnalyzeEntry produces the structured emotional analysis for one entry.
func (g *GeminiAnalyzer) AnalyzeEntry(ctx context.Context, text string) (*models.AnalysisResult, error) {
	prompt := fmt.Sprintf(`Analyze the following journal entry as a compassionate mental health assistant.
Provide a detailed analysis of the user's emotional state.

Journal Entry:
%q

Return the analysis in the specified JSON format.`, text)

	var result models.AnalysisResult
	if err := g.generate(ctx, prompt, analysisResponseSchema, &result); err != nil {
		return nil, err
	}
	if err := validateAnalysis(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// validateAnalysis enforces the output contract: a response that does not
// conform is a failed call.
func validateAnalysis(result *models.AnalysisResult) error {
	if !result.OverallSentiment.Valid() {
		return fmt.Errorf("%w: invalid sentiment %q", ErrAnalysisFailed, result.OverallSentiment)
	}
	if result.Summary == "" {
		return fmt.Errorf("%w: missing summary", ErrAnalysisFailed)
	}
	for _, em := range result.Emotions {
		if em.Emotion == "" || em.Score < 0 || em.Score > 100 {
			return fmt.Errorf("%w: invalid emotion %q (score %d)", ErrAnalysisFailed, em.Emotion, em.Score)
		}
	}
	return nil
}

// AnalyzeTriggers identifies recurring themes correlated with positive and
// negative moods across the latest entries.
func (g *GeminiAnalyzer) AnalyzeTriggers(ctx context.Context, entries []models.JournalEntry) (*TriggerReport, error) {
	prompt := fmt.Sprintf(`As a mental health data analyst, analyze the following journal entries. Identify recurring keywords or themes that are strongly correlated with positive moods (Awesome, Good) and negative moods (Bad, Terrible).
Do not include generic words like 'feel', 'good', 'bad', 'day'. Focus on specific triggers or topics.

Journal Entries:
%s

Return the analysis in the specified JSON format.`, formatEntriesForPrompt(entries, triggerEntryWindow, false))

	var report TriggerReport
	if err := g.generate(ctx, prompt, triggerResponseSchema, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Recommend produces 2-3 personalized self-care recommendations from recent entries.
func (g *GeminiAnalyzer) Recommend(ctx context.Context, entries []models.JournalEntry) ([]string, error) {
	prompt := fmt.Sprintf(`Act as a compassionate wellness coach. Based on the user's recent journal entries, provide 2-3 simple, actionable, and personalized self-care recommendations.
Frame your suggestions gently and encouragingly.

Recent Entries:
%s

Return the recommendations in the specified JSON format.`, formatEntriesForPrompt(entries, recommendEntryWindow, true))

	var payload struct {
		Recommendations []string `json:"recommendations"`
	}
	if err := g.generate(ctx, prompt, recommendationResponseSchema, &payload); err != nil {
		return nil, err
	}
	return payload.Recommendations, nil
}

// formatEntriesForPrompt renders up to limit entries for the prompt body.
// When summarize is set, the stored AI summary stands in for the full text.
func formatEntriesForPrompt(entries []models.JournalEntry, limit int, summarize bool) string {
	if len(entries) > limit {
		entries = entries[:limit]
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if summarize {
			summary := e.Text
			if e.Analysis != nil && e.Analysis.Summary != "" {
				summary = e.Analysis.Summary
			} else if len(summary) > 50 {
				summary = summary[:50]
			}
			lines = append(lines, fmt.Sprintf("Date: %s, Mood: %s, Summary: %s", e.Date.Format(dayFormat), e.Mood, summary))
		} else {
			lines = append(lines, fmt.Sprintf("Date: %s, Mood: %s, Text: %s", e.Date.Format(dayFormat), e.Mood, e.Text))
		}
	}
	return strings.Join(lines, "\n---\n")
}

// MockAnalyzer returns deterministic placeholder results for environments
// without an API key.
type MockAnalyzer struct{}

func (m *MockAnalyzer) AnalyzeEntry(ctx context.Context, text string) (*models.AnalysisResult, error) {
	return &models.AnalysisResult{
		OverallSentiment: models.SentimentNeutral,
		Emotions:         []models.Emotion{{Emotion: "Contemplative", Score: 70}},
		Summary:          "This is a placeholder analysis as the API key is missing. The entry seems reflective.",
		Keywords:         []string{"placeholder", "analysis"},
	}, nil
}

func (m *MockAnalyzer) AnalyzeTriggers(ctx context.Context, entries []models.JournalEntry) (*TriggerReport, error) {
	return &TriggerReport{
		Positive: []string{"family time", "weekends", "new project"},
		Negative: []string{"work deadlines", "mondays", "commute"},
	}, nil
}

func (m *MockAnalyzer) Recommend(ctx context.Context, entries []models.JournalEntry) ([]string, error) {
	return []string{
		"You often feel good after mentioning 'walks'. Consider scheduling a short walk this week.",
		"It seems your mood is lower on Mondays. Preparing for the week on Sunday might help ease the transition.",
		"Celebrate your recent positive streak! Treat yourself to something you enjoy.",
	}, nil
}
