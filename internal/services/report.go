package services

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
)

// ErrReportGeneration is the single error surfaced for any document-library
// failure while rendering a report.
var ErrReportGeneration = errors.New("report generation failed")

// reportEntryLimit caps how many individual entries are rendered; entries
// beyond it are summarized as a count.
const reportEntryLimit = 20

// ReportData is the input for one journal report.
type ReportData struct {
	Entries   []models.JournalEntry
	From      time.Time
	To        time.Time
	FirstName string
	LastName  string
	Email     string
}

const reportDateFormat = "Jan 2, 2006"

type reportBuilder struct {
	pdf    *gofpdf.Fpdf
	margin float64
	width  float64
}

func newReportBuilder() *reportBuilder {
	pdf := gofpdf.New("P", "mm", "A4", "")
	margin := 20.0
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()
	w, _ := pdf.GetPageSize()
	return &reportBuilder{pdf: pdf, margin: margin, width: w - 2*margin}
}

func (b *reportBuilder) title(text string) {
	b.pdf.SetFont("Helvetica", "B", 20)
	b.pdf.MultiCell(b.width, 10, text, "", "L", false)
	b.pdf.Ln(4)
}

func (b *reportBuilder) subtitle(text string) {
	b.pdf.SetFont("Helvetica", "B", 14)
	b.pdf.MultiCell(b.width, 8, text, "", "L", false)
	b.pdf.Ln(1)
}

func (b *reportBuilder) text(text string) {
	b.pdf.SetFont("Helvetica", "", 11)
	b.pdf.MultiCell(b.width, 5.5, text, "", "L", false)
	b.pdf.Ln(1)
}

func (b *reportBuilder) italic(text string) {
	b.pdf.SetFont("Helvetica", "I", 10)
	b.pdf.MultiCell(b.width, 5, text, "", "L", false)
	b.pdf.Ln(1)
}

// GenerateJournalReport renders the multi-page PDF report: header, user
// identity, summary, mood distribution, top emotions and up to 20 entries.
// An empty entry set still produces a valid document.
func GenerateJournalReport(data ReportData) ([]byte, error) {
	b := newReportBuilder()

	entries := make([]models.JournalEntry, len(data.Entries))
	copy(entries, data.Entries)
	SortEntriesDesc(entries)

	// Header + identity block
	b.title("Mood Journal Report")
	if data.FirstName != "" || data.LastName != "" {
		b.text(fmt.Sprintf("Generated for: %s %s", data.FirstName, data.LastName))
	}
	if data.Email != "" {
		b.text("Email: " + data.Email)
	}
	b.text(fmt.Sprintf("Report Period: %s - %s", data.From.Format(reportDateFormat), data.To.Format(reportDateFormat)))
	b.text("Generated on: " + time.Now().Format(reportDateFormat))
	b.text(fmt.Sprintf("Total Entries: %d", len(entries)))
	b.pdf.Ln(6)

	// Summary
	b.subtitle("Summary")
	if len(entries) > 0 {
		b.text(fmt.Sprintf("Average mood score: %.1f/5", AverageMoodScore(entries)))
		if mood, ok := MostFrequentMood(entries); ok {
			b.text("Most frequent mood: " + string(mood))
		}
	} else {
		b.text("No entries found for this period.")
	}
	b.pdf.Ln(4)

	writeMoodDistribution(b, entries)
	writeTopEmotions(b, entries)
	writeEntries(b, entries)

	if err := b.pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportGeneration, err)
	}

	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportGeneration, err)
	}
	return buf.Bytes(), nil
}

func writeMoodDistribution(b *reportBuilder, entries []models.JournalEntry) {
	b.subtitle("Mood Distribution")
	counts := MoodCounts(entries)
	total := len(entries)
	for _, mood := range []models.Mood{models.MoodAwesome, models.MoodGood, models.MoodOkay, models.MoodBad, models.MoodTerrible} {
		percentage := 0.0
		if total > 0 {
			percentage = float64(counts[mood]) / float64(total) * 100
		}
		b.text(fmt.Sprintf("%s: %d entries (%.1f%%)", mood, counts[mood], percentage))
	}
	b.pdf.Ln(4)
}

func writeTopEmotions(b *reportBuilder, entries []models.JournalEntry) {
	b.subtitle("Most Common Emotions")
	top := TopEmotionsByCount(entries, 10)
	if len(top) == 0 {
		b.text("No emotion data available.")
		b.pdf.Ln(4)
		return
	}
	for _, em := range top {
		b.text(fmt.Sprintf("%s: %d occurrences", em.Emotion, em.Count))
	}
	b.pdf.Ln(4)
}

func writeEntries(b *reportBuilder, entries []models.JournalEntry) {
	b.subtitle("Journal Entries")
	if len(entries) == 0 {
		b.text("No journal entries found for this period.")
		return
	}

	shown := entries
	if len(shown) > reportEntryLimit {
		shown = shown[:reportEntryLimit]
	}
	for i, entry := range shown {
		b.pdf.SetFont("Helvetica", "B", 12)
		b.pdf.MultiCell(b.width, 6, fmt.Sprintf("Entry %d - %s", i+1, entry.Date.Format(reportDateFormat)), "", "L", false)
		b.pdf.SetFont("Helvetica", "", 11)
		b.pdf.MultiCell(b.width, 5.5, "Mood: "+string(entry.Mood), "", "L", false)
		b.text(entry.Text)
		if entry.Analysis != nil && entry.Analysis.Summary != "" {
			b.italic("AI Analysis: " + entry.Analysis.Summary)
		}
		b.pdf.Ln(3)
	}

	if len(entries) > reportEntryLimit {
		b.text(fmt.Sprintf("... and %d more entries.", len(entries)-reportEntryLimit))
	}
}
