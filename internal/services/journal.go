package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/moodflow-ai/moodflow-backend/internal/database"
	"github.com/moodflow-ai/moodflow-backend/internal/models"
)

var (
	// ErrEntryNotFound is returned when an entry id does not exist for the user.
	// The UI only offers actions on known entries, so seeing this in normal
	// flow indicates a logic error.
	ErrEntryNotFound = errors.New("journal entry not found")
	// ErrEntryLimit is returned when a free-tier user already holds the
	// maximum number of entries. Surfaced as an upgrade prompt.
	ErrEntryLimit = errors.New("free tier entry limit reached")
)

func entriesColl() *mongo.Collection {
	return database.DB.Collection(database.EntriesCollection)
}

// ListEntries returns the user's journal entries, newest first.
func ListEntries(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	findOptions := options.Find().SetSort(bson.M{"date": -1})
	cursor, err := entriesColl().Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]models.JournalEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CountEntries returns how many entries the user currently holds.
func CountEntries(ctx context.Context, userID string) (int64, error) {
	return entriesColl().CountDocuments(ctx, bson.M{"user_id": userID})
}

// GetEntry fetches a single entry owned by the user.
func GetEntry(ctx context.Context, userID string, id primitive.ObjectID) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	err := entriesColl().FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// CreateEntry inserts a new entry for the user. The tier gate runs before any
// mutation: the 6th create for a free user fails with ErrEntryLimit. The AI
// analysis must already be attached by the caller.
func CreateEntry(ctx context.Context, user *models.User, mood models.Mood, text string, analysis *models.AnalysisResult) (*models.JournalEntry, error) {
	count, err := CountEntries(ctx, user.ID.String())
	if err != nil {
		return nil, err
	}
	if !CanPerform(ActionCreateEntry, user, count) {
		return nil, ErrEntryLimit
	}

	now := time.Now().UTC()
	entry := models.JournalEntry{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID.String(),
		Date:      now,
		Mood:      mood,
		Text:      text,
		Analysis:  analysis,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := entriesColl().InsertOne(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateEntry replaces mood, text and analysis wholesale and re-stamps the
// entry date to now, which moves the entry to the head of the list.
func UpdateEntry(ctx context.Context, userID string, id primitive.ObjectID, mood models.Mood, text string, analysis *models.AnalysisResult) (*models.JournalEntry, error) {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"mood":       mood,
		"text":       text,
		"analysis":   analysis,
		"date":       now,
		"updated_at": now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var entry models.JournalEntry
	err := entriesColl().FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": userID}, update, opts).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes the entry wholesale.
func DeleteEntry(ctx context.Context, userID string, id primitive.ObjectID) error {
	res, err := entriesColl().DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ResolveAnalysis decides whether an update needs a fresh AI analysis.
// Unchanged text reuses the stored analysis; changed text invalidates it and
// re-runs the analyzer. An analyzer failure aborts the enclosing update.
func ResolveAnalysis(ctx context.Context, analyzer Analyzer, existing *models.JournalEntry, newText string) (*models.AnalysisResult, error) {
	if existing.Analysis != nil && existing.Text == newText {
		return existing.Analysis, nil
	}
	return analyzer.AnalyzeEntry(ctx, newText)
}
