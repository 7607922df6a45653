package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/moodflow-ai/moodflow-backend/internal/database"
	"github.com/moodflow-ai/moodflow-backend/internal/models"
)

// Journal event types pushed to connected clients.
const (
	EventEntryCreated = "entry_created"
	EventEntryUpdated = "entry_updated"
	EventEntryDeleted = "entry_deleted"
)

// JournalEvent is the payload broadcast over Redis and WebSocket whenever a
// user's journal changes, so an open dashboard can refresh without polling.
type JournalEvent struct {
	Type      string      `json:"type"`
	UserID    string      `json:"user_id"`
	EntryID   string      `json:"entry_id"`
	Mood      models.Mood `json:"mood,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// journalEventsChannel is the Redis Pub/Sub channel shared by all instances.
const journalEventsChannel = "journal_events"

// journalHub fans Redis events out to this instance's WebSocket subscribers,
// keyed by user id.
type journalHub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]chan JournalEvent
}

var (
	eventHub           = &journalHub{subs: make(map[string]map[int]chan JournalEvent)}
	eventSubscriberRun sync.Once
)

// SubscribeJournalEvents registers a listener for one user's journal events.
// The returned cancel func must be called when the connection closes.
func SubscribeJournalEvents(userID string) (<-chan JournalEvent, func()) {
	ch := make(chan JournalEvent, 16)

	eventHub.mu.Lock()
	eventHub.nextID++
	id := eventHub.nextID
	if eventHub.subs[userID] == nil {
		eventHub.subs[userID] = make(map[int]chan JournalEvent)
	}
	eventHub.subs[userID][id] = ch
	eventHub.mu.Unlock()

	cancel := func() {
		eventHub.mu.Lock()
		if m, ok := eventHub.subs[userID]; ok {
			delete(m, id)
			if len(m) == 0 {
				delete(eventHub.subs, userID)
			}
		}
		eventHub.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}

func (h *journalHub) dispatch(evt JournalEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[evt.UserID] {
		select {
		case ch <- evt:
		default:
			// Slow consumer; drop rather than block the fan-out
		}
	}
}

// StartJournalEventSubscriber starts the Redis Pub/Sub fan-in goroutine.
// Safe to call more than once.
func StartJournalEventSubscriber() {
	eventSubscriberRun.Do(func() {
		go func() {
			ctx := context.Background()
			pubsub := database.RedisClient.Subscribe(ctx, journalEventsChannel)
			for msg := range pubsub.Channel() {
				var evt JournalEvent
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					log.Printf("[events] dropping malformed journal event: %v", err)
					continue
				}
				eventHub.dispatch(evt)
			}
		}()
	})
}

// PublishJournalEvent broadcasts an event to all instances via Redis.
// Publish failures are logged, never surfaced: the journal mutation already
// succeeded and the event stream is best-effort.
func PublishJournalEvent(ctx context.Context, evt JournalEvent) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[events] failed to marshal journal event: %v", err)
		return
	}
	if err := database.RedisClient.Publish(ctx, journalEventsChannel, payload).Err(); err != nil {
		log.Printf("[events] failed to publish journal event: %v", err)
	}
}
