// Package metrics maintains process-local usage aggregates: conversations
// held, videos processed, and a running average of analysis confidence.
// The store owns the durable record; callers only ever ask for increments.
package metrics

import (
	"log"
	"sync"
)

// Record is the durable aggregate. Fields only ever grow.
type Record struct {
	ConversationsTotal    int `json:"conversationsTotal"`
	VideosProcessedTotal  int `json:"videosProcessedTotal"`
	AnalysisSampleCount   int `json:"analysisSampleCount"`
	AnalysisConfidenceSum int `json:"analysisConfidenceSum"`
}

// Dashboard is the derived read-side view.
type Dashboard struct {
	TotalConversations int
	VideosProcessed    int
	// AIAccuracyScore is the running average of recorded analysis
	// confidence percentages, 0 until the first sample arrives.
	AIAccuracyScore int
}

// Persistence loads and saves the durable record. Load must report a zero
// record (not an error) when nothing usable is stored yet.
type Persistence interface {
	Load() Record
	Save(Record) error
}

// Subscriber receives the derived view after every mutation.
type Subscriber func(Dashboard)

// Store applies one field mutation per event, persists the record, and
// notifies every subscriber once. Mutations are serialized by a mutex;
// concurrent writers from other processes remain last-writer-wins.
type Store struct {
	mu          sync.Mutex
	persistence Persistence
	subscribers map[int]Subscriber
	nextID      int
}

// NewStore builds a store over the given persistence.
func NewStore(persistence Persistence) *Store {
	return &Store{
		persistence: persistence,
		subscribers: make(map[int]Subscriber),
	}
}

// RecordConversation counts one completed chat exchange.
func (s *Store) RecordConversation() {
	s.mutate(func(r *Record) {
		r.ConversationsTotal++
	})
}

// RecordVideoProcessed counts one analyzed video or YouTube link.
func (s *Store) RecordVideoProcessed() {
	s.mutate(func(r *Record) {
		r.VideosProcessedTotal++
	})
}

// RecordAnalysisSample folds one analysis confidence percentage into the
// running average.
func (s *Store) RecordAnalysisSample(confidencePercent int) {
	s.mutate(func(r *Record) {
		r.AnalysisSampleCount++
		r.AnalysisConfidenceSum += confidencePercent
	})
}

// Read derives the dashboard view from the durable record. A missing or
// corrupt record reads as all zeros.
func (s *Store) Read() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return derive(s.persistence.Load())
}

// Subscribe registers handler for every future mutation and returns its
// unsubscribe function. Unsubscribing twice is harmless.
func (s *Store) Subscribe(handler Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = handler
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) mutate(apply func(*Record)) {
	s.mu.Lock()
	record := s.persistence.Load()
	apply(&record)
	if err := s.persistence.Save(record); err != nil {
		log.Printf("[metrics] failed to persist record: %v", err)
	}
	view := derive(record)
	handlers := make([]Subscriber, 0, len(s.subscribers))
	for _, handler := range s.subscribers {
		handlers = append(handlers, handler)
	}
	s.mu.Unlock()

	for _, handler := range handlers {
		handler(view)
	}
}

func derive(record Record) Dashboard {
	score := 0
	if record.AnalysisSampleCount > 0 {
		score = record.AnalysisConfidenceSum / record.AnalysisSampleCount
	}
	return Dashboard{
		TotalConversations: record.ConversationsTotal,
		VideosProcessed:    record.VideosProcessedTotal,
		AIAccuracyScore:    score,
	}
}
