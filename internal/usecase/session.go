package usecase

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"searchlab/internal/adapter/chunker"
	"searchlab/internal/domain"
	applog "searchlab/internal/platform/log"
	"searchlab/internal/port"
)

// IndexSnapshot is one immutable build of a session's index. Readers that
// grabbed a snapshot keep searching it even after a rebuild replaces it.
type IndexSnapshot struct {
	Version int
	Chunker string
	Indexer string
	Index   port.Index
	Chunks  []domain.Chunk
}

// Session owns a document set and at most one live index, versioned by the
// (document set, chunker, indexer) triple. Any change to the triple rebuilds
// the index and swaps it in atomically.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.RWMutex
	docs     []domain.Document
	chunker  string
	indexer  string
	geometry chunker.Geometry
	embedder port.Embedder
	snapshot *IndexSnapshot
}

func newSession(chunkerName, indexerName string, geo chunker.Geometry, embedder port.Embedder) (*Session, error) {
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		chunker:   chunkerName,
		indexer:   indexerName,
		geometry:  geo,
		embedder:  embedder,
	}
	if err := s.rebuildLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// AddDocument attaches plain text to the session and rebuilds the index.
func (s *Session) AddDocument(source, text string) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := domain.Document{
		ID:      uuid.New().String(),
		Source:  source,
		Text:    text,
		AddedAt: time.Now().UTC(),
	}
	s.docs = append(s.docs, doc)
	if err := s.rebuildLocked(); err != nil {
		s.docs = s.docs[:len(s.docs)-1]
		return domain.Document{}, err
	}
	return doc, nil
}

// RemoveDocument detaches a document and rebuilds. Reports whether the id
// was present.
func (s *Session) RemoveDocument(docID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range s.docs {
		if doc.ID == docID {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return true, s.rebuildLocked()
		}
	}
	return false, nil
}

// SetStrategies switches the chunker/indexer pair. Unknown names fail with
// ErrUnknownStrategy and leave the session untouched.
func (s *Session) SetStrategies(chunkerName, indexerName string) error {
	if err := ValidateStrategies(chunkerName, indexerName); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if chunkerName == s.chunker && indexerName == s.indexer {
		return nil
	}
	prevChunker, prevIndexer := s.chunker, s.indexer
	s.chunker, s.indexer = chunkerName, indexerName
	if err := s.rebuildLocked(); err != nil {
		s.chunker, s.indexer = prevChunker, prevIndexer
		return err
	}
	return nil
}

func (s *Session) rebuildLocked() error {
	ix, chunks, err := BuildIndexWithGeometry(s.docs, s.chunker, s.indexer, s.geometry, s.embedder)
	if err != nil {
		return fmt.Errorf("rebuild session index: %w", err)
	}
	version := 1
	if s.snapshot != nil {
		version = s.snapshot.Version + 1
	}
	s.snapshot = &IndexSnapshot{
		Version: version,
		Chunker: s.chunker,
		Indexer: s.indexer,
		Index:   ix,
		Chunks:  chunks,
	}
	return nil
}

// Snapshot returns the current index build. The returned value stays valid
// as a stale read after later rebuilds.
func (s *Session) Snapshot() *IndexSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Documents returns the attached documents in insertion order.
func (s *Session) Documents() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, len(s.docs))
	copy(docs, s.docs)
	return docs
}

// Strategies returns the active chunker and indexer names.
func (s *Session) Strategies() (chunker, indexer string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunker, s.indexer
}

// Search runs a query against the session's current snapshot. An empty
// corpus is an expected transient state, so it yields an empty result and a
// warning instead of an error.
func (s *Session) Search(query string, k int) (domain.RankedResult, float64, error) {
	snap := s.Snapshot()
	result, latency, err := ExecuteSearch(snap.Index, query, k)
	if errors.Is(err, domain.ErrEmptyIndex) {
		applog.Warn("session has no indexed chunks, returning empty result",
			"session_id", s.ID, "query", query)
		return domain.RankedResult{}, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return result, latency, nil
}

// Evaluate scores a query batch against the session's current snapshot.
// Snippet ground truth is resolved against the snapshot's chunk set first.
func (s *Session) Evaluate(queries []domain.Query, k int) (domain.MetricReport, error) {
	snap := s.Snapshot()
	resolved := ResolveGroundTruth(queries, snap.Chunks)
	return Evaluate(snap.Index, resolved, k)
}

// SessionManager hands out and tracks sessions.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	defaultChunker string
	defaultIndexer string
	geometry       chunker.Geometry
	embedder       port.Embedder
}

// NewSessionManager validates the default strategy pair once so later
// session creation cannot fail on configuration. The geometry applies to
// every session's fixed chunker; the zero value means defaults.
func NewSessionManager(defaultChunker, defaultIndexer string, geo chunker.Geometry, embedder port.Embedder) (*SessionManager, error) {
	if err := ValidateStrategies(defaultChunker, defaultIndexer); err != nil {
		return nil, err
	}
	return &SessionManager{
		sessions:       make(map[string]*Session),
		defaultChunker: defaultChunker,
		defaultIndexer: defaultIndexer,
		geometry:       geo,
		embedder:       embedder,
	}, nil
}

// Create opens a new empty session with the default strategies.
func (m *SessionManager) Create() (*Session, error) {
	s, err := newSession(m.defaultChunker, m.defaultIndexer, m.geometry, m.embedder)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the session with the given id.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete drops a session. Reports whether it existed.
func (m *SessionManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}
