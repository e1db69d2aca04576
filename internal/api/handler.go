package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"searchlab/internal/domain"
	"searchlab/internal/usecase"
)

type sessionResponse struct {
	SessionID    string `json:"session_id"`
	Chunker      string `json:"chunker"`
	Indexer      string `json:"indexer"`
	Documents    int    `json:"documents"`
	IndexSize    int    `json:"index_size"`
	IndexVersion int    `json:"index_version"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Create()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionState(session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionState(session))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.sessions.Delete(id) {
		writeError(w, http.StatusNotFound, "session not found: "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addDocumentRequest struct {
	SourceName string `json:"source_name"`
	Text       string `json:"text"`
}

type documentResponse struct {
	DocumentID string `json:"document_id"`
	SourceName string `json:"source_name"`
	IndexSize  int    `json:"index_size"`
}

func (s *Server) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req addDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.SourceName) == "" {
		req.SourceName = "untitled"
	}
	doc, err := session.AddDocument(req.SourceName, req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, documentResponse{
		DocumentID: doc.ID,
		SourceName: doc.Source,
		IndexSize:  session.Snapshot().Index.Len(),
	})
}

func (s *Server) handleRemoveDocument(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	docID := chi.URLParam(r, "docID")
	removed, err := session.RemoveDocument(docID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "document not found: "+docID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type strategyRequest struct {
	Chunker string `json:"chunker"`
	Indexer string `json:"indexer"`
}

func (s *Server) handleSetStrategy(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req strategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	currentChunker, currentIndexer := session.Strategies()
	if req.Chunker == "" {
		req.Chunker = currentChunker
	}
	if req.Indexer == "" {
		req.Indexer = currentIndexer
	}
	if err := session.SetStrategies(req.Chunker, req.Indexer); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(session))
}

type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

type searchHitResponse struct {
	ChunkID string  `json:"chunk_id"`
	Score   float64 `json:"score"`
	Text    string  `json:"text"`
	Heading string  `json:"heading,omitempty"`
}

type searchResponse struct {
	Results      []searchHitResponse `json:"results"`
	LatencyMS    float64             `json:"latency_ms"`
	IndexVersion int                 `json:"index_version"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.K == 0 {
		req.K = s.defaultK
	}

	snap := session.Snapshot()
	result, latency, err := session.Search(req.Query, req.K)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	chunksByID := make(map[string]domain.Chunk, len(snap.Chunks))
	for _, c := range snap.Chunks {
		chunksByID[c.ID] = c
	}
	hits := make([]searchHitResponse, len(result))
	for i, hit := range result {
		chunk := chunksByID[hit.ChunkID]
		hits[i] = searchHitResponse{
			ChunkID: hit.ChunkID,
			Score:   hit.Score,
			Text:    chunk.Text,
			Heading: chunk.Heading,
		}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Results:      hits,
		LatencyMS:    latency,
		IndexVersion: snap.Version,
	})
}

type evaluateRequest struct {
	K       int             `json:"k"`
	Queries []evaluateQuery `json:"queries"`
}

type evaluateQuery struct {
	Query            string   `json:"query"`
	RelevantChunkIDs []string `json:"relevant_chunk_ids"`
	RelevantChunks   []string `json:"relevant_chunks"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.K == 0 {
		req.K = s.defaultK
	}
	queries := make([]domain.Query, 0, len(req.Queries))
	for _, q := range req.Queries {
		if strings.TrimSpace(q.Query) == "" {
			continue
		}
		queries = append(queries, domain.Query{
			Text:             q.Query,
			RelevantChunkIDs: q.RelevantChunkIDs,
			RelevantTexts:    q.RelevantChunks,
		})
	}

	report, err := session.Evaluate(queries, req.K)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func sessionState(session *usecase.Session) sessionResponse {
	chunkerName, indexerName := session.Strategies()
	snap := session.Snapshot()
	return sessionResponse{
		SessionID:    session.ID,
		Chunker:      chunkerName,
		Indexer:      indexerName,
		Documents:    len(session.Documents()),
		IndexSize:    snap.Index.Len(),
		IndexVersion: snap.Version,
	}
}
