// Package server provides the HTTP REST API for the interview coach.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/server/middleware"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/types"
)

// handleCreateSession starts a new interview from the candidate's
// introduction and returns the first question.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	cfg := session.Config{Limits: s.limits, OutputDir: s.outputDir}
	if s.db != nil {
		cfg.Store = s.db
	}
	runner := session.NewRunner(s.gateway, cfg)
	firstQuestion := runner.Start(r.Context(), req.CandidateText)
	id := s.sessions.Add(userID, runner)

	s.jsonResponse(w, http.StatusCreated, types.SessionResponse{
		SessionID:       id,
		ParticipantName: runner.Ledger().ParticipantName,
		Profile:         runner.Profile(),
		AIMessage:       firstQuestion,
	})
}

// handleListSessions returns summaries of persisted interview exports.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetUserID(r); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
		return
	}

	summaries, err := s.db.ListSessions(r.Context(), 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}
	s.jsonResponse(w, http.StatusOK, summaries)
}

// handleTurn submits one candidate message to an active session.
func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	ms, id, ok := s.ownedSession(w, r)
	if !ok {
		return
	}

	var req types.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.runner.Finished() {
		err := &ErrSessionFinished{SessionID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	reply, done := ms.runner.Step(r.Context(), req.Message)

	s.jsonResponse(w, http.StatusOK, types.TurnResponse{
		SessionID: id,
		TurnID:    ms.runner.TurnCount(),
		AIMessage: reply,
		Finished:  done,
	})
}

// handleFinish ends the interview and generates the final feedback.
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	ms, id, ok := s.ownedSession(w, r)
	if !ok {
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	feedback, _, err := ms.runner.Finish(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate feedback")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.SessionResponse{
		SessionID:       id,
		ParticipantName: ms.runner.Ledger().ParticipantName,
		Profile:         ms.runner.Profile(),
		Finished:        true,
		FinalFeedback:   feedback,
	})
}

// handleReport returns the final feedback for a finished session and evicts
// it from the registry: the report is the last read, everything else lives
// in the export. Finished sessions stay resident only until collected.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ms, id, ok := s.ownedSession(w, r)
	if !ok {
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if !ms.runner.Finished() || ms.runner.Ledger() == nil || ms.runner.Ledger().FinalFeedback == "" {
		s.errorResponse(w, http.StatusConflict, "Session is not finished yet")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.SessionResponse{
		SessionID:       id,
		ParticipantName: ms.runner.Ledger().ParticipantName,
		Finished:        true,
		FinalFeedback:   ms.runner.Ledger().FinalFeedback,
	})
	s.sessions.Remove(id)
}

// ownedSession resolves the {id} path segment to a session owned by the
// authenticated user. Unknown IDs and foreign sessions both return 404.
func (s *Server) ownedSession(w http.ResponseWriter, r *http.Request) (*managedSession, uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, uuid.Nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return nil, uuid.Nil, false
	}

	ms := s.sessions.Get(id)
	if ms == nil || ms.owner != userID {
		notFound := &ErrSessionNotFound{SessionID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return nil, uuid.Nil, false
	}
	return ms, id, true
}
