package handlers

import (
	"encoding/json"
	"net/http"

	"snapshot-qa/internal/engine/actors"
	"snapshot-qa/internal/models"

	"github.com/google/uuid"
)

type voteRequest struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type voteAnswerRequest struct {
	ID       string `json:"id"`
	AnswerID string `json:"answerId"`
	Value    string `json:"value"`
}

// HandleVoteQuestion casts, switches or rejects a vote on a question
func (s *Server) HandleVoteQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var req voteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		questionID, err := uuid.Parse(req.ID)
		if err != nil {
			http.Error(w, "Invalid question ID", http.StatusBadRequest)
			return
		}

		direction, ok := models.ParseVoteDirection(req.Value)
		if !ok {
			http.Error(w, "Vote value must be \"up\" or \"down\"", http.StatusBadRequest)
			return
		}

		result, reqErr := s.request(s.Engine.GetQuestionActor(), &actors.VoteQuestionMsg{
			QuestionID: questionID,
			UserID:     userID,
			Direction:  direction,
		})
		if reqErr != nil {
			http.Error(w, "Vote timed out", http.StatusInternalServerError)
			return
		}

		s.respond(w, result)
	}
}

// HandleVoteAnswer casts, switches or rejects a vote on an answer
func (s *Server) HandleVoteAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var req voteAnswerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		questionID, err := uuid.Parse(req.ID)
		if err != nil {
			http.Error(w, "Invalid question ID", http.StatusBadRequest)
			return
		}
		answerID, err := uuid.Parse(req.AnswerID)
		if err != nil {
			http.Error(w, "Invalid answer ID", http.StatusBadRequest)
			return
		}

		direction, ok := models.ParseVoteDirection(req.Value)
		if !ok {
			http.Error(w, "Vote value must be \"up\" or \"down\"", http.StatusBadRequest)
			return
		}

		result, reqErr := s.request(s.Engine.GetQuestionActor(), &actors.VoteAnswerMsg{
			QuestionID: questionID,
			AnswerID:   answerID,
			UserID:     userID,
			Direction:  direction,
		})
		if reqErr != nil {
			http.Error(w, "Vote timed out", http.StatusInternalServerError)
			return
		}

		s.respond(w, result)
	}
}
