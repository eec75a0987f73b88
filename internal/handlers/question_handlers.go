package handlers

import (
	"encoding/json"
	"net/http"

	"snapshot-qa/internal/database"
	"snapshot-qa/internal/engine/actors"
	"snapshot-qa/internal/models"

	"github.com/google/uuid"
)

type answerRequest struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type deleteQuestionRequest struct {
	QuestionID string `json:"questionId"`
}

// HandleQuestion routes question reads and creation on the same path
func (s *Server) HandleQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleAskQuestion(w, r)
		case http.MethodGet:
			s.handleGetQuestion(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleAskQuestion accepts a multipart form with a title, a body and up
// to six attached images. Images land in object storage before the
// question is created, so a failed upload never leaves a half-built post.
func (s *Server) handleAskQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	body := r.FormValue("body")
	if title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	images, appErr := s.uploadQuestionImages(r)
	if appErr != nil {
		s.respond(w, appErr)
		return
	}

	result, err := s.request(s.Engine.GetQuestionActor(), &actors.AskQuestionMsg{
		Title:     title,
		Body:      body,
		Images:    images,
		AskedByID: userID,
	})
	if err != nil {
		http.Error(w, "Question creation timed out", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid question ID", http.StatusBadRequest)
		return
	}

	result, reqErr := s.request(s.Engine.GetQuestionActor(), &actors.GetQuestionMsg{
		QuestionID: questionID,
	})
	if reqErr != nil {
		http.Error(w, "Question lookup timed out", http.StatusInternalServerError)
		return
	}

	if question, ok := result.(*models.Question); ok {
		s.respond(w, newQuestionView(question))
		return
	}
	s.respond(w, result)
}

// HandleListQuestions returns all questions in the requested order
func (s *Server) HandleListQuestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		sortOrder := r.URL.Query().Get("sort")
		switch sortOrder {
		case "":
			sortOrder = database.SortNewest
		case database.SortVotesAsc, database.SortVotesDesc, database.SortNewest:
		default:
			http.Error(w, "Invalid sort order", http.StatusBadRequest)
			return
		}

		result, err := s.request(s.Engine.GetQuestionActor(), &actors.ListQuestionsMsg{
			Sort: sortOrder,
		})
		if err != nil {
			http.Error(w, "Question listing timed out", http.StatusInternalServerError)
			return
		}

		if questions, ok := result.([]*models.Question); ok {
			s.respond(w, newQuestionViews(questions))
			return
		}
		s.respond(w, result)
	}
}

// HandleAnswerQuestion appends an answer to a question
func (s *Server) HandleAnswerQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var req answerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Answer == "" {
			http.Error(w, "Answer text is required", http.StatusBadRequest)
			return
		}

		questionID, err := uuid.Parse(req.QuestionID)
		if err != nil {
			http.Error(w, "Invalid question ID", http.StatusBadRequest)
			return
		}

		result, reqErr := s.request(s.Engine.GetQuestionActor(), &actors.AnswerQuestionMsg{
			QuestionID: questionID,
			UserID:     userID,
			Text:       req.Answer,
		})
		if reqErr != nil {
			http.Error(w, "Answer creation timed out", http.StatusInternalServerError)
			return
		}

		s.respond(w, result)
	}
}

// HandleDeleteQuestion removes a question the caller owns
func (s *Server) HandleDeleteQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var req deleteQuestionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		questionID, err := uuid.Parse(req.QuestionID)
		if err != nil {
			http.Error(w, "Invalid question ID", http.StatusBadRequest)
			return
		}

		result, reqErr := s.request(s.Engine.GetQuestionActor(), &actors.DeleteQuestionMsg{
			QuestionID: questionID,
			UserID:     userID,
		})
		if reqErr != nil {
			http.Error(w, "Question deletion timed out", http.StatusInternalServerError)
			return
		}

		s.respond(w, result)
	}
}
