package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"snapshot-qa/internal/engine/actors"
	"snapshot-qa/internal/models"
	"snapshot-qa/internal/types"
	"snapshot-qa/internal/utils"

	"github.com/google/uuid"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleUserRegistration creates a new local account
func (s *Server) HandleUserRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Email == "" || req.Password == "" {
			http.Error(w, "Username, email and password are required", http.StatusBadRequest)
			return
		}

		result, err := s.request(s.Engine.GetUserSupervisor(), &actors.RegisterUserMsg{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			http.Error(w, "Registration timed out", http.StatusInternalServerError)
			return
		}

		s.respond(w, result)
	}
}

// HandleUserLogin verifies credentials and issues a JWT
func (s *Server) HandleUserLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		result, err := s.request(s.Engine.GetUserSupervisor(), &actors.LoginMsg{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			http.Error(w, "Login timed out", http.StatusInternalServerError)
			return
		}

		s.respond(w, s.withToken(result))
	}
}

// withToken stamps a signed JWT onto a successful login response. The
// supervisor only verifies credentials; signing stays at the HTTP edge
// where the secret lives.
func (s *Server) withToken(result interface{}) interface{} {
	resp, ok := result.(*types.LoginResponse)
	if !ok || !resp.Success {
		return result
	}

	userID, err := uuid.Parse(resp.UserID)
	if err != nil {
		log.Printf("Login response carried a bad user ID: %v", err)
		return utils.NewAppError(utils.ErrInvalidCredentials, "Invalid credentials", nil)
	}

	token, err := s.Auth.GenerateToken(userID)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return utils.NewAppError(utils.ErrUnauthorized, "Error generating token", err)
	}
	resp.Token = token
	return resp
}

// HandleUserProfile returns a user profile with the requested question view
func (s *Server) HandleUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		username := r.URL.Query().Get("username")
		if username == "" {
			http.Error(w, "Username is required", http.StatusBadRequest)
			return
		}

		filter := r.URL.Query().Get("questions")
		switch filter {
		case "":
			filter = actors.FilterProfile
		case actors.FilterProfile, actors.FilterAsked, actors.FilterUpvoted:
		default:
			http.Error(w, "Invalid questions filter", http.StatusBadRequest)
			return
		}

		result, err := s.request(s.Engine.GetUserSupervisor(), &actors.GetProfileMsg{
			Username: username,
			Filter:   filter,
		})
		if err != nil {
			http.Error(w, "Profile lookup timed out", http.StatusInternalServerError)
			return
		}

		s.respond(w, result)
	}
}

// HandleAvatarUpload stores a new profile image for the logged-in user
func (s *Server) HandleAvatarUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		url, appErr := s.uploadFormFile(r, "image", "avatars")
		if appErr != nil {
			s.respond(w, appErr)
			return
		}

		result, err := s.request(s.Engine.GetUserSupervisor(), &actors.UpdateImageMsg{
			UserID: userID,
			Image:  url,
		})
		if err != nil {
			http.Error(w, "Avatar update timed out", http.StatusInternalServerError)
			return
		}

		if user, ok := result.(*models.User); ok {
			s.respond(w, map[string]string{"image": user.Image})
			return
		}
		s.respond(w, result)
	}
}
