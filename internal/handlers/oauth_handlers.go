package handlers

import (
	"log"
	"net/http"
	"time"

	"snapshot-qa/internal/auth"
	"snapshot-qa/internal/engine/actors"
	"snapshot-qa/internal/models"
	"snapshot-qa/internal/types"
)

const oauthStateCookie = "oauth_state"

// HandleOAuthStart redirects the browser to the provider's consent page.
// The state nonce is pinned in a short-lived cookie so the callback can
// reject forged redirects.
func (s *Server) HandleOAuthStart(provider *auth.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		state, err := auth.NewState()
		if err != nil {
			http.Error(w, "Failed to start login", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     oauthStateCookie,
			Value:    state,
			Path:     "/",
			Expires:  time.Now().Add(10 * time.Minute),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, provider.AuthURL(state), http.StatusTemporaryRedirect)
	}
}

// HandleOAuthCallback exchanges the provider code, finds or creates the
// account for the profile's email, and issues the same login response as
// a password login.
func (s *Server) HandleOAuthCallback(provider *auth.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		cookie, err := r.Cookie(oauthStateCookie)
		if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
			http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "Missing authorization code", http.StatusBadRequest)
			return
		}

		profile, err := provider.Exchange(r.Context(), code)
		if err != nil {
			log.Printf("%s code exchange failed: %v", provider.Name(), err)
			http.Error(w, "Code exchange failed", http.StatusUnauthorized)
			return
		}
		if profile.Email == "" {
			http.Error(w, "Provider returned no email", http.StatusUnauthorized)
			return
		}

		result, reqErr := s.request(s.Engine.GetUserSupervisor(), &actors.OAuthLoginMsg{
			Email:    profile.Email,
			Username: auth.UsernameFromEmail(profile.Email),
			Image:    profile.Picture,
		})
		if reqErr != nil {
			http.Error(w, "Login timed out", http.StatusInternalServerError)
			return
		}

		user, ok := result.(*models.User)
		if !ok {
			s.respond(w, result)
			return
		}

		token, err := s.Auth.GenerateToken(user.ID)
		if err != nil {
			log.Printf("Error generating token: %v", err)
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}

		s.respond(w, &types.LoginResponse{
			Success: true,
			Token:   token,
			UserID:  user.ID.String(),
		})
	}
}
