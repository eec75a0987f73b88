package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"snapshot-qa/internal/auth"
	"snapshot-qa/internal/database"
	"snapshot-qa/internal/engine"
	"snapshot-qa/internal/engine/actors"
	"snapshot-qa/internal/middleware"
	"snapshot-qa/internal/storage"
	"snapshot-qa/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Metrics        *utils.MetricsCollector
	Store          database.Store
	Auth           *middleware.Auth
	Google         *auth.Provider
	Facebook       *auth.Provider
	Uploader       *storage.Uploader
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	metrics *utils.MetricsCollector,
	store database.Store,
	jwtAuth *middleware.Auth,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Metrics:        metrics,
		Store:          store,
		Auth:           jwtAuth,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// request dispatches a message to an actor and waits for the response.
// Every handled request funnels through here, so this is where the
// request counter ticks.
func (s *Server) request(pid *actor.PID, msg interface{}) (interface{}, error) {
	s.Metrics.IncrementRequests()
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	return future.Result()
}

// respond writes the result as JSON, mapping AppErrors to their HTTP status.
func (s *Server) respond(w http.ResponseWriter, result interface{}) {
	if appErr, ok := result.(*utils.AppError); ok {
		s.Metrics.IncrementErrors()
		http.Error(w, appErr.Message, utils.AppErrorToHTTPStatus(appErr.Code))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// currentUserID pulls the authenticated user's ID out of the request
// context. The JWT middleware put it there; a miss means the route was
// wired without protection.
func currentUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

// HandleHealth reports question counts and a metrics snapshot
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.request(s.Engine.GetQuestionActor(), &actors.GetCountsMsg{})
		if err != nil {
			http.Error(w, "Failed to get question count", http.StatusInternalServerError)
			return
		}

		questionCount, ok := result.(int)
		if !ok {
			s.respond(w, result)
			return
		}
		s.respond(w, map[string]interface{}{
			"status":    "ok",
			"questions": questionCount,
			"metrics":   s.Metrics.Snapshot(),
		})
	}
}
