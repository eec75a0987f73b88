package actors

import (
	"log"
	"time"

	stdctx "context"

	"snapshot-qa/internal/database"
	"snapshot-qa/internal/models"
	"snapshot-qa/internal/reputation"
	"snapshot-qa/internal/types"
	"snapshot-qa/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAvatar is assigned to accounts created without a profile image.
const DefaultAvatar = "/uploads/noprofile.png"

// Message types for user operations
type (
	RegisterUserMsg struct {
		Username string
		Email    string
		Password string
	}

	LoginMsg struct {
		Email    string
		Password string
	}

	// OAuthLoginMsg finds or creates the account for a provider profile.
	OAuthLoginMsg struct {
		Email    string
		Username string
		Image    string
	}

	GetProfileMsg struct {
		Username string
		Filter   string // "profile", "asked" or "upvoted"
	}

	UpdateImageMsg struct {
		UserID uuid.UUID
		Image  string
	}
)

// Profile filters accepted by GetProfileMsg.
const (
	FilterProfile = "profile"
	FilterAsked   = "asked"
	FilterUpvoted = "upvoted"
)

// ProfileResponse is what a profile view renders: the user, the question
// list selected by the filter, and the reputation statistics.
type ProfileResponse struct {
	User      *models.User       `json:"user"`
	Questions []*models.Question `json:"questions"`
	Stats     reputation.Stats   `json:"stats"`
}

// UserSupervisor handles account lifecycle and profile reads. Registration
// and OAuth find-or-create are serialized through its mailbox, so duplicate
// checks cannot race each other.
type UserSupervisor struct {
	store database.Store
}

func NewUserSupervisor(store database.Store) actor.Actor {
	return &UserSupervisor{store: store}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func (s *UserSupervisor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *RegisterUserMsg:
		s.handleRegister(context, msg)
	case *LoginMsg:
		log.Printf("UserSupervisor: Processing login request for email: %s", msg.Email)
		s.handleLogin(context, msg)
	case *OAuthLoginMsg:
		s.handleOAuthLogin(context, msg)
	case *GetProfileMsg:
		s.handleGetProfile(context, msg)
	case *UpdateImageMsg:
		s.handleUpdateImage(context, msg)
	}
}

func (s *UserSupervisor) handleRegister(context actor.Context, msg *RegisterUserMsg) {
	ctx := stdctx.Background()

	// Duplicate email and username both surface as user-visible conflicts
	if existing, _ := s.store.GetUserByEmail(ctx, msg.Email); existing != nil {
		log.Printf("UserSupervisor: Email already registered: %s", msg.Email)
		context.Respond(utils.NewAppError(utils.ErrEmailExists, "Email already exists", nil))
		return
	}
	if existing, _ := s.store.GetUserByUsername(ctx, msg.Username); existing != nil {
		log.Printf("UserSupervisor: Username already taken: %s", msg.Username)
		context.Respond(utils.NewAppError(utils.ErrUsernameExists, "Username already exists", nil))
		return
	}

	hashedPassword, err := hashPassword(msg.Password)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Failed to hash password", err))
		return
	}

	user := &models.User{
		ID:             uuid.New(),
		Username:       msg.Username,
		Email:          msg.Email,
		HashedPassword: hashedPassword,
		Image:          DefaultAvatar,
		CreatedAt:      time.Now(),
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		log.Printf("UserSupervisor: Failed to save user: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save user", err))
		return
	}

	log.Printf("UserSupervisor: Successfully created user %s", user.ID)
	context.Respond(user)
}

func (s *UserSupervisor) handleLogin(context actor.Context, msg *LoginMsg) {
	ctx := stdctx.Background()

	user, err := s.store.GetUserByEmail(ctx, msg.Email)
	if err != nil {
		log.Printf("UserSupervisor: Login failed - user lookup: %v", err)
		context.Respond(&types.LoginResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(msg.Password)); err != nil {
		log.Printf("UserSupervisor: Login failed - password comparison: %v", err)
		context.Respond(&types.LoginResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
		return
	}

	log.Printf("UserSupervisor: Login successful for user: %s", user.Username)
	context.Respond(&types.LoginResponse{
		Success: true,
		UserID:  user.ID.String(),
	})
}

func (s *UserSupervisor) handleOAuthLogin(context actor.Context, msg *OAuthLoginMsg) {
	ctx := stdctx.Background()

	user, err := s.store.GetUserByEmail(ctx, msg.Email)
	if err == nil {
		context.Respond(user)
		return
	}
	if !utils.IsErrorCode(err, utils.ErrUserNotFound) {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to look up user", err))
		return
	}

	image := msg.Image
	if image == "" {
		image = DefaultAvatar
	}

	// First sign-in through this provider: create the account. No local
	// password; the account authenticates through the provider only.
	user = &models.User{
		ID:        uuid.New(),
		Username:  msg.Username,
		Email:     msg.Email,
		Image:     image,
		CreatedAt: time.Now(),
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		log.Printf("UserSupervisor: Failed to create OAuth user: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save user", err))
		return
	}

	log.Printf("UserSupervisor: Created user %s from OAuth profile", user.Username)
	context.Respond(user)
}

func (s *UserSupervisor) handleGetProfile(context actor.Context, msg *GetProfileMsg) {
	ctx := stdctx.Background()

	user, err := s.store.GetUserByUsername(ctx, msg.Username)
	if err != nil {
		context.Respond(asAppError(err, "Failed to fetch user"))
		return
	}

	var selected []uuid.UUID
	switch msg.Filter {
	case FilterAsked:
		selected = user.Questions
	case FilterUpvoted:
		selected = user.UpvotedQuestions
	default:
		selected = user.AnsweredQuestions
	}

	questions, err := s.store.GetQuestionsByIDs(ctx, selected)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch questions", err))
		return
	}

	answered, err := s.store.GetQuestionsByIDs(ctx, user.AnsweredQuestions)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch answered questions", err))
		return
	}
	asked, err := s.store.GetQuestionsByIDs(ctx, user.Questions)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch asked questions", err))
		return
	}

	context.Respond(&ProfileResponse{
		User:      user,
		Questions: questions,
		Stats:     reputation.Compute(user.Username, answered, asked),
	})
}

func (s *UserSupervisor) handleUpdateImage(context actor.Context, msg *UpdateImageMsg) {
	ctx := stdctx.Background()

	user, err := s.store.GetUser(ctx, msg.UserID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to fetch user"))
		return
	}

	user.Image = msg.Image
	if err := s.store.SaveUser(ctx, user); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update image", err))
		return
	}

	context.Respond(user)
}
