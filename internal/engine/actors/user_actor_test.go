package actors

import (
	"testing"
	"time"

	"snapshot-qa/internal/database"
	"snapshot-qa/internal/models"
	"snapshot-qa/internal/types"
	"snapshot-qa/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnUserSupervisor(t *testing.T, store database.Store) (*actor.ActorSystem, *actor.PID) {
	t.Helper()
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewUserSupervisor(store)
	})
	return system, system.Root.Spawn(props)
}

func register(t *testing.T, system *actor.ActorSystem, pid *actor.PID, username, email, password string) interface{} {
	t.Helper()
	future := system.Root.RequestFuture(pid, &RegisterUserMsg{
		Username: username,
		Email:    email,
		Password: password,
	}, 5*time.Second)
	result, err := future.Result()
	require.NoError(t, err)
	return result
}

func TestRegisterAndLogin(t *testing.T) {
	store := database.NewMemoryStore()
	system, pid := spawnUserSupervisor(t, store)

	result := register(t, system, pid, "gator", "gator@example.com", "swamp123")
	user, ok := result.(*models.User)
	require.True(t, ok, "unexpected response: %v", result)
	assert.Equal(t, "gator", user.Username)
	assert.Equal(t, DefaultAvatar, user.Image)
	assert.NotEqual(t, "swamp123", user.HashedPassword)

	future := system.Root.RequestFuture(pid, &LoginMsg{
		Email:    "gator@example.com",
		Password: "swamp123",
	}, 5*time.Second)
	loginResult, err := future.Result()
	require.NoError(t, err)
	resp := loginResult.(*types.LoginResponse)
	assert.True(t, resp.Success)
	assert.Equal(t, user.ID.String(), resp.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := database.NewMemoryStore()
	system, pid := spawnUserSupervisor(t, store)

	register(t, system, pid, "gator", "gator@example.com", "swamp123")
	result := register(t, system, pid, "othergator", "gator@example.com", "swamp456")

	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrEmailExists, appErr.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := database.NewMemoryStore()
	system, pid := spawnUserSupervisor(t, store)

	register(t, system, pid, "gator", "gator@example.com", "swamp123")
	result := register(t, system, pid, "gator", "gator2@example.com", "swamp456")

	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrUsernameExists, appErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	store := database.NewMemoryStore()
	system, pid := spawnUserSupervisor(t, store)

	register(t, system, pid, "gator", "gator@example.com", "swamp123")

	future := system.Root.RequestFuture(pid, &LoginMsg{
		Email:    "gator@example.com",
		Password: "wrong",
	}, 5*time.Second)
	result, err := future.Result()
	require.NoError(t, err)
	resp := result.(*types.LoginResponse)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid credentials", resp.Error)
}

func TestOAuthLoginFindOrCreate(t *testing.T) {
	store := database.NewMemoryStore()
	system, pid := spawnUserSupervisor(t, store)

	msg := &OAuthLoginMsg{
		Email:    "heron@example.com",
		Username: "heron",
		Image:    "https://example.com/heron.png",
	}

	future := system.Root.RequestFuture(pid, msg, 5*time.Second)
	result, err := future.Result()
	require.NoError(t, err)
	created := result.(*models.User)
	assert.Equal(t, "heron", created.Username)
	assert.Empty(t, created.HashedPassword)

	// Second sign-in resolves to the same account
	future = system.Root.RequestFuture(pid, msg, 5*time.Second)
	result, err = future.Result()
	require.NoError(t, err)
	found := result.(*models.User)
	assert.Equal(t, created.ID, found.ID)
}

func TestGetProfileStats(t *testing.T) {
	store := database.NewMemoryStore()
	system, pid := spawnUserSupervisor(t, store)

	result := register(t, system, pid, "gator", "gator@example.com", "swamp123")
	user := result.(*models.User)

	// A user with nothing authored has all-zero statistics
	future := system.Root.RequestFuture(pid, &GetProfileMsg{Username: "gator"}, 5*time.Second)
	profileResult, err := future.Result()
	require.NoError(t, err)
	profile := profileResult.(*ProfileResponse)
	assert.Equal(t, user.ID, profile.User.ID)
	assert.Empty(t, profile.Questions)
	assert.Zero(t, profile.Stats.GoodAnswers)
	assert.Zero(t, profile.Stats.UpvoteAnswers)
	assert.Zero(t, profile.Stats.TotalQuestions)
}

func TestGetProfileUnknownUser(t *testing.T) {
	store := database.NewMemoryStore()
	system, pid := spawnUserSupervisor(t, store)

	future := system.Root.RequestFuture(pid, &GetProfileMsg{Username: "nobody"}, 5*time.Second)
	result, err := future.Result()
	require.NoError(t, err)
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrUserNotFound, appErr.Code)
}
