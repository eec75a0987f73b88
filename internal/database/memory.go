// internal/database/memory.go
package database

import (
	"context"
	"sort"
	"sync"

	"snapshot-qa/internal/models"
	"snapshot-qa/internal/utils"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used by the tests and for running the
// engine without a database. All data is copied on the way in and out so
// callers never share slices with the store.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]*models.User
	questions map[uuid.UUID]*models.Question
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[uuid.UUID]*models.User),
		questions: make(map[uuid.UUID]*models.Question),
	}
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) SaveUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, exists := s.users[id]; exists {
		return copyUser(user), nil
	}
	return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
}

func (s *MemoryStore) RemoveQuestionRefs(ctx context.Context, questionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		user.Questions = withoutID(user.Questions, questionID)
		user.UpvotedQuestions = withoutID(user.UpvotedQuestions, questionID)
		user.DownvotedQuestions = withoutID(user.DownvotedQuestions, questionID)
	}
	return nil
}

func (s *MemoryStore) SaveQuestion(ctx context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	question.Recount()
	s.questions[question.ID] = copyQuestion(question)
	return nil
}

func (s *MemoryStore) GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if question, exists := s.questions[id]; exists {
		return copyQuestion(question), nil
	}
	return nil, utils.NewAppError(utils.ErrQuestionNotFound, "Question not found", nil)
}

func (s *MemoryStore) ListQuestions(ctx context.Context, sortOrder string) ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := make([]*models.Question, 0, len(s.questions))
	for _, question := range s.questions {
		questions = append(questions, copyQuestion(question))
	}

	switch sortOrder {
	case SortVotesAsc:
		sort.Slice(questions, func(i, j int) bool { return questions[i].Upvotes < questions[j].Upvotes })
	case SortVotesDesc:
		sort.Slice(questions, func(i, j int) bool { return questions[i].Upvotes > questions[j].Upvotes })
	default:
		sort.Slice(questions, func(i, j int) bool { return questions[i].CreatedAt.After(questions[j].CreatedAt) })
	}

	return questions, nil
}

func (s *MemoryStore) GetQuestionsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := make([]*models.Question, 0, len(ids))
	for _, id := range ids {
		if question, exists := s.questions[id]; exists {
			questions = append(questions, copyQuestion(question))
		}
	}
	return questions, nil
}

func (s *MemoryStore) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.questions[id]; !exists {
		return utils.NewAppError(utils.ErrQuestionNotFound, "Question not found", nil)
	}
	delete(s.questions, id)
	return nil
}

func copyUser(user *models.User) *models.User {
	copied := *user
	copied.Questions = append([]uuid.UUID(nil), user.Questions...)
	copied.UpvotedQuestions = append([]uuid.UUID(nil), user.UpvotedQuestions...)
	copied.DownvotedQuestions = append([]uuid.UUID(nil), user.DownvotedQuestions...)
	copied.AnsweredQuestions = append([]uuid.UUID(nil), user.AnsweredQuestions...)
	copied.Answers = append([]uuid.UUID(nil), user.Answers...)
	return &copied
}

func copyQuestion(question *models.Question) *models.Question {
	copied := *question
	copied.Images = append([]string(nil), question.Images...)
	copied.UpvotedBy = append([]string(nil), question.UpvotedBy...)
	copied.DownvotedBy = append([]string(nil), question.DownvotedBy...)
	copied.Answers = make([]models.Answer, len(question.Answers))
	for i, answer := range question.Answers {
		copied.Answers[i] = answer
		copied.Answers[i].UpvotedBy = append([]string(nil), answer.UpvotedBy...)
		copied.Answers[i].DownvotedBy = append([]string(nil), answer.DownvotedBy...)
	}
	return &copied
}

func withoutID(list []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(list))
	for _, item := range list {
		if item != id {
			out = append(out, item)
		}
	}
	return out
}
