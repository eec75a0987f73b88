package models

import (
	"time"

	"github.com/google/uuid"
)

// User holds account data plus weak references into the questions
// collection. The reference lists carry question IDs only; the questions
// themselves own their content.
type User struct {
	ID                 uuid.UUID   `json:"id"`
	Username           string      `json:"username"`
	Email              string      `json:"email"`
	HashedPassword     string      `json:"-"`
	Image              string      `json:"image"`
	CreatedAt          time.Time   `json:"createdAt"`
	Questions          []uuid.UUID `json:"questions"`
	UpvotedQuestions   []uuid.UUID `json:"upvotedQuestions"`
	DownvotedQuestions []uuid.UUID `json:"downvotedQuestions"`
	AnsweredQuestions  []uuid.UUID `json:"answeredQuestions"`
	Answers            []uuid.UUID `json:"answers"`
}

// RecordQuestionVote keeps the user's upvoted/downvoted reference lists in
// step with a vote on a question: the ID lands in the set for the new
// direction and leaves the opposite set if it was there.
func (u *User) RecordQuestionVote(questionID uuid.UUID, direction VoteDirection) {
	u.UpvotedQuestions = removeID(u.UpvotedQuestions, questionID)
	u.DownvotedQuestions = removeID(u.DownvotedQuestions, questionID)
	if direction == VoteUp {
		u.UpvotedQuestions = append(u.UpvotedQuestions, questionID)
	} else {
		u.DownvotedQuestions = append(u.DownvotedQuestions, questionID)
	}
}

// RecordAnswer tracks an authored answer. The question ID is added to
// answeredQuestions at most once; the answer ID is always appended.
func (u *User) RecordAnswer(questionID, answerID uuid.UUID) {
	if !containsID(u.AnsweredQuestions, questionID) {
		u.AnsweredQuestions = append(u.AnsweredQuestions, questionID)
	}
	u.Answers = append(u.Answers, answerID)
}

func containsID(list []uuid.UUID, id uuid.UUID) bool {
	for _, item := range list {
		if item == id {
			return true
		}
	}
	return false
}

func removeID(list []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(list))
	for _, item := range list {
		if item != id {
			out = append(out, item)
		}
	}
	return out
}
