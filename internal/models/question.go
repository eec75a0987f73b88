package models

import (
	"time"

	"github.com/google/uuid"
)

// Question is a forum question with its answers embedded, mirroring the
// single-document shape it is stored in.
type Question struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Images      []string  `json:"images,omitempty"`
	AskedByID   uuid.UUID `json:"askedById"`
	AskedBy     string    `json:"askedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	Upvotes     int       `json:"upvotes"`
	UpvotedBy   []string  `json:"-"`
	DownvotedBy []string  `json:"-"`
	Answers     []Answer  `json:"answers"`
}

// Answer is embedded in its question and never stored on its own.
type Answer struct {
	ID          uuid.UUID `json:"id"`
	Text        string    `json:"text"`
	AnsweredBy  string    `json:"answeredBy"`
	CreatedAt   time.Time `json:"createdAt"`
	Upvotes     int       `json:"upvotes"`
	UpvotedBy   []string  `json:"-"`
	DownvotedBy []string  `json:"-"`
}

// Score is the question's vote total, derived from the voter sets.
func (q *Question) Score() int {
	return len(q.UpvotedBy) - len(q.DownvotedBy)
}

// Score is the answer's vote total, derived from the voter sets.
func (a *Answer) Score() int {
	return len(a.UpvotedBy) - len(a.DownvotedBy)
}

// Recount refreshes the derived vote totals on the question and every
// embedded answer. Callers mutate the voter sets, then recount.
func (q *Question) Recount() {
	q.Upvotes = q.Score()
	for i := range q.Answers {
		q.Answers[i].Upvotes = q.Answers[i].Score()
	}
}

// CastVote records a vote on the question by the given user. The user ID
// ends up in exactly one of the voter sets; voting the same direction twice
// is a no-op reported as VoteDuplicate.
func (q *Question) CastVote(userID uuid.UUID, direction VoteDirection) VoteOutcome {
	up, down, outcome := castVote(q.UpvotedBy, q.DownvotedBy, userID.String(), direction)
	if outcome != VoteDuplicate {
		q.UpvotedBy, q.DownvotedBy = up, down
		q.Recount()
	}
	return outcome
}

// CastAnswerVote records a vote on the embedded answer with the given ID.
// The second return value is false when no such answer exists.
func (q *Question) CastAnswerVote(answerID uuid.UUID, username string, direction VoteDirection) (VoteOutcome, bool) {
	for i := range q.Answers {
		if q.Answers[i].ID != answerID {
			continue
		}
		up, down, outcome := castVote(q.Answers[i].UpvotedBy, q.Answers[i].DownvotedBy, username, direction)
		if outcome != VoteDuplicate {
			q.Answers[i].UpvotedBy, q.Answers[i].DownvotedBy = up, down
			q.Recount()
		}
		return outcome, true
	}
	return VoteDuplicate, false
}

// AppendAnswer adds a new answer to the question and returns it.
func (q *Question) AppendAnswer(text, username string) Answer {
	answer := Answer{
		ID:         uuid.New(),
		Text:       text,
		AnsweredBy: username,
		CreatedAt:  time.Now(),
	}
	q.Answers = append(q.Answers, answer)
	return answer
}
