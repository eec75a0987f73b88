package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestQuestionCastVote(t *testing.T) {
	question := &Question{ID: uuid.New()}
	voter := uuid.New()

	outcome := question.CastVote(voter, VoteUp)
	assert.Equal(t, VoteApplied, outcome)
	assert.Equal(t, 1, question.Upvotes)
	assert.Equal(t, []string{voter.String()}, question.UpvotedBy)

	// Repeating the same vote changes nothing
	outcome = question.CastVote(voter, VoteUp)
	assert.Equal(t, VoteDuplicate, outcome)
	assert.Equal(t, 1, question.Upvotes)
	assert.Len(t, question.UpvotedBy, 1)

	// Switching direction moves the score by two and migrates the voter
	outcome = question.CastVote(voter, VoteDown)
	assert.Equal(t, VoteSwitched, outcome)
	assert.Equal(t, -1, question.Upvotes)
	assert.Empty(t, question.UpvotedBy)
	assert.Equal(t, []string{voter.String()}, question.DownvotedBy)
}

func TestQuestionScoreCanGoNegative(t *testing.T) {
	question := &Question{ID: uuid.New()}

	for i := 0; i < 3; i++ {
		question.CastVote(uuid.New(), VoteDown)
	}
	question.CastVote(uuid.New(), VoteUp)

	assert.Equal(t, -2, question.Upvotes)
	assert.Equal(t, question.Score(), question.Upvotes)
}

func TestQuestionCastAnswerVote(t *testing.T) {
	question := &Question{ID: uuid.New()}
	answer := question.AppendAnswer("use an index", "gator")

	outcome, found := question.CastAnswerVote(answer.ID, "albert", VoteUp)
	assert.True(t, found)
	assert.Equal(t, VoteApplied, outcome)
	assert.Equal(t, 1, question.Answers[0].Upvotes)

	outcome, found = question.CastAnswerVote(answer.ID, "albert", VoteDown)
	assert.True(t, found)
	assert.Equal(t, VoteSwitched, outcome)
	assert.Equal(t, -1, question.Answers[0].Upvotes)
	assert.Equal(t, []string{"albert"}, question.Answers[0].DownvotedBy)
	assert.Empty(t, question.Answers[0].UpvotedBy)

	_, found = question.CastAnswerVote(uuid.New(), "albert", VoteUp)
	assert.False(t, found)
}

func TestUserRecordQuestionVote(t *testing.T) {
	user := &User{ID: uuid.New()}
	questionID := uuid.New()

	user.RecordQuestionVote(questionID, VoteUp)
	assert.Equal(t, []uuid.UUID{questionID}, user.UpvotedQuestions)
	assert.Empty(t, user.DownvotedQuestions)

	// The ID never appears in both sets
	user.RecordQuestionVote(questionID, VoteDown)
	assert.Empty(t, user.UpvotedQuestions)
	assert.Equal(t, []uuid.UUID{questionID}, user.DownvotedQuestions)
}

func TestUserRecordAnswer(t *testing.T) {
	user := &User{ID: uuid.New()}
	questionID := uuid.New()

	user.RecordAnswer(questionID, uuid.New())
	user.RecordAnswer(questionID, uuid.New())

	assert.Len(t, user.AnsweredQuestions, 1)
	assert.Len(t, user.Answers, 2)
}
