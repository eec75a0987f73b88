package reputation

import (
	"testing"

	"snapshot-qa/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func question(score int, answers ...models.Answer) *models.Question {
	q := &models.Question{ID: uuid.New(), Answers: answers}
	for i := 0; i < score; i++ {
		q.UpvotedBy = append(q.UpvotedBy, uuid.NewString())
	}
	for i := 0; i > score; i-- {
		q.DownvotedBy = append(q.DownvotedBy, uuid.NewString())
	}
	q.Recount()
	return q
}

func answer(by string, score int) models.Answer {
	a := models.Answer{ID: uuid.New(), AnsweredBy: by}
	for i := 0; i < score; i++ {
		a.UpvotedBy = append(a.UpvotedBy, uuid.NewString())
	}
	for i := 0; i > score; i-- {
		a.DownvotedBy = append(a.DownvotedBy, uuid.NewString())
	}
	a.Upvotes = a.Score()
	return a
}

func TestComputeEmpty(t *testing.T) {
	stats := Compute("gator", nil, nil)

	assert.Equal(t, 0, stats.GoodAnswers)
	assert.Equal(t, 0, stats.UpvoteAnswers)
	assert.Equal(t, 0, stats.TotalAnswers)
	assert.Equal(t, 0, stats.TotalQuestions)
}

func TestComputeCountsOnlyOwnAnswers(t *testing.T) {
	answered := []*models.Question{
		question(0, answer("gator", 3), answer("heron", 5)),
		question(0, answer("gator", -2)),
	}

	stats := Compute("gator", answered, nil)

	assert.Equal(t, 2, stats.TotalAnswers)
	assert.Equal(t, 1, stats.GoodAnswers)
	assert.Equal(t, 1, stats.UpvoteAnswers) // 3 + (-2)
}

func TestComputeQuestionTotals(t *testing.T) {
	asked := []*models.Question{question(4), question(-1), question(1)}

	stats := Compute("gator", nil, asked)

	assert.Equal(t, 3, stats.TotalQuestions)
	assert.Equal(t, 2, stats.GoodQuestions)
	assert.Equal(t, 4, stats.UpvoteQuestions)
}
