package handlers

import (
	"snapshot-qa/internal/models"
	"snapshot-qa/internal/utils"
)

// questionView decorates a question with the rendered elapsed times the
// clients show next to it ("asked 3 days" and so on). Empty means the
// post is under a minute old.
type questionView struct {
	*models.Question
	Asked   string       `json:"asked"`
	Answers []answerView `json:"answers"`
}

type answerView struct {
	models.Answer
	Answered string `json:"answered"`
}

func newQuestionView(q *models.Question) questionView {
	answers := make([]answerView, len(q.Answers))
	for i, a := range q.Answers {
		answers[i] = answerView{Answer: a, Answered: utils.FormatElapsed(a.CreatedAt)}
	}
	return questionView{
		Question: q,
		Asked:    utils.FormatElapsed(q.CreatedAt),
		Answers:  answers,
	}
}

func newQuestionViews(questions []*models.Question) []questionView {
	views := make([]questionView, len(questions))
	for i, q := range questions {
		views[i] = newQuestionView(q)
	}
	return views
}
