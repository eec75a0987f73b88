// Package reputation derives per-user statistics from authored content.
package reputation

import (
	"snapshot-qa/internal/models"
)

// Stats aggregates a user's footprint across the questions they asked and
// the answers they wrote. "Good" content has a vote score of at least one.
type Stats struct {
	TotalQuestions  int `json:"totalQuestions"`
	TotalAnswers    int `json:"totalAnswers"`
	GoodQuestions   int `json:"goodQuestions"`
	GoodAnswers     int `json:"goodAnswers"`
	UpvoteQuestions int `json:"upvoteQuestions"`
	UpvoteAnswers   int `json:"upvoteAnswers"`
}

// Compute scans the user's answered questions for answers they authored and
// their asked questions for vote totals. Both inputs may be nil.
func Compute(username string, answered []*models.Question, asked []*models.Question) Stats {
	var stats Stats

	for _, question := range answered {
		for _, answer := range question.Answers {
			if answer.AnsweredBy != username {
				continue
			}
			stats.TotalAnswers++
			if answer.Score() >= 1 {
				stats.GoodAnswers++
			}
			stats.UpvoteAnswers += answer.Score()
		}
	}

	stats.TotalQuestions = len(asked)
	for _, question := range asked {
		if question.Score() >= 1 {
			stats.GoodQuestions++
		}
		stats.UpvoteQuestions += question.Score()
	}

	return stats
}
