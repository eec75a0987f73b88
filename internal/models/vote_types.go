package models

// VoteTargetType represents the type of content being voted on.
type VoteTargetType string

const (
	QuestionVote VoteTargetType = "question"
	AnswerVote   VoteTargetType = "answer"
)

// VoteDirection represents the direction of a vote.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// ParseVoteDirection maps the wire form ("up"/"down") to a VoteDirection.
func ParseVoteDirection(value string) (VoteDirection, bool) {
	switch value {
	case string(VoteUp):
		return VoteUp, true
	case string(VoteDown):
		return VoteDown, true
	default:
		return "", false
	}
}

// VoteOutcome describes what applying a vote did to the target.
type VoteOutcome int

const (
	// VoteApplied means the voter had no prior vote and a new one was recorded.
	VoteApplied VoteOutcome = iota
	// VoteSwitched means the voter's prior opposite vote was removed and
	// replaced, moving the score by two.
	VoteSwitched
	// VoteDuplicate means the voter already voted this direction; no change.
	VoteDuplicate
)

// castVote applies a vote to a pair of voter sets and reports the outcome.
// A voter appears in at most one of the two sets. Switching directions is a
// single update: remove from the old set, add to the new one.
func castVote(upvoters, downvoters []string, voter string, direction VoteDirection) ([]string, []string, VoteOutcome) {
	target, opposite := upvoters, downvoters
	if direction == VoteDown {
		target, opposite = downvoters, upvoters
	}

	if containsString(target, voter) {
		return upvoters, downvoters, VoteDuplicate
	}

	outcome := VoteApplied
	if containsString(opposite, voter) {
		opposite = removeString(opposite, voter)
		outcome = VoteSwitched
	}
	target = append(target, voter)

	if direction == VoteDown {
		return opposite, target, outcome
	}
	return target, opposite, outcome
}

func containsString(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}

func removeString(list []string, item string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != item {
			out = append(out, s)
		}
	}
	return out
}
