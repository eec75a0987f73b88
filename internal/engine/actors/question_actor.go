package actors

import (
	"log"
	"time"

	stdctx "context"

	"snapshot-qa/internal/database"
	"snapshot-qa/internal/models"
	"snapshot-qa/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for Question operations
type (
	AskQuestionMsg struct {
		Title     string
		Body      string
		Images    []string
		AskedByID uuid.UUID
	}

	GetQuestionMsg struct {
		QuestionID uuid.UUID
	}

	ListQuestionsMsg struct {
		Sort string
	}

	AnswerQuestionMsg struct {
		QuestionID uuid.UUID
		UserID     uuid.UUID
		Text       string
	}

	VoteQuestionMsg struct {
		QuestionID uuid.UUID
		UserID     uuid.UUID
		Direction  models.VoteDirection
	}

	VoteAnswerMsg struct {
		QuestionID uuid.UUID
		AnswerID   uuid.UUID
		UserID     uuid.UUID
		Direction  models.VoteDirection
	}

	DeleteQuestionMsg struct {
		QuestionID uuid.UUID
		UserID     uuid.UUID
	}

	GetCountsMsg struct{}
)

// QuestionActor owns every mutation of question documents. Requests are
// processed one at a time off the mailbox, so two votes on the same question
// can never interleave their read-modify-write cycles.
type QuestionActor struct {
	metrics *utils.MetricsCollector
	store   database.Store
}

// NewQuestionActor creates a new QuestionActor instance
func NewQuestionActor(metrics *utils.MetricsCollector, store database.Store) actor.Actor {
	return &QuestionActor{
		metrics: metrics,
		store:   store,
	}
}

// Receive handles incoming messages
func (a *QuestionActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("QuestionActor started")

	case *actor.Stopping:
		log.Printf("QuestionActor stopping")

	case *actor.Stopped:
		log.Printf("QuestionActor stopped")

	case *actor.Restarting:
		log.Printf("QuestionActor restarting")

	case *AskQuestionMsg:
		a.handleAsk(context, msg)
	case *GetQuestionMsg:
		a.handleGet(context, msg)
	case *ListQuestionsMsg:
		a.handleList(context, msg)
	case *AnswerQuestionMsg:
		a.handleAnswer(context, msg)
	case *VoteQuestionMsg:
		log.Printf("QuestionActor: Processing vote on question %s from user %s", msg.QuestionID, msg.UserID)
		a.handleVote(context, msg)
	case *VoteAnswerMsg:
		log.Printf("QuestionActor: Processing vote on answer %s from user %s", msg.AnswerID, msg.UserID)
		a.handleVoteAnswer(context, msg)
	case *DeleteQuestionMsg:
		a.handleDelete(context, msg)
	case *GetCountsMsg:
		a.handleCounts(context)
	default:
		log.Printf("QuestionActor: Unknown message type: %T", msg)
	}
}

func (a *QuestionActor) handleAsk(context actor.Context, msg *AskQuestionMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	asker, err := a.store.GetUser(ctx, msg.AskedByID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrUserNotFound, "Asker not found", err))
		return
	}

	newQuestion := &models.Question{
		ID:        uuid.New(),
		Title:     msg.Title,
		Body:      msg.Body,
		Images:    msg.Images,
		AskedByID: asker.ID,
		AskedBy:   asker.Username,
		CreatedAt: time.Now(),
	}

	log.Printf("QuestionActor: Creating new question %s by %s", newQuestion.ID, asker.Username)

	if err := a.store.SaveQuestion(ctx, newQuestion); err != nil {
		log.Printf("QuestionActor: Failed to save question: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save question", err))
		return
	}

	asker.Questions = append(asker.Questions, newQuestion.ID)
	if err := a.store.SaveUser(ctx, asker); err != nil {
		log.Printf("QuestionActor: Failed to record question on asker: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update asker", err))
		return
	}

	a.metrics.AddOperationLatency("ask_question", time.Since(startTime))
	context.Respond(newQuestion)
}

func (a *QuestionActor) handleGet(context actor.Context, msg *GetQuestionMsg) {
	question, err := a.store.GetQuestion(stdctx.Background(), msg.QuestionID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to fetch question"))
		return
	}
	context.Respond(question)
}

func (a *QuestionActor) handleList(context actor.Context, msg *ListQuestionsMsg) {
	startTime := time.Now()

	questions, err := a.store.ListQuestions(stdctx.Background(), msg.Sort)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to list questions", err))
		return
	}

	a.metrics.AddOperationLatency("list_questions", time.Since(startTime))
	context.Respond(questions)
}

func (a *QuestionActor) handleAnswer(context actor.Context, msg *AnswerQuestionMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	question, err := a.store.GetQuestion(ctx, msg.QuestionID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to fetch question"))
		return
	}

	user, err := a.store.GetUser(ctx, msg.UserID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to fetch user"))
		return
	}

	answer := question.AppendAnswer(msg.Text, user.Username)
	if err := a.store.SaveQuestion(ctx, question); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save answer", err))
		return
	}

	user.RecordAnswer(question.ID, answer.ID)
	if err := a.store.SaveUser(ctx, user); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update user", err))
		return
	}

	a.metrics.AddOperationLatency("answer_question", time.Since(startTime))
	context.Respond(question)
}

func (a *QuestionActor) handleVote(context actor.Context, msg *VoteQuestionMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	question, err := a.store.GetQuestion(ctx, msg.QuestionID)
	if err != nil {
		log.Printf("QuestionActor: Question not found: %s", msg.QuestionID)
		context.Respond(asAppError(err, "Failed to fetch question"))
		return
	}

	user, err := a.store.GetUser(ctx, msg.UserID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to fetch user"))
		return
	}

	outcome := question.CastVote(msg.UserID, msg.Direction)
	if outcome == models.VoteDuplicate {
		log.Printf("QuestionActor: User %s already voted %s on question %s", msg.UserID, msg.Direction, msg.QuestionID)
		context.Respond(utils.NewAppError(utils.ErrDuplicate, "Already voted", nil))
		return
	}

	// Both voter sets and the derived score land in one document write
	if err := a.store.SaveQuestion(ctx, question); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save vote", err))
		return
	}

	user.RecordQuestionVote(question.ID, msg.Direction)
	if err := a.store.SaveUser(ctx, user); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update voter", err))
		return
	}

	a.metrics.AddOperationLatency("vote_question", time.Since(startTime))
	context.Respond(question)
}

func (a *QuestionActor) handleVoteAnswer(context actor.Context, msg *VoteAnswerMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	question, err := a.store.GetQuestion(ctx, msg.QuestionID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to fetch question"))
		return
	}

	user, err := a.store.GetUser(ctx, msg.UserID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to fetch user"))
		return
	}

	// Answer votes are tracked by username, following the embedded schema
	outcome, found := question.CastAnswerVote(msg.AnswerID, user.Username, msg.Direction)
	if !found {
		context.Respond(utils.NewAppError(utils.ErrAnswerNotFound, "Answer not found", nil))
		return
	}
	if outcome == models.VoteDuplicate {
		context.Respond(utils.NewAppError(utils.ErrDuplicate, "Already voted", nil))
		return
	}

	if err := a.store.SaveQuestion(ctx, question); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save vote", err))
		return
	}

	a.metrics.AddOperationLatency("vote_answer", time.Since(startTime))
	context.Respond(question)
}

func (a *QuestionActor) handleDelete(context actor.Context, msg *DeleteQuestionMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	question, err := a.store.GetQuestion(ctx, msg.QuestionID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to fetch question"))
		return
	}

	if question.AskedByID != msg.UserID {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "Only the asker can delete a question", nil))
		return
	}

	if err := a.store.DeleteQuestion(ctx, msg.QuestionID); err != nil {
		context.Respond(asAppError(err, "Failed to delete question"))
		return
	}

	// Cascade: every user's asked/upvoted/downvoted lists drop the ID.
	// References to the question's embedded answers are left dangling.
	if err := a.store.RemoveQuestionRefs(ctx, msg.QuestionID); err != nil {
		log.Printf("QuestionActor: Failed to clean question refs for %s: %v", msg.QuestionID, err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to clean references", err))
		return
	}

	a.metrics.AddOperationLatency("delete_question", time.Since(startTime))
	context.Respond(true)
}

func (a *QuestionActor) handleCounts(context actor.Context) {
	questions, err := a.store.ListQuestions(stdctx.Background(), database.SortNewest)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to count questions", err))
		return
	}
	context.Respond(len(questions))
}

// asAppError passes AppErrors through untouched and wraps anything else as
// a database failure.
func asAppError(err error, message string) *utils.AppError {
	if appErr, ok := err.(*utils.AppError); ok {
		return appErr
	}
	return utils.NewAppError(utils.ErrDatabase, message, err)
}
