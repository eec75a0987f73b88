// internal/database/question_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"snapshot-qa/internal/models"
	"snapshot-qa/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuestionDocument represents the MongoDB schema for a question. Answers are
// embedded: a question and its answers live and die as one document, which
// is what makes a vote switch a single atomic update.
type QuestionDocument struct {
	ID          string           `bson:"_id"`
	Title       string           `bson:"title"`
	Body        string           `bson:"body"`
	Images      []string         `bson:"images,omitempty"`
	AskedByID   string           `bson:"askedbyid"`
	AskedBy     string           `bson:"askedby"`
	CreatedAt   time.Time        `bson:"createdat"`
	Upvotes     int              `bson:"upvotes"` // Derived from the voter sets, stored for sorting
	UpvotedBy   []string         `bson:"upvotedby"`
	DownvotedBy []string         `bson:"downvotedby"`
	Answers     []AnswerDocument `bson:"answers"`
}

// AnswerDocument is the embedded schema for an answer.
type AnswerDocument struct {
	ID          string    `bson:"id"`
	Text        string    `bson:"text"`
	AnsweredBy  string    `bson:"answeredby"`
	CreatedAt   time.Time `bson:"createdat"`
	Upvotes     int       `bson:"upvotes"`
	UpvotedBy   []string  `bson:"upvotedby"`
	DownvotedBy []string  `bson:"downvotedby"`
}

func questionModelToDocument(question *models.Question) *QuestionDocument {
	question.Recount()

	answers := make([]AnswerDocument, len(question.Answers))
	for i, answer := range question.Answers {
		answers[i] = AnswerDocument{
			ID:          answer.ID.String(),
			Text:        answer.Text,
			AnsweredBy:  answer.AnsweredBy,
			CreatedAt:   answer.CreatedAt,
			Upvotes:     answer.Upvotes,
			UpvotedBy:   answer.UpvotedBy,
			DownvotedBy: answer.DownvotedBy,
		}
	}

	return &QuestionDocument{
		ID:          question.ID.String(),
		Title:       question.Title,
		Body:        question.Body,
		Images:      question.Images,
		AskedByID:   question.AskedByID.String(),
		AskedBy:     question.AskedBy,
		CreatedAt:   question.CreatedAt,
		Upvotes:     question.Upvotes,
		UpvotedBy:   question.UpvotedBy,
		DownvotedBy: question.DownvotedBy,
		Answers:     answers,
	}
}

func questionDocumentToModel(doc *QuestionDocument) (*models.Question, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid question ID: %v", err)
	}

	askedByID, err := uuid.Parse(doc.AskedByID)
	if err != nil {
		return nil, fmt.Errorf("invalid asker ID: %v", err)
	}

	answers := make([]models.Answer, len(doc.Answers))
	for i, answerDoc := range doc.Answers {
		answerID, err := uuid.Parse(answerDoc.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid answer ID: %v", err)
		}
		answers[i] = models.Answer{
			ID:          answerID,
			Text:        answerDoc.Text,
			AnsweredBy:  answerDoc.AnsweredBy,
			CreatedAt:   answerDoc.CreatedAt,
			UpvotedBy:   answerDoc.UpvotedBy,
			DownvotedBy: answerDoc.DownvotedBy,
		}
	}

	question := &models.Question{
		ID:          id,
		Title:       doc.Title,
		Body:        doc.Body,
		Images:      doc.Images,
		AskedByID:   askedByID,
		AskedBy:     doc.AskedBy,
		CreatedAt:   doc.CreatedAt,
		UpvotedBy:   doc.UpvotedBy,
		DownvotedBy: doc.DownvotedBy,
		Answers:     answers,
	}
	question.Recount()
	return question, nil
}

// SaveQuestion creates or updates a question in MongoDB. The whole document
// is written in one update, so votes and the derived score can never drift
// apart in storage.
func (m *MongoDB) SaveQuestion(ctx context.Context, question *models.Question) error {
	doc := questionModelToDocument(question)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": question.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Questions.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetQuestion retrieves a question by its ID.
func (m *MongoDB) GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	var doc QuestionDocument

	err := m.Questions.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrQuestionNotFound, "Question not found", err)
	}
	if err != nil {
		return nil, err
	}

	return questionDocumentToModel(&doc)
}

// ListQuestions retrieves all questions in the requested order: vote score
// ascending, vote score descending, or newest first.
func (m *MongoDB) ListQuestions(ctx context.Context, sort string) ([]*models.Question, error) {
	findOpts := options.Find()
	switch sort {
	case SortVotesAsc:
		findOpts.SetSort(bson.D{{Key: "upvotes", Value: 1}})
	case SortVotesDesc:
		findOpts.SetSort(bson.D{{Key: "upvotes", Value: -1}})
	default:
		findOpts.SetSort(bson.D{{Key: "createdat", Value: -1}})
	}

	cursor, err := m.Questions.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeQuestions(ctx, cursor)
}

// GetQuestionsByIDs retrieves the questions whose IDs are in the given set.
func (m *MongoDB) GetQuestionsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Question, error) {
	if len(ids) == 0 {
		return []*models.Question{}, nil
	}

	cursor, err := m.Questions.Find(ctx, bson.M{"_id": bson.M{"$in": idsToStrings(ids)}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeQuestions(ctx, cursor)
}

// DeleteQuestion removes a question document. Reference cleanup on users is
// a separate pass via RemoveQuestionRefs.
func (m *MongoDB) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	result, err := m.Questions.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrQuestionNotFound, "Question not found", nil)
	}
	return nil
}

func decodeQuestions(ctx context.Context, cursor *mongo.Cursor) ([]*models.Question, error) {
	questions := make([]*models.Question, 0)
	for cursor.Next(ctx) {
		var doc QuestionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		question, err := questionDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, cursor.Err()
}
