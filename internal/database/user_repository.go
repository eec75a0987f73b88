// internal/database/user_repository.go
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

// UserDocument represents the MongoDB schema for a user
type UserDocument struct {
	ID                 string    `bson:"_id"`                // MongoDB primary key
	Username           string    `bson:"username"`           // Username
	Email              string    `bson:"email"`              // Email address
	HashedPassword     string    `bson:"hashedPassword"`     // Hashed password, empty for OAuth-only accounts
	Image              string    `bson:"image"`              // Profile image URL
	CreatedAt          time.Time `bson:"createdAt"`          // Account creation timestamp
	Questions          []string  `bson:"questions"`          // IDs of questions asked
	UpvotedQuestions   []string  `bson:"upvotedQuestions"`   // IDs of questions upvoted
	DownvotedQuestions []string  `bson:"downvotedQuestions"` // IDs of questions downvoted
	AnsweredQuestions  []string  `bson:"answeredQuestions"`  // IDs of questions answered
	Answers            []string  `bson:"answers"`            // IDs of authored answers
}

func userModelToDocument(user *models.User) *UserDocument {
	return &UserDocument{
		ID:                 user.ID.String(),
		Username:           user.Username,
		Email:              user.Email,
		HashedPassword:     user.HashedPassword,
		Image:              user.Image,
		CreatedAt:          user.CreatedAt,
		Questions:          idsToStrings(user.Questions),
		UpvotedQuestions:   idsToStrings(user.UpvotedQuestions),
		DownvotedQuestions: idsToStrings(user.DownvotedQuestions),
		AnsweredQuestions:  idsToStrings(user.AnsweredQuestions),
		Answers:            idsToStrings(user.Answers),
	}
}

func userDocumentToModel(doc *UserDocument) (*models.User, error) {
	userID, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %v", err)
	}

	questions, err := stringsToIDs(doc.Questions)
	if err != nil {
		return nil, err
	}
	upvoted, err := stringsToIDs(doc.UpvotedQuestions)
	if err != nil {
		return nil, err
	}
	downvoted, err := stringsToIDs(doc.DownvotedQuestions)
	if err != nil {
		return nil, err
	}
	answered, err := stringsToIDs(doc.AnsweredQuestions)
	if err != nil {
		return nil, err
	}
	answers, err := stringsToIDs(doc.Answers)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:                 userID,
		Username:           doc.Username,
		Email:              doc.Email,
		HashedPassword:     doc.HashedPassword,
		Image:              doc.Image,
		CreatedAt:          doc.CreatedAt,
		Questions:          questions,
		UpvotedQuestions:   upvoted,
		DownvotedQuestions: downvoted,
		AnsweredQuestions:  answered,
		Answers:            answers,
	}, nil
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToIDs(strs []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(strs))
	for i, s := range strs {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid ID in database: %v", err)
		}
		out[i] = id
	}
	return out, nil
}

// SaveUser creates or updates a user in MongoDB
func (m *MongoDB) SaveUser(ctx context.Context, user *models.User) error {
	doc := userModelToDocument(user)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": user.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Users.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetUser retrieves a user from MongoDB by their ID
func (m *MongoDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return userDocumentToModel(&doc)
}

// GetUserByEmail retrieves a user from MongoDB by their email address
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return userDocumentToModel(&doc)
}

// GetUserByUsername retrieves a user from MongoDB by their username
func (m *MongoDB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return userDocumentToModel(&doc)
}

// RemoveQuestionRefs strips a question ID from the reference lists of every
// user. Answer references are left alone; the answers died with the question
// document and their dangling IDs are an accepted gap.
func (m *MongoDB) RemoveQuestionRefs(ctx context.Context, questionID uuid.UUID) error {
	id := questionID.String()
	update := bson.M{"$pull": bson.M{
		"questions":          id,
		"upvotedQuestions":   id,
		"downvotedQuestions": id,
	}}

	_, err := m.Users.UpdateMany(ctx, bson.M{}, update)
	return err
}

// EnsureUserIndexes creates the unique indexes on email and username
func (m *MongoDB) EnsureUserIndexes(ctx context.Context) error {
	_, err := m.Users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
