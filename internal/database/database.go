// internal/database/database.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"snapshot-qa/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store defines the persistence operations the engine depends on. MongoDB
// is the production implementation; MemoryStore backs the tests.
type Store interface {
	// Connection
	Close(ctx context.Context) error

	// User methods
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// RemoveQuestionRefs strips a deleted question's ID from every user's
	// questions/upvotedQuestions/downvotedQuestions lists.
	RemoveQuestionRefs(ctx context.Context, questionID uuid.UUID) error

	// Question methods
	SaveQuestion(ctx context.Context, question *models.Question) error
	GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error)
	ListQuestions(ctx context.Context, sort string) ([]*models.Question, error)
	GetQuestionsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Question, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
}

// Sort orders accepted by ListQuestions.
const (
	SortVotesAsc  = "asc"
	SortVotesDesc = "dec"
	SortNewest    = "time"
)

var _ Store = (*MongoDB)(nil)

type MongoDB struct {
	Client    *mongo.Client
	Users     *mongo.Collection
	Questions *mongo.Collection
}

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")

	db := client.Database(dbName)
	return &MongoDB{
		Client:    client,
		Users:     db.Collection("users"),
		Questions: db.Collection("questions"),
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
