// Package mongostore implements the store interfaces on MongoDB. One Store
// wraps a single long-lived client and resolves the per-role databases and
// per-subject collections by name.
package mongostore

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"answersheet_backend/backend/internal/shared"
	"answersheet_backend/backend/internal/store"
)

const queryTimeout = 10 * time.Second

// Store implements store.Store on MongoDB
type Store struct {
	client *mongo.Client

	usersCol       *mongo.Collection
	submissionsDB  *mongo.Database
	resultsDB      *mongo.Database
	extractedDB    *mongo.Database
	idealAnswersDB *mongo.Database
}

// New creates a Store from a connected client and configured database names
func New(client *mongo.Client, config *shared.MongoConfig) *Store {
	return &Store{
		client:         client,
		usersCol:       client.Database(config.UsersDatabase).Collection("users"),
		submissionsDB:  client.Database(config.SubmissionsDatabase),
		resultsDB:      client.Database(config.ResultsDatabase),
		extractedDB:    client.Database(config.ExtractedDatabase),
		idealAnswersDB: client.Database(config.IdealDatabase),
	}
}

// EnsureIndexes creates the uniqueness constraints backing the advisory
// existence checks: username and roll_number on the users collection, and
// the composite submission key on each allowlisted subject collection.
func (s *Store) EnsureIndexes(ctx context.Context, subjects []string) error {
	idxCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "roll_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.usersCol.Indexes().CreateMany(idxCtx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	submissionKey := bson.D{
		{Key: "year", Value: 1},
		{Key: "section", Value: 1},
		{Key: "roll_number", Value: 1},
		{Key: "paper_id", Value: 1},
	}
	for _, subject := range subjects {
		col := s.submissionsDB.Collection(subject)
		_, err := col.Indexes().CreateOne(idxCtx, mongo.IndexModel{
			Keys:    submissionKey,
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create submission index for %s: %w", subject, err)
		}
	}

	log.Printf("Ensured unique indexes for users and %d subject collections", len(subjects))
	return nil
}

// ============================================================================
// AccountStore
// ============================================================================

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := s.usersCol.CountDocuments(queryCtx, bson.M{"username": username})
	if err != nil {
		return false, fmt.Errorf("failed to count usernames: %w", err)
	}
	return count > 0, nil
}

func (s *Store) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := s.usersCol.CountDocuments(queryCtx, bson.M{"roll_number": rollNumber})
	if err != nil {
		return false, fmt.Errorf("failed to count roll numbers: %w", err)
	}
	return count > 0, nil
}

func (s *Store) InsertAccount(ctx context.Context, account *shared.UserAccount) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := s.usersCol.InsertOne(queryCtx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (s *Store) FindAccountByUsername(ctx context.Context, username string) (*shared.UserAccount, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var account shared.UserAccount
	err := s.usersCol.FindOne(queryCtx, bson.M{"username": username}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &account, nil
}

// ============================================================================
// SubmissionStore
// ============================================================================

func keyFilter(key shared.SubmissionKey) bson.M {
	return bson.M{
		"year":        key.Year,
		"section":     key.Section,
		"roll_number": key.RollNumber,
		"paper_id":    key.PaperID,
	}
}

func (s *Store) FindSubmission(ctx context.Context, subject string, key shared.SubmissionKey) (*shared.SubmissionRecord, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var record shared.SubmissionRecord
	err := s.submissionsDB.Collection(subject).FindOne(queryCtx, keyFilter(key)).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return &record, nil
}

func (s *Store) InsertSubmission(ctx context.Context, subject string, record *shared.SubmissionRecord) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := s.submissionsDB.Collection(subject).InsertOne(queryCtx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (s *Store) SetSubmissionImage(ctx context.Context, subject string, key shared.SubmissionKey, questionNumber, imageURL string) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"image_urls." + questionNumber: imageURL,
			"updated_at":                   time.Now(),
		},
	}
	result, err := s.submissionsDB.Collection(subject).UpdateOne(queryCtx, keyFilter(key), update)
	if err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SubmissionPaperIDs(ctx context.Context, subject string) ([]string, error) {
	return s.distinctPaperIDs(ctx, s.submissionsDB.Collection(subject))
}

// ============================================================================
// ResultStore
// ============================================================================

func (s *Store) ResultSubjects(ctx context.Context) ([]string, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	names, err := s.resultsDB.ListCollectionNames(queryCtx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list result collections: %w", err)
	}
	return names, nil
}

func (s *Store) ResultPaperIDs(ctx context.Context, subject string) ([]string, error) {
	return s.distinctPaperIDs(ctx, s.resultsDB.Collection(subject))
}

func (s *Store) FindGradedResults(ctx context.Context, subject, paperID, rollNumber string) ([]shared.GradedResult, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"paper_id": paperID, "roll_number": rollNumber}
	cursor, err := s.resultsDB.Collection(subject).Find(queryCtx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query graded results: %w", err)
	}
	defer cursor.Close(queryCtx)

	var results []shared.GradedResult
	if err := cursor.All(queryCtx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode graded results: %w", err)
	}
	return results, nil
}

func (s *Store) FindExtractedText(ctx context.Context, subject, paperID, rollNumber, questionNo string) (*shared.ExtractedText, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"paper_id": paperID, "roll_number": rollNumber, "question_no": questionNo}
	var text shared.ExtractedText
	err := s.extractedDB.Collection(subject).FindOne(queryCtx, filter).Decode(&text)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find extracted text: %w", err)
	}
	return &text, nil
}

func (s *Store) FindIdealAnswer(ctx context.Context, subject, paperID, questionNo string) (*shared.IdealAnswer, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"paper_id": paperID, "question_no": questionNo}
	var answer shared.IdealAnswer
	err := s.idealAnswersDB.Collection(subject).FindOne(queryCtx, filter).Decode(&answer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ideal answer: %w", err)
	}
	return &answer, nil
}

// ============================================================================
// Seeding Helpers (used by cmd/seeder)
// ============================================================================

// InsertGradedResult writes one graded-result document into a subject's
// results collection
func (s *Store) InsertGradedResult(ctx context.Context, subject string, result *shared.GradedResult) error {
	_, err := s.resultsDB.Collection(subject).InsertOne(ctx, result)
	return err
}

// InsertExtractedText writes one extracted-text document into a subject's
// extracted-text collection
func (s *Store) InsertExtractedText(ctx context.Context, subject string, text *shared.ExtractedText) error {
	_, err := s.extractedDB.Collection(subject).InsertOne(ctx, text)
	return err
}

// InsertIdealAnswer writes one ideal-answer document into a subject's
// reference-answer collection
func (s *Store) InsertIdealAnswer(ctx context.Context, subject string, answer *shared.IdealAnswer) error {
	_, err := s.idealAnswersDB.Collection(subject).InsertOne(ctx, answer)
	return err
}

// ============================================================================
// Internal Helpers
// ============================================================================

func (s *Store) distinctPaperIDs(ctx context.Context, col *mongo.Collection) ([]string, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	values, err := col.Distinct(queryCtx, "paper_id", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct paper ids: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
