// Package store defines the storage interfaces shared by the account,
// submission and result components. Implementations resolve per-subject
// collections through a single handle instead of ad hoc string lookups.
package store

import (
	"context"
	"errors"

	"answersheet_backend/backend/internal/shared"
)

// ErrNotFound is returned when a lookup matches no document
var ErrNotFound = errors.New("store: not found")

// ErrDuplicateKey is returned when an insert violates a uniqueness constraint
var ErrDuplicateKey = errors.New("store: duplicate key")

// AccountStore persists user accounts
type AccountStore interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	RollNumberExists(ctx context.Context, rollNumber string) (bool, error)
	InsertAccount(ctx context.Context, account *shared.UserAccount) error
	FindAccountByUsername(ctx context.Context, username string) (*shared.UserAccount, error)
}

// SubmissionStore persists per-subject submission records
type SubmissionStore interface {
	FindSubmission(ctx context.Context, subject string, key shared.SubmissionKey) (*shared.SubmissionRecord, error)
	InsertSubmission(ctx context.Context, subject string, record *shared.SubmissionRecord) error
	// SetSubmissionImage overwrites a single question entry of an existing
	// record, leaving all other entries untouched
	SetSubmissionImage(ctx context.Context, subject string, key shared.SubmissionKey, questionNumber, imageURL string) error
	SubmissionPaperIDs(ctx context.Context, subject string) ([]string, error)
}

// ResultStore reads the graded-result, extracted-text and ideal-answer
// namespaces produced by the evaluation pipeline
type ResultStore interface {
	// ResultSubjects enumerates the subject collections present in the
	// results namespace
	ResultSubjects(ctx context.Context) ([]string, error)
	ResultPaperIDs(ctx context.Context, subject string) ([]string, error)
	FindGradedResults(ctx context.Context, subject, paperID, rollNumber string) ([]shared.GradedResult, error)
	FindExtractedText(ctx context.Context, subject, paperID, rollNumber, questionNo string) (*shared.ExtractedText, error)
	FindIdealAnswer(ctx context.Context, subject, paperID, questionNo string) (*shared.IdealAnswer, error)
}

// Store is the single storage handle created at startup and passed to each
// component
type Store interface {
	AccountStore
	SubmissionStore
	ResultStore
}
