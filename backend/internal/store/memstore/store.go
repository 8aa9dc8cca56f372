// Package memstore implements the store interfaces in memory. It backs the
// hermetic service and HTTP tests and mirrors the Mongo layout: one map per
// role namespace, keyed by exact-case subject name.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"answersheet_backend/backend/internal/shared"
	"answersheet_backend/backend/internal/store"
)

// Store implements store.Store on in-process maps
type Store struct {
	mu sync.RWMutex

	accounts map[string]*shared.UserAccount // by username
	rolls    map[string]string              // roll number -> username

	submissions map[string]map[shared.SubmissionKey]*shared.SubmissionRecord

	graded    map[string][]shared.GradedResult
	extracted map[string][]shared.ExtractedText
	ideal     map[string][]shared.IdealAnswer

	faulty map[string]bool // subjects whose result reads fail
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		accounts:    make(map[string]*shared.UserAccount),
		rolls:       make(map[string]string),
		submissions: make(map[string]map[shared.SubmissionKey]*shared.SubmissionRecord),
		graded:      make(map[string][]shared.GradedResult),
		extracted:   make(map[string][]shared.ExtractedText),
		ideal:       make(map[string][]shared.IdealAnswer),
		faulty:      make(map[string]bool),
	}
}

// ============================================================================
// AccountStore
// ============================================================================

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[username]
	return ok, nil
}

func (s *Store) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rolls[rollNumber]
	return ok, nil
}

func (s *Store) InsertAccount(ctx context.Context, account *shared.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.Username]; ok {
		return store.ErrDuplicateKey
	}
	if _, ok := s.rolls[account.RollNumber]; ok {
		return store.ErrDuplicateKey
	}

	stored := *account
	s.accounts[account.Username] = &stored
	s.rolls[account.RollNumber] = account.Username
	return nil
}

func (s *Store) FindAccountByUsername(ctx context.Context, username string) (*shared.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	found := *account
	return &found, nil
}

// ============================================================================
// SubmissionStore
// ============================================================================

func (s *Store) FindSubmission(ctx context.Context, subject string, key shared.SubmissionKey) (*shared.SubmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.submissions[subject][key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyRecord(record), nil
}

func (s *Store) InsertSubmission(ctx context.Context, subject string, record *shared.SubmissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submissions[subject] == nil {
		s.submissions[subject] = make(map[shared.SubmissionKey]*shared.SubmissionRecord)
	}
	if _, ok := s.submissions[subject][record.Key()]; ok {
		return store.ErrDuplicateKey
	}
	s.submissions[subject][record.Key()] = copyRecord(record)
	return nil
}

func (s *Store) SetSubmissionImage(ctx context.Context, subject string, key shared.SubmissionKey, questionNumber, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.submissions[subject][key]
	if !ok {
		return store.ErrNotFound
	}
	if record.ImageURLs == nil {
		record.ImageURLs = make(map[string]string)
	}
	record.ImageURLs[questionNumber] = imageURL
	record.UpdatedAt = time.Now()
	return nil
}

func (s *Store) SubmissionPaperIDs(ctx context.Context, subject string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	ids := []string{}
	for key := range s.submissions[subject] {
		if !seen[key.PaperID] {
			seen[key.PaperID] = true
			ids = append(ids, key.PaperID)
		}
	}
	return ids, nil
}

// ============================================================================
// ResultStore
// ============================================================================

func (s *Store) ResultSubjects(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	subjects := []string{}
	for subject := range s.graded {
		if !seen[subject] {
			seen[subject] = true
			subjects = append(subjects, subject)
		}
	}
	for subject := range s.faulty {
		if !seen[subject] {
			seen[subject] = true
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}

func (s *Store) ResultPaperIDs(ctx context.Context, subject string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.faulty[subject] {
		return nil, fmt.Errorf("memstore: injected fault for subject %s", subject)
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, result := range s.graded[subject] {
		if !seen[result.PaperID] {
			seen[result.PaperID] = true
			ids = append(ids, result.PaperID)
		}
	}
	return ids, nil
}

func (s *Store) FindGradedResults(ctx context.Context, subject, paperID, rollNumber string) ([]shared.GradedResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.faulty[subject] {
		return nil, fmt.Errorf("memstore: injected fault for subject %s", subject)
	}

	var results []shared.GradedResult
	for _, result := range s.graded[subject] {
		if result.PaperID == paperID && result.RollNumber == rollNumber {
			results = append(results, result)
		}
	}
	return results, nil
}

func (s *Store) FindExtractedText(ctx context.Context, subject, paperID, rollNumber, questionNo string) (*shared.ExtractedText, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.faulty[subject] {
		return nil, fmt.Errorf("memstore: injected fault for subject %s", subject)
	}

	for _, text := range s.extracted[subject] {
		if text.PaperID == paperID && text.RollNumber == rollNumber && text.QuestionNo == questionNo {
			found := text
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) FindIdealAnswer(ctx context.Context, subject, paperID, questionNo string) (*shared.IdealAnswer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.faulty[subject] {
		return nil, fmt.Errorf("memstore: injected fault for subject %s", subject)
	}

	for _, answer := range s.ideal[subject] {
		if answer.PaperID == paperID && answer.QuestionNo == questionNo {
			found := answer
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

// ============================================================================
// Test Seeding Helpers
// ============================================================================

// AddGradedResult seeds one graded-result document for a subject
func (s *Store) AddGradedResult(subject string, result shared.GradedResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graded[subject] = append(s.graded[subject], result)
}

// AddExtractedText seeds one extracted-text document for a subject
func (s *Store) AddExtractedText(subject string, text shared.ExtractedText) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extracted[subject] = append(s.extracted[subject], text)
}

// AddIdealAnswer seeds one ideal-answer document for a subject
func (s *Store) AddIdealAnswer(subject string, answer shared.IdealAnswer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ideal[subject] = append(s.ideal[subject], answer)
}

// FailSubject makes every result read for the subject return an error,
// simulating a storage fault confined to one collection
func (s *Store) FailSubject(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faulty[subject] = true
}

func copyRecord(record *shared.SubmissionRecord) *shared.SubmissionRecord {
	copied := *record
	copied.ImageURLs = make(map[string]string, len(record.ImageURLs))
	for q, url := range record.ImageURLs {
		copied.ImageURLs[q] = url
	}
	return &copied
}
