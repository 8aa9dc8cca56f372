// Package submission implements the submission ledger: idempotent upsert of
// per-question answer-sheet image references into per-subject collections,
// and paper-id listing across namespaces.
package submission

import (
	"context"
	"errors"
	"sort"
	"time"

	"answersheet_backend/backend/internal/shared"
	"answersheet_backend/backend/internal/store"
)

// Service provides submission upserts and paper-id queries
type Service struct {
	submissions store.SubmissionStore
	results     store.ResultStore
	allowed     map[string]bool
}

// NewService creates a new submission Service instance. subjects is the
// allowlist of valid subject names; requests naming any other subject fail
// with InvalidInput instead of creating a collection.
func NewService(st store.Store, subjects []string) *Service {
	allowed := make(map[string]bool, len(subjects))
	for _, subject := range subjects {
		allowed[subject] = true
	}
	return &Service{submissions: st, results: st, allowed: allowed}
}

// UpsertInput carries the fields required to record one question's image URL
type UpsertInput struct {
	Subject        string
	Year           string
	Section        string
	RollNumber     string
	PaperID        string
	QuestionNumber string
	ImageURL       string
}

// Upsert records the image URL for a single question of a submission. An
// existing record keeps all its other question entries; an absent record is
// created with only this entry. Repeating the call with the same inputs
// converges to the same stored value.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) error {
	required := []struct {
		name, value string
	}{
		{"subject", in.Subject},
		{"year", in.Year},
		{"section", in.Section},
		{"roll_number", in.RollNumber},
		{"paper_id", in.PaperID},
		{"question_number", in.QuestionNumber},
		{"image_url", in.ImageURL},
	}
	for _, field := range required {
		if field.value == "" {
			return shared.NewError(shared.CodeInvalidInput, field.name+" is required")
		}
	}

	if !s.allowed[in.Subject] {
		return shared.NewError(shared.CodeInvalidInput, "unknown subject: "+in.Subject)
	}

	questionNo, ok := shared.NormalizeQuestionNumber(in.QuestionNumber)
	if !ok {
		return shared.NewError(shared.CodeInvalidInput, "question_number must be a positive integer")
	}

	key := shared.SubmissionKey{
		Year:       in.Year,
		Section:    in.Section,
		RollNumber: in.RollNumber,
		PaperID:    in.PaperID,
	}

	_, err := s.submissions.FindSubmission(ctx, in.Subject, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return shared.WrapError(shared.CodeInternal, "failed to look up submission", err)
		}

		record := &shared.SubmissionRecord{
			Year:       in.Year,
			Section:    in.Section,
			RollNumber: in.RollNumber,
			PaperID:    in.PaperID,
			ImageURLs:  map[string]string{questionNo: in.ImageURL},
			UpdatedAt:  time.Now(),
		}
		err = s.submissions.InsertSubmission(ctx, in.Subject, record)
		if err == nil {
			return nil
		}
		// A concurrent upsert won the insert; fall through to the
		// single-entry update.
		if !errors.Is(err, store.ErrDuplicateKey) {
			return shared.WrapError(shared.CodeInternal, "failed to create submission", err)
		}
	}

	if err := s.submissions.SetSubmissionImage(ctx, in.Subject, key, questionNo, in.ImageURL); err != nil {
		return shared.WrapError(shared.CodeInternal, "failed to update submission", err)
	}
	return nil
}

// PaperIDs returns the distinct paper ids seen in a subject's submission
// collection. An unknown-to-the-store subject yields an empty slice.
func (s *Service) PaperIDs(ctx context.Context, subject string) ([]string, error) {
	if subject == "" {
		return nil, shared.NewError(shared.CodeInvalidInput, "subject is required")
	}
	if !s.allowed[subject] {
		return nil, shared.NewError(shared.CodeInvalidInput, "unknown subject: "+subject)
	}

	ids, err := s.submissions.SubmissionPaperIDs(ctx, subject)
	if err != nil {
		return nil, shared.WrapError(shared.CodeInternal, "failed to query paper ids", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// AllPaperIDs unions the distinct paper ids of every subject collection in
// the results namespace, deduplicated and sorted ascending
func (s *Service) AllPaperIDs(ctx context.Context) ([]string, error) {
	subjects, err := s.results.ResultSubjects(ctx)
	if err != nil {
		return nil, shared.WrapError(shared.CodeInternal, "failed to enumerate result collections", err)
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, subject := range subjects {
		subjectIDs, err := s.results.ResultPaperIDs(ctx, subject)
		if err != nil {
			return nil, shared.WrapError(shared.CodeInternal, "failed to query paper ids for "+subject, err)
		}
		for _, id := range subjectIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	sort.Strings(ids)
	return ids, nil
}
