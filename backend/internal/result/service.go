// Package result implements the result aggregator: a fan-out read across
// every subject collection in the results namespace, joining graded scores
// with extracted and reference text into a per-student report.
package result

import (
	"context"
	"errors"

	"answersheet_backend/backend/internal/shared"
	"answersheet_backend/backend/internal/store"
)

// Service assembles result reports
type Service struct {
	results store.ResultStore
}

// NewService creates a new result Service instance
func NewService(results store.ResultStore) *Service {
	return &Service{results: results}
}

// Get assembles one ResultEntry per graded-result document matching
// (paperID, rollNumber) across all subjects. A failure confined to one
// subject skips that subject and is reported in its outcome; it does not
// abort the aggregation. An empty final report fails with NotFound.
func (s *Service) Get(ctx context.Context, paperID, rollNumber string) ([]shared.ResultEntry, []shared.SubjectOutcome, error) {
	if paperID == "" || rollNumber == "" {
		return nil, nil, shared.NewError(shared.CodeInvalidInput, "paper_id and roll_no are required")
	}

	subjects, err := s.results.ResultSubjects(ctx)
	if err != nil {
		return nil, nil, shared.WrapError(shared.CodeInternal, "failed to enumerate result collections", err)
	}

	var entries []shared.ResultEntry
	outcomes := make([]shared.SubjectOutcome, 0, len(subjects))

	for _, subject := range subjects {
		subjectEntries, err := s.collectSubject(ctx, subject, paperID, rollNumber)
		if err != nil {
			outcomes = append(outcomes, shared.SubjectOutcome{
				Subject: subject,
				Skipped: true,
				Reason:  err.Error(),
			})
			continue
		}
		entries = append(entries, subjectEntries...)
		outcomes = append(outcomes, shared.SubjectOutcome{
			Subject: subject,
			Entries: len(subjectEntries),
		})
	}

	if len(entries) == 0 {
		return nil, outcomes, shared.NewError(shared.CodeNotFound, "no results found for paper "+paperID)
	}
	return entries, outcomes, nil
}

// collectSubject joins the graded, extracted and ideal documents of one
// subject. Missing texts substitute a placeholder; any storage error is
// returned whole so the caller can skip the subject.
func (s *Service) collectSubject(ctx context.Context, subject, paperID, rollNumber string) ([]shared.ResultEntry, error) {
	graded, err := s.results.FindGradedResults(ctx, subject, paperID, rollNumber)
	if err != nil {
		return nil, err
	}

	var entries []shared.ResultEntry
	for _, result := range graded {
		studentText := shared.TextNotAvailable
		extracted, err := s.results.FindExtractedText(ctx, subject, paperID, rollNumber, result.QuestionNo)
		if err == nil {
			studentText = extracted.Text
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		teacherText := shared.TextNotAvailable
		ideal, err := s.results.FindIdealAnswer(ctx, subject, paperID, result.QuestionNo)
		if err == nil {
			teacherText = ideal.Text
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		entries = append(entries, shared.ResultEntry{
			Subject:         subject,
			QuestionNo:      result.QuestionNo,
			SimilarityScore: result.SimilarityScore,
			TeacherText:     teacherText,
			StudentText:     studentText,
		})
	}
	return entries, nil
}
