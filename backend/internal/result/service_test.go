package result

import (
	"context"
	"errors"
	"testing"

	"answersheet_backend/backend/internal/shared"
	"answersheet_backend/backend/internal/store/memstore"
)

func expectCode(t *testing.T, err error, code shared.ErrorCode) {
	t.Helper()
	var svcErr *shared.Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("Expected classified error, got: %v", err)
	}
	if svcErr.Code != code {
		t.Fatalf("Expected error code %d, got %d (%s)", code, svcErr.Code, svcErr.Message)
	}
}

func seedSubject(st *memstore.Store, subject, paperID, rollNumber string, score float64) {
	st.AddGradedResult(subject, shared.GradedResult{
		PaperID: paperID, RollNumber: rollNumber, QuestionNo: "1", SimilarityScore: score,
	})
	st.AddExtractedText(subject, shared.ExtractedText{
		PaperID: paperID, RollNumber: rollNumber, QuestionNo: "1", Text: subject + " student answer",
	})
	st.AddIdealAnswer(subject, shared.IdealAnswer{
		PaperID: paperID, QuestionNo: "1", Text: subject + " ideal answer",
	})
}

func TestGet_Validation(t *testing.T) {
	svc := NewService(memstore.New())
	ctx := context.Background()

	_, _, err := svc.Get(ctx, "", "")
	if err == nil {
		t.Fatal("Expected error for missing params")
	}
	expectCode(t, err, shared.CodeInvalidInput)
}

func TestGet_EntriesAcrossSubjects(t *testing.T) {
	st := memstore.New()
	seedSubject(st, "Math", "P1", "R007", 0.91)
	seedSubject(st, "Physics", "P1", "R007", 0.74)

	svc := NewService(st)
	entries, outcomes, err := svc.Get(context.Background(), "P1", "R007")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	bySubject := make(map[string]shared.ResultEntry)
	for _, entry := range entries {
		bySubject[entry.Subject] = entry
	}

	math, ok := bySubject["Math"]
	if !ok {
		t.Fatal("Missing Math entry")
	}
	if math.SimilarityScore != 0.91 ||
		math.StudentText != "Math student answer" ||
		math.TeacherText != "Math ideal answer" {
		t.Errorf("Math entry mismatch: %+v", math)
	}

	physics, ok := bySubject["Physics"]
	if !ok {
		t.Fatal("Missing Physics entry")
	}
	if physics.SimilarityScore != 0.74 {
		t.Errorf("Physics entry mismatch: %+v", physics)
	}

	for _, outcome := range outcomes {
		if outcome.Skipped {
			t.Errorf("Unexpected skipped subject: %+v", outcome)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	st := memstore.New()
	seedSubject(st, "Math", "P1", "R007", 0.91)

	svc := NewService(st)
	_, _, err := svc.Get(context.Background(), "P9", "R999")
	if err == nil {
		t.Fatal("Expected NotFound for absent documents")
	}
	expectCode(t, err, shared.CodeNotFound)
}

func TestGet_PlaceholderForMissingTexts(t *testing.T) {
	st := memstore.New()
	// Graded result with no extracted or ideal text
	st.AddGradedResult("Math", shared.GradedResult{
		PaperID: "P1", RollNumber: "R007", QuestionNo: "1", SimilarityScore: 0.42,
	})

	svc := NewService(st)
	entries, _, err := svc.Get(context.Background(), "P1", "R007")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].StudentText != shared.TextNotAvailable {
		t.Errorf("StudentText = %q, want placeholder", entries[0].StudentText)
	}
	if entries[0].TeacherText != shared.TextNotAvailable {
		t.Errorf("TeacherText = %q, want placeholder", entries[0].TeacherText)
	}
}

func TestGet_FaultySubjectSkipped(t *testing.T) {
	st := memstore.New()
	seedSubject(st, "Math", "P1", "R007", 0.91)
	st.FailSubject("Physics")

	svc := NewService(st)
	entries, outcomes, err := svc.Get(context.Background(), "P1", "R007")
	if err != nil {
		t.Fatalf("Get failed despite healthy subject: %v", err)
	}
	if len(entries) != 1 || entries[0].Subject != "Math" {
		t.Errorf("Expected the Math entry only, got %+v", entries)
	}

	var skipped *shared.SubjectOutcome
	for i := range outcomes {
		if outcomes[i].Subject == "Physics" {
			skipped = &outcomes[i]
		}
	}
	if skipped == nil || !skipped.Skipped || skipped.Reason == "" {
		t.Errorf("Expected skipped outcome for Physics, got %+v", outcomes)
	}
}

func TestGet_AllSubjectsFaulty(t *testing.T) {
	st := memstore.New()
	st.FailSubject("Math")

	svc := NewService(st)
	_, outcomes, err := svc.Get(context.Background(), "P1", "R007")
	if err == nil {
		t.Fatal("Expected NotFound when every subject is skipped")
	}
	expectCode(t, err, shared.CodeNotFound)
	if len(outcomes) != 1 || !outcomes[0].Skipped {
		t.Errorf("Expected one skipped outcome, got %+v", outcomes)
	}
}
