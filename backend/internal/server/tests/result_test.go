package tests

import (
	"net/http"
	"testing"

	"answersheet_backend/backend/internal/shared"
)

func seedResultDocs(env *TestEnv, subject, paperID, rollNumber string, score float64) {
	env.Store.AddGradedResult(subject, shared.GradedResult{
		PaperID: paperID, RollNumber: rollNumber, QuestionNo: "1", SimilarityScore: score,
	})
	env.Store.AddExtractedText(subject, shared.ExtractedText{
		PaperID: paperID, RollNumber: rollNumber, QuestionNo: "1", Text: subject + " student answer",
	})
	env.Store.AddIdealAnswer(subject, shared.IdealAnswer{
		PaperID: paperID, QuestionNo: "1", Text: subject + " ideal answer",
	})
}

func TestServer_GetResult(t *testing.T) {
	env := setupServerTestEnv(t)
	seedResultDocs(env, "Math", "P1", "R007", 0.91)
	seedResultDocs(env, "Physics", "P1", "R007", 0.74)

	t.Run("Missing Params", func(t *testing.T) {
		rr := doJSON(t, env.Router, "GET", "/get_result", nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 Bad Request, got %d", rr.Code)
		}

		rr = doJSON(t, env.Router, "GET", "/get_result?paper_id=P1", nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 Bad Request, got %d", rr.Code)
		}
	})

	t.Run("Entries From Both Subjects", func(t *testing.T) {
		rr := doJSON(t, env.Router, "GET", "/get_result?paper_id=P1&roll_no=R007", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected 200 OK, got %d. Body: %s", rr.Code, rr.Body.String())
		}

		resp := decodeBody(t, rr)
		results, ok := resp["results"].([]interface{})
		if !ok {
			t.Fatalf("Missing results in response: %v", resp)
		}
		if len(results) != 2 {
			t.Fatalf("Expected 2 result entries, got %d", len(results))
		}

		subjects := make(map[string]bool)
		for _, raw := range results {
			entry := raw.(map[string]interface{})
			subjects[entry["subject"].(string)] = true
			if entry["student_text"] == "" || entry["teacher_text"] == "" {
				t.Errorf("Entry missing texts: %v", entry)
			}
		}
		if !subjects["Math"] || !subjects["Physics"] {
			t.Errorf("Expected entries from both subjects, got %v", subjects)
		}
	})

	t.Run("No Matching Documents", func(t *testing.T) {
		rr := doJSON(t, env.Router, "GET", "/get_result?paper_id=P9&roll_no=R999", nil)
		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected 404 Not Found, got %d", rr.Code)
		}
	})
}

func TestServer_GetResult_FaultConfinedToOneSubject(t *testing.T) {
	env := setupServerTestEnv(t)
	seedResultDocs(env, "Math", "P1", "R007", 0.91)
	env.Store.FailSubject("Physics")

	rr := doJSON(t, env.Router, "GET", "/get_result?paper_id=P1&roll_no=R007", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK despite faulty subject, got %d. Body: %s", rr.Code, rr.Body.String())
	}

	resp := decodeBody(t, rr)
	results, ok := resp["results"].([]interface{})
	if !ok || len(results) != 1 {
		t.Fatalf("Expected the healthy subject's entry, got %v", resp["results"])
	}
	entry := results[0].(map[string]interface{})
	if entry["subject"] != "Math" {
		t.Errorf("Expected Math entry, got %v", entry)
	}
}
