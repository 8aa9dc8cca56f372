package tests

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"answersheet_backend/backend/internal/shared"
)

func submissionBody() map[string]string {
	return map[string]string{
		"year":            "2024",
		"section":         "A",
		"roll_number":     "R007",
		"paper_id":        "P1",
		"question_number": "1",
		"image_url":       "https://storage.example.com/math/p1/q1.png",
	}
}

func TestServer_SaveSubmission(t *testing.T) {
	env := setupServerTestEnv(t)

	t.Run("Save Success", func(t *testing.T) {
		rr := doJSON(t, env.Router, "POST", "/save_submission?subject=Math", submissionBody())
		if rr.Code != http.StatusCreated {
			t.Errorf("Expected 201 Created, got %d. Body: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("Missing Subject", func(t *testing.T) {
		rr := doJSON(t, env.Router, "POST", "/save_submission", submissionBody())
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 Bad Request, got %d", rr.Code)
		}
	})

	t.Run("Missing Body Field", func(t *testing.T) {
		body := submissionBody()
		body["image_url"] = ""
		rr := doJSON(t, env.Router, "POST", "/save_submission?subject=Math", body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 Bad Request, got %d", rr.Code)
		}
	})

	t.Run("Merges Entries Across Calls", func(t *testing.T) {
		body := submissionBody()
		body["question_number"] = "2"
		body["image_url"] = "https://storage.example.com/math/p1/q2.png"
		rr := doJSON(t, env.Router, "POST", "/save_submission?subject=Math", body)
		if rr.Code != http.StatusCreated {
			t.Fatalf("Second save failed: %d", rr.Code)
		}

		key := shared.SubmissionKey{Year: "2024", Section: "A", RollNumber: "R007", PaperID: "P1"}
		record, err := env.Store.FindSubmission(context.Background(), "Math", key)
		if err != nil {
			t.Fatalf("Record not found: %v", err)
		}
		if len(record.ImageURLs) != 2 {
			t.Errorf("Expected 2 question entries, got %v", record.ImageURLs)
		}
	})
}

func TestServer_GetPaperIDs(t *testing.T) {
	env := setupServerTestEnv(t)

	rr := doJSON(t, env.Router, "POST", "/save_submission?subject=Math", submissionBody())
	if rr.Code != http.StatusCreated {
		t.Fatalf("Seed save failed: %d", rr.Code)
	}

	t.Run("Missing Subject", func(t *testing.T) {
		rr := doJSON(t, env.Router, "GET", "/get_paper_ids", nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 Bad Request, got %d", rr.Code)
		}
	})

	t.Run("Known Subject", func(t *testing.T) {
		rr := doJSON(t, env.Router, "GET", "/get_paper_ids?subject=Math", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected 200 OK, got %d", rr.Code)
		}
		resp := decodeBody(t, rr)
		ids, ok := resp["paper_ids"].([]interface{})
		if !ok || len(ids) != 1 || ids[0] != "P1" {
			t.Errorf("paper_ids = %v, want [P1]", resp["paper_ids"])
		}
	})

	t.Run("Empty Subject Collection", func(t *testing.T) {
		rr := doJSON(t, env.Router, "GET", "/get_paper_ids?subject=Physics", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected 200 OK, got %d", rr.Code)
		}
		resp := decodeBody(t, rr)
		ids, ok := resp["paper_ids"].([]interface{})
		if !ok || len(ids) != 0 {
			t.Errorf("paper_ids = %v, want empty list", resp["paper_ids"])
		}
	})
}

func TestServer_GetAllPaperIDs(t *testing.T) {
	env := setupServerTestEnv(t)

	env.Store.AddGradedResult("Math", shared.GradedResult{PaperID: "P2", RollNumber: "R001", QuestionNo: "1", SimilarityScore: 0.8})
	env.Store.AddGradedResult("Math", shared.GradedResult{PaperID: "P1", RollNumber: "R001", QuestionNo: "1", SimilarityScore: 0.9})
	env.Store.AddGradedResult("Physics", shared.GradedResult{PaperID: "P1", RollNumber: "R002", QuestionNo: "1", SimilarityScore: 0.7})

	rr := doJSON(t, env.Router, "GET", "/get_all_paper_ids", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", rr.Code)
	}

	resp := decodeBody(t, rr)
	raw, ok := resp["paper_ids"].([]interface{})
	if !ok {
		t.Fatalf("Missing paper_ids in response: %v", resp)
	}
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, id.(string))
	}
	if !reflect.DeepEqual(ids, []string{"P1", "P2"}) {
		t.Errorf("paper_ids = %v, want [P1 P2]", ids)
	}
}
