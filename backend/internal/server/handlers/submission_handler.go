package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"answersheet_backend/backend/internal/server/util"
	"answersheet_backend/backend/internal/submission"
)

// SubmissionHandler serves the submission and paper-id routes
type SubmissionHandler struct {
	Submissions *submission.Service
}

// RESTSaveSubmissionRequest mirrors the expected JSON input for
// /save_submission (subject travels in the query string)
type RESTSaveSubmissionRequest struct {
	Year           string `json:"year"`
	Section        string `json:"section"`
	RollNumber     string `json:"roll_number"`
	PaperID        string `json:"paper_id"`
	QuestionNumber string `json:"question_number"`
	ImageURL       string `json:"image_url"`
}

// SaveSubmission handles POST /save_submission?subject=...
func (h *SubmissionHandler) SaveSubmission(w http.ResponseWriter, r *http.Request) {
	subject := r.URL.Query().Get("subject")

	var reqBody RESTSaveSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		if errors.Is(err, io.EOF) {
			util.WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := h.Submissions.Upsert(r.Context(), submission.UpsertInput{
		Subject:        subject,
		Year:           reqBody.Year,
		Section:        reqBody.Section,
		RollNumber:     reqBody.RollNumber,
		PaperID:        reqBody.PaperID,
		QuestionNumber: reqBody.QuestionNumber,
		ImageURL:       reqBody.ImageURL,
	})
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Submission saved successfully",
	})
}

// GetPaperIDs handles GET /get_paper_ids?subject=...
func (h *SubmissionHandler) GetPaperIDs(w http.ResponseWriter, r *http.Request) {
	subject := r.URL.Query().Get("subject")

	ids, err := h.Submissions.PaperIDs(r.Context(), subject)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"paper_ids": ids,
	})
}

// GetAllPaperIDs handles GET /get_all_paper_ids
func (h *SubmissionHandler) GetAllPaperIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Submissions.AllPaperIDs(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"paper_ids": ids,
	})
}
