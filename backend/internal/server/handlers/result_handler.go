package handlers

import (
	"log"
	"net/http"

	"answersheet_backend/backend/internal/result"
	"answersheet_backend/backend/internal/server/util"
)

// ResultHandler serves the result retrieval route
type ResultHandler struct {
	Results *result.Service
}

// GetResult handles GET /get_result?paper_id=...&roll_no=...
func (h *ResultHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	paperID := r.URL.Query().Get("paper_id")
	rollNo := r.URL.Query().Get("roll_no")

	if paperID == "" || rollNo == "" {
		util.WriteJSONError(w, http.StatusBadRequest, "paper_id and roll_no are required")
		return
	}

	entries, outcomes, err := h.Results.Get(r.Context(), paperID, rollNo)
	for _, outcome := range outcomes {
		if outcome.Skipped {
			log.Printf("Warning: skipped subject %s during result aggregation: %s", outcome.Subject, outcome.Reason)
		}
	}
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"results": entries,
	})
}
