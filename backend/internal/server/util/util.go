package util

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"answersheet_backend/backend/internal/shared"
)

// JSONResponse structure for successful responses
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSONError structure for error responses
type JSONError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON is a helper to write JSON responses
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var response interface{}

	// If payload is already a map with a "success" key, use it directly
	if responseMap, ok := payload.(map[string]interface{}); ok && responseMap["success"] != nil {
		response = payload
	} else if status >= 200 && status < 300 {
		response = JSONResponse{Success: true, Data: payload}
	} else {
		response = JSONError{Success: false, Message: "Unknown error"}
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

// WriteJSONError is a helper to write standardized error JSON responses
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	log.Printf("HTTP Error %d: %s", status, message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResponse := JSONError{
		Success: false,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("Error writing JSON error response: %v", err)
	}
}

// HandleServiceError translates classified service errors to appropriate
// HTTP responses. Only the safe Message of a shared.Error is exposed; the
// underlying cause stays in the server log.
func HandleServiceError(w http.ResponseWriter, err error) {
	var svcErr *shared.Error
	if !errors.As(err, &svcErr) {
		log.Printf("Unclassified error: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch svcErr.Code {
	case shared.CodeInvalidInput:
		WriteJSONError(w, http.StatusBadRequest, svcErr.Message)
	case shared.CodeUnauthorized:
		WriteJSONError(w, http.StatusUnauthorized, svcErr.Message)
	case shared.CodeNotFound:
		WriteJSONError(w, http.StatusNotFound, svcErr.Message)
	case shared.CodeConflict:
		WriteJSONError(w, http.StatusConflict, svcErr.Message)
	default:
		if svcErr.Err != nil {
			log.Printf("Internal error: %v", svcErr.Err)
		}
		WriteJSONError(w, http.StatusInternalServerError, svcErr.Message)
	}
}
