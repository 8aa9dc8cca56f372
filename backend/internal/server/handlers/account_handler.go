package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"answersheet_backend/backend/internal/account"
	"answersheet_backend/backend/internal/server/util"
)

// AccountHandler serves the signup and login routes
type AccountHandler struct {
	Accounts *account.Service
}

// RESTSignupRequest mirrors the expected JSON input for /signup
type RESTSignupRequest struct {
	Fullname   string `json:"fullname"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	RollNumber string `json:"roll_number"`
	Section    string `json:"section"`
	Year       string `json:"year"`
}

// RESTLoginRequest mirrors the expected JSON input for /login
type RESTLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles POST /signup
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var reqBody RESTSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		if errors.Is(err, io.EOF) {
			util.WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := h.Accounts.Register(r.Context(), account.RegisterInput{
		Fullname:   reqBody.Fullname,
		Username:   reqBody.Username,
		Password:   reqBody.Password,
		RollNumber: reqBody.RollNumber,
		Section:    reqBody.Section,
		Year:       reqBody.Year,
	})
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "User registered successfully",
	})
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var reqBody RESTLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		if errors.Is(err, io.EOF) {
			util.WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := h.Accounts.Authenticate(r.Context(), reqBody.Username, reqBody.Password)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"user":    profile,
	})
}
