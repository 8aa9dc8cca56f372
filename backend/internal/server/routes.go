// Package server assembles the HTTP surface: chi router, middleware, CORS
// and the route handlers for all components.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"answersheet_backend/backend/internal/account"
	"answersheet_backend/backend/internal/result"
	"answersheet_backend/backend/internal/server/handlers"
	"answersheet_backend/backend/internal/shared"
	"answersheet_backend/backend/internal/submission"
)

// Services bundles the components the routes dispatch to
type Services struct {
	Accounts    *account.Service
	Submissions *submission.Service
	Results     *result.Service
}

// SetupRoutes configures the Chi router, middleware, and route handlers.
func SetupRoutes(services *Services, corsConfig shared.CORSConfig) *chi.Mux {
	r := chi.NewRouter()

	// 1. Global Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAge,
	}))

	// 2. Initialize Handlers
	accountHandler := &handlers.AccountHandler{Accounts: services.Accounts}
	submissionHandler := &handlers.SubmissionHandler{Submissions: services.Submissions}
	resultHandler := &handlers.ResultHandler{Results: services.Results}

	// 3. Define Routes
	r.Post("/signup", accountHandler.Signup)
	r.Post("/login", accountHandler.Login)

	r.Post("/save_submission", submissionHandler.SaveSubmission)
	r.Get("/get_paper_ids", submissionHandler.GetPaperIDs)
	r.Get("/get_all_paper_ids", submissionHandler.GetAllPaperIDs)

	r.Get("/get_result", resultHandler.GetResult)

	// Liveness check
	r.Get("/test", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Test route works!"))
	})

	return r
}
