package main

import (
	"context"
	"errors"
	"log"

	"answersheet_backend/backend/internal/account"
	"answersheet_backend/backend/internal/shared"
	"answersheet_backend/backend/internal/store/mongostore"
	"answersheet_backend/backend/internal/submission"
)

// Demo constants shared across the seeded documents
const (
	CommonPassword = "password"

	DemoYear    = "2024"
	DemoSection = "A"
	DemoPaper1  = "P1"
	DemoPaper2  = "P2"

	Roll1 = "R001"
	Roll2 = "R002"
	Roll3 = "R003"
)

// AccountSeed describes one demo account
type AccountSeed struct {
	Fullname   string
	Username   string
	RollNumber string
}

// GradedSeed describes one graded question with its texts
type GradedSeed struct {
	Subject    string
	PaperID    string
	RollNumber string
	QuestionNo string
	Score      float64
	Student    string
	Ideal      string
}

func main() {
	log.Println("INFO: Starting seeder...")

	shared.LoadEnv(".env")
	config, err := shared.LoadServerConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	client, err := shared.ConnectMongoDB(&config.MongoDB)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	defer shared.DisconnectMongoDB(client)

	st := mongostore.New(client, &config.MongoDB)
	ctx := context.Background()

	if err := st.EnsureIndexes(ctx, config.Subjects); err != nil {
		log.Fatalf("FATAL: Failed to ensure indexes: %v", err)
	}

	seedAccounts(ctx, st, config)
	seedSubmissions(ctx, st, config)
	seedResults(ctx, st)

	log.Println("INFO: Seeding complete.")
}

func seedAccounts(ctx context.Context, st *mongostore.Store, config *shared.ServerConfig) {
	accounts := account.NewService(st, config.Security.BCryptCost)

	seeds := []AccountSeed{
		{"John Student", "john", Roll1},
		{"Alice Wonderland", "alice", Roll2},
		{"Bob Builder", "bob", Roll3},
	}

	for _, seed := range seeds {
		err := accounts.Register(ctx, account.RegisterInput{
			Fullname:   seed.Fullname,
			Username:   seed.Username,
			Password:   CommonPassword,
			RollNumber: seed.RollNumber,
			Section:    DemoSection,
			Year:       DemoYear,
		})
		if err != nil {
			var svcErr *shared.Error
			if errors.As(err, &svcErr) && svcErr.Code == shared.CodeConflict {
				log.Printf("Account %s already seeded, skipping", seed.Username)
				continue
			}
			log.Fatalf("FATAL: Failed to seed account %s: %v", seed.Username, err)
		}
		log.Printf("Seeded account %s (%s)", seed.Username, seed.RollNumber)
	}
}

func seedSubmissions(ctx context.Context, st *mongostore.Store, config *shared.ServerConfig) {
	submissions := submission.NewService(st, config.Subjects)

	type submissionSeed struct {
		Subject    string
		RollNumber string
		PaperID    string
		QuestionNo string
		ImageURL   string
	}

	seeds := []submissionSeed{
		{"Math", Roll1, DemoPaper1, "1", "https://storage.example.com/math/p1/r001-q1.png"},
		{"Math", Roll1, DemoPaper1, "2", "https://storage.example.com/math/p1/r001-q2.png"},
		{"Math", Roll2, DemoPaper1, "1", "https://storage.example.com/math/p1/r002-q1.png"},
		{"Physics", Roll1, DemoPaper1, "1", "https://storage.example.com/physics/p1/r001-q1.png"},
		{"Physics", Roll3, DemoPaper2, "1", "https://storage.example.com/physics/p2/r003-q1.png"},
	}

	for _, seed := range seeds {
		err := submissions.Upsert(ctx, submission.UpsertInput{
			Subject:        seed.Subject,
			Year:           DemoYear,
			Section:        DemoSection,
			RollNumber:     seed.RollNumber,
			PaperID:        seed.PaperID,
			QuestionNumber: seed.QuestionNo,
			ImageURL:       seed.ImageURL,
		})
		if err != nil {
			log.Fatalf("FATAL: Failed to seed submission for %s/%s: %v", seed.Subject, seed.RollNumber, err)
		}
	}
	log.Printf("Seeded %d submissions", len(seeds))
}

func seedResults(ctx context.Context, st *mongostore.Store) {
	seeds := []GradedSeed{
		{"Math", DemoPaper1, Roll1, "1", 0.91,
			"The derivative of x squared is two x.",
			"d/dx(x^2) = 2x by the power rule."},
		{"Math", DemoPaper1, Roll1, "2", 0.74,
			"Integration reverses differentiation.",
			"The indefinite integral is the antiderivative."},
		{"Math", DemoPaper1, Roll2, "1", 0.55,
			"Two x, from the power rule.",
			"d/dx(x^2) = 2x by the power rule."},
		{"Physics", DemoPaper1, Roll1, "1", 0.88,
			"Force equals mass times acceleration.",
			"Newton's second law: F = ma."},
		{"Physics", DemoPaper2, Roll3, "1", 0.67,
			"Energy is conserved in a closed system.",
			"Total energy of an isolated system is constant."},
	}

	// One ideal answer per (subject, paper, question) even when several
	// students answered it
	type idealKey struct {
		Subject, PaperID, QuestionNo string
	}
	seededIdeals := make(map[idealKey]bool)

	for _, seed := range seeds {
		err := st.InsertGradedResult(ctx, seed.Subject, &shared.GradedResult{
			PaperID:         seed.PaperID,
			RollNumber:      seed.RollNumber,
			QuestionNo:      seed.QuestionNo,
			SimilarityScore: seed.Score,
		})
		if err != nil {
			log.Fatalf("FATAL: Failed to seed graded result: %v", err)
		}

		err = st.InsertExtractedText(ctx, seed.Subject, &shared.ExtractedText{
			PaperID:    seed.PaperID,
			RollNumber: seed.RollNumber,
			QuestionNo: seed.QuestionNo,
			Text:       seed.Student,
		})
		if err != nil {
			log.Fatalf("FATAL: Failed to seed extracted text: %v", err)
		}

		key := idealKey{seed.Subject, seed.PaperID, seed.QuestionNo}
		if seededIdeals[key] {
			continue
		}
		seededIdeals[key] = true

		err = st.InsertIdealAnswer(ctx, seed.Subject, &shared.IdealAnswer{
			PaperID:    seed.PaperID,
			QuestionNo: seed.QuestionNo,
			Text:       seed.Ideal,
		})
		if err != nil {
			log.Fatalf("FATAL: Failed to seed ideal answer: %v", err)
		}
	}
	log.Printf("Seeded %d graded results with texts", len(seeds))
}
