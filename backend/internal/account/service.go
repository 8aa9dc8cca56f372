// Package account implements the account directory: signup and credential
// verification against the users collection.
package account

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"answersheet_backend/backend/internal/shared"
	"answersheet_backend/backend/internal/store"
)

// Service provides account registration and authentication
type Service struct {
	accounts   store.AccountStore
	bcryptCost int
}

// NewService creates a new account Service instance
func NewService(accounts store.AccountStore, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{accounts: accounts, bcryptCost: bcryptCost}
}

// RegisterInput carries the fields required to create an account
type RegisterInput struct {
	Fullname   string
	Username   string
	Password   string
	RollNumber string
	Section    string
	Year       string
}

// Register creates a new account. The username and roll number must be
// unique; the password is stored only as a bcrypt hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	required := []struct {
		name, value string
	}{
		{"fullname", in.Fullname},
		{"username", in.Username},
		{"password", in.Password},
		{"roll_number", in.RollNumber},
		{"section", in.Section},
		{"year", in.Year},
	}
	for _, field := range required {
		if field.value == "" {
			return shared.NewError(shared.CodeInvalidInput, field.name+" is required")
		}
	}

	// Advisory existence checks. The unique indexes close the check-then-
	// insert race; a duplicate-key error below is the second line of defense.
	taken, err := s.accounts.UsernameExists(ctx, in.Username)
	if err != nil {
		return shared.WrapError(shared.CodeInternal, "failed to check username", err)
	}
	if taken {
		return shared.NewError(shared.CodeConflict, "username already taken")
	}

	taken, err = s.accounts.RollNumberExists(ctx, in.RollNumber)
	if err != nil {
		return shared.WrapError(shared.CodeInternal, "failed to check roll number", err)
	}
	if taken {
		return shared.NewError(shared.CodeConflict, "roll number already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return shared.WrapError(shared.CodeInternal, "failed to process password", err)
	}

	acct := &shared.UserAccount{
		Fullname:     in.Fullname,
		Username:     in.Username,
		PasswordHash: string(hash),
		RollNumber:   in.RollNumber,
		Section:      in.Section,
		Year:         in.Year,
		CreatedAt:    time.Now(),
	}

	if err := s.accounts.InsertAccount(ctx, acct); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return shared.NewError(shared.CodeConflict, "username or roll number already registered")
		}
		return shared.WrapError(shared.CodeInternal, "failed to create account", err)
	}
	return nil
}

// Authenticate verifies the credentials and returns the profile view
// excluding the password hash
func (s *Service) Authenticate(ctx context.Context, username, password string) (*shared.ProfileView, error) {
	if username == "" || password == "" {
		return nil, shared.NewError(shared.CodeInvalidInput, "username and password are required")
	}

	acct, err := s.accounts.FindAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, shared.NewError(shared.CodeUnauthorized, "invalid credentials")
		}
		return nil, shared.WrapError(shared.CodeInternal, "failed to look up account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, shared.NewError(shared.CodeUnauthorized, "invalid credentials")
	}

	return acct.Profile(), nil
}
