package account

import (
	"context"
	"errors"
	"testing"

	"answersheet_backend/backend/internal/shared"
	"answersheet_backend/backend/internal/store/memstore"
)

const testBCryptCost = 4 // minimum cost keeps the tests fast

func validInput() RegisterInput {
	return RegisterInput{
		Fullname:   "Integration Test User",
		Username:   "testuser",
		Password:   "secret123",
		RollNumber: "R007",
		Section:    "A",
		Year:       "2024",
	}
}

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

func TestRegister_MissingFields(t *testing.T) {
	svc := NewService(memstore.New(), testBCryptCost)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"fullname", func(in *RegisterInput) { in.Fullname = "" }},
		{"username", func(in *RegisterInput) { in.Username = "" }},
		{"password", func(in *RegisterInput) { in.Password = "" }},
		{"roll_number", func(in *RegisterInput) { in.RollNumber = "" }},
		{"section", func(in *RegisterInput) { in.Section = "" }},
		{"year", func(in *RegisterInput) { in.Year = "" }},
	}

	for _, tc := range cases {
		t.Run("Missing "+tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := svc.Register(ctx, in)
			if err == nil {
				t.Fatal("Expected error for missing field, got nil")
			}
			expectCode(t, err, shared.CodeInvalidInput)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, testBCryptCost)
	ctx := context.Background()

	in := validInput()
	if err := svc.Register(ctx, in); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	stored, err := st.FindAccountByUsername(ctx, in.Username)
	if err != nil {
		t.Fatalf("Stored account not found: %v", err)
	}
	if stored.PasswordHash == in.Password {
		t.Error("Password stored in cleartext")
	}
	if stored.PasswordHash == "" {
		t.Error("Password hash missing")
	}
	if stored.Fullname != in.Fullname || stored.RollNumber != in.RollNumber {
		t.Errorf("Stored profile mismatch: %+v", stored)
	}
}

func TestRegister_Conflicts(t *testing.T) {
	svc := NewService(memstore.New(), testBCryptCost)
	ctx := context.Background()

	if err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("First register failed: %v", err)
	}

	t.Run("Duplicate Username", func(t *testing.T) {
		in := validInput()
		in.RollNumber = "R008"
		err := svc.Register(ctx, in)
		if err == nil {
			t.Fatal("Expected conflict for duplicate username")
		}
		expectCode(t, err, shared.CodeConflict)
	})

	t.Run("Duplicate Roll Number", func(t *testing.T) {
		in := validInput()
		in.Username = "otheruser"
		err := svc.Register(ctx, in)
		if err == nil {
			t.Fatal("Expected conflict for duplicate roll number")
		}
		expectCode(t, err, shared.CodeConflict)
	})
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(memstore.New(), testBCryptCost)
	ctx := context.Background()

	in := validInput()
	if err := svc.Register(ctx, in); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("Success", func(t *testing.T) {
		profile, err := svc.Authenticate(ctx, in.Username, in.Password)
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if profile.Fullname != in.Fullname ||
			profile.RollNumber != in.RollNumber ||
			profile.Section != in.Section ||
			profile.Year != in.Year {
			t.Errorf("Profile mismatch: %+v", profile)
		}
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, in.Username, "wrongpassword")
		if err == nil {
			t.Fatal("Expected error for wrong password")
		}
		expectCode(t, err, shared.CodeUnauthorized)
	})

	t.Run("Unknown User", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ghost", in.Password)
		if err == nil {
			t.Fatal("Expected error for unknown user")
		}
		expectCode(t, err, shared.CodeUnauthorized)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "", "")
		if err == nil {
			t.Fatal("Expected error for missing credentials")
		}
		expectCode(t, err, shared.CodeInvalidInput)
	})
}
