package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lingodrill/internal/docstore"
)

func TestCreateAndGetProfile(t *testing.T) {
	svc := NewProfileService(docstore.NewMemoryStore())
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, "anon-1", "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if created.DisplayName != "Jane Doe" {
		t.Errorf("DisplayName = %q, want Jane Doe", created.DisplayName)
	}
	if created.CreatedAt.IsZero() || created.LastLogin.IsZero() {
		t.Error("timestamps not set on creation")
	}

	got, err := svc.GetProfile(ctx, "anon-1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.DisplayName != "Jane Doe" || got.Email != "jane@example.com" {
		t.Errorf("GetProfile = %+v, want the created profile", got)
	}
}

func TestGetProfileMissing(t *testing.T) {
	svc := NewProfileService(docstore.NewMemoryStore())

	_, err := svc.GetProfile(context.Background(), "anon-1")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("GetProfile(missing) error = %v, want ErrProfileNotFound", err)
	}
}

func TestCreateProfileValidation(t *testing.T) {
	svc := NewProfileService(docstore.NewMemoryStore())
	ctx := context.Background()

	tests := []struct {
		name        string
		displayName string
		email       string
		wantErr     bool
	}{
		{
			name:        "valid without email",
			displayName: "Jane",
			email:       "",
			wantErr:     false,
		},
		{
			name:        "name too short",
			displayName: "J",
			email:       "",
			wantErr:     true,
		},
		{
			name:        "whitespace only name",
			displayName: "   ",
			email:       "",
			wantErr:     true,
		},
		{
			name:        "bad email",
			displayName: "Jane",
			email:       "not-an-email",
			wantErr:     true,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := "anon-" + strings.Repeat("x", i+1)
			_, err := svc.CreateProfile(ctx, identity, tt.displayName, tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateProfile(%q, %q) error = %v, wantErr %v", tt.displayName, tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestCreateProfileTwice(t *testing.T) {
	svc := NewProfileService(docstore.NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.CreateProfile(ctx, "anon-1", "Jane Doe", ""); err != nil {
		t.Fatalf("first CreateProfile failed: %v", err)
	}

	_, err := svc.CreateProfile(ctx, "anon-1", "Someone Else", "")
	if !errors.Is(err, ErrProfileExists) {
		t.Errorf("second CreateProfile error = %v, want ErrProfileExists", err)
	}

	// The original profile must be untouched
	got, err := svc.GetProfile(ctx, "anon-1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.DisplayName != "Jane Doe" {
		t.Errorf("DisplayName = %q after duplicate create, want Jane Doe", got.DisplayName)
	}
}

func TestSuggestedNames(t *testing.T) {
	svc := NewProfileService(docstore.NewMemoryStore())

	names := svc.SuggestedNames(3)
	if len(names) != 3 {
		t.Fatalf("SuggestedNames(3) returned %d names", len(names))
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			t.Error("empty suggested name")
		}
	}
}
