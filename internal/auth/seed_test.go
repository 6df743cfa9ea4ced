package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSeedAdminFirstBoot(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	password, err := SeedAdmin(ctx, repo, discardLogger())
	if err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	if password == "" {
		t.Fatal("expected generated password on first boot")
	}

	admin, err := repo.GetByEmail(ctx, "admin@taskvault.local")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if admin.Role != RoleAdmin {
		t.Errorf("seed role = %q, want ADMIN", admin.Role)
	}

	match, err := VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !match {
		t.Error("generated password does not verify against stored hash")
	}
}

func TestSeedAdminSkipsWhenUsersExist(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	existing := &User{Email: "a@x.com", PasswordHash: "h", Role: RoleUser}
	if err := repo.Create(ctx, existing); err != nil {
		t.Fatalf("Create: %v", err)
	}

	password, err := SeedAdmin(ctx, repo, discardLogger())
	if err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	if password != "" {
		t.Error("expected skip when users exist")
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
