package auth

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m, err := NewManager(db)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)

	ok, err := m.Register(ctx, "ada", "secret", "ada@example.com")
	if err != nil || !ok {
		t.Fatalf("Register = %v, %v; want true, nil", ok, err)
	}

	ok, err = m.Register(ctx, "ada", "other", "x@example.com")
	if err != nil || ok {
		t.Fatalf("duplicate Register = %v, %v; want false, nil", ok, err)
	}

	ok, err = m.ValidateLogin(ctx, "ada", "secret")
	if err != nil || !ok {
		t.Errorf("ValidateLogin(correct) = %v, %v", ok, err)
	}
	ok, err = m.ValidateLogin(ctx, "ada", "other")
	if err != nil || ok {
		t.Errorf("ValidateLogin(wrong) = %v, %v", ok, err)
	}
	ok, err = m.ValidateLogin(ctx, "nobody", "secret")
	if err != nil || ok {
		t.Errorf("ValidateLogin(unknown) = %v, %v", ok, err)
	}
}

func TestStoredHash(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)

	if _, err := m.Register(ctx, "bo", "password", "bo@example.com"); err != nil {
		t.Fatal(err)
	}
	u, err := m.GetUser(ctx, "bo")
	if err != nil {
		t.Fatal(err)
	}
	const want = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
	if u.PasswordHash != want {
		t.Errorf("hash = %s, want %s", u.PasswordHash, want)
	}
	if u.Email != "bo@example.com" {
		t.Errorf("email = %q", u.Email)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	m := testManager(t)
	tests := []struct{ user, pass, email string }{
		{"", "p", "e@x"},
		{"u", "", "e@x"},
		{"u", "p", " "},
	}
	for _, tt := range tests {
		if _, err := m.Register(context.Background(), tt.user, tt.pass, tt.email); err != ErrMissingField {
			t.Errorf("Register(%q, %q, %q) err = %v, want ErrMissingField", tt.user, tt.pass, tt.email, err)
		}
	}
}
