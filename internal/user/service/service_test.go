package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"storefront/internal/security"
	"storefront/internal/user/domain"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	next  int
	err   error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.next++
	u.ID = "u" + string(rune('0'+r.next))
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func newTestService(repo *memUserRepo) *Service {
	return NewService(repo, security.NewHasher(4))
}

func TestCreateUser(t *testing.T) {
	svc := newTestService(newMemUserRepo())

	u, err := svc.Create(context.Background(), "  Jane.Doe@Example.COM ", " Jane Doe ", "password123")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "jane.doe@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.Name != "Jane Doe" {
		t.Errorf("name not trimmed: %q", u.Name)
	}
	if u.ID == "" {
		t.Error("expected assigned id")
	}
	if u.PasswordHash == "" || strings.Contains(u.PasswordHash, "password123") {
		t.Error("password must be stored hashed")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestService(newMemUserRepo())

	if _, err := svc.Create(context.Background(), "jane.doe@example.com", "Jane", "password123"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(context.Background(), "JANE.DOE@example.com", "Other Jane", "different-pass")
	if err != ErrEmailAlreadyRegistered {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestService(repo)
	if _, err := svc.Create(context.Background(), "jane.doe@example.com", "Jane", "password123"); err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		u, err := svc.ValidatePassword(context.Background(), "Jane.Doe@example.com", "password123")
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if u == nil {
			t.Fatal("expected user")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		u, err := svc.ValidatePassword(context.Background(), "jane.doe@example.com", "wrong")
		if err != nil || u != nil {
			t.Fatalf("expected nil, nil; got %v, %v", u, err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		u, err := svc.ValidatePassword(context.Background(), "nobody@example.com", "password123")
		if err != nil || u != nil {
			t.Fatalf("expected nil, nil; got %v, %v", u, err)
		}
	})
}
