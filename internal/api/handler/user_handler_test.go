package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/renewables/energy-dashboard/internal/core/domain"
	"github.com/renewables/energy-dashboard/internal/core/ports"
	"github.com/renewables/energy-dashboard/internal/core/query"
)

type stubUserService struct {
	listFn   func(ctx context.Context, spec query.Spec) (query.Result[domain.User], error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubUserService) List(ctx context.Context, spec query.Spec) (query.Result[domain.User], error) {
	return s.listFn(ctx, spec)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context, spec query.Spec) (query.Result[domain.User], error) {
			if spec.Filters["role"] != "admin" || spec.Search != "ann" {
				t.Fatalf("unexpected spec: %+v", spec)
			}
			return query.Result[domain.User]{
				Items: []domain.User{{ID: "u1", Email: "ann@example.com", Name: "Ann", Role: domain.RoleAdmin}},
				Total: 1, Page: 1, Limit: 10,
			}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/api/users?role=admin&search=ann", nil)

	if err := NewUserHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 1 || resp.TotalPages != 1 || len(resp.Users) != 1 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestUserHandler_Create(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.Email != "new@example.com" || in.Password != "secret1" || in.Role != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u2", Email: in.Email, Name: in.Name, Role: domain.RoleUser, PasswordHash: "hash"}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/users",
		strings.NewReader(`{"email":"new@example.com","name":"New","password":"secret1"}`))

	if err := NewUserHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestUserHandler_Create_Validation(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"bad email", `{"email":"nope","name":"n","password":"secret1"}`, "email"},
		{"short password", `{"email":"a@example.com","name":"n","password":"abc"}`, "password"},
		{"unknown role", `{"email":"a@example.com","name":"n","password":"secret1","role":"root"}`, "role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubUserService{
				createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
					t.Fatalf("service must not be called")
					return nil, nil
				},
			}
			c, _ := newTestContext(http.MethodPost, "/api/users", strings.NewReader(tc.body))

			err := NewUserHandler(stub).Create(c)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("expected validation error on %q, got %v", tc.field, err)
			}
		})
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newTestContext(http.MethodPost, "/api/users",
		strings.NewReader(`{"email":"dup@example.com","name":"Dup","password":"secret1"}`))

	if err := NewUserHandler(stub).Create(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserHandler_Update(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
			if id != "u1" || in.Role == nil || *in.Role != "admin" || in.Password != nil {
				t.Fatalf("unexpected update: %s %+v", id, in)
			}
			return &domain.User{ID: "u1", Role: domain.RoleAdmin}, nil
		},
	}
	c, rec := newTestContext(http.MethodPut, "/api/users/u1", strings.NewReader(`{"role":"admin"}`))
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := NewUserHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) error { return domain.ErrUserNotFound },
	}
	c, _ := newTestContext(http.MethodDelete, "/api/users/x", nil)
	c.SetParamNames("id")
	c.SetParamValues("x")

	if err := NewUserHandler(stub).Delete(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
