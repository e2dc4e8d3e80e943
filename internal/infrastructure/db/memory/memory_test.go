package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

func TestProjectRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()

	a, err := repo.Create(ctx, &domain.Project{Name: "A", Capacity: 10})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &domain.Project{Name: "B", Capacity: 20})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].Name, "insertion order")

	name := "A2"
	updated, err := repo.Update(ctx, a.ID, domain.ProjectPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)
	assert.Equal(t, 10.0, updated.Capacity)
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)

	ok, err := repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	_, err = repo.Update(ctx, a.ID, domain.ProjectPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()

	p, _ := repo.Create(ctx, &domain.Project{Name: "A"})
	p.Name = "mutated"

	all, _ := repo.List(ctx)
	all[0].Name = "mutated too"

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}

func TestProjectRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Create(ctx, &domain.Project{Name: "P"})
		}()
	}
	wg.Wait()

	all, _ := repo.List(ctx)
	assert.Len(t, all, 50)
}

func TestUserRepository_EmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	alice, err := repo.Create(ctx, &domain.User{Email: "Alice@Example.com", Role: domain.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", alice.Email)

	_, err = repo.Create(ctx, &domain.User{Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	bob, err := repo.Create(ctx, &domain.User{Email: "bob@example.com"})
	require.NoError(t, err)

	taken := "ALICE@example.com"
	_, err = repo.Update(ctx, bob.ID, domain.UserPatch{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	found, err := repo.FindByEmail(ctx, " BOB@example.com ")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, found.ID)

	ok, err := repo.Delete(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = repo.FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	s := NewIdempotencyStore(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, found, _ := s.Lookup(ctx, "k")
	assert.False(t, found)

	require.NoError(t, s.Remember(ctx, "k", "p1"))
	require.NoError(t, s.Remember(ctx, "k", "p2"))

	id, found, err := s.Lookup(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "p1", id, "first writer wins")

	now = now.Add(time.Minute)
	_, found, _ = s.Lookup(ctx, "k")
	assert.False(t, found, "entry expires after ttl")

	require.NoError(t, s.Remember(ctx, "k", "p3"))
	id, _, _ = s.Lookup(ctx, "k")
	assert.Equal(t, "p3", id)
}
