// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/user-microservice/internal/core"
)

// fakeUserProvider is an in-memory credential store with the same
// duplicate-email semantics as the real one.
type fakeUserProvider struct {
	mu    sync.Mutex
	users map[string]*UserInfo
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{users: make(map[string]*UserInfo)}
}

func (f *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeUserProvider) GetByID(
	_ context.Context,
	id string,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserProvider) Create(
	_ context.Context,
	name, email, passwordHash string,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}

	now := time.Now()
	u := &UserInfo{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "user",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[u.ID] = u

	copied := *u
	return &copied, nil
}

func (f *fakeUserProvider) UpdateProfile(
	_ context.Context,
	id string,
	patch ProfilePatch,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	u.UpdatedAt = time.Now()

	copied := *u
	return &copied, nil
}

func (f *fakeUserProvider) setActive(id string, active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].IsActive = active
}

func (f *fakeUserProvider) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func testService(t *testing.T) (*Service, *fakeUserProvider) {
	t.Helper()

	hasher, err := core.NewHasher(core.HashParams{
		Time:    1,
		Memory:  8 * 1024,
		Threads: 1,
		KeyLen:  32,
		SaltLen: 16,
	})
	require.NoError(t, err)

	provider := newFakeUserProvider()
	svc := NewService(testTokenManager(t, time.Hour), provider, hasher)
	return svc, provider
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	svc, _ := testService(t)
	ctx := context.Background()

	token, view, err := svc.Register(ctx, RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "a@x.com", view.Email)
	assert.Equal(t, "user", view.Role)
	assert.True(t, view.IsActive)
	assert.NotEmpty(t, view.ID)

	loginToken, loginView, err := svc.Login(ctx, LoginRequest{
		Email:    "a@x.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
	assert.Equal(t, view.ID, loginView.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, provider := testService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterRequest{
		Name:     "B",
		Email:    "a@x.com",
		Password: "password456",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Equal(t, 1, provider.count())
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc, _ := testService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginRequest{
		Email:    "a@x.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// Unknown email and wrong password yield the same error so the login
// endpoint cannot be used for account enumeration.
func TestLoginUnknownEmailSameError(t *testing.T) {
	t.Parallel()

	svc, _ := testService(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, LoginRequest{
		Email:    "nobody@x.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	t.Parallel()

	svc, provider := testService(t)
	ctx := context.Background()

	_, view, err := svc.Register(ctx, RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "password123",
	})
	require.NoError(t, err)

	provider.setActive(view.ID, false)

	_, _, err = svc.Login(ctx, LoginRequest{
		Email:    "a@x.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestUpdateProfileDisplayFieldsOnly(t *testing.T) {
	t.Parallel()

	svc, provider := testService(t)
	ctx := context.Background()

	_, view, err := svc.Register(ctx, RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "password123",
	})
	require.NoError(t, err)

	newName := "Alice"
	updated, err := svc.UpdateProfile(ctx, view.ID, UpdateProfileRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "user", updated.Role)

	stored, err := provider.GetByID(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "user", stored.Role)
}
