package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejaworks/interndesk/internal/domain"
	"github.com/tejaworks/interndesk/internal/latency"
	"github.com/tejaworks/interndesk/internal/seed"
	"github.com/tejaworks/interndesk/internal/store"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()

	s := store.NewMemory()
	require.NoError(t, seed.Ensure(context.Background(), s))
	return NewService(s, latency.NewInjector(0)), s
}

func TestLogin_StripsPassword(t *testing.T) {
	// Arrange
	service, st := newTestService(t)

	// Act
	user, err := service.Login(context.Background(), "admin@teja.com", "admin123")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "admin@teja.com", user.Email)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Empty(t, user.Password)

	// The persisted session record carries no password field either.
	raw, err := st.Get(context.Background(), store.KeyCurrentUser)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}

func TestLogin_WrongPassword(t *testing.T) {
	// Arrange
	service, _ := newTestService(t)

	// Act
	user, err := service.Login(context.Background(), "admin@teja.com", "nope")

	// Assert
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	current, err := service.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current, "failed login must not create a session")
}

func TestLogin_WrongPasswordKeepsExistingSession(t *testing.T) {
	// Arrange
	service, _ := newTestService(t)
	_, err := service.Login(context.Background(), "intern@teja.com", "intern123")
	require.NoError(t, err)

	// Act
	_, err = service.Login(context.Background(), "admin@teja.com", "nope")

	// Assert
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	current, err := service.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "intern@teja.com", current.Email)
}

func TestLogout_ClearsSession(t *testing.T) {
	// Arrange
	service, _ := newTestService(t)
	_, err := service.Login(context.Background(), "admin@teja.com", "admin123")
	require.NoError(t, err)

	// Act
	require.NoError(t, service.Logout(context.Background()))

	// Assert
	current, err := service.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestLogout_NoSessionIsNoop(t *testing.T) {
	service, _ := newTestService(t)

	assert.NoError(t, service.Logout(context.Background()))
}

func TestRegister_CreatesInternAndSession(t *testing.T) {
	// Arrange
	service, st := newTestService(t)

	// Act
	user, err := service.Register(context.Background(), RegisterInput{
		Email:    "new@example.com",
		Password: "secret",
		Name:     "New Person",
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleIntern, user.Role, "self-registered users are always interns")
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.Password)

	var users []domain.User
	require.NoError(t, store.GetJSON(context.Background(), st, store.KeyUsers, &users))
	assert.Len(t, users, 3)

	current, err := service.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	// Arrange
	service, st := newTestService(t)
	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "a@b.com",
		Password: "x",
		Name:     "A",
	})
	require.NoError(t, err)

	// Act
	user, err := service.Register(context.Background(), RegisterInput{
		Email:    "a@b.com",
		Password: "x",
		Name:     "A",
	})

	// Assert
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrDuplicateUser)

	var users []domain.User
	require.NoError(t, store.GetJSON(context.Background(), st, store.KeyUsers, &users))
	assert.Len(t, users, 3, "failed registration must not grow the collection")
}

func TestRegister_AssignsUniqueID(t *testing.T) {
	// Arrange
	service, st := newTestService(t)

	// Act
	first, err := service.Register(context.Background(), RegisterInput{
		Email: "one@example.com", Password: "x", Name: "One",
	})
	require.NoError(t, err)
	second, err := service.Register(context.Background(), RegisterInput{
		Email: "two@example.com", Password: "x", Name: "Two",
	})
	require.NoError(t, err)

	// Assert
	assert.NotEqual(t, first.ID, second.ID)

	var users []domain.User
	require.NoError(t, store.GetJSON(context.Background(), st, store.KeyUsers, &users))
	seen := map[string]bool{}
	for _, u := range users {
		assert.False(t, seen[u.ID], "duplicate user id %s", u.ID)
		seen[u.ID] = true
	}
}

func TestCurrentUser_AbsentIsNotAnError(t *testing.T) {
	service, _ := newTestService(t)

	current, err := service.CurrentUser(context.Background())

	require.NoError(t, err)
	assert.Nil(t, current)
}
