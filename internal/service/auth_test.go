package service

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/model"
)

type mockUserStore struct {
	usersByEmail map[string]*model.User
	created      []*model.User
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range m.usersByEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserStore) Create(_ context.Context, email, passwordHash string, name *string) (*model.User, error) {
	u := &model.User{ID: "new-user", Email: email, PasswordHash: passwordHash, Name: name}
	m.created = append(m.created, u)
	return u, nil
}

type mockEnqueuer struct {
	tasks []*asynq.Task
}

func (m *mockEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	m.tasks = append(m.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newTestAuthService(t *testing.T, store *mockUserStore) (*AuthService, *mockEnqueuer) {
	t.Helper()

	logger := zerolog.Nop()
	enqueuer := &mockEnqueuer{}
	return NewAuthService(&logger, store, newTestTokenService(t), enqueuer), enqueuer
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	store := &mockUserStore{usersByEmail: map[string]*model.User{
		"ana@example.com": {ID: "user-1", Email: "ana@example.com", PasswordHash: hashPassword(t, "s3cret")},
	}}
	svc, _ := newTestAuthService(t, store)

	user, token, err := svc.Login(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := &mockUserStore{usersByEmail: map[string]*model.User{
		"ana@example.com": {ID: "user-1", Email: "ana@example.com", PasswordHash: hashPassword(t, "s3cret")},
	}}
	svc, _ := newTestAuthService(t, store)

	_, _, wrongPassword := svc.Login(context.Background(), "ana@example.com", "nope")
	_, _, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "nope")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)

	// Both failure paths must produce byte-identical error responses so
	// callers cannot enumerate accounts.
	var errWrong, errUnknown *errs.HTTPError
	require.ErrorAs(t, wrongPassword, &errWrong)
	require.ErrorAs(t, unknownEmail, &errUnknown)
	assert.Equal(t, errWrong, errUnknown)
	assert.Equal(t, 401, errWrong.Status)
	assert.Equal(t, "Invalid credentials", errWrong.Message)
}

func TestEmailIsCaseInsensitive(t *testing.T) {
	store := &mockUserStore{usersByEmail: map[string]*model.User{}}
	svc, _ := newTestAuthService(t, store)

	// Registration stores the canonical lowercase form so the unique
	// index on email catches "Ada@x.com" vs "ada@x.com" duplicates.
	_, _, err := svc.Register(context.Background(), " Ada@Example.com ", "s3cret99", nil)
	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.Equal(t, "ada@example.com", store.created[0].Email)

	store.usersByEmail["ada@example.com"] = store.created[0]

	user, _, err := svc.Login(context.Background(), "ADA@EXAMPLE.COM", "s3cret99")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	store := &mockUserStore{usersByEmail: map[string]*model.User{}}
	svc, enqueuer := newTestAuthService(t, store)

	name := "Ana"
	user, token, err := svc.Register(context.Background(), "ana@example.com", "s3cret", &name)
	require.NoError(t, err)

	// Stored hash must verify against the password and never equal it.
	require.Len(t, store.created, 1)
	assert.NotEqual(t, "s3cret", store.created[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.created[0].PasswordHash), []byte("s3cret")))

	claims, err := svc.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// Welcome email handed to the queue.
	require.Len(t, enqueuer.tasks, 1)
}
