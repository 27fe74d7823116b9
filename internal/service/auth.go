package service

import (
	"context"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shutterspot/api/internal/errs"
	"github.com/shutterspot/api/internal/lib/job"
	"github.com/shutterspot/api/internal/model"
)

// invalidCredentials is the single 401 returned for every login failure.
// Unknown email and wrong password must be indistinguishable to the
// caller.
var invalidCredentials = errs.NewUnauthorizedError("Invalid credentials", false)

// dummyBcryptHash is compared against when the email is unknown, so both
// login failure paths cost one bcrypt verification.
const dummyBcryptHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, email, passwordHash string, name *string) (*model.User, error)
}

// TaskEnqueuer is the slice of the asynq client used to hand off
// background work.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AuthService registers accounts, checks credentials and issues tokens.
type AuthService struct {
	logger *zerolog.Logger
	users  UserStore
	tokens *TokenService
	jobs   TaskEnqueuer
}

func NewAuthService(logger *zerolog.Logger, users UserStore, tokens *TokenService, jobs TaskEnqueuer) *AuthService {
	return &AuthService{
		logger: logger,
		users:  users,
		tokens: tokens,
		jobs:   jobs,
	}
}

// normalizeEmail makes the stored and looked-up email form canonical.
// The users table has a plain unique index on email, so without this
// "Ada@x.com" and "ada@x.com" could both register yet collide at login.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account, issues a token, and enqueues the welcome
// email. A duplicate email surfaces through the users_email_key unique
// constraint as a 400.
func (a *AuthService) Register(ctx context.Context, email, password string, name *string) (*model.User, string, error) {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := a.users.Create(ctx, email, string(hash), name)
	if err != nil {
		return nil, "", err
	}

	token, err := a.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	a.enqueueWelcomeEmail(user)

	return user, token, nil
}

// Login checks credentials and issues a token. Every failure path
// returns the same 401.
func (a *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := a.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Burn a bcrypt comparison so unknown emails take as long as
		// wrong passwords.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyBcryptHash), []byte(password))
		return nil, "", invalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", invalidCredentials
	}

	token, err := a.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// enqueueWelcomeEmail hands the welcome email to the job queue.
// Registration does not fail when the queue is down.
func (a *AuthService) enqueueWelcomeEmail(user *model.User) {
	name := user.Email
	if user.Name != nil && *user.Name != "" {
		name = *user.Name
	}

	task, err := job.NewWelcomeEmailTask(user.Email, name)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to build welcome email task")
		return
	}

	if _, err := a.jobs.Enqueue(task); err != nil {
		a.logger.Error().
			Err(err).
			Str("email", user.Email).
			Msg("failed to enqueue welcome email")
	}
}
