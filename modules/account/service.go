package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/regform/handler"
	"github.com/dmitrymomot/regform/modules/registration"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/sanitizer"
	"github.com/dmitrymomot/regform/pkg/validator"
)

// Service creates accounts from accepted registrations.
type Service struct {
	storage    Storage
	bcryptCost int
	log        *slog.Logger
	now        func() time.Time
}

type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBcryptCost sets the hashing cost. Values outside bcrypt's range
// fall back to bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		bcryptCost: bcrypt.DefaultCost,
		log:        slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register stores sub as a new account. Values that do not fit the
// account columns and a username or email clash are returned as a
// handler.ValidationError keyed by the form field.
func (s *Service) Register(ctx context.Context, sub registration.Submission) error {
	if err := checkLimits(sub); err != nil {
		return err
	}

	email := sanitizer.NormalizeEmail(sub.Email)

	// Known addresses are rejected before paying for the hash; the unique
	// index still decides concurrent registrations.
	_, err := s.storage.GetAccountByEmail(ctx, email)
	switch {
	case err == nil:
		return fieldError(ErrEmailTaken)
	case !errors.Is(err, ErrAccountNotFound):
		return fmt.Errorf("lookup account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(sub.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		verr := handler.NewValidationError()
		verr.Add(string(registration.FieldPassword), msgPasswordTooLong)
		return verr
	}
	if err != nil {
		return errors.Join(ErrHashFailed, err)
	}

	a := &Account{
		ID:           uuid.New(),
		Username:     sub.Username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.storage.CreateAccount(ctx, a); err != nil {
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken) {
			return fieldError(err)
		}
		return fmt.Errorf("create account: %w", err)
	}

	s.log.InfoContext(ctx, "account created",
		logger.Component("account"),
		logger.Event("account_created"),
		logger.AccountID(a.ID.String()),
		slog.String("email", sanitizer.MaskEmail(a.Email)),
	)
	return nil
}

// fieldError wraps a clash error with the message for its form field.
func fieldError(err error) error {
	verr := handler.NewValidationError()
	if errors.Is(err, ErrUsernameTaken) {
		verr.Add(string(registration.FieldUsername), msgUsernameTaken)
	} else {
		verr.Add(string(registration.FieldEmail), msgEmailTaken)
	}
	return fmt.Errorf("%w: %w", err, verr)
}

// checkLimits caps the stored values at the column limits.
func checkLimits(sub registration.Submission) error {
	username := string(registration.FieldUsername)
	email := string(registration.FieldEmail)

	errs := validator.ExtractValidationErrors(validator.Apply(
		validator.MaxLen(username, sub.Username, MaxUsernameLength).
			WithMessage(fmt.Sprintf(msgUsernameTooLong, MaxUsernameLength)),
		validator.MaxLen(email, sub.Email, MaxEmailLength).
			WithMessage(fmt.Sprintf(msgEmailTooLong, MaxEmailLength)),
	))
	if len(errs) == 0 {
		return nil
	}

	verr := handler.NewValidationError()
	for _, e := range errs {
		verr.Add(e.Field, e.Message)
	}
	return verr
}
