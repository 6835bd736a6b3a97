package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-expense-ledger/internal/config"
	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/store"
	"github.com/MKhiriev/go-expense-ledger/internal/validators"
	"github.com/MKhiriev/go-expense-ledger/models"
)

// authService is the concrete implementation of AuthService. Passwords are
// stored as bcrypt hashes and never compared in plain text.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// validator checks registration payloads before anything is hashed.
	validator validators.Validator

	// bcryptCost is the work factor for new hashes.
	bcryptCost int

	// dummyHash is compared against when the email is unknown so that both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), cost)
	if err != nil {
		logger.Err(err).Str("func", "NewAuthService").Msg("error generating dummy hash")
	}

	return &authService{
		userRepository: userRepository,
		validator:      validators.NewRequestValidator(),
		bcryptCost:     cost,
		dummyHash:      dummyHash,
		logger:         logger,
	}
}

// Register creates a new account.
//
// Returns the persisted user or:
//   - a *validators.ValidationError for malformed name, email or password.
//   - ErrPasswordMismatch if the confirmation differs.
//   - ErrDuplicateAccount if the email is already registered.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("func", "*authService.Register").Msg("invalid registration data")
		return models.User{}, err
	}

	if req.Password != req.ConfirmPassword {
		return models.User{}, ErrPasswordMismatch
	}

	if _, exists, err := a.ResolveIdentity(ctx, req.Email); err != nil {
		return models.User{}, err
	} else if exists {
		return models.User{}, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUser(context.WithoutCancel(ctx), models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, ErrDuplicateAccount
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("user registered")
	return user, nil
}

// Authenticate returns the user whose email and password both match.
// Every mismatch is reported as ErrInvalidCredentials.
func (a *authService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
		log.Debug().Str("func", "*authService.Authenticate").Msg("unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Debug().Int64("user_id", user.UserID).Str("func", "*authService.Authenticate").Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (a *authService) ResolveIdentity(ctx context.Context, email string) (int64, bool, error) {
	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return 0, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.ResolveIdentity").Msg("user search by email failed")
		return 0, false, fmt.Errorf("user search by email failed: %w", err)
	}

	return user.UserID, true, nil
}

// VerifyPassword compares candidate with the stored hash of userID.
func (a *authService) VerifyPassword(ctx context.Context, userID int64, candidate string) (bool, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.VerifyPassword").Msg("user search by id failed")
		return false, fmt.Errorf("user search by id failed: %w", err)
	}

	// no stored hash was made from a longer input
	if len(candidate) > validators.MaxPasswordBytes {
		return false, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(candidate))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error comparing password hash: %w", err)
	}

	return true, nil
}

// ChangePassword verifies the current password first, then checks and
// stores the new one.
func (a *authService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	ok, err := a.VerifyPassword(ctx, userID, req.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		log.Debug().Int64("user_id", userID).Str("func", "*authService.ChangePassword").Msg("wrong current password")
		return ErrWrongPassword
	}

	if err = a.validator.Validate(ctx, req, validators.FieldNewPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("error hashing password")
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err = a.userRepository.UpdatePasswordHash(context.WithoutCancel(ctx), userID, string(hash)); err != nil {
		log.Err(err).Int64("user_id", userID).Str("func", "*authService.ChangePassword").Msg("error updating password")
		return fmt.Errorf("error updating password: %w", err)
	}

	log.Info().Int64("user_id", userID).Msg("password changed")
	return nil
}

func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.GetUser").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}
