package service

import (
	"context"
	"errors"
	"time"

	userserrors "carrental/internal/users/errors"
	"carrental/internal/users/repository"
	"carrental/internal/users/validator"
	"carrental/pkg/config"
	"carrental/pkg/email"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/model"
	"carrental/pkg/sanitizer"
	"carrental/pkg/validation"
)

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	RequestOTP(ctx context.Context, req *model.RequestOTPRequest) error
	VerifyOTP(ctx context.Context, req *model.VerifyOTPRequest) (*model.LoginResult, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// Notifier delivers email without blocking or failing the caller.
type Notifier interface {
	Dispatch(ctx context.Context, msg email.Message)
}

type Option func(*userService)

func WithOTPGenerator(gen OTPGenerator) Option {
	return func(s *userService) {
		s.newOTP = gen
	}
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	tokens    TokenIssuer
	notifier  Notifier
	newOTP    OTPGenerator
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	tokens TokenIssuer,
	notifier Notifier,
	cfg *config.Config,
	opts ...Option,
) UserService {
	s := &userService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
		notifier:  notifier,
		newOTP:    RandomOTP,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.ContactNo = sanitizer.NormalizePhone(req.ContactNo, s.cfg.DefaultPhoneRegion)

	if err := s.validator.ValidateRegister(req); err != nil {
		s.cfg.Log.Warn("Registration validation failed",
			"email", req.Email,
			"error", err,
		)
		return nil, validationError(err)
	}

	if err := s.ensureAbsent(ctx, s.repo.FindByContactNo, req.ContactNo); err != nil {
		return nil, err
	}
	if err := s.ensureAbsent(ctx, s.repo.FindByEmail, req.Email); err != nil {
		return nil, err
	}

	code, err := s.newOTP()
	if err != nil {
		s.cfg.Log.Error("Failed to generate OTP", "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	user := &model.User{
		Name:      req.Name,
		ContactNo: req.ContactNo,
		Email:     req.Email,
		OTP:       code,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicate) {
			return nil, apperrors.Conflict("User already exists")
		}
		s.cfg.Log.Error("Failed to create user",
			"email", req.Email,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	s.notifier.Dispatch(ctx, email.OTPMessage(user.Email, code))

	s.cfg.Log.Info("User registered",
		"id", user.ID,
		"email", user.Email,
	)

	user.OTP = ""
	return user, nil
}

// ensureAbsent returns Conflict when lookup finds a user for key.
func (s *userService) ensureAbsent(
	ctx context.Context,
	lookup func(context.Context, string) (*model.User, error),
	key string,
) error {
	_, err := lookup(ctx, key)
	switch {
	case err == nil:
		return apperrors.Conflict("User already exists")
	case errors.Is(err, userserrors.ErrNotFound):
		return nil
	default:
		s.cfg.Log.Error("Failed to check for existing user",
			"key", key,
			"error", err,
		)
		return apperrors.Internal("Failed to register user", err)
	}
}

func (s *userService) RequestOTP(ctx context.Context, req *model.RequestOTPRequest) error {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateRequestOTP(req); err != nil {
		return validationError(err)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		s.cfg.Log.Error("Failed to look up user for OTP",
			"email", req.Email,
			"error", err,
		)
		return apperrors.Internal("Failed to send OTP", err)
	}

	code, err := s.newOTP()
	if err != nil {
		s.cfg.Log.Error("Failed to generate OTP", "error", err)
		return apperrors.Internal("Failed to send OTP", err)
	}

	if err := s.repo.SetOTP(ctx, user.ID, code); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		s.cfg.Log.Error("Failed to store OTP",
			"id", user.ID,
			"error", err,
		)
		return apperrors.Internal("Failed to send OTP", err)
	}

	s.notifier.Dispatch(ctx, email.OTPMessage(user.Email, code))

	s.cfg.Log.Info("OTP issued", "id", user.ID)
	return nil
}

func (s *userService) VerifyOTP(ctx context.Context, req *model.VerifyOTPRequest) (*model.LoginResult, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateVerifyOTP(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.InvalidOTP()
		}
		s.cfg.Log.Error("Failed to look up user for verification",
			"email", req.Email,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to verify OTP", err)
	}

	if user.OTP == "" || user.OTP != req.OTP {
		s.cfg.Log.Warn("OTP mismatch", "id", user.ID)
		return nil, apperrors.InvalidOTP()
	}

	cleared, err := s.repo.ClearOTP(ctx, user.ID, req.OTP)
	if err != nil {
		s.cfg.Log.Error("Failed to clear OTP",
			"id", user.ID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to verify OTP", err)
	}
	if !cleared {
		return nil, apperrors.InvalidOTP()
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to issue session token",
			"id", user.ID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to verify OTP", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)

	user.OTP = ""
	return &model.LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to get user by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	user.OTP = ""
	return user, nil
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Validation failed", map[string]any{
			"errors": verrs,
		})
	}
	return apperrors.Validation("Validation failed", map[string]any{
		"error": err.Error(),
	})
}
