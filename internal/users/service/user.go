package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	userserrors "sandgrund/internal/users/errors"
	"sandgrund/internal/users/repository"
	"sandgrund/internal/users/validator"
	"sandgrund/pkg/auth"
	"sandgrund/pkg/config"
	apperrors "sandgrund/pkg/errors"
	"sandgrund/pkg/mailer"
	"sandgrund/pkg/model"
	"sandgrund/pkg/sanitizer"
)

const (
	MsgBadCredentials  = "Incorrect email or password"
	MsgNoUserWithEmail = "There is no user with that email address."
	MsgBadResetToken   = "Token is invalid or has expired"
	MsgEmailTaken      = "This email address is already in use."
)

type UserService interface {
	SignUp(ctx context.Context, req *model.SignUpRequest) (*model.Session, error)
	LogIn(ctx context.Context, creds *model.Credentials) (*model.Session, error)
	List(ctx context.Context) ([]model.User, error)
	LogOut(ctx context.Context) error
	ForgotPassword(ctx context.Context, req *model.ResetRequest) (string, error)
	ResetPassword(ctx context.Context, token string, req *model.NewPasswordRequest) (*model.Session, error)
	UpdateMe(ctx context.Context, update *model.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, email string) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	issuer    *auth.Issuer
	denylist  auth.Denylist
	mail      mailer.Sender
	cfg       *config.Config
	now       func() time.Time
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	issuer *auth.Issuer,
	denylist auth.Denylist,
	mail mailer.Sender,
	cfg *config.Config,
) UserService {
	if mail == nil {
		mail = mailer.NopSender{Log: cfg.Log}
	}
	return &userService{
		repo:      repo,
		validator: validator,
		issuer:    issuer,
		denylist:  denylist,
		mail:      mail,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *userService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.Session, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Name = sanitizer.NormalizeName(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	hash, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to create user", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         model.RoleStaff,
		Active:       true,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			return nil, apperrors.BadRequest(MsgEmailTaken, err)
		}
		s.cfg.Log.Error("Failed to create user", "email", user.Email, "error", err)
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	s.cfg.Log.Info("User signed up", "id", user.ID, "email", user.Email)
	return s.session(user)
}

func (s *userService) LogIn(ctx context.Context, creds *model.Credentials) (*model.Session, error) {
	creds.Email = sanitizer.NormalizeEmail(creds.Email)
	if err := s.validator.Validate(creds); err != nil {
		return nil, apperrors.Validation("Please provide email and password!", nil)
	}

	user, err := s.repo.FindByEmail(ctx, creds.Email)
	if err != nil && !errors.Is(err, userserrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to look up user", "email", creds.Email, "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}
	if user == nil || !user.Active || !auth.CheckPassword(user.PasswordHash, creds.Password) {
		s.cfg.Log.Warn("Rejected login", "email", creds.Email)
		return nil, apperrors.Unauthorized(MsgBadCredentials)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return s.session(user)
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.BadRequest("Failed to retrieve users", err)
	}
	return users, nil
}

// LogOut revokes the token of the current request until it would expire anyway.
func (s *userService) LogOut(ctx context.Context) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return apperrors.Unauthorized("You are not logged in!")
	}

	expiresAt := s.now().Add(s.issuer.TTL())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.denylist.Revoke(ctx, claims.ID, expiresAt); err != nil {
		s.cfg.Log.Error("Failed to revoke token", "user_id", claims.UserID, "error", err)
		return apperrors.Unavailable("Logout")
	}

	s.cfg.Log.Info("User logged out", "user_id", claims.UserID)
	return nil
}

// ForgotPassword stores the hash of a fresh reset token and returns the raw
// token. The token is also mailed to the user when mail is configured.
func (s *userService) ForgotPassword(ctx context.Context, req *model.ResetRequest) (string, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return "", apperrors.Validation(err.Error(), nil)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return "", apperrors.NotFound(MsgNoUserWithEmail)
		}
		return "", apperrors.BadRequest(err.Error(), err)
	}

	token, err := auth.NewResetToken(s.cfg.ResetTokenTTL)
	if err != nil {
		return "", apperrors.Internal("Failed to create reset token", err)
	}
	if err := s.repo.SetResetToken(ctx, user.ID, token.Hash, token.ExpiresAt); err != nil {
		s.cfg.Log.Error("Failed to store reset token", "user_id", user.ID, "error", err)
		return "", apperrors.BadRequest(err.Error(), err)
	}

	if err := s.mail.Send(ctx, resetMail(user, token)); err != nil {
		s.cfg.Log.Warn("Failed to send password reset mail", "user_id", user.ID, "error", err)
	}

	s.cfg.Log.Info("Password reset token issued", "user_id", user.ID, "expires_at", token.ExpiresAt)
	return token.Token, nil
}

func (s *userService) ResetPassword(ctx context.Context, token string, req *model.NewPasswordRequest) (*model.Session, error) {
	if token == "" {
		return nil, apperrors.InvalidInput(MsgBadResetToken)
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	now := s.now().UTC()
	user, err := s.repo.FindByResetToken(ctx, auth.HashResetToken(token), now)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.InvalidInput(MsgBadResetToken)
		}
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	hash, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to reset password", err)
	}
	if err := s.repo.SetPassword(ctx, user.ID, hash, now); err != nil {
		s.cfg.Log.Error("Failed to store new password", "user_id", user.ID, "error", err)
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	s.cfg.Log.Info("Password reset", "user_id", user.ID)
	return s.session(user)
}

func (s *userService) UpdateMe(ctx context.Context, update *model.UserUpdate) (*model.User, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, apperrors.Unauthorized("You are not logged in!")
	}

	if update.Email != nil {
		*update.Email = sanitizer.NormalizeEmail(*update.Email)
	}
	if update.Name != nil {
		*update.Name = sanitizer.NormalizeName(*update.Name)
	}
	if err := s.validator.Validate(update); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	user, err := s.repo.Update(ctx, claims.UserID, update)
	if err != nil {
		switch {
		case errors.Is(err, userserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("User", claims.UserID)
		case errors.Is(err, userserrors.ErrDuplicateEmail):
			return nil, apperrors.BadRequest(MsgEmailTaken, err)
		}
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return apperrors.InvalidInput("Please provide an email address.")
	}

	if err := s.repo.Deactivate(ctx, email); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFound(MsgNoUserWithEmail)
		}
		return apperrors.BadRequest(err.Error(), err)
	}

	s.cfg.Log.Info("User deactivated", "email", email, "by", auth.Actor(ctx))
	return nil
}

func (s *userService) session(user *model.User) (*model.Session, error) {
	token, expiresAt, err := s.issuer.Issue(user.ID, user.Name, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}
	return &model.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func resetMail(user *model.User, token *auth.ResetToken) mailer.Mail {
	return mailer.Mail{
		To:      user.Email,
		ToName:  user.Name,
		Subject: "Your password reset token",
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>use this token to set a new password: <code>%s</code></p><p>It is valid until %s.</p>",
			html.EscapeString(user.Name), token.Token, token.ExpiresAt.Format(time.RFC1123),
		),
	}
}
