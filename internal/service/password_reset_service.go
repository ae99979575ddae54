package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"mygames/internal/apperr"
	"mygames/internal/domain"
	"mygames/internal/email"
	"mygames/internal/repository"
)

// PasswordResetService drives the reset-token lifecycle: at most one live
// token per user, consumed exactly once or swept once expired.
type PasswordResetService interface {
	RequestReset(ctx context.Context, emailAddr string) error
	Validate(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// PasswordResetConfig carries the knobs the flow needs from configuration.
type PasswordResetConfig struct {
	AppName     string
	FrontendURL string
	TokenExpiry time.Duration
}

type passwordResetService struct {
	tokens repository.PasswordResetTokenRepository
	users  repository.UserRepository
	mailer email.Sender
	cfg    PasswordResetConfig
	logger *logrus.Logger
	now    func() time.Time
}

func NewPasswordResetService(
	tokens repository.PasswordResetTokenRepository,
	users repository.UserRepository,
	mailer email.Sender,
	cfg PasswordResetConfig,
	logger *logrus.Logger,
) PasswordResetService {
	return &passwordResetService{
		tokens: tokens,
		users:  users,
		mailer: mailer,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// RequestReset issues a fresh token for the address and mails the deep link.
// An unknown address returns silently so the endpoint cannot be used to
// enumerate accounts. A prior live token is superseded by the new one.
func (s *passwordResetService) RequestReset(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	user, err := s.users.GetByUsername(ctx, emailAddr)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return nil
		}
		return err
	}

	token := &domain.PasswordResetToken{
		Token:      uuid.NewString(),
		UserID:     user.ID,
		ExpiryDate: s.now().Add(s.cfg.TokenExpiry),
	}
	if err := s.tokens.Replace(ctx, token); err != nil {
		return err
	}

	// The token row is already committed; a failed send surfaces as an
	// error but the user can simply request again, which supersedes it.
	subject := s.cfg.AppName + " - Password Reset Request"
	if err := s.mailer.SendHTML(user.Username, subject, s.buildResetEmail(token.Token)); err != nil {
		s.logger.Errorf("send reset mail to %s: %v", user.Username, err)
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// Validate is the pre-flight check used by the UI; it has no side effects.
func (s *passwordResetService) Validate(ctx context.Context, token string) error {
	t, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if t.Expired(s.now()) {
		return apperr.New(apperr.TokenExpired, "reset token expired")
	}
	return nil
}

// ResetPassword is the only path that changes a password through this flow.
// The token is deleted in the same transaction as the password write.
func (s *passwordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.New(apperr.Validation, "password must be at least 8 characters")
	}

	t, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if t.Expired(s.now()) {
		return apperr.New(apperr.TokenExpired, "reset token expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.tokens.Consume(ctx, t.ID, t.UserID, string(hash))
}

// PurgeExpired removes every token at or past expiry. Safe to run alongside
// the request-driven flow; it only ever touches already-expired rows.
func (s *passwordResetService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.tokens.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Infof("purged %d expired password reset tokens", n)
	}
	return n, nil
}

func (s *passwordResetService) buildResetEmail(token string) string {
	resetURL := s.cfg.FrontendURL + "/reset-password?token=" + token
	hours := int(s.cfg.TokenExpiry / time.Hour)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
<h2 style="color: #333;">Password Reset</h2>
<p>You requested a password reset on %[1]s.</p>
<p>Click the button below to choose a new password:</p>
<div style="text-align: center; margin: 30px 0;">
<a href="%[2]s" style="display: inline-block; padding: 12px 30px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px; font-weight: bold;">Reset Password</a>
</div>
<p style="color: #666; font-size: 14px;">Or copy and paste this link into your browser:</p>
<p style="color: #007bff; word-break: break-all; font-size: 12px;">%[2]s</p>
<hr style="border: none; border-top: 1px solid #eee;">
<p style="color: #999; font-size: 12px;">This link expires in %[3]d hours.</p>
<p style="color: #999; font-size: 12px;">If you did not request this reset, ignore this email.</p>
</div>
</body>
</html>`, s.cfg.AppName, resetURL, hours)
}
