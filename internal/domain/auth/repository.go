package auth

import (
	"context"
	"time"
)

// Repository abstracts user persistence.
type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
	SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error
	GetByResetToken(ctx context.Context, email, token string) (User, bool, error)
	// UpdatePassword replaces the password hash and clears any reset token.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// Mailer delivers transactional mail. A nil Mailer means SMTP is not
// configured; the service then degrades to logging the reset link.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
