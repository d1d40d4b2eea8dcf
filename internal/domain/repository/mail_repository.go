package repository

import "context"

// MailRepository sends transactional email through the external delivery
// provider. Implementations must not retry; callers surface failures.
type MailRepository interface {
	SendInvite(ctx context.Context, email, fullName, link string) error
	SendPasswordReset(ctx context.Context, email, link string) error
	SendBookingNotice(ctx context.Context, email, companyName, status, startISO string) error
}
