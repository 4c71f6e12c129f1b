package ports

import (
	"context"

	"github.com/carelink/hospital-system/internal/core/domain"
)

// AuthRepository defines the interface for account persistence.
// Insert behaves as if serialized per email: when two signups race on the
// same address, exactly one succeeds and the other observes
// domain.ErrDuplicateEmail (enforced by a unique index in the Mongo
// implementation).
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Insert(ctx context.Context, account *domain.Account) error
}
