package ports

import "context"

// AuthService implements the signup/login use cases. Signup never issues a
// token; signup and login are distinct steps. Login returns the signed
// bearer token on success.
type AuthService interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
}
