package auth

import "context"

// AuthVerifier valida el token que devuelve el flujo de sign-in (popup del IdP)
// y lo convierte en Claims.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
