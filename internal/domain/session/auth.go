package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/ports/auth"
)

var ErrAuthUnavailable = errors.New("authentication service not configured")

// AuthFlowError: el sign-in/out falló o se canceló. Se loguea y el estado no cambia.
type AuthFlowError struct {
	Op  string // "signin" | "signout"
	Err error
}

func (e *AuthFlowError) Error() string {
	return fmt.Sprintf("auth %s: %v", e.Op, e.Err)
}

func (e *AuthFlowError) Unwrap() error { return e.Err }

// IdentityListener recibe los cambios de identidad de una sesión (nil = sign-out).
type IdentityListener func(sessionID string, identity *auth.Claims)

// AuthService envuelve al verificador externo y notifica cambios de identidad.
type AuthService struct {
	verifier auth.AuthVerifier
	log      logger.Logger

	mu        sync.RWMutex
	listeners map[int]IdentityListener
	next      int
}

func NewAuthService(verifier auth.AuthVerifier, log logger.Logger) *AuthService {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthService{
		verifier:  verifier,
		log:       log.With(map[string]any{"component": "auth"}),
		listeners: make(map[int]IdentityListener),
	}
}

// Subscribe registra un listener; la función devuelta lo desregistra.
func (a *AuthService) Subscribe(l IdentityListener) (unsubscribe func()) {
	a.mu.Lock()
	id := a.next
	a.next++
	a.listeners[id] = l
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

// SignIn verifica el token devuelto por el popup del IdP.
func (a *AuthService) SignIn(ctx context.Context, sessionID, token string) (auth.Claims, error) {
	if a.verifier == nil {
		return auth.Claims{}, a.flowError("signin", ErrAuthUnavailable)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, a.flowError("signin", errors.New("empty token"))
	}

	claims, err := a.verifier.Verify(ctx, token)
	if err != nil {
		return auth.Claims{}, a.flowError("signin", err)
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, a.flowError("signin", errors.New("identity without user id"))
	}

	a.notify(sessionID, &claims)
	return claims, nil
}

// SignOut siempre notifica identidad nil.
func (a *AuthService) SignOut(_ context.Context, sessionID string) {
	a.notify(sessionID, nil)
}

func (a *AuthService) notify(sessionID string, c *auth.Claims) {
	a.mu.RLock()
	ls := make([]IdentityListener, 0, len(a.listeners))
	for _, l := range a.listeners {
		ls = append(ls, l)
	}
	a.mu.RUnlock()

	for _, l := range ls {
		l(sessionID, c)
	}
}

func (a *AuthService) flowError(op string, err error) error {
	e := &AuthFlowError{Op: op, Err: err}
	a.log.Warn("auth flow failed", map[string]any{"op": op, "error": err.Error()})
	return e
}
