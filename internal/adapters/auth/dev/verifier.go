package dev

import (
	"context"
	"errors"
	"strings"

	"pet-lost-found/internal/ports/auth"
)

// Verifier de desarrollo: el token es "<userID>" o "<userID>|<display name>".
// Solo para AUTH_MODE=dev.
type Verifier struct{}

func (Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	id, name, _ := strings.Cut(strings.TrimSpace(token), "|")
	id = strings.TrimSpace(id)
	if id == "" {
		return auth.Claims{}, errors.New("dev token is empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = id
	}
	return auth.Claims{UserID: id, DisplayName: name}, nil
}
