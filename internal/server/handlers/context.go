package handlers

import (
	"context"
	"fmt"

	"github.com/vintaclectic/RepoRadar/internal/models"
)

// contextKey тип для ключей контекста
type contextKey string

const (
	// IdentityKey ключ для хранения идентичности сессии в контексте
	IdentityKey contextKey = "identity"
)

// IdentityFromContext извлекает идентичность аутентифицированного
// пользователя, добавленную auth middleware
func IdentityFromContext(ctx context.Context) (*models.SessionIdentity, error) {
	identity, ok := ctx.Value(IdentityKey).(*models.SessionIdentity)
	if !ok || identity == nil {
		return nil, fmt.Errorf("identity not found in context")
	}
	return identity, nil
}
