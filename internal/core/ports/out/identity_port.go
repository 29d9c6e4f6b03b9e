package out

import "context"

// IdentityPort - провайдер учетных записей. Возвращаемый идентификатор
// владельца - непрозрачная стабильная строка, ядро доверяет ей как есть.
type IdentityPort interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (string, error)
}
