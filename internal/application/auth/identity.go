package auth

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/pkg/jwt"
)

// Identity identidad del vendedor que hace la petición (sale del Bearer token).
type Identity = jwt.Identity

// Caller es el resultado de resolver el header Authorization una vez por petición.
// Anónimo si no hay header o si el token no validó; en ese caso TokenErr guarda la causa.
type Caller struct {
	Identity *Identity
	TokenErr error
}

// Anonymous indica si la petición no trae identidad.
func (c Caller) Anonymous() bool {
	return c.Identity == nil
}

// Require devuelve la identidad o el error adecuado: ErrInvalidToken si hubo token
// pero no validó, ErrUnauthenticated si no hubo token.
func (c Caller) Require() (*Identity, error) {
	if c.Identity != nil {
		return c.Identity, nil
	}
	if c.TokenErr != nil {
		return nil, &domain.Error{Kind: domain.ErrInvalidToken, Message: "Invalid or expired token"}
	}
	return nil, &domain.Error{Kind: domain.ErrUnauthenticated, Message: "Authentication required for this action"}
}

type callerKey struct{}

// WithCaller adjunta el Caller al contexto de la petición.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom devuelve el Caller de la petición (anónimo si no se adjuntó ninguno).
func CallerFrom(ctx context.Context) Caller {
	c, _ := ctx.Value(callerKey{}).(Caller)
	return c
}
