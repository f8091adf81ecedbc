package graphql

import (
	"errors"

	"github.com/jhoicas/crm-api/internal/domain"
)

// Códigos en extensions.code.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeStockExceeded     = "STOCK_EXCEEDED"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodePasswordIncorrect = "PASSWORD_INCORRECT"
	CodeValidation        = "VALIDATION"
	CodeInternal          = "INTERNAL"
)

// resolverError lo que devuelven los resolvers. graphql-go copia Extensions() a la respuesta.
type resolverError struct {
	code    string
	message string
	cause   error
}

func (e *resolverError) Error() string { return e.message }

func (e *resolverError) Unwrap() error { return e.cause }

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

var codes = []struct {
	kind error
	code string
}{
	{domain.ErrNotFound, CodeNotFound},
	{domain.ErrForbidden, CodeForbidden},
	{domain.ErrConflict, CodeConflict},
	{domain.ErrInvalidToken, CodeInvalidToken},
	{domain.ErrUnauthenticated, CodeUnauthenticated},
	{domain.ErrStockExceeded, CodeStockExceeded},
	{domain.ErrUserNotFound, CodeUserNotFound},
	{domain.ErrPasswordIncorrect, CodePasswordIncorrect},
	{domain.ErrInvalidInput, CodeValidation},
}

// codeOf devuelve el código del error de dominio, o "" si no es de dominio.
func codeOf(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.kind) {
			return c.code
		}
	}
	return ""
}

// fail traduce err para el cliente. Los errores que no son de dominio se registran
// y salen como INTERNAL sin detalle.
func (r *Resolver) fail(op string, err error) error {
	if code := codeOf(err); code != "" {
		return &resolverError{code: code, message: err.Error(), cause: err}
	}
	r.log.Error().Err(err).Str("op", op).Msg("error inesperado")
	return &resolverError{code: CodeInternal, message: "Internal server error", cause: err}
}

// failAs como fail pero con mensaje propio para errores que no son de dominio.
func (r *Resolver) failAs(op, message string, err error) error {
	if codeOf(err) != "" {
		return r.fail(op, err)
	}
	r.log.Error().Err(err).Str("op", op).Msg(message)
	return &resolverError{code: CodeInternal, message: message, cause: err}
}

// swallow en lecturas: los errores de dominio se propagan; los del almacén se registran
// y el campo queda en null.
func (r *Resolver) swallow(op string, err error) error {
	if codeOf(err) != "" {
		return r.fail(op, err)
	}
	r.log.Error().Err(err).Str("op", op).Msg("lectura fallida, se devuelve null")
	return nil
}

func invalidInput(message string) error {
	return &resolverError{code: CodeValidation, message: message, cause: domain.ErrInvalidInput}
}
