package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Son los "tipos" contra los que se hace errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("recurso duplicado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidToken      = errors.New("token inválido o expirado")
	ErrUnauthenticated   = errors.New("autenticación requerida")
	ErrStockExceeded     = errors.New("stock insuficiente")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrPasswordIncorrect = errors.New("password incorrecto")
)

// Error es un error de dominio con mensaje legible para el cliente de la API.
// errors.Is(err, Kind) funciona contra el sentinel correspondiente.
// Cause, si existe, es el error técnico de origen; no aparece en el mensaje.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound construye un ErrNotFound con mensaje propio ("Client not found").
func NotFound(format string, args ...interface{}) error {
	return newError(ErrNotFound, format, args...)
}

// Forbidden construye un ErrForbidden con mensaje propio.
func Forbidden(format string, args ...interface{}) error {
	return newError(ErrForbidden, format, args...)
}

// Conflict construye un ErrConflict con mensaje propio.
func Conflict(format string, args ...interface{}) error {
	return newError(ErrConflict, format, args...)
}

// InvalidInput construye un ErrInvalidInput con mensaje propio.
func InvalidInput(format string, args ...interface{}) error {
	return newError(ErrInvalidInput, format, args...)
}

// StockExceededError indica que la cantidad pedida de un producto supera su stock.
type StockExceededError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("The item: %s exceed the available stock", e.ProductName)
}

func (e *StockExceededError) Unwrap() error { return ErrStockExceeded }
