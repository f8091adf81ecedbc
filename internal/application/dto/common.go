package dto

// ErrorResponse cuerpo de error HTTP (fuera de GraphQL: body inválido, rutas desconocidas).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
