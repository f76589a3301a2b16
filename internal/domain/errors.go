package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado; los mensajes llegan al usuario final.
var (
	ErrValidation        = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicateUsername = errors.New("el nombre de usuario ya existe")
	ErrUnknownIDFormat   = errors.New("formato de id de producto desconocido")
	ErrUnauthorized      = errors.New("credenciales inválidas")
)
