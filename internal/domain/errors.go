package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	// ErrUpstream indica que un servicio externo (transcripción o extracción) falló
	// o devolvió una respuesta que no se pudo interpretar.
	ErrUpstream = errors.New("servicio externo no disponible")
)
