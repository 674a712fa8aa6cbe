package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Cada fallo de la aplicación se clasifica en exactamente uno de estos tipos.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrStore        = errors.New("fallo de persistencia")
)

// Invalid construye un error de validación con detalle legible para el cliente.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Duplicate construye un error de unicidad indicando el campo en conflicto.
func Duplicate(field string) error {
	return fmt.Errorf("%w: %s ya existe", ErrDuplicate, field)
}

// NotFound construye un ErrNotFound nombrando la entidad buscada.
func NotFound(entity string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entity)
}

// Conflict construye un ErrConflict con detalle.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Kind devuelve el error centinela que clasifica err. Errores desconocidos se tratan como ErrStore.
func Kind(err error) error {
	for _, k := range []error{ErrInvalidInput, ErrDuplicate, ErrConflict, ErrNotFound, ErrUnauthorized} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrStore
}
