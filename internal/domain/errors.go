package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de dominio. El capa HTTP mapea cada Kind a un
// status code; nunca se envían hints de remediación ni SQL al cliente.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindNotFound
	KindDuplicate
	KindUnauthorized
	KindForbidden
	KindConflict
	KindInsufficientStock
	KindAllocationIntegrity
	KindPersistence
)

// String devuelve el código estable del Kind (usado en respuestas HTTP).
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindDuplicate:
		return "DUPLICATE"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindConflict:
		return "CONFLICT"
	case KindInsufficientStock:
		return "INSUFFICIENT_STOCK"
	case KindAllocationIntegrity:
		return "ALLOCATION_INTEGRITY"
	case KindPersistence:
		return "PERSISTENCE"
	default:
		return "UNKNOWN"
	}
}

// Error es el error estructurado de dominio. Los campos Product/Requested/
// Available solo se llenan para KindInsufficientStock, de modo que el caller
// pueda armar el mensaje "pidió X, hay Y" sin parsear strings.
type Error struct {
	Kind      Kind
	Message   string
	Product   string // nombre o ID del producto afectado (stock insuficiente)
	Requested int64
	Available int64
	Err       error // causa subyacente (ej. error del driver, pasado verbatim)
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

// Unwrap expone la causa para errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// IsKind reporta si err es un *Error de dominio del Kind indicado.
func IsKind(err error, kind Kind) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Kind == kind
}

// AsError devuelve el *Error de dominio contenido en err, o nil.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return nil
}

// ── Constructores ─────────────────────────────────────────────────────────────

// ErrInvalidInput construye un error de entrada inválida.
func ErrInvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// ErrNotFound construye un error de recurso no encontrado.
func ErrNotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " no encontrado"}
}

// ErrDuplicate construye un error de recurso duplicado.
func ErrDuplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Message: msg}
}

// ErrUnauthorized construye un error de autenticación.
func ErrUnauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// ErrForbidden construye un error de autorización.
func ErrForbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// ErrConflict construye un error de conflicto con el estado actual.
func ErrConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// ErrInsufficientStock construye el error de stock insuficiente. El total
// disponible reportado es SIEMPRE la suma entera usable (piso y filtrado de
// lotes con menos de 1 unidad), nunca la suma fraccionaria cruda.
func ErrInsufficientStock(product string, requested, available int64) *Error {
	return &Error{
		Kind:      KindInsufficientStock,
		Message:   fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d", product, requested, available),
		Product:   product,
		Requested: requested,
		Available: available,
	}
}

// ErrAllocationIntegrity construye el error de integridad de asignación.
// Solo puede originarse en un defecto de lógica, no en entradas del usuario:
// la verificación de capacidad ya garantizó suficiencia.
func ErrAllocationIntegrity(product string, remaining int64) *Error {
	return &Error{
		Kind:    KindAllocationIntegrity,
		Message: fmt.Sprintf("asignación incompleta para %s: quedaron %d unidades sin asignar tras verificar capacidad", product, remaining),
		Product: product,
	}
}

// ErrPersistence envuelve un fallo del almacenamiento. El mensaje del driver
// se conserva verbatim (el caller lo muestra y permite reintentar).
func ErrPersistence(err error) *Error {
	return &Error{Kind: KindPersistence, Err: err}
}
