package domain

import "errors"

// Kind clasifica los errores de dominio para que la capa HTTP decida el status sin
// depender del mensaje.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindDuplicateResource
	KindInvalidCredentials
	KindInactiveAccount
	KindUnauthenticated
	KindForbidden
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindDuplicateResource:
		return "DUPLICATE"
	case KindInvalidCredentials:
		return "INVALID_CREDENTIALS"
	case KindInactiveAccount:
		return "INACTIVE_ACCOUNT"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindValidation:
		return "VALIDATION"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}

// Error es el error tipado del dominio. Resource es opcional (user, product, sku, ...).
type Error struct {
	Kind     Kind
	Resource string
	Message  string
}

func (e *Error) Error() string {
	return e.Message
}

// Is compara por Kind; si el objetivo nombra un Resource también debe coincidir.
// Así errors.Is(ErrUserNotFound, ErrNotFound) es true pero no al revés.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Resource == "" || t.Resource == e.Resource
}

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "recurso no encontrado"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Resource: "user", Message: "usuario no encontrado"}
	ErrProductNotFound    = &Error{Kind: KindNotFound, Resource: "product", Message: "producto no encontrado"}
	ErrCategoryNotFound   = &Error{Kind: KindNotFound, Resource: "category", Message: "categoría no encontrada"}
	ErrOrderNotFound      = &Error{Kind: KindNotFound, Resource: "order", Message: "orden no encontrada"}
	ErrCouponNotFound     = &Error{Kind: KindNotFound, Resource: "coupon", Message: "cupón no encontrado"}
	ErrDuplicate          = &Error{Kind: KindDuplicateResource, Message: "recurso duplicado"}
	ErrEmailAlreadyExists = &Error{Kind: KindDuplicateResource, Resource: "email", Message: "el email ya está registrado"}
	ErrUsernameTaken      = &Error{Kind: KindDuplicateResource, Resource: "username", Message: "el username ya está en uso"}
	ErrSKUAlreadyExists   = &Error{Kind: KindDuplicateResource, Resource: "sku", Message: "el SKU ya existe"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "credenciales inválidas"}
	ErrInactiveAccount    = &Error{Kind: KindInactiveAccount, Message: "cuenta inactiva"}
	ErrInvalidToken       = &Error{Kind: KindUnauthenticated, Resource: "token", Message: "token inválido o expirado"}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated, Message: "autenticación requerida"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "acceso denegado"}
	ErrInvalidInput       = &Error{Kind: KindValidation, Message: "entrada inválida"}
	ErrConflict           = &Error{Kind: KindConflict, Message: "conflicto con el estado actual"}
)

// NewNotFound construye un NotFound para un recurso concreto.
func NewNotFound(resource, message string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, Message: message}
}

// NewDuplicate construye un DuplicateResource indicando el campo en conflicto.
func NewDuplicate(resource, message string) *Error {
	return &Error{Kind: KindDuplicateResource, Resource: resource, Message: message}
}

// NewValidation construye un error de validación con mensaje legible.
func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewConflict construye un Conflict para un recurso.
func NewConflict(resource, message string) *Error {
	return &Error{Kind: KindConflict, Resource: resource, Message: message}
}

// KindOf devuelve el Kind del primer *Error de la cadena, o KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
