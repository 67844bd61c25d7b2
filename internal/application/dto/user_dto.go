package dto

import "time"

// RegisterRequest alta de usuario.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role"` // vacío = vendedor
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Estados del ciclo de vida de sesión que expone GET /api/auth/session.
const (
	SessionAnonymous     = "anonymous"
	SessionAuthenticated = "authenticated"
	SessionError         = "error"
)

// SessionResponse estado de sesión explícito: el front lo consume tal cual
// en lugar de deducirlo de un contexto ambiente.
type SessionResponse struct {
	State   string        `json:"state"` // anonymous | authenticated | error
	Profile *UserResponse `json:"profile,omitempty"`
	Reason  string        `json:"reason,omitempty"` // solo para state = error
}
