package dto

import (
	"time"

	"github.com/jhoicas/mashop-api/internal/domain/entity"
)

// RegisterRequest entrada para crear un usuario (password en texto, se hashea en el
// caso de uso).
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"` // vacío => "user"
}

// UpdateUserRequest parche parcial de usuario. Cambiar Username regenera el avatar
// derivado; la unicidad del username NO se re-verifica en update (solo en creación).
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *string `json:"role,omitempty"`
}

// ToPatch traduce la petición al parche de dominio.
func (r UpdateUserRequest) ToPatch() entity.UserPatch {
	return entity.UserPatch{
		Username:  r.Username,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.Role,
	}
}

// UserResponse salida de un usuario (sin credenciales).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// LoginRequest entrada para login local.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT y el usuario saneado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// FromUser construye la respuesta desde la entidad, sin el hash de password.
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
