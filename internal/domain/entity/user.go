package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa una identidad local de la tienda.
// PasswordHash es bcrypt; nunca viaja en respuestas (ver Sanitized).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"` // único, verificado solo en la creación
	PasswordHash string    `json:"password,omitempty"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"` // admin | user
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// Sanitized devuelve una copia sin credenciales, apta para entregar a la capa de
// presentación.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// UserPatch parche parcial para Update. Password, si viene, es texto plano y se
// re-hashea en el caso de uso.
type UserPatch struct {
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *string `json:"role,omitempty"`
}

// Apply aplica los campos presentes del parche sobre el usuario. Password queda
// fuera: el caso de uso lo hashea y escribe PasswordHash; el avatar derivado del
// username también lo regenera el caso de uso.
func (u *User) Apply(p UserPatch) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}
