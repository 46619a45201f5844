package domain

import "time"

// Role drives which parts of the front end a user can reach. The terminal
// only needs it for attribution; it does not gate any cart operation.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "GERENTE"
	RoleOperator Role = "FUNCIONARIO"
)

// User is an authenticated profile. Sales are attributed to the user who
// finalized them.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
