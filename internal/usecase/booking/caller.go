package booking

import "github.com/google/uuid"

const (
	RoleAdmin       = "admin"
	RoleColaborador = "colaborador"
)

// Caller é a identidade já autenticada pelo middleware.
// Colaborador só enxerga e mexe na própria agenda.
type Caller struct {
	BarberID uuid.UUID
	Role     string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
