package entity

import "time"

// User representa la cuenta dueña de los datos. Todos los recursos
// (clientes, productos, ventas) pertenecen a exactamente un usuario.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
