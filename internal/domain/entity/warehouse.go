package entity

import "time"

// Warehouse representa una bodega o depósito donde se almacenan lotes.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
