package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
// Identidad de negocio por nombre único; el motor la usa en modo lectura.
type Warehouse struct {
	ID        string
	Name      string // único
	Location  string
	Region    string
	Capacity  int64
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
