package entity

import "time"

// Person datos personales del cliente. Pertenece al Customer.
type Person struct {
	ID             string
	FirstName      string
	LastName       string
	DocumentType   string // CC, NIT, CE, PP
	DocumentNumber string
	Email          string
	Phone          string
}

// FullName nombre completo para mostrar.
func (p *Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Address dirección opcional del cliente.
type Address struct {
	ID       string
	Location string
	City     string
}

// Customer agrupa una persona y opcionalmente una dirección.
// Se comparte entre varios documentos (no pertenece a ninguno).
type Customer struct {
	ID        string
	ShopID    string
	Person    Person
	Address   *Address
	CreatedAt time.Time
	UpdatedAt time.Time
}
