package dto

import "time"

// CustomerPayload datos de cliente que pueden venir embebidos en un documento
// o en POST/PUT /api/customers.
// PersonID presente = actualizar el cliente de esa persona.
type CustomerPayload struct {
	PersonID       string          `json:"person_id,omitempty"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name,omitempty"`
	DocumentType   string          `json:"document_type,omitempty"`
	DocumentNumber string          `json:"document_number"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Address        *AddressPayload `json:"address,omitempty"`
}

// AddressPayload dirección opcional del cliente.
type AddressPayload struct {
	Location string `json:"location"`
	City     string `json:"city"`
}

// CustomerResponse cliente con persona y dirección denormalizadas.
type CustomerResponse struct {
	ID             string           `json:"id"`
	PersonID       string           `json:"person_id"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name,omitempty"`
	FullName       string           `json:"full_name"`
	DocumentType   string           `json:"document_type,omitempty"`
	DocumentNumber string           `json:"document_number"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Address        *AddressResponse `json:"address,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// AddressResponse dirección en respuestas.
type AddressResponse struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	City     string `json:"city"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
