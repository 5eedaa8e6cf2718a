package dto

// Límites de paginación de los listados.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Códigos de error de las respuestas HTTP.
const (
	CodeValidation        = "VALIDATION"
	CodeInvalidBody       = "INVALID_BODY"
	CodeInvalidQuery      = "INVALID_QUERY"
	CodeNotFound          = "NOT_FOUND"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeDuplicate         = "DUPLICATE"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeMissingToken      = "MISSING_TOKEN"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeMissingRole       = "MISSING_ROLE"
	CodeInternal          = "INTERNAL"
)

// PageRequest paginación por limit/offset de los listados de documentos y clientes.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage normaliza la página: limit en [1, MaxLimit], offset no negativo.
func (p *PageRequest) DefaultPage() {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página. HasMore indica que la página vino llena
// y puede haber más filas tras Offset+Count.
type PageResponse struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Count   int  `json:"count"`
	HasMore bool `json:"has_more"`
}

// NewPageResponse arma los metadatos a partir de la página pedida y las filas devueltas.
func NewPageResponse(p PageRequest, count int) PageResponse {
	return PageResponse{
		Limit:   p.Limit,
		Offset:  p.Offset,
		Count:   count,
		HasMore: p.Limit > 0 && count >= p.Limit,
	}
}

// ErrorResponse cuerpo de error HTTP; Code es una de las constantes Code*.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
