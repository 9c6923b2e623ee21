package dto

import "github.com/jhoicas/suplegear-api/pkg/pagination"

// PageRequest paginación para listados (page 1-based).
type PageRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse = pagination.Meta

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
