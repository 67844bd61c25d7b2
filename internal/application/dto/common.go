package dto

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Code es el Kind del error de dominio.
// Para stock insuficiente se agregan los campos estructurados: el cliente
// arma su mensaje sin parsear el texto.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Product   string `json:"product,omitempty"`
	Requested int64  `json:"requested,omitempty"`
	Available int64  `json:"available,omitempty"`
}
