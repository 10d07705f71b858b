package dto

// BatchCandidateRequest una fila candidata del lote de reposición. Quantity y
// UnitCost llegan como texto porque la UI los edita campo a campo; el pipeline
// los parsea y revalida en cada edición.
type BatchCandidateRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
	UnitCost string `json:"unit_cost" validate:"required"`
	Note     string `json:"note" validate:"omitempty,max=500"`
}

// BatchCommitRequest body para POST /api/stock/batch.
type BatchCommitRequest struct {
	Candidates []BatchCandidateRequest `json:"candidates" validate:"required,min=1,dive"`
}

// BatchFieldErrorDTO error de validación de un campo de un candidato.
type BatchFieldErrorDTO struct {
	Candidate int    `json:"candidate"` // índice dentro del lote
	Field     string `json:"field"`
	Message   string `json:"message"`
}

// BatchCommitResponse salida del commit exitoso.
type BatchCommitResponse struct {
	Applied int `json:"applied"` // movimientos creados
}
