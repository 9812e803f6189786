package domain

// ErrorReason classifica um erro de validação por linha/campo
type ErrorReason string

const (
	// ReasonMissingField indica campo obrigatório ausente ou vazio
	ReasonMissingField ErrorReason = "missing_field"
	// ReasonWrongType indica valor que não pôde ser convertido para o tipo declarado
	ReasonWrongType ErrorReason = "wrong_type"
	// ReasonConstraintViolation indica valor numérico negativo onde não é permitido
	ReasonConstraintViolation ErrorReason = "constraint_violation"
)

// ValidationError identifica um problema em uma linha/campo específico
type ValidationError struct {
	Row     int         `json:"row"`
	Field   string      `json:"field"`
	Reason  ErrorReason `json:"reason"`
	Message string      `json:"message"`
}

// ValidationReport é o resultado da validação de um dataset completo.
// Os erros são ordenados por linha e, dentro da linha, pela ordem de
// declaração dos campos no esquema.
type ValidationReport struct {
	Total         int               `json:"total"`
	Valid         int               `json:"valid"`
	Invalid       int               `json:"invalid"`
	SafeToProceed bool              `json:"safe_to_proceed"`
	Errors        []ValidationError `json:"errors"`
}
