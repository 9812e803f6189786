package validating

import (
	"github.com/vfg2006/ad-performance-api/internal/domain"
)

// Validator verifica datasets de performance de anúncios contra o esquema
// antes de qualquer uso downstream
type Validator interface {
	Validate(dataset *domain.Dataset) *domain.ValidationReport
}
