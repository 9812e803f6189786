package aggregating

import (
	"github.com/vfg2006/ad-performance-api/internal/domain"
)

// Aggregator transforma um dataset já validado nas tabelas agregadas
// consumidas pelo dashboard. O componente assume entrada conforme o esquema
// e não revalida: dados inválidos são tratados em melhor esforço.
type Aggregator interface {
	Aggregate(dataset *domain.Dataset, opts *domain.AggregationOptions) *domain.AggregatedMetrics
}
