package domain

import (
	"github.com/vfg2006/ad-performance-api/pkg/utils"
)

// ComputeCPA calcula o custo por aquisição. Quando não há conversões o CPA é
// indefinido e o retorno é nil: zero daria a falsa impressão de aquisição
// gratuita, então o valor "n/a" é um sentinela distinto de zero.
func ComputeCPA(spend float64, conversions int) *float64 {
	if conversions <= 0 {
		return nil
	}

	cpa := utils.RoundWithTwoDecimalPlace(spend / float64(conversions))
	return &cpa
}

// SummaryRow é uma linha de tabela agregada: chave do grupo, totais e CPA
// agregado (nil quando o grupo não tem conversões)
type SummaryRow struct {
	Key              string   `json:"key"`
	TotalSpend       float64  `json:"total_spend"`
	TotalConversions int      `json:"total_conversions"`
	CPA              *float64 `json:"cpa"`
}

// RankingEntry é uma posição do ranking de AdSets por CPA crescente.
// Grupos com CPA indefinido não entram no ranking.
type RankingEntry struct {
	AdSetName        string  `json:"adset_name"`
	CPA              float64 `json:"cpa"`
	TotalSpend       float64 `json:"total_spend"`
	TotalConversions int     `json:"total_conversions"`
}

// KPIMetrics são os indicadores globais do dataset
type KPIMetrics struct {
	TotalSpend       float64  `json:"total_spend"`
	TotalConversions int      `json:"total_conversions"`
	CPA              *float64 `json:"cpa"`
}

// AggregationOptions parametriza a agregação. FilterObjective restringe as
// visões por dia da semana, AdSet e tipo de criativo a um objetivo de
// campanha (ex: "leads"); as visões mensais e os KPIs permanecem globais.
type AggregationOptions struct {
	TopN            int
	FilterObjective string
}

// AggregatedMetrics é o conjunto de tabelas agregadas consumido pelo
// dashboard. DateExclusions conta os registros deixados de fora das
// agregações temporais por terem data ininterpretável.
type AggregatedMetrics struct {
	KPIs           KPIMetrics     `json:"kpis"`
	ByMonth        []SummaryRow   `json:"by_month"`
	ByWeekday      []SummaryRow   `json:"by_weekday"`
	ByAdSet        []SummaryRow   `json:"by_adset"`
	ByAdType       []SummaryRow   `json:"by_ad_type"`
	TopAdSets      []RankingEntry `json:"top_adsets"`
	DateExclusions int            `json:"date_exclusions"`
}
