package domain

import "time"

// Record é uma linha de performance de anúncios já normalizada para
// agregação: métricas ausentes preenchidas com zero e data interpretada.
// Date fica nil quando a data bruta não pôde ser interpretada; nesse caso o
// registro é excluído apenas das agregações temporais.
type Record struct {
	Date         *time.Time
	CampaignName string
	AdSetName    string
	AmountSpent  float64
	Conversions  int
	Impressions  int
	Clicks       int
	Objective    string
	AdType       string
}
