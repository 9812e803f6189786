package aggregating

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-performance-api/internal/config"
	"github.com/vfg2006/ad-performance-api/internal/domain"
	"github.com/vfg2006/ad-performance-api/pkg/utils"
)

// monthPeriodLayout é o formato das chaves de período mensal (ex: "03-2024")
const monthPeriodLayout = "01-2006"

// weekdayOrder fixa o domínio de 7 dias, de segunda a domingo
var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// Service implementa a interface Aggregator
type Service struct {
	cfg *config.Config
}

// NewService cria uma nova instância do serviço de agregação
func NewService(cfg *config.Config) Aggregator {
	return &Service{cfg: cfg}
}

// acumulador de um grupo de agregação
type bucketAggregator struct {
	totalSpend       float64
	totalConversions int
}

// Normalize aplica a regra de preenchimento antes de qualquer aritmética:
// conversions e amount_spent ausentes viram zero. O resultado é uma cópia
// normalizada; o dataset original não é modificado, preservando a semântica
// de erros crus da validação. Datas ininterpretáveis ficam nil no registro.
func Normalize(dataset *domain.Dataset) []domain.Record {
	if dataset == nil {
		return nil
	}

	records := make([]domain.Record, 0, dataset.Len())

	for _, row := range dataset.Rows {
		record := domain.Record{
			CampaignName: textCell(row, domain.FieldCampaignName),
			AdSetName:    textCell(row, domain.FieldAdSetName),
			AmountSpent:  decimalCell(row, domain.FieldAmountSpent),
			Conversions:  integerCell(row, domain.FieldConversions),
			Impressions:  integerCell(row, domain.FieldImpressions),
			Clicks:       integerCell(row, domain.FieldClicks),
			Objective:    textCell(row, domain.FieldObjective),
			AdType:       textCell(row, domain.FieldAdType),
		}

		if raw, ok := row.Cell(domain.FieldDate); ok {
			if date, err := time.Parse(domain.DateLayout, raw); err == nil {
				record.Date = &date
			}
		}

		records = append(records, record)
	}

	return records
}

// Aggregate produz as tabelas agregadas do dataset: KPIs globais,
// totais por mês, por dia da semana, por AdSet e por tipo de criativo,
// além do ranking de AdSets por CPA crescente
func (s *Service) Aggregate(dataset *domain.Dataset, opts *domain.AggregationOptions) *domain.AggregatedMetrics {
	records := Normalize(dataset)

	metrics := &domain.AggregatedMetrics{
		ByMonth:   make([]domain.SummaryRow, 0),
		ByWeekday: make([]domain.SummaryRow, 0, len(weekdayOrder)),
		ByAdSet:   make([]domain.SummaryRow, 0),
		ByAdType:  make([]domain.SummaryRow, 0),
		TopAdSets: make([]domain.RankingEntry, 0),
	}

	if len(records) == 0 {
		metrics.ByWeekday = emptyWeekdayRows()
		return metrics
	}

	for _, record := range records {
		metrics.KPIs.TotalSpend += record.AmountSpent
		metrics.KPIs.TotalConversions += record.Conversions

		if record.Date == nil {
			metrics.DateExclusions++
		}
	}

	metrics.KPIs.CPA = domain.ComputeCPA(metrics.KPIs.TotalSpend, metrics.KPIs.TotalConversions)
	metrics.KPIs.TotalSpend = utils.RoundWithTwoDecimalPlace(metrics.KPIs.TotalSpend)

	// As visões por dia da semana, AdSet e criativo respeitam o filtro de
	// objetivo; a visão mensal e os KPIs permanecem globais
	filtered := filterByObjective(records, objectiveFilter(opts))

	metrics.ByMonth = aggregateByMonth(records)
	metrics.ByWeekday = aggregateByWeekday(filtered)
	metrics.ByAdSet = aggregateByKey(filtered, func(r domain.Record) string { return r.AdSetName })
	metrics.ByAdType = aggregateByKey(filtered, func(r domain.Record) string { return r.AdType })
	metrics.TopAdSets = rankAdSets(metrics.ByAdSet, s.topN(opts))

	logrus.WithFields(logrus.Fields{
		"records":         len(records),
		"months":          len(metrics.ByMonth),
		"adsets":          len(metrics.ByAdSet),
		"date_exclusions": metrics.DateExclusions,
	}).Debug("Agregação de métricas concluída")

	return metrics
}

func (s *Service) topN(opts *domain.AggregationOptions) int {
	if opts != nil && opts.TopN > 0 {
		return opts.TopN
	}

	if s.cfg != nil && s.cfg.Upload.DefaultTopN > 0 {
		return s.cfg.Upload.DefaultTopN
	}

	return 15
}

func objectiveFilter(opts *domain.AggregationOptions) string {
	if opts == nil {
		return ""
	}
	return strings.TrimSpace(opts.FilterObjective)
}

// filterByObjective restringe os registros a um objetivo de campanha,
// comparando sem diferenciar maiúsculas (o dashboard original filtrava por
// "leads"). Filtro vazio retorna todos os registros.
func filterByObjective(records []domain.Record, objective string) []domain.Record {
	if objective == "" {
		return records
	}

	filtered := make([]domain.Record, 0, len(records))
	for _, record := range records {
		if strings.EqualFold(record.Objective, objective) {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

// aggregateByMonth agrupa por mês calendário. Apenas períodos presentes nos
// dados aparecem; registros sem data interpretável são excluídos.
func aggregateByMonth(records []domain.Record) []domain.SummaryRow {
	buckets := make(map[string]*bucketAggregator)
	periodDates := make(map[string]time.Time)

	for _, record := range records {
		if record.Date == nil {
			continue
		}

		period := record.Date.Format(monthPeriodLayout)
		if _, exists := buckets[period]; !exists {
			buckets[period] = &bucketAggregator{}
			periodDates[period] = time.Date(record.Date.Year(), record.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		}

		buckets[period].totalSpend += record.AmountSpent
		buckets[period].totalConversions += record.Conversions
	}

	periods := make([]string, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}

	// Ordenação cronológica, não lexicográfica: "12-2023" vem antes de "01-2024"
	sort.Slice(periods, func(i, j int) bool {
		return periodDates[periods[i]].Before(periodDates[periods[j]])
	})

	rows := make([]domain.SummaryRow, 0, len(periods))
	for _, period := range periods {
		rows = append(rows, summaryRow(period, buckets[period]))
	}

	return rows
}

// aggregateByWeekday agrupa pelo dia da semana da data. A saída tem sempre
// exatamente 7 posições, de segunda a domingo, com totais zerados e CPA n/a
// onde não há registros. Registros sem data interpretável são excluídos.
func aggregateByWeekday(records []domain.Record) []domain.SummaryRow {
	buckets := make(map[time.Weekday]*bucketAggregator, len(weekdayOrder))
	for _, weekday := range weekdayOrder {
		buckets[weekday] = &bucketAggregator{}
	}

	for _, record := range records {
		if record.Date == nil {
			continue
		}

		bucket := buckets[record.Date.Weekday()]
		bucket.totalSpend += record.AmountSpent
		bucket.totalConversions += record.Conversions
	}

	rows := make([]domain.SummaryRow, 0, len(weekdayOrder))
	for _, weekday := range weekdayOrder {
		rows = append(rows, summaryRow(weekday.String(), buckets[weekday]))
	}

	return rows
}

// aggregateByKey agrupa por uma chave categórica (AdSet, tipo de criativo).
// Registros com chave vazia são agrupados sob "(sem identificação)". Linhas
// ordenadas por gasto total decrescente, desempatando pela chave, para que
// a mesma entrada produza sempre a mesma tabela.
func aggregateByKey(records []domain.Record, keyFn func(domain.Record) string) []domain.SummaryRow {
	buckets := make(map[string]*bucketAggregator)

	for _, record := range records {
		key := keyFn(record)
		if key == "" {
			key = "(sem identificação)"
		}

		if _, exists := buckets[key]; !exists {
			buckets[key] = &bucketAggregator{}
		}

		buckets[key].totalSpend += record.AmountSpent
		buckets[key].totalConversions += record.Conversions
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if buckets[keys[i]].totalSpend != buckets[keys[j]].totalSpend {
			return buckets[keys[i]].totalSpend > buckets[keys[j]].totalSpend
		}
		return keys[i] < keys[j]
	})

	rows := make([]domain.SummaryRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, summaryRow(key, buckets[key]))
	}

	return rows
}

// rankAdSets monta o ranking de melhores AdSets por CPA crescente. Grupos
// com CPA indefinido ficam fora do ranking: não são tratados como piores,
// apenas não têm custo por aquisição comparável.
func rankAdSets(adsetRows []domain.SummaryRow, topN int) []domain.RankingEntry {
	ranked := make([]domain.RankingEntry, 0, len(adsetRows))

	for _, row := range adsetRows {
		if row.CPA == nil {
			continue
		}

		ranked = append(ranked, domain.RankingEntry{
			AdSetName:        row.Key,
			CPA:              *row.CPA,
			TotalSpend:       row.TotalSpend,
			TotalConversions: row.TotalConversions,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].CPA != ranked[j].CPA {
			return ranked[i].CPA < ranked[j].CPA
		}
		return ranked[i].AdSetName < ranked[j].AdSetName
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked
}

func summaryRow(key string, bucket *bucketAggregator) domain.SummaryRow {
	return domain.SummaryRow{
		Key:              key,
		TotalSpend:       utils.RoundWithTwoDecimalPlace(bucket.totalSpend),
		TotalConversions: bucket.totalConversions,
		CPA:              domain.ComputeCPA(bucket.totalSpend, bucket.totalConversions),
	}
}

func emptyWeekdayRows() []domain.SummaryRow {
	rows := make([]domain.SummaryRow, 0, len(weekdayOrder))
	for _, weekday := range weekdayOrder {
		rows = append(rows, summaryRow(weekday.String(), &bucketAggregator{}))
	}
	return rows
}

func textCell(row domain.Row, name string) string {
	raw, _ := row.Cell(name)
	return raw
}

// decimalCell interpreta um valor decimal; ausente ou ininterpretável vira
// zero (melhor esforço, pós-validação)
func decimalCell(row domain.Row, name string) float64 {
	raw, ok := row.Cell(name)
	if !ok {
		return 0
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}

	return value
}

func integerCell(row domain.Row, name string) int {
	raw, ok := row.Cell(name)
	if !ok {
		return 0
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}

	return int(value)
}
