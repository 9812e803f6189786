package domain

// FieldKind representa o tipo semântico de um campo do esquema
type FieldKind string

const (
	FieldKindDate    FieldKind = "date"
	FieldKindText    FieldKind = "text"
	FieldKindDecimal FieldKind = "decimal"
	FieldKindInteger FieldKind = "integer"
)

// Nomes dos campos do esquema, idênticos aos cabeçalhos esperados no CSV
const (
	FieldDate         = "date"
	FieldCampaignName = "campaign_name"
	FieldAdSetName    = "adset_name"
	FieldAmountSpent  = "amount_spent"
	FieldConversions  = "conversions"
	FieldImpressions  = "impressions"
	FieldClicks       = "clicks"
	FieldObjective    = "objective"
	FieldAdType       = "ad_type"
)

// DateLayout é o formato de data aceito nos registros (ex: 2024-03-01)
const DateLayout = "2006-01-02"

// FieldDescriptor descreve um campo do esquema de performance de anúncios.
// A validação itera sobre a tabela de descritores na ordem de declaração,
// o que garante relatórios determinísticos.
type FieldDescriptor struct {
	Name        string
	Kind        FieldKind
	Required    bool
	NonNegative bool
}

// Schema retorna a tabela de descritores do esquema. A ordem de declaração
// define a ordem dos erros por linha no relatório de validação.
func Schema() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: FieldDate, Kind: FieldKindDate, Required: true},
		{Name: FieldCampaignName, Kind: FieldKindText, Required: true},
		{Name: FieldAdSetName, Kind: FieldKindText, Required: true},
		{Name: FieldAmountSpent, Kind: FieldKindDecimal, Required: true, NonNegative: true},
		{Name: FieldConversions, Kind: FieldKindInteger, NonNegative: true},
		{Name: FieldImpressions, Kind: FieldKindInteger, NonNegative: true},
		{Name: FieldClicks, Kind: FieldKindInteger, NonNegative: true},
		{Name: FieldObjective, Kind: FieldKindText},
		{Name: FieldAdType, Kind: FieldKindText},
	}
}
