package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		validate func(t *testing.T, err error, total int)
	}{
		{
			name: "CSV bem formado",
			input: "date,campaign_name,adset_name,amount_spent,conversions\n" +
				"2024-03-01,Campanha A,Lookalike 1%,150.00,5\n" +
				"2024-03-02,Campanha A,Lookalike 1%,80.50,2\n",
			validate: func(t *testing.T, err error, total int) {
				assert.NoError(t, err)
				assert.Equal(t, 2, total)
			},
		},
		{
			name:  "Somente cabeçalho - dataset sem linhas",
			input: "date,campaign_name,adset_name,amount_spent\n",
			validate: func(t *testing.T, err error, total int) {
				assert.NoError(t, err)
				assert.Equal(t, 0, total)
			},
		},
		{
			name:  "Arquivo vazio é ilegível",
			input: "",
			validate: func(t *testing.T, err error, total int) {
				require.Error(t, err)
				assert.True(t, IsUnreadable(err))
			},
		},
		{
			name:  "Aspas desbalanceadas tornam o arquivo ilegível",
			input: "date,campaign_name\n2024-03-01,\"Campanha sem fechar\n2024-03-02,Outra\n",
			validate: func(t *testing.T, err error, total int) {
				require.Error(t, err)
				assert.True(t, IsUnreadable(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ParseCSV(strings.NewReader(tt.input), "teste.csv")

			total := 0
			if ds != nil {
				total = ds.Len()
			}
			tt.validate(t, err, total)
		})
	}
}

func TestParseCSV_CelulasENumeracao(t *testing.T) {
	input := "date, campaign_name ,adset_name\n" +
		"2024-03-01,Campanha A,Conjunto 1\n" +
		"2024-03-02,Campanha B\n"

	ds, err := ParseCSV(strings.NewReader(input), "performance.csv")
	require.NoError(t, err)

	// Cabeçalhos são normalizados sem espaços ao redor
	assert.Equal(t, []string{"date", "campaign_name", "adset_name"}, ds.Headers)
	assert.True(t, ds.HasHeader("campaign_name"))

	require.Len(t, ds.Rows, 2)

	// Numeração 1-based sobre as linhas de dados
	assert.Equal(t, 1, ds.Rows[0].Number)
	assert.Equal(t, 2, ds.Rows[1].Number)

	value, ok := ds.Rows[0].Cell("adset_name")
	assert.True(t, ok)
	assert.Equal(t, "Conjunto 1", value)

	// Linha curta: a célula da coluna faltante simplesmente não existe
	_, ok = ds.Rows[1].Cell("adset_name")
	assert.False(t, ok)

	assert.Equal(t, "performance.csv", ds.Filename)
}
