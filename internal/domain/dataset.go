package domain

import (
	"strings"
	"time"
)

// Row é uma linha crua do arquivo tabular: um mapeamento de nome de coluna
// para o valor bruto da célula, mais o número da linha de dados (1-based)
type Row struct {
	Number int               `json:"number"`
	Cells  map[string]string `json:"cells"`
}

// Cell retorna o valor bruto de uma coluna. O segundo retorno indica se a
// célula está presente e não vazia (espaços em branco contam como vazio)
func (r Row) Cell(name string) (string, bool) {
	raw, ok := r.Cells[name]
	if !ok {
		return "", false
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	return raw, true
}

// Dataset é uma sequência ordenada de linhas cruas lida de um único upload.
// Não há restrição de unicidade; a ordem de inserção é preservada para que
// os números de linha do relatório correspondam ao arquivo de origem.
type Dataset struct {
	Filename string   `json:"filename"`
	Headers  []string `json:"headers"`
	Rows     []Row    `json:"rows"`
}

// Len retorna o total de linhas de dados do dataset
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// HasHeader verifica se o dataset possui a coluna informada
func (d *Dataset) HasHeader(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// DatasetUpload representa um dataset carregado mantido em memória durante a
// sessão. Nada é persistido entre execuções do processo.
type DatasetUpload struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	RowCount   int       `json:"row_count"`
	UploadedAt time.Time `json:"uploaded_at"`
	Dataset    *Dataset  `json:"-"`
}
