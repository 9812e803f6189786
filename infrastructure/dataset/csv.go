package dataset

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/ad-performance-api/internal/domain"
)

// ErrUnreadableInput marca falha estrutural: o conteúdo não pôde ser lido
// como tabela. É fatal para a invocação corrente, sem relatório parcial;
// problemas por linha/campo são assunto da validação, não deste pacote.
var ErrUnreadableInput = errors.New("o arquivo não pôde ser lido como tabela")

// ParseCSV materializa um Dataset a partir de um CSV com linha de cabeçalho.
// Linhas com menos colunas que o cabeçalho são aceitas: as células ausentes
// simplesmente não existem no mapeamento e a validação as reporta como campo
// faltante. Os números de linha são 1-based sobre as linhas de dados.
func ParseCSV(r io.Reader, filename string) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrUnreadableInput, "arquivo vazio, sem linha de cabeçalho")
	}
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableInput, "cabeçalho ilegível: %v", err)
	}

	headers := make([]string, 0, len(header))
	for _, name := range header {
		headers = append(headers, strings.TrimSpace(name))
	}

	ds := &domain.Dataset{
		Filename: filename,
		Headers:  headers,
		Rows:     make([]domain.Row, 0),
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrUnreadableInput, "linha de dados %d ilegível: %v", len(ds.Rows)+1, err)
		}

		cells := make(map[string]string, len(headers))
		for i, name := range headers {
			if i >= len(record) {
				break
			}
			cells[name] = record[i]
		}

		ds.Rows = append(ds.Rows, domain.Row{
			Number: len(ds.Rows) + 1,
			Cells:  cells,
		})
	}

	return ds, nil
}

// IsUnreadable verifica se o erro é uma falha estrutural de leitura
func IsUnreadable(err error) bool {
	return errors.Is(err, ErrUnreadableInput)
}
