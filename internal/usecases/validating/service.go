package validating

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-performance-api/internal/domain"
)

// Service implementa a interface Validator
type Service struct{}

// NewService cria uma nova instância do serviço de validação
func NewService() Validator {
	return &Service{}
}

// Validate verifica cada linha do dataset contra o esquema e produz o
// relatório de validação. Linhas com problemas são coletadas no relatório,
// nunca tratadas como exceção: a validação sempre percorre o dataset
// inteiro. A função não modifica o dataset e, para a mesma entrada, produz
// sempre o mesmo relatório (erros ordenados por linha e, dentro da linha,
// pela ordem de declaração dos campos).
func (s *Service) Validate(dataset *domain.Dataset) *domain.ValidationReport {
	report := &domain.ValidationReport{
		Errors: make([]domain.ValidationError, 0),
	}

	if dataset == nil || dataset.Len() == 0 {
		report.SafeToProceed = true
		return report
	}

	schema := domain.Schema()
	report.Total = dataset.Len()

	for _, row := range dataset.Rows {
		rowErrors := validateRow(row, schema)
		if len(rowErrors) == 0 {
			report.Valid++
			continue
		}

		report.Errors = append(report.Errors, rowErrors...)
	}

	report.Invalid = report.Total - report.Valid
	report.SafeToProceed = report.Invalid == 0

	logrus.WithFields(logrus.Fields{
		"total":   report.Total,
		"valid":   report.Valid,
		"invalid": report.Invalid,
	}).Debug("Validação de dataset concluída")

	return report
}

// validateRow coleta todos os erros de uma linha, na ordem de declaração
// dos campos. Um campo obrigatório ausente não interrompe a verificação dos
// demais campos da linha.
func validateRow(row domain.Row, schema []domain.FieldDescriptor) []domain.ValidationError {
	var rowErrors []domain.ValidationError

	for _, field := range schema {
		raw, present := row.Cell(field.Name)
		if !present {
			if field.Required {
				rowErrors = append(rowErrors, newError(row.Number, field.Name, domain.ReasonMissingField,
					fmt.Sprintf("O campo '%s' está faltando ou vazio", field.Name)))
			}
			continue
		}

		if fieldError := checkValue(row.Number, field, raw); fieldError != nil {
			rowErrors = append(rowErrors, *fieldError)
		}
	}

	return rowErrors
}

// checkValue tenta converter o valor bruto para o tipo semântico declarado
// e aplica a restrição de domínio (não-negatividade)
func checkValue(rowNumber int, field domain.FieldDescriptor, raw string) *domain.ValidationError {
	switch field.Kind {
	case domain.FieldKindText:
		// Presença já verificada; texto não tem conversão

	case domain.FieldKindDate:
		if _, err := time.Parse(domain.DateLayout, raw); err != nil {
			fieldError := newError(rowNumber, field.Name, domain.ReasonWrongType,
				fmt.Sprintf("O campo '%s' deve ser uma data no formato AAAA-MM-DD (ex: 2024-03-01)", field.Name))
			return &fieldError
		}

	case domain.FieldKindDecimal:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fieldError := newError(rowNumber, field.Name, domain.ReasonWrongType,
				fmt.Sprintf("O campo '%s' deve ser um número decimal (ex: 100.50)", field.Name))
			return &fieldError
		}

		if field.NonNegative && value < 0 {
			fieldError := newError(rowNumber, field.Name, domain.ReasonConstraintViolation,
				fmt.Sprintf("O campo '%s' deve ser um número positivo ou zero", field.Name))
			return &fieldError
		}

	case domain.FieldKindInteger:
		// Exportadores de planilha costumam gravar contadores como "3.0",
		// então aceitamos decimais de valor inteiro
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value != float64(int64(value)) {
			fieldError := newError(rowNumber, field.Name, domain.ReasonWrongType,
				fmt.Sprintf("O campo '%s' deve ser um número inteiro (ex: 100)", field.Name))
			return &fieldError
		}

		if field.NonNegative && value < 0 {
			fieldError := newError(rowNumber, field.Name, domain.ReasonConstraintViolation,
				fmt.Sprintf("O campo '%s' deve ser um número positivo ou zero", field.Name))
			return &fieldError
		}
	}

	return nil
}

func newError(row int, field string, reason domain.ErrorReason, message string) domain.ValidationError {
	return domain.ValidationError{
		Row:     row,
		Field:   field,
		Reason:  reason,
		Message: message,
	}
}
