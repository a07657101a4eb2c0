package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aqso/models"
)

// ImportRow is one spreadsheet line to be created as a transaction.
type ImportRow struct {
	Line  int
	Input CreateTransactionInput
}

// ImportResult collects what an import created and the per-line problems.
type ImportResult struct {
	Created []models.Transaction `json:"created"`
	Errors  []string             `json:"errors"`
}

// Import creates each row in order through Create, so rows without a
// receipt number are numbered one after another. A failing row is reported
// and skipped. Store failures abort the import.
func (s *TransactionService) Import(ctx context.Context, rows []ImportRow) (ImportResult, error) {
	res := ImportResult{Created: []models.Transaction{}, Errors: []string{}}
	for _, row := range rows {
		tx, err := s.Create(ctx, row.Input)
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			fields := append(append([]string{}, verr.Missing...), verr.Invalid...)
			res.Errors = append(res.Errors, fmt.Sprintf("Baris %d: kolom wajib hilang atau tidak valid (%s).", row.Line, strings.Join(fields, ", ")))
		case err != nil:
			return res, err
		default:
			res.Created = append(res.Created, *tx)
		}
	}
	return res, nil
}
