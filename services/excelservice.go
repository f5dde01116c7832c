package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"personalhub/model"

	"github.com/xuri/excelize/v2"
)

type FlashcardRow struct {
	Question string
	Answer   string
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ReadFlashcardSheet reads question/answer pairs from columns A and B of the first
// sheet. A first row reading "question" in column A is treated as a header.
func ReadFlashcardSheet(r io.Reader) ([]FlashcardRow, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: not a spreadsheet: %v", ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, fmt.Errorf("%w: workbook has no sheets", ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	var out []FlashcardRow
	skipped := 0
	for i, row := range rows {
		cell := func(n int) string {
			if n < len(row) {
				return strings.TrimSpace(row[n])
			}
			return ""
		}
		q, a := cell(0), cell(1)
		if i == 0 && strings.EqualFold(q, "question") {
			continue
		}
		if q == "" || a == "" {
			skipped++
			continue
		}
		out = append(out, FlashcardRow{Question: q, Answer: a})
	}
	return out, skipped, nil
}

var transactionHeader = []interface{}{"Date", "Type", "Category", "Amount", "Description"}

// WriteTransactionsSheet renders transactions as an xlsx workbook.
func WriteTransactionsSheet(txs []model.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &transactionHeader); err != nil {
		return nil, err
	}
	for i, t := range txs {
		row := []interface{}{t.Date.Format(DateLayout), t.Type, t.Category, t.Amount, t.Description}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
