package services_test

import (
	"bytes"
	"testing"

	"personalhub/model"
	"personalhub/services"
	"personalhub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTransactionsSheet(t *testing.T) {
	txs := []model.Transaction{
		{Type: model.TransactionIncome, Amount: 1500, Category: "salary", Date: testutil.Date(t, "2024-02-01"), Description: "February pay"},
		{Type: model.TransactionExpense, Amount: 12.5, Category: "food", Date: testutil.Date(t, "2024-02-03")},
	}
	data, err := services.WriteTransactionsSheet(txs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Transactions"}, f.GetSheetList())
	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Type", "Category", "Amount", "Description"}, rows[0])
	assert.Equal(t, []string{"2024-02-01", "income", "salary", "1500", "February pay"}, rows[1])
	assert.Equal(t, "12.5", rows[2][3])
}

func flashcardWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadFlashcardSheet(t *testing.T) {
	buf := flashcardWorkbook(t, [][]interface{}{
		{"Question", "Answer"},
		{"Capital of France?", "Paris"},
		{"Missing answer", ""},
		{" 2 + 2 ", " 4 "},
	})

	rows, skipped, err := services.ReadFlashcardSheet(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []services.FlashcardRow{
		{Question: "Capital of France?", Answer: "Paris"},
		{Question: "2 + 2", Answer: "4"},
	}, rows)
}

func TestReadFlashcardSheetWithoutHeader(t *testing.T) {
	buf := flashcardWorkbook(t, [][]interface{}{{"Term", "Definition"}})
	rows, skipped, err := services.ReadFlashcardSheet(buf)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, []services.FlashcardRow{{Question: "Term", Answer: "Definition"}}, rows)
}

func TestReadFlashcardSheetRejectsGarbage(t *testing.T) {
	_, _, err := services.ReadFlashcardSheet(bytes.NewReader([]byte("plain text")))
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}
