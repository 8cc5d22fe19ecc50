package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"fenceline/domain/dataset"
	"fenceline/internal"
	"fenceline/internal/errors"
)

// DataReader loads numeric series from Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: internal.DefaultLogger}
}

// ReadMatrix reads the file into a matrix of named numeric series. The first
// row supplies the series names; blank or non-numeric cells become NaN.
func (r *DataReader) ReadMatrix() (*dataset.Matrix, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.FileError(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath), err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}

	return r.processRows(rows)
}

// readExcelRows reads raw rows from Sheet1
func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	r.logger.Debug("[DataReader] Sheet1 read (%d rows)", len(rows))
	return rows, nil
}

// readCSVRows reads raw rows from a CSV file
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("[DataReader] CSV file read (%d rows)", len(rows))
	return rows, nil
}

// processRows converts raw string rows into column-oriented numeric series
func (r *DataReader) processRows(rows [][]string) (*dataset.Matrix, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	columns := make([][]float64, len(headers))
	for col := range columns {
		columns[col] = make([]float64, 0, len(rows)-1)
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		for col := range headers {
			cell := ""
			if col < len(row) {
				cell = strings.TrimSpace(row[col])
			}
			columns[col] = append(columns[col], parseCell(cell))
		}
	}

	matrix := &dataset.Matrix{
		Source: filepath.Base(r.filePath),
		Series: make([]dataset.Series, 0, len(headers)),
	}
	for col, header := range headers {
		if header == "" {
			header = fmt.Sprintf("column_%d", col+1)
		}
		matrix.Series = append(matrix.Series, dataset.NewSeries(header, columns[col]))
	}

	r.logger.Info("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(rows)-1)

	return matrix, nil
}

// parseCell coerces a spreadsheet cell to a float64, NaN when it is blank or
// not numeric.
func parseCell(cell string) float64 {
	if cell == "" {
		return math.NaN()
	}
	// Tolerate thousands separators from exported spreadsheets.
	cell = strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
