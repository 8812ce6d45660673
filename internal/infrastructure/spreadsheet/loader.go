package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"outreach/internal/domain/outreach"
	"outreach/internal/logger"
)

// Loader reads contact spreadsheets from CSV and XLSX files.
type Loader struct {
	log *logger.Logger
}

func NewLoader(log *logger.Logger) *Loader {
	return &Loader{log: log.WithComponent("loader")}
}

func (l *Loader) Load(path string) (*outreach.Sheet, error) {
	l.log.Info().Str("path", path).Msg("Attempting to read file")

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", outreach.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var (
		records   [][]string
		widenRows bool
		err       error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		records, err = readCSV(path)
	case ".xlsx", ".xlsm":
		records, err = readXLSX(path)
		widenRows = true
	default:
		return nil, fmt.Errorf("%w: %q, use a CSV or XLSX file", outreach.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", outreach.ErrParse, err)
	}

	sheet, err := buildSheet(records, widenRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", outreach.ErrParse, err)
	}

	l.log.Info().Int("rows", len(sheet.Contacts)).Strs("columns", sheet.Columns).Msg("Spreadsheet loaded")

	if missing := sheet.MissingColumns(outreach.ExpectedColumns); len(missing) > 0 {
		sheet.Warnings = append(sheet.Warnings,
			fmt.Sprintf("the following expected columns are missing: %s", strings.Join(missing, ", ")))
	}
	for _, w := range sheet.Warnings {
		l.log.Warn().Msg(w)
	}

	return sheet, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// buildSheet maps data rows onto the header. A row wider than the header is
// an error unless widen is set, in which case the header is extended with
// "Unnamed: N" columns for the extra cells.
func buildSheet(records [][]string, widen bool) (*outreach.Sheet, error) {
	records = dropBlankRows(records)
	if len(records) == 0 {
		return nil, errors.New("no header row")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if widen {
		header = widenHeader(header, records[1:])
	}
	columns := dedupeColumns(header)

	sheet := &outreach.Sheet{Columns: columns}
	for i, rec := range records[1:] {
		if len(rec) > len(columns) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+2, len(rec), len(columns))
		}
		c := make(outreach.Contact, len(columns))
		for j, col := range columns {
			if j < len(rec) {
				c[col] = rec[j]
			} else {
				c[col] = ""
			}
		}
		sheet.Contacts = append(sheet.Contacts, c)
	}

	return sheet, nil
}

func widenHeader(header []string, rows [][]string) []string {
	width := len(header)
	for _, rec := range rows {
		width = max(width, len(rec))
	}
	for i := len(header); i < width; i++ {
		header = append(header, "Unnamed: "+strconv.Itoa(i))
	}
	return header
}

func dropBlankRows(records [][]string) [][]string {
	out := records[:0]
	for _, rec := range records {
		blank := true
		for _, v := range rec {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out
}

// dedupeColumns suffixes repeated header names with ".1", ".2", ...
func dedupeColumns(header []string) []string {
	seen := make(map[string]int, len(header))
	columns := make([]string, len(header))
	for i, name := range header {
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			columns[i] = name + "." + strconv.Itoa(n+1)
			continue
		}
		seen[name] = 0
		columns[i] = name
	}
	return columns
}
