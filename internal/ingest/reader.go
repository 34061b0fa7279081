package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// RowSource one spreadsheet of candidate component rows
type RowSource interface {
	Name() string
	Rows() ([][]string, error)
}

// OpenSource picks a reader by file extension. .xlsx goes through excelize;
// everything else is treated as CSV.
func OpenSource(path string, legacyEncoding bool) RowSource {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return &XLSXSource{Path: path}
	}
	return &CSVSource{Path: path, LegacyEncoding: legacyEncoding}
}

// CSVSource a CSV export. LegacyEncoding decodes Windows-1252 sheets, which
// some of the older part lists were saved as.
type CSVSource struct {
	Path           string
	LegacyEncoding bool
}

func (s *CSVSource) Name() string {
	return filepath.Base(s.Path)
}

func (s *CSVSource) Rows() ([][]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if s.LegacyEncoding {
		reader = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	}

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return rows, nil
}

// XLSXSource the first sheet of an Excel workbook
type XLSXSource struct {
	Path string
}

func (s *XLSXSource) Name() string {
	return filepath.Base(s.Path)
}

func (s *XLSXSource) Rows() ([][]string, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return rows, nil
}
