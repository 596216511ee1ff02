package sheets

import (
	"context"

	"github.com/xuri/excelize/v2"
)

// ExcelSource reads the first worksheet of a local .xlsx export. Used when
// no service-account credentials are configured.
type ExcelSource struct {
	Path string
}

func NewExcelSource(path string) *ExcelSource {
	return &ExcelSource{Path: path}
}

func (s *ExcelSource) Name() string { return "excel-file" }

func (s *ExcelSource) Fetch(ctx context.Context) ([][]string, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, srcErr(KindNetwork, "open workbook %s: %w", s.Path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, srcErr(KindMalformed, "workbook %s has no sheets", s.Path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, srcErr(KindMalformed, "read worksheet %s: %w", sheet, err)
	}
	return rows, nil
}
