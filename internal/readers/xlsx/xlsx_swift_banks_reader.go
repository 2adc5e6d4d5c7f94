package xlsx

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	readers "github.com/zdziszkee/swift-registry/internal/readers"
)

// XLSXSwiftBanksReader reads the first sheet of a workbook.
type XLSXSwiftBanksReader struct {
}

func (x *XLSXSwiftBanksReader) LoadSwiftBanks(reader io.Reader) ([]readers.SwiftBankRecord, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, io.EOF
	}

	cols, err := readers.MapHeader(rows[0])
	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	records := make([]readers.SwiftBankRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if readers.IsBlank(row) {
			continue
		}
		records = append(records, cols.Record(i+1, row))
	}
	return records, nil
}
