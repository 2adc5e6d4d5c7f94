package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	readers "github.com/zdziszkee/swift-registry/internal/readers"
)

type CSVSwiftBanksReader struct {
}

func (c *CSVSwiftBanksReader) LoadSwiftBanks(reader io.Reader) ([]readers.SwiftBankRecord, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := readers.MapHeader(header)
	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	var records []readers.SwiftBankRecord
	rowNum := 1
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if readers.IsBlank(row) {
			rowNum++
			continue
		}
		records = append(records, cols.Record(rowNum, row))
		rowNum++
	}

	return records, nil
}
