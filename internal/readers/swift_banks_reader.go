package reader

import (
	"fmt"
	"io"
	"strings"
)

// SwiftBankRecord is one raw row of the bulk source. Fields are kept exactly
// as read; trimming and case folding belong to the normalizer.
type SwiftBankRecord struct {
	Index          int
	CountryISOCode string  // COUNTRY ISO2 CODE
	SwiftCode      string  // SWIFT CODE
	BankName       string  // NAME
	Address        *string // ADDRESS, nil when the cell is absent
	CountryName    string  // COUNTRY NAME
}

// SwiftBanksReader turns a tabular source into raw records.
type SwiftBanksReader interface {
	LoadSwiftBanks(reader io.Reader) ([]SwiftBankRecord, error)
}

// Required source columns.
const (
	ColumnCountryISO2 = "COUNTRY ISO2 CODE"
	ColumnSwiftCode   = "SWIFT CODE"
	ColumnName        = "NAME"
	ColumnAddress     = "ADDRESS"
	ColumnCountryName = "COUNTRY NAME"
)

var requiredColumns = []string{
	ColumnCountryISO2,
	ColumnSwiftCode,
	ColumnName,
	ColumnAddress,
	ColumnCountryName,
}

// Columns maps a required column name to its position in the header row.
type Columns map[string]int

// MapHeader matches the header row against the required columns, ignoring
// case and surrounding whitespace. Extra columns are allowed.
func MapHeader(header []string) (Columns, error) {
	positions := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToUpper(strings.TrimSpace(col))
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	cols := make(Columns, len(requiredColumns))
	var missing []string
	for _, name := range requiredColumns {
		i, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// Record builds a raw record from a data row. Short rows yield empty
// values (and a nil address) for the missing trailing cells.
func (c Columns) Record(index int, row []string) SwiftBankRecord {
	get := func(name string) (string, bool) {
		i := c[name]
		if i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	rec := SwiftBankRecord{Index: index}
	rec.CountryISOCode, _ = get(ColumnCountryISO2)
	rec.SwiftCode, _ = get(ColumnSwiftCode)
	rec.BankName, _ = get(ColumnName)
	rec.CountryName, _ = get(ColumnCountryName)
	if addr, ok := get(ColumnAddress); ok {
		rec.Address = &addr
	}
	return rec
}

// IsBlank reports whether every cell of the row is empty.
func IsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
