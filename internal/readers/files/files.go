// Package files opens a bulk data file and picks the reader by extension.
package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	readers "github.com/zdziszkee/swift-registry/internal/readers"
	"github.com/zdziszkee/swift-registry/internal/readers/csv"
	"github.com/zdziszkee/swift-registry/internal/readers/xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported data file format")

// ReaderFor returns the reader registered for the file's extension.
func ReaderFor(path string) (readers.SwiftBanksReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &csv.CSVSwiftBanksReader{}, nil
	case ".xlsx":
		return &xlsx.XLSXSwiftBanksReader{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Read loads all raw records from path. A missing file yields an error
// matching os.ErrNotExist; an empty source yields no records.
func Read(path string) ([]readers.SwiftBankRecord, error) {
	r, err := ReaderFor(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	records, err := r.LoadSwiftBanks(file)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, nil
}
