package parser

import (
	models "github.com/zdziszkee/swift-registry/internal/models"
)

// IsHeadquarterCode reports whether a validly shaped code names a
// headquarters: 8 characters, or 11 ending in XXX.
func IsHeadquarterCode(code string) bool {
	return len(code) == BaseLength || code[BaseLength:] == HeadquarterSuffix
}

// HQBase returns the first 8 characters of a validly shaped code.
func HQBase(code string) string {
	return code[:BaseLength]
}

// Classify derives the headquarters flag and branch grouping key from the
// code alone and produces the storable bank row.
func Classify(record NormalizedRecord) models.SwiftBank {
	return models.SwiftBank{
		SwiftCode:      record.SwiftCode,
		SwiftCodeBase:  HQBase(record.SwiftCode),
		CountryISOCode: record.CountryISOCode,
		BankName:       record.BankName,
		IsHeadquarter:  IsHeadquarterCode(record.SwiftCode),
		Address:        record.Address,
		CountryName:    record.CountryName,
	}
}
