package parser

import (
	"fmt"
	"regexp"
	"strings"

	readers "github.com/zdziszkee/swift-registry/internal/readers"
)

const (
	// HeadquarterSuffix marks the primary office in an 11-character code.
	HeadquarterSuffix = "XXX"
	// BaseLength is the length of the bank+country+location part shared by
	// a headquarters and its branches.
	BaseLength = 8
	// BranchLength is the length of a code carrying a branch suffix.
	BranchLength = 11
)

var (
	swiftCodeRegex   = regexp.MustCompile(`^[A-Z0-9]{8}([A-Z0-9]{3})?$`)
	countryCodeRegex = regexp.MustCompile(`^[A-Z]{2}$`)
)

// ValidationError describes why a single field was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NormalizedRecord is a raw record after trimming, case folding and shape
// validation. Only Normalize produces values that downstream code trusts.
type NormalizedRecord struct {
	SwiftCode      string
	BankName       string
	Address        *string
	CountryISOCode string
	CountryName    string
}

// NormalizeCode trims and uppercases a code and checks it is 8 or 11
// alphanumeric characters.
func NormalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	switch {
	case code == "":
		return "", &ValidationError{Field: "swift_code", Reason: "cannot be empty"}
	case len(code) != BaseLength && len(code) != BranchLength:
		return "", &ValidationError{Field: "swift_code", Reason: fmt.Sprintf("must be 8 or 11 characters long, got %d", len(code))}
	case !swiftCodeRegex.MatchString(code):
		return "", &ValidationError{Field: "swift_code", Reason: "must contain only letters A-Z and digits 0-9"}
	}
	return code, nil
}

// NormalizeCountryCode trims and uppercases an ISO2 code and checks it is
// exactly two letters.
func NormalizeCountryCode(iso2 string) (string, error) {
	iso2 = strings.ToUpper(strings.TrimSpace(iso2))
	if !countryCodeRegex.MatchString(iso2) {
		return "", &ValidationError{Field: "country_iso2", Reason: "must be exactly 2 letters"}
	}
	return iso2, nil
}

// Normalize canonicalizes a raw record. It has no side effects and
// Normalize(Normalize(x)) equals Normalize(x).
func Normalize(record readers.SwiftBankRecord) (NormalizedRecord, error) {
	code, err := NormalizeCode(record.SwiftCode)
	if err != nil {
		return NormalizedRecord{}, err
	}

	iso2, err := NormalizeCountryCode(record.CountryISOCode)
	if err != nil {
		return NormalizedRecord{}, err
	}

	bankName := strings.TrimSpace(record.BankName)
	if bankName == "" {
		return NormalizedRecord{}, &ValidationError{Field: "bank_name", Reason: "cannot be empty"}
	}

	countryName := strings.ToUpper(strings.TrimSpace(record.CountryName))
	if countryName == "" {
		return NormalizedRecord{}, &ValidationError{Field: "country_name", Reason: "cannot be empty"}
	}

	var address *string
	if record.Address != nil {
		if trimmed := strings.TrimSpace(*record.Address); trimmed != "" {
			address = &trimmed
		}
	}

	return NormalizedRecord{
		SwiftCode:      code,
		BankName:       bankName,
		Address:        address,
		CountryISOCode: iso2,
		CountryName:    countryName,
	}, nil
}

// Raw converts the normalized record back into the raw shape, so that it can
// be fed through Normalize again.
func (n NormalizedRecord) Raw() readers.SwiftBankRecord {
	return readers.SwiftBankRecord{
		SwiftCode:      n.SwiftCode,
		BankName:       n.BankName,
		Address:        n.Address,
		CountryISOCode: n.CountryISOCode,
		CountryName:    n.CountryName,
	}
}
