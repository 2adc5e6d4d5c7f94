package models

// SwiftBank is a single row of the swift_banks table. IsHeadquarter and
// SwiftCodeBase are derived from SwiftCode and never set on their own.
type SwiftBank struct {
	SwiftCode      string  `db:"swift_code" json:"swift_code"`
	SwiftCodeBase  string  `db:"swift_code_base" json:"-"`
	CountryISOCode string  `db:"country_iso_code" json:"country_iso2"`
	BankName       string  `db:"bank_name" json:"bank_name"`
	IsHeadquarter  bool    `db:"is_headquarter" json:"is_headquarter"`
	Address        *string `db:"address" json:"address"`
	CountryName    string  `db:"country_name" json:"country_name"`
}

// AddressOrEmpty returns the address, or "" when none is stored.
func (b SwiftBank) AddressOrEmpty() string {
	if b.Address == nil {
		return ""
	}
	return *b.Address
}
