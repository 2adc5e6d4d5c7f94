package parser_test

import (
	"fmt"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	parser "github.com/zdziszkee/swift-registry/internal/parsers"
	readers "github.com/zdziszkee/swift-registry/internal/readers"
)

func TestSwiftBanksParser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SwiftBanksParser Suite")
}

func addr(s string) *string { return &s }

func validationField(err error) string {
	var verr *parser.ValidationError
	ExpectWithOffset(1, err).To(BeAssignableToTypeOf(verr))
	verr = err.(*parser.ValidationError)
	return verr.Field
}

var _ = Describe("Normalize", func() {
	var record readers.SwiftBankRecord

	BeforeEach(func() {
		record = readers.SwiftBankRecord{
			Index:          1,
			SwiftCode:      "  abcdpl12xxx ",
			BankName:       "  Bank of Poland ",
			CountryISOCode: " pl",
			Address:        addr(" 1 Main St "),
			CountryName:    "poland ",
		}
	})

	Context("with a valid record", func() {
		It("should trim every field and uppercase code and country", func() {
			n, err := parser.Normalize(record)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.SwiftCode).To(Equal("ABCDPL12XXX"))
			Expect(n.BankName).To(Equal("Bank of Poland"))
			Expect(n.CountryISOCode).To(Equal("PL"))
			Expect(n.CountryName).To(Equal("POLAND"))
			Expect(n.Address).To(HaveValue(Equal("1 Main St")))
		})

		It("should be idempotent", func() {
			once, err := parser.Normalize(record)
			Expect(err).NotTo(HaveOccurred())
			twice, err := parser.Normalize(once.Raw())
			Expect(err).NotTo(HaveOccurred())
			Expect(twice).To(Equal(once))
		})

		It("should store a blank address as absent", func() {
			record.Address = addr("   ")
			n, err := parser.Normalize(record)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Address).To(BeNil())

			record.Address = nil
			n, err = parser.Normalize(record)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Address).To(BeNil())
		})

		DescribeTable("uppercases country fields whatever the input case",
			func(iso2, name string) {
				record.CountryISOCode = iso2
				record.CountryName = name
				n, err := parser.Normalize(record)
				Expect(err).NotTo(HaveOccurred())
				Expect(n.CountryISOCode).To(Equal(strings.ToUpper(iso2)))
				Expect(n.CountryName).To(Equal(strings.ToUpper(name)))
			},
			Entry("lower", "pl", "poland"),
			Entry("mixed", "De", "GerMany"),
			Entry("upper", "US", "UNITED STATES"),
		)
	})

	Context("with an invalid record", func() {
		DescribeTable("rejects with a field-level reason",
			func(mutate func(*readers.SwiftBankRecord), field string) {
				mutate(&record)
				_, err := parser.Normalize(record)
				Expect(err).To(HaveOccurred())
				Expect(validationField(err)).To(Equal(field))
			},
			Entry("empty code", func(r *readers.SwiftBankRecord) { r.SwiftCode = "  " }, "swift_code"),
			Entry("short code", func(r *readers.SwiftBankRecord) { r.SwiftCode = "INVLD" }, "swift_code"),
			Entry("9-character code", func(r *readers.SwiftBankRecord) { r.SwiftCode = "NEWBANKDE" }, "swift_code"),
			Entry("long code", func(r *readers.SwiftBankRecord) { r.SwiftCode = "TOOLONGCODE12" }, "swift_code"),
			Entry("symbol in code", func(r *readers.SwiftBankRecord) { r.SwiftCode = "INV@LIDX" }, "swift_code"),
			Entry("3-letter country", func(r *readers.SwiftBankRecord) { r.CountryISOCode = "POL" }, "country_iso2"),
			Entry("digit in country", func(r *readers.SwiftBankRecord) { r.CountryISOCode = "P1" }, "country_iso2"),
			Entry("empty bank name", func(r *readers.SwiftBankRecord) { r.BankName = " " }, "bank_name"),
			Entry("empty country name", func(r *readers.SwiftBankRecord) { r.CountryName = "" }, "country_name"),
		)

		It("should describe the failure in the error text", func() {
			record.SwiftCode = "SHORT"
			_, err := parser.Normalize(record)
			Expect(err).To(MatchError("swift_code: must be 8 or 11 characters long, got 5"))
		})
	})
})

var _ = Describe("NormalizeCode", func() {
	It("should accept lowercase input", func() {
		code, err := parser.NormalizeCode("pkopplpw")
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal("PKOPPLPW"))
	})
})

var _ = Describe("Classify", func() {
	classify := func(code string) (bool, string) {
		n, err := parser.Normalize(readers.SwiftBankRecord{
			SwiftCode:      code,
			BankName:       "Bank",
			CountryISOCode: "PL",
			CountryName:    "POLAND",
		})
		Expect(err).NotTo(HaveOccurred())
		bank := parser.Classify(n)
		return bank.IsHeadquarter, bank.SwiftCodeBase
	}

	DescribeTable("derives headquarters flag and base from the code",
		func(code string, hq bool, base string) {
			gotHQ, gotBase := classify(code)
			Expect(gotHQ).To(Equal(hq))
			Expect(gotBase).To(Equal(base))
		},
		Entry("11 characters ending in XXX", "ABCDPLPWXXX", true, "ABCDPLPW"),
		Entry("8 characters", "ABCDPLPW", true, "ABCDPLPW"),
		Entry("branch suffix", "ABCDPLPW123", false, "ABCDPLPW"),
		Entry("XXX inside but not suffix", "XXXDPLPWABC", false, "XXXDPLPW"),
		Entry("lowercase xxx suffix", "abcdplpwxxx", true, "ABCDPLPW"),
	)

	It("should be total and consistent over generated codes", func() {
		alphabet := "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
		for i := 0; i < 200; i++ {
			suffix := fmt.Sprintf("%c%c%c", alphabet[i%36], alphabet[(i*7)%36], alphabet[(i*13)%36])
			code := "BANKPLPW" + suffix
			hq, base := classify(code)
			Expect(hq).To(Equal(suffix == "XXX"))
			Expect(base).To(Equal("BANKPLPW"))
		}
	})

	It("should copy normalized fields onto the bank row", func() {
		n, err := parser.Normalize(readers.SwiftBankRecord{
			SwiftCode:      "NEWBNKDEB12",
			BankName:       "My New German Bank",
			Address:        addr("1 Berlin St"),
			CountryISOCode: "de",
			CountryName:    "germany",
		})
		Expect(err).NotTo(HaveOccurred())
		bank := parser.Classify(n)
		Expect(bank.SwiftCode).To(Equal("NEWBNKDEB12"))
		Expect(bank.CountryISOCode).To(Equal("DE"))
		Expect(bank.CountryName).To(Equal("GERMANY"))
		Expect(bank.IsHeadquarter).To(BeFalse())
		Expect(bank.AddressOrEmpty()).To(Equal("1 Berlin St"))
	})
})
