//go:build integration

package repository_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"

	"github.com/zdziszkee/swift-registry/internal/database"
	"github.com/zdziszkee/swift-registry/internal/models"
	readers "github.com/zdziszkee/swift-registry/internal/readers"
	repo "github.com/zdziszkee/swift-registry/internal/repositories"
	service "github.com/zdziszkee/swift-registry/internal/services"
)

var _ = Describe("SQLSwiftRepository against Postgres", Ordered, Label("integration"), func() {
	var (
		ctx        context.Context
		db         *sql.DB
		repository repo.SwiftRepository
	)

	BeforeAll(func() {
		ctx = context.Background()

		container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
			tcpostgres.WithDatabase("swift_db"),
			tcpostgres.WithUsername("swift"),
			tcpostgres.WithPassword("swift"),
			tcpostgres.BasicWaitStrategies(),
		)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			Expect(testcontainers.TerminateContainer(container)).To(Succeed())
		})

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		Expect(err).NotTo(HaveOccurred())

		db, err = sql.Open(database.TypePostgres, dsn)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(db.Close)

		Expect(database.Migrate(db)).To(Succeed())
		Expect(database.Migrate(db)).To(Succeed())

		repository = repo.NewSQLSwiftRepository(&database.Database{DB: db, Config: database.Config{Type: database.TypePostgres}})
	})

	BeforeEach(func() {
		_, err := db.ExecContext(ctx, "TRUNCATE swift_banks")
		Expect(err).NotTo(HaveOccurred())
	})

	bank := func(code string) *models.SwiftBank {
		hq := len(code) == 8 || code[8:] == "XXX"
		return &models.SwiftBank{
			SwiftCode:      code,
			SwiftCodeBase:  code[:8],
			CountryISOCode: code[4:6],
			BankName:       "Bank " + code,
			IsHeadquarter:  hq,
			CountryName:    "POLAND",
		}
	}

	It("should insert, read and delete a row", func() {
		Expect(repository.Insert(ctx, bank("BANKPLPWXXX"))).To(Succeed())

		got, err := repository.Get(ctx, "BANKPLPWXXX")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(bank("BANKPLPWXXX")))

		Expect(repository.Delete(ctx, "BANKPLPWXXX")).To(Succeed())
		_, err = repository.Get(ctx, "BANKPLPWXXX")
		Expect(err).To(MatchError(repo.ErrNotFound))
	})

	It("should enforce uniqueness through the primary key", func() {
		Expect(repository.Insert(ctx, bank("BANKPLPWXXX"))).To(Succeed())
		Expect(repository.Insert(ctx, bank("BANKPLPWXXX"))).To(MatchError(repo.ErrDuplicate))
	})

	It("should reject lower case rows at the schema level", func() {
		row := bank("BANKPLPWXXX")
		row.CountryName = "poland"
		err := repository.Insert(ctx, row)
		Expect(err).To(HaveOccurred())
		Expect(err).NotTo(MatchError(repo.ErrDuplicate))
	})

	It("should page a country in code order", func() {
		for _, code := range []string{"CCCCPLPWXXX", "AAAAPLPWXXX", "BBBBPLPW123"} {
			Expect(repository.Insert(ctx, bank(code))).To(Succeed())
		}

		page, total, err := repository.ListByCountry(ctx, "PL", 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(3))
		Expect(page).To(HaveLen(1))
		Expect(page[0].SwiftCode).To(Equal("BBBBPLPW123"))

		page, total, err = repository.ListByCountry(ctx, "PL", 5, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(3))
		Expect(page).To(BeEmpty())

		name, err := repository.CountryName(ctx, "PL")
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("POLAND"))
	})

	It("should list branches by base excluding the headquarters", func() {
		for _, code := range []string{"BANKPLPWXXX", "BANKPLPW002", "BANKPLPW001", "OTHRPLPWXXX"} {
			Expect(repository.Insert(ctx, bank(code))).To(Succeed())
		}

		branches, err := repository.ListByHQBase(ctx, "BANKPLPW", "BANKPLPWXXX")
		Expect(err).NotTo(HaveOccurred())
		Expect(branches).To(HaveLen(2))
		Expect(branches[0].SwiftCode).To(Equal("BANKPLPW001"))
		Expect(branches[1].SwiftCode).To(Equal("BANKPLPW002"))
	})

	It("should ingest a batch end to end", func() {
		svc := service.NewSwiftService(repository, zap.NewNop(), nil)
		address := " 1 Main St "

		summary, err := svc.IngestBatch(ctx, []readers.SwiftBankRecord{
			{SwiftCode: "bankplpwxxx", BankName: "HQ", Address: &address, CountryISOCode: "pl", CountryName: "poland"},
			{SwiftCode: "BANKPLPW001", BankName: "Branch", CountryISOCode: "PL", CountryName: "POLAND"},
			{SwiftCode: "BANKPLPWXXX", BankName: "Duplicate", CountryISOCode: "PL", CountryName: "POLAND"},
			{SwiftCode: "SHORT", BankName: "Invalid", CountryISOCode: "PL", CountryName: "POLAND"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(summary).To(Equal(service.IngestSummary{Added: 2, Skipped: 2}))

		detail, err := svc.GetSwiftCodeDetails(ctx, "BANKPLPWXXX")
		Expect(err).NotTo(HaveOccurred())
		Expect(*detail.Bank.Address).To(Equal("1 Main St"))
		Expect(detail.Branches).To(HaveLen(1))
	})
})
