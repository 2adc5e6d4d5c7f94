package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/zdziszkee/swift-registry/internal/metrics"
	models "github.com/zdziszkee/swift-registry/internal/models"
	parser "github.com/zdziszkee/swift-registry/internal/parsers"
	readers "github.com/zdziszkee/swift-registry/internal/readers"
	repository "github.com/zdziszkee/swift-registry/internal/repositories"
)

var (
	ErrNotFound      = errors.New("swift code not found")
	ErrInvalidInput  = errors.New("invalid input provided")
	ErrAlreadyExists = errors.New("swift code already exists")
)

// IngestSummary reports the per-record outcomes of one batch.
type IngestSummary struct {
	Added       int `json:"added"`
	Skipped     int `json:"skipped"`
	StoreErrors int `json:"store_errors"`
}

// SwiftBankDetail is a code lookup result. Branches is non-nil only when
// Bank is a headquarters.
type SwiftBankDetail struct {
	Bank     models.SwiftBank
	Branches []models.SwiftBank
}

// CountrySwiftCodes is one page of a country's codes ordered by code.
type CountrySwiftCodes struct {
	CountryISOCode string
	CountryName    string
	SwiftCodes     []models.SwiftBank
	Total          int
	Skip           int
	Limit          int
}

// SwiftService handles business logic for SWIFT codes
type SwiftService interface {
	IngestBatch(ctx context.Context, records []readers.SwiftBankRecord) (IngestSummary, error)
	GetSwiftCodeDetails(ctx context.Context, code string) (*SwiftBankDetail, error)
	GetSwiftCodesByCountry(ctx context.Context, countryCode string, skip, limit int) (*CountrySwiftCodes, error)
	CreateSwiftCode(ctx context.Context, record readers.SwiftBankRecord) (*models.SwiftBank, error)
	DeleteSwiftCode(ctx context.Context, code string) error
	Ping(ctx context.Context) error
}

type swiftService struct {
	repo    repository.SwiftRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewSwiftService creates a new instance of the Swift service. m may be nil.
func NewSwiftService(repo repository.SwiftRepository, logger *zap.Logger, m *metrics.Metrics) SwiftService {
	return &swiftService{repo: repo, logger: logger, metrics: m}
}

// IngestBatch stores each record independently in input order. Invalid and
// already present records are skipped, store failures are counted, and
// neither stops the batch. On cancellation the summary so far is returned
// with the context error; records already stored stay stored.
func (s *swiftService) IngestBatch(ctx context.Context, records []readers.SwiftBankRecord) (IngestSummary, error) {
	var summary IngestSummary

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("ingest interrupted",
				zap.Int("added", summary.Added),
				zap.Int("skipped", summary.Skipped),
				zap.Int("store_errors", summary.StoreErrors),
				zap.Error(err),
			)
			return summary, err
		}

		switch outcome := s.ingestOne(ctx, record); outcome {
		case metrics.OutcomeAdded:
			summary.Added++
		case metrics.OutcomeSkipped:
			summary.Skipped++
		default:
			summary.StoreErrors++
		}
	}

	s.logger.Info("ingest finished",
		zap.Int("records", len(records)),
		zap.Int("added", summary.Added),
		zap.Int("skipped", summary.Skipped),
		zap.Int("store_errors", summary.StoreErrors),
	)
	return summary, nil
}

func (s *swiftService) ingestOne(ctx context.Context, record readers.SwiftBankRecord) (outcome string) {
	defer func() { s.metrics.IncrementIngested(outcome) }()

	normalized, err := parser.Normalize(record)
	if err != nil {
		s.logger.Debug("skipping invalid record", zap.Int("row", record.Index), zap.Error(err))
		return metrics.OutcomeSkipped
	}
	bank := parser.Classify(normalized)

	exists, err := s.repo.Exists(ctx, bank.SwiftCode)
	if err != nil {
		s.logger.Warn("existence check failed", zap.String("swift_code", bank.SwiftCode), zap.Error(err))
		return metrics.OutcomeStoreError
	}
	if exists {
		s.logger.Debug("skipping existing record", zap.Int("row", record.Index), zap.String("swift_code", bank.SwiftCode))
		return metrics.OutcomeSkipped
	}

	if err := s.repo.Insert(ctx, &bank); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return metrics.OutcomeSkipped
		}
		s.logger.Warn("insert failed", zap.String("swift_code", bank.SwiftCode), zap.Error(err))
		return metrics.OutcomeStoreError
	}
	return metrics.OutcomeAdded
}

// GetSwiftCodeDetails looks a code up case-insensitively. A headquarters is
// returned with every other record sharing its 8-character base.
func (s *swiftService) GetSwiftCodeDetails(ctx context.Context, code string) (*SwiftBankDetail, error) {
	normalized, err := parser.NormalizeCode(code)
	if err != nil {
		return nil, invalid(err)
	}

	bank, err := s.repo.Get(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("lookup failed", zap.String("swift_code", normalized), zap.Error(err))
		return nil, err
	}

	detail := &SwiftBankDetail{Bank: *bank}
	if !bank.IsHeadquarter {
		return detail, nil
	}

	branches, err := s.repo.ListByHQBase(ctx, parser.HQBase(bank.SwiftCode), bank.SwiftCode)
	if err != nil {
		s.logger.Error("branch lookup failed", zap.String("swift_code", normalized), zap.Error(err))
		return nil, err
	}
	if branches == nil {
		branches = []models.SwiftBank{}
	}
	detail.Branches = branches
	return detail, nil
}

// GetSwiftCodesByCountry returns a page of a country's codes. A skip past the
// end yields an empty page, and a country with no records is not an error.
func (s *swiftService) GetSwiftCodesByCountry(ctx context.Context, countryCode string, skip, limit int) (*CountrySwiftCodes, error) {
	iso2, err := parser.NormalizeCountryCode(countryCode)
	if err != nil {
		return nil, invalid(err)
	}
	if skip < 0 {
		return nil, invalid(&parser.ValidationError{Field: "skip", Reason: "must not be negative"})
	}
	if limit <= 0 {
		return nil, invalid(&parser.ValidationError{Field: "limit", Reason: "must be positive"})
	}

	banks, total, err := s.repo.ListByCountry(ctx, iso2, skip, limit)
	if err != nil {
		s.logger.Error("country lookup failed", zap.String("country_iso2", iso2), zap.Error(err))
		return nil, err
	}

	var countryName string
	switch {
	case len(banks) > 0:
		countryName = banks[0].CountryName
	case total > 0:
		countryName, err = s.repo.CountryName(ctx, iso2)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	return &CountrySwiftCodes{
		CountryISOCode: iso2,
		CountryName:    countryName,
		SwiftCodes:     banks,
		Total:          total,
		Skip:           skip,
		Limit:          limit,
	}, nil
}

// CreateSwiftCode stores a single record, reporting validation failures and
// duplicates to the caller instead of skipping them.
func (s *swiftService) CreateSwiftCode(ctx context.Context, record readers.SwiftBankRecord) (*models.SwiftBank, error) {
	normalized, err := parser.Normalize(record)
	if err != nil {
		return nil, invalid(err)
	}
	bank := parser.Classify(normalized)

	exists, err := s.repo.Exists(ctx, bank.SwiftCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	if err := s.repo.Insert(ctx, &bank); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		s.logger.Error("create failed", zap.String("swift_code", bank.SwiftCode), zap.Error(err))
		return nil, err
	}

	s.logger.Info("swift code created", zap.String("swift_code", bank.SwiftCode), zap.Bool("is_headquarter", bank.IsHeadquarter))
	return &bank, nil
}

// DeleteSwiftCode hard-deletes one record. Branches of a deleted
// headquarters are left in place.
func (s *swiftService) DeleteSwiftCode(ctx context.Context, code string) error {
	normalized, err := parser.NormalizeCode(code)
	if err != nil {
		return invalid(err)
	}

	if err := s.repo.Delete(ctx, normalized); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("delete failed", zap.String("swift_code", normalized), zap.Error(err))
		return err
	}

	s.logger.Info("swift code deleted", zap.String("swift_code", normalized))
	return nil
}

func (s *swiftService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
