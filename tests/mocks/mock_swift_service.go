package mocks

import (
	"context"

	models "github.com/zdziszkee/swift-registry/internal/models"
	readers "github.com/zdziszkee/swift-registry/internal/readers"
	service "github.com/zdziszkee/swift-registry/internal/services"
)

// MockSwiftService implements service.SwiftService.
type MockSwiftService struct {
	IngestBatchFunc            func(ctx context.Context, records []readers.SwiftBankRecord) (service.IngestSummary, error)
	GetSwiftCodeDetailsFunc    func(ctx context.Context, code string) (*service.SwiftBankDetail, error)
	GetSwiftCodesByCountryFunc func(ctx context.Context, countryCode string, skip, limit int) (*service.CountrySwiftCodes, error)
	CreateSwiftCodeFunc        func(ctx context.Context, record readers.SwiftBankRecord) (*models.SwiftBank, error)
	DeleteSwiftCodeFunc        func(ctx context.Context, code string) error
	PingFunc                   func(ctx context.Context) error
}

func (m *MockSwiftService) IngestBatch(ctx context.Context, records []readers.SwiftBankRecord) (service.IngestSummary, error) {
	return m.IngestBatchFunc(ctx, records)
}

func (m *MockSwiftService) GetSwiftCodeDetails(ctx context.Context, code string) (*service.SwiftBankDetail, error) {
	return m.GetSwiftCodeDetailsFunc(ctx, code)
}

func (m *MockSwiftService) GetSwiftCodesByCountry(ctx context.Context, countryCode string, skip, limit int) (*service.CountrySwiftCodes, error) {
	return m.GetSwiftCodesByCountryFunc(ctx, countryCode, skip, limit)
}

func (m *MockSwiftService) CreateSwiftCode(ctx context.Context, record readers.SwiftBankRecord) (*models.SwiftBank, error) {
	return m.CreateSwiftCodeFunc(ctx, record)
}

func (m *MockSwiftService) DeleteSwiftCode(ctx context.Context, code string) error {
	return m.DeleteSwiftCodeFunc(ctx, code)
}

func (m *MockSwiftService) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
