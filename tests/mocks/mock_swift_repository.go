package mocks

import (
	"context"
	"errors"

	models "github.com/zdziszkee/swift-registry/internal/models"
)

// MockSwiftRepository implements the SwiftRepository interface for testing.
// Unset funcs fail loudly.
type MockSwiftRepository struct {
	ExistsFunc        func(ctx context.Context, code string) (bool, error)
	GetFunc           func(ctx context.Context, code string) (*models.SwiftBank, error)
	ListByCountryFunc func(ctx context.Context, countryCode string, skip, limit int) ([]models.SwiftBank, int, error)
	ListByHQBaseFunc  func(ctx context.Context, hqBase, excludeCode string) ([]models.SwiftBank, error)
	CountryNameFunc   func(ctx context.Context, countryCode string) (string, error)
	InsertFunc        func(ctx context.Context, bank *models.SwiftBank) error
	DeleteFunc        func(ctx context.Context, code string) error
	PingFunc          func(ctx context.Context) error
}

func (m *MockSwiftRepository) Exists(ctx context.Context, code string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, code)
	}
	return false, errors.New("Exists not implemented")
}

func (m *MockSwiftRepository) Get(ctx context.Context, code string) (*models.SwiftBank, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, code)
	}
	return nil, errors.New("Get not implemented")
}

func (m *MockSwiftRepository) ListByCountry(ctx context.Context, countryCode string, skip, limit int) ([]models.SwiftBank, int, error) {
	if m.ListByCountryFunc != nil {
		return m.ListByCountryFunc(ctx, countryCode, skip, limit)
	}
	return nil, 0, errors.New("ListByCountry not implemented")
}

func (m *MockSwiftRepository) ListByHQBase(ctx context.Context, hqBase, excludeCode string) ([]models.SwiftBank, error) {
	if m.ListByHQBaseFunc != nil {
		return m.ListByHQBaseFunc(ctx, hqBase, excludeCode)
	}
	return nil, errors.New("ListByHQBase not implemented")
}

func (m *MockSwiftRepository) CountryName(ctx context.Context, countryCode string) (string, error) {
	if m.CountryNameFunc != nil {
		return m.CountryNameFunc(ctx, countryCode)
	}
	return "", errors.New("CountryName not implemented")
}

func (m *MockSwiftRepository) Insert(ctx context.Context, bank *models.SwiftBank) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, bank)
	}
	return errors.New("Insert not implemented")
}

func (m *MockSwiftRepository) Delete(ctx context.Context, code string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, code)
	}
	return errors.New("Delete not implemented")
}

func (m *MockSwiftRepository) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
