package mocks

import (
	"context"
	"sort"
	"sync"

	models "github.com/zdziszkee/swift-registry/internal/models"
	repository "github.com/zdziszkee/swift-registry/internal/repositories"
)

// InMemorySwiftRepository is a map backed SwiftRepository with the same
// ordering and error contract as the SQL store. InsertErr, when set, is
// consulted before every insert so tests can inject store failures.
type InMemorySwiftRepository struct {
	mu    sync.RWMutex
	banks map[string]models.SwiftBank

	InsertErr func(bank *models.SwiftBank) error
}

func NewInMemorySwiftRepository(seed ...models.SwiftBank) *InMemorySwiftRepository {
	r := &InMemorySwiftRepository{banks: make(map[string]models.SwiftBank, len(seed))}
	for _, bank := range seed {
		r.banks[bank.SwiftCode] = bank
	}
	return r
}

// Len returns the number of stored rows.
func (r *InMemorySwiftRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.banks)
}

func (r *InMemorySwiftRepository) Exists(ctx context.Context, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.banks[code]
	return ok, nil
}

func (r *InMemorySwiftRepository) Get(ctx context.Context, code string) (*models.SwiftBank, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	bank, ok := r.banks[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &bank, nil
}

func (r *InMemorySwiftRepository) ListByCountry(ctx context.Context, countryCode string, skip, limit int) ([]models.SwiftBank, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	matched := r.filter(func(b models.SwiftBank) bool { return b.CountryISOCode == countryCode })
	total := len(matched)
	if skip >= total {
		return []models.SwiftBank{}, total, nil
	}
	end := min(skip+limit, total)
	return matched[skip:end], total, nil
}

func (r *InMemorySwiftRepository) ListByHQBase(ctx context.Context, hqBase, excludeCode string) ([]models.SwiftBank, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.filter(func(b models.SwiftBank) bool {
		return b.SwiftCodeBase == hqBase && b.SwiftCode != excludeCode
	}), nil
}

func (r *InMemorySwiftRepository) CountryName(ctx context.Context, countryCode string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	matched := r.filter(func(b models.SwiftBank) bool { return b.CountryISOCode == countryCode })
	if len(matched) == 0 {
		return "", repository.ErrNotFound
	}
	return matched[0].CountryName, nil
}

func (r *InMemorySwiftRepository) Insert(ctx context.Context, bank *models.SwiftBank) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.InsertErr != nil {
		if err := r.InsertErr(bank); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.banks[bank.SwiftCode]; ok {
		return repository.ErrDuplicate
	}
	r.banks[bank.SwiftCode] = *bank
	return nil
}

func (r *InMemorySwiftRepository) Delete(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.banks[code]; !ok {
		return repository.ErrNotFound
	}
	delete(r.banks, code)
	return nil
}

func (r *InMemorySwiftRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// filter returns matching rows ordered by code.
func (r *InMemorySwiftRepository) filter(keep func(models.SwiftBank) bool) []models.SwiftBank {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.SwiftBank{}
	for _, bank := range r.banks {
		if keep(bank) {
			out = append(out, bank)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SwiftCode < out[j].SwiftCode })
	return out
}
