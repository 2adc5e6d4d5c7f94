package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/zdziszkee/swift-registry/internal/database"
	model "github.com/zdziszkee/swift-registry/internal/models"
)

var (
	ErrNotFound  = errors.New("swift code not found")
	ErrDuplicate = errors.New("swift code already exists")
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

// SwiftRepository is the registry store as seen by the service. Codes and
// country codes passed in are already normalized. Errors other than
// ErrNotFound and ErrDuplicate are opaque store failures.
type SwiftRepository interface {
	Exists(ctx context.Context, code string) (bool, error)
	Get(ctx context.Context, code string) (*model.SwiftBank, error)
	ListByCountry(ctx context.Context, countryCode string, skip, limit int) ([]model.SwiftBank, int, error)
	ListByHQBase(ctx context.Context, hqBase, excludeCode string) ([]model.SwiftBank, error)
	CountryName(ctx context.Context, countryCode string) (string, error)
	Insert(ctx context.Context, bank *model.SwiftBank) error
	Delete(ctx context.Context, code string) error
	Ping(ctx context.Context) error
}

// SQLSwiftRepository implements SwiftRepository over database/sql for both
// Trino and Postgres. Queries are written with ? placeholders and rebound
// for Postgres.
type SQLSwiftRepository struct {
	db         *sql.DB
	table      string
	positional bool
}

// NewSQLSwiftRepository creates a repository over an open database handle.
func NewSQLSwiftRepository(db *database.Database) SwiftRepository {
	return &SQLSwiftRepository{
		db:         db.DB,
		table:      db.Config.QualifiedTable(),
		positional: db.Config.Type == database.TypePostgres,
	}
}

const columns = "swift_code, swift_code_base, country_iso_code, bank_name, is_headquarter, address, country_name"

func (r *SQLSwiftRepository) Exists(ctx context.Context, code string) (bool, error) {
	query := r.rebind(fmt.Sprintf("SELECT 1 FROM %s WHERE swift_code = ? LIMIT 1", r.table))
	var exists int
	err := r.db.QueryRowContext(ctx, query, code).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check exists failed: %w", err)
	}
	return true, nil
}

func (r *SQLSwiftRepository) Get(ctx context.Context, code string) (*model.SwiftBank, error) {
	query := r.rebind(fmt.Sprintf("SELECT %s FROM %s WHERE swift_code = ?", columns, r.table))
	bank, err := scanBank(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get failed: %w", err)
	}
	return bank, nil
}

// ListByCountry returns one page ordered by code plus the country's total.
func (r *SQLSwiftRepository) ListByCountry(ctx context.Context, countryCode string, skip, limit int) ([]model.SwiftBank, int, error) {
	countQuery := r.rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE country_iso_code = ?", r.table))
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countryCode).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count by country failed: %w", err)
	}
	if total == 0 || skip >= total {
		return []model.SwiftBank{}, total, nil
	}

	// OFFSET/LIMIT are formatted in: Trino does not bind parameters there.
	query := r.rebind(fmt.Sprintf("SELECT %s FROM %s WHERE country_iso_code = ? ORDER BY swift_code OFFSET %d LIMIT %d",
		columns, r.table, skip, limit))
	banks, err := r.queryBanks(ctx, query, countryCode)
	if err != nil {
		return nil, 0, fmt.Errorf("list by country failed: %w", err)
	}
	return banks, total, nil
}

// ListByHQBase returns every record sharing the 8-character base except
// excludeCode, ordered by code.
func (r *SQLSwiftRepository) ListByHQBase(ctx context.Context, hqBase, excludeCode string) ([]model.SwiftBank, error) {
	query := r.rebind(fmt.Sprintf("SELECT %s FROM %s WHERE swift_code_base = ? AND swift_code <> ? ORDER BY swift_code", columns, r.table))
	banks, err := r.queryBanks(ctx, query, hqBase, excludeCode)
	if err != nil {
		return nil, fmt.Errorf("list by hq base failed: %w", err)
	}
	return banks, nil
}

func (r *SQLSwiftRepository) CountryName(ctx context.Context, countryCode string) (string, error) {
	query := r.rebind(fmt.Sprintf("SELECT country_name FROM %s WHERE country_iso_code = ? LIMIT 1", r.table))
	var countryName string
	err := r.db.QueryRowContext(ctx, query, countryCode).Scan(&countryName)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("country name failed: %w", err)
	}
	return countryName, nil
}

// Insert writes one row. On Postgres the primary key makes a concurrent
// duplicate surface as ErrDuplicate; Trino has no unique constraints, so
// there uniqueness rests on the caller's existence check.
func (r *SQLSwiftRepository) Insert(ctx context.Context, bank *model.SwiftBank) error {
	query := r.rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?)", r.table, columns))
	_, err := r.db.ExecContext(ctx, query,
		bank.SwiftCode,
		bank.SwiftCodeBase,
		bank.CountryISOCode,
		bank.BankName,
		bank.IsHeadquarter,
		nullString(bank.Address),
		bank.CountryName,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

func (r *SQLSwiftRepository) Delete(ctx context.Context, code string) error {
	exists, err := r.Exists(ctx, code)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	query := r.rebind(fmt.Sprintf("DELETE FROM %s WHERE swift_code = ?", r.table))
	if _, err := r.db.ExecContext(ctx, query, code); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

func (r *SQLSwiftRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Helper methods

func (r *SQLSwiftRepository) queryBanks(ctx context.Context, query string, args ...any) ([]model.SwiftBank, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	banks := []model.SwiftBank{}
	for rows.Next() {
		bank, err := scanBank(rows)
		if err != nil {
			return nil, err
		}
		banks = append(banks, *bank)
	}
	return banks, rows.Err()
}

// rebind rewrites ? placeholders to $n for Postgres.
func (r *SQLSwiftRepository) rebind(query string) string {
	if !r.positional {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func scanBank(scanner interface {
	Scan(dest ...any) error
}) (*model.SwiftBank, error) {
	var bank model.SwiftBank
	var address sql.NullString

	err := scanner.Scan(
		&bank.SwiftCode,
		&bank.SwiftCodeBase,
		&bank.CountryISOCode,
		&bank.BankName,
		&bank.IsHeadquarter,
		&address,
		&bank.CountryName,
	)
	if err != nil {
		return nil, err
	}
	if address.Valid {
		bank.Address = &address.String
	}

	return &bank, nil
}
