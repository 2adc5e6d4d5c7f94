package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	models "github.com/zdziszkee/swift-registry/internal/models"
	readers "github.com/zdziszkee/swift-registry/internal/readers"
	"github.com/zdziszkee/swift-registry/internal/readers/files"
	service "github.com/zdziszkee/swift-registry/internal/services"
)

// Options configures the handler. Zero values fall back to the defaults.
type Options struct {
	DataFile     string
	LoadTimeout  time.Duration
	DefaultLimit int
	MaxLimit     int
}

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// SwiftHandler handles API requests for SWIFT codes
type SwiftHandler struct {
	service service.SwiftService
	logger  *zap.Logger
	opts    Options
}

// NewSwiftHandler creates a new handler instance
func NewSwiftHandler(svc service.SwiftService, logger *zap.Logger, opts Options) *SwiftHandler {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = maxLimit
	}
	return &SwiftHandler{service: svc, logger: logger, opts: opts}
}

// codeSummary is the reduced shape used for branch and country listings.
type codeSummary struct {
	Address       *string `json:"address"`
	BankName      string  `json:"bank_name"`
	CountryISO2   string  `json:"country_iso2"`
	IsHeadquarter bool    `json:"is_headquarter"`
	SwiftCode     string  `json:"swift_code"`
}

// codeDetail is a single code lookup. Branches is present only for a
// headquarters, and then always, even when empty.
type codeDetail struct {
	Address       *string        `json:"address"`
	BankName      string         `json:"bank_name"`
	CountryISO2   string         `json:"country_iso2"`
	CountryName   string         `json:"country_name"`
	IsHeadquarter bool           `json:"is_headquarter"`
	SwiftCode     string         `json:"swift_code"`
	Branches      *[]codeSummary `json:"branches,omitempty"`
}

type countryCodes struct {
	CountryISO2 string        `json:"country_iso2"`
	CountryName string        `json:"country_name"`
	SwiftCodes  []codeSummary `json:"swift_codes"`
	Total       int           `json:"total"`
	Skip        int           `json:"skip"`
	Limit       int           `json:"limit"`
}

type createRequest struct {
	SwiftCode   string  `json:"swift_code"`
	BankName    string  `json:"bank_name"`
	Address     *string `json:"address"`
	CountryISO2 string  `json:"country_iso2"`
	CountryName string  `json:"country_name"`
}

type loadResponse struct {
	Message string `json:"message"`
	service.IngestSummary
}

func summarize(bank models.SwiftBank) codeSummary {
	return codeSummary{
		Address:       bank.Address,
		BankName:      bank.BankName,
		CountryISO2:   bank.CountryISOCode,
		IsHeadquarter: bank.IsHeadquarter,
		SwiftCode:     bank.SwiftCode,
	}
}

func summarizeAll(banks []models.SwiftBank) []codeSummary {
	out := make([]codeSummary, 0, len(banks))
	for _, bank := range banks {
		out = append(out, summarize(bank))
	}
	return out
}

// GetByCode handles requests for a specific SWIFT code
func (h *SwiftHandler) GetByCode(c fiber.Ctx) error {
	code := c.Params("swiftCode")

	detail, err := h.service.GetSwiftCodeDetails(c.Context(), code)
	if err != nil {
		return h.handleError(c, err, code)
	}

	resp := codeDetail{
		Address:       detail.Bank.Address,
		BankName:      detail.Bank.BankName,
		CountryISO2:   detail.Bank.CountryISOCode,
		CountryName:   detail.Bank.CountryName,
		IsHeadquarter: detail.Bank.IsHeadquarter,
		SwiftCode:     detail.Bank.SwiftCode,
	}
	if detail.Bank.IsHeadquarter {
		branches := summarizeAll(detail.Branches)
		resp.Branches = &branches
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetByCountry handles requests for a page of SWIFT codes of one country
func (h *SwiftHandler) GetByCountry(c fiber.Ctx) error {
	countryCode := c.Params("countryISO2code")

	skip, err := queryInt(c, "skip", 0)
	if err != nil || skip < 0 {
		return badRequest(c, "skip must be a non-negative integer")
	}
	limit, err := queryInt(c, "limit", h.opts.DefaultLimit)
	if err != nil || limit < 1 || limit > h.opts.MaxLimit {
		return badRequest(c, fmt.Sprintf("limit must be an integer between 1 and %d", h.opts.MaxLimit))
	}

	page, err := h.service.GetSwiftCodesByCountry(c.Context(), countryCode, skip, limit)
	if err != nil {
		return h.handleError(c, err, countryCode)
	}

	return c.Status(fiber.StatusOK).JSON(countryCodes{
		CountryISO2: page.CountryISOCode,
		CountryName: page.CountryName,
		SwiftCodes:  summarizeAll(page.SwiftCodes),
		Total:       page.Total,
		Skip:        page.Skip,
		Limit:       page.Limit,
	})
}

// Create handles creation of a new SWIFT code
func (h *SwiftHandler) Create(c fiber.Ctx) error {
	var req createRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	bank, err := h.service.CreateSwiftCode(c.Context(), readers.SwiftBankRecord{
		SwiftCode:      req.SwiftCode,
		BankName:       req.BankName,
		Address:        req.Address,
		CountryISOCode: req.CountryISO2,
		CountryName:    req.CountryName,
	})
	if err != nil {
		return h.handleError(c, err, req.SwiftCode)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("SWIFT code '%s' created successfully.", bank.SwiftCode),
	})
}

// Delete handles deletion of a SWIFT code
func (h *SwiftHandler) Delete(c fiber.Ctx) error {
	code := c.Params("swiftCode")

	if err := h.service.DeleteSwiftCode(c.Context(), code); err != nil {
		return h.handleError(c, err, code)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("SWIFT code '%s' deleted successfully.", strings.ToUpper(strings.TrimSpace(code))),
	})
}

// LoadData ingests the configured data file and reports the batch summary
func (h *SwiftHandler) LoadData(c fiber.Ctx) error {
	records, err := files.Read(h.opts.DataFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return badRequest(c, fmt.Sprintf("Data file not found: %s", h.opts.DataFile))
		}
		h.logger.Warn("data file unreadable", zap.String("file", h.opts.DataFile), zap.Error(err))
		return badRequest(c, fmt.Sprintf("Failed to read data file: %v", err))
	}

	var ctx context.Context = c.Context()
	if h.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.LoadTimeout)
		defer cancel()
	}

	summary, err := h.service.IngestBatch(ctx, records)
	if err != nil {
		h.logger.Error("data load interrupted", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(loadResponse{
			Message:       fmt.Sprintf("Data load interrupted: %v", err),
			IngestSummary: summary,
		})
	}

	return c.Status(fiber.StatusOK).JSON(loadResponse{
		Message:       "Data load finished.",
		IngestSummary: summary,
	})
}

// Health reports whether the registry store is reachable
func (h *SwiftHandler) Health(c fiber.Ctx) error {
	if err := h.service.Ping(c.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

func queryInt(c fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func badRequest(c fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}

// handleError maps service errors to status codes
func (h *SwiftHandler) handleError(c fiber.Ctx, err error, subject string) error {
	subject = strings.ToUpper(strings.TrimSpace(subject))
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("SWIFT code '%s' not found", subject),
		})
	case errors.Is(err, service.ErrInvalidInput):
		return badRequest(c, err.Error())
	case errors.Is(err, service.ErrAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": fmt.Sprintf("SWIFT code '%s' already exists", subject),
		})
	default:
		h.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}
