// Package store persists résumés in named slots.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"resumeaudit/internal/config"
	apperrors "resumeaudit/internal/errors"
	"resumeaudit/internal/types"
)

// Slots
const (
	SlotPublic = "public"
	SlotA      = "A"
	SlotB      = "B"

	// DefaultUserID owns every entry until accounts exist
	DefaultUserID = "public"
)

var (
	ErrNotFound    = errors.New("resume not found")
	ErrEmptyRecord = errors.New("resume has no name, role or summary")
	ErrInvalidSlot = errors.New("invalid slot")
)

// Entry is a stored résumé with its cached bias outcome
type Entry struct {
	Slot       string             `json:"slot" yaml:"slot" validate:"required,oneof=public A B"`
	ID         string             `json:"id" yaml:"id"`
	UserID     string             `json:"userId" yaml:"userId"`
	Resume     types.ResumeRecord `json:"resume" yaml:"resume"`
	BiasScore  *int               `json:"biasScore" yaml:"biasScore"`
	BiasIssues *int               `json:"biasIssues" yaml:"biasIssues"`
	CreatedAt  time.Time          `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" yaml:"updatedAt"`
}

// Store is implemented by every backend
type Store interface {
	Save(ctx context.Context, slot string, r types.ResumeRecord) (*Entry, error)
	Get(ctx context.Context, slot string) (*Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, slot string) error
	RecordBias(ctx context.Context, slot string, score, issues int) error
	Close() error
}

var validate = validator.New()

type slotKey struct {
	Slot string `validate:"required,oneof=public A B"`
}

// Slots lists valid slot names in display order
func Slots() []string {
	return []string{SlotPublic, SlotA, SlotB}
}

// ValidateSlot returns ErrInvalidSlot for unknown slot names
func ValidateSlot(slot string) error {
	if err := validate.Struct(slotKey{Slot: slot}); err != nil {
		return fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidSlot, slot, strings.Join(Slots(), ", "))
	}
	return nil
}

func isEmptyRecord(r types.ResumeRecord) bool {
	return strings.TrimSpace(r.Name) == "" &&
		strings.TrimSpace(r.Role) == "" &&
		strings.TrimSpace(r.Summary) == ""
}

// prepareSave builds the entry to write. An existing entry keeps its id and
// creation time. Cached bias values are dropped since they describe the old
// content.
func prepareSave(slot string, r types.ResumeRecord, existing *Entry, now time.Time) (*Entry, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	if isEmptyRecord(r) {
		return nil, ErrEmptyRecord
	}

	entry := &Entry{
		Slot:      slot,
		ID:        uuid.NewString(),
		UserID:    DefaultUserID,
		Resume:    r,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing != nil {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	}
	return entry, validate.Struct(entry)
}

func intPtr(v int) *int { return &v }

// Open selects the backend named by cfg.Driver
func Open(ctx context.Context, cfg config.StoreConfig, logger *apperrors.Logger) (Store, error) {
	logger.Debug("Opening resume store", "driver", cfg.Driver)
	switch cfg.Driver {
	case config.StoreDriverFile:
		return NewFileStore(cfg.Path)
	case config.StoreDriverSQLite:
		return OpenSQLite(ctx, cfg.Path)
	case config.StoreDriverPostgres:
		return OpenPostgres(ctx, cfg, logger)
	}
	return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
}

// AsAppError maps store errors onto application error codes
func AsAppError(err error, slot string) *apperrors.AppError {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, ErrNotFound):
		appErr = apperrors.NewValidationError(apperrors.ErrCodeResumeNotFound, "no resume stored in slot", err)
	case errors.Is(err, ErrEmptyRecord), errors.Is(err, ErrInvalidSlot):
		appErr = apperrors.NewValidationError(apperrors.ErrCodeInvalidRequest, err.Error(), err)
	case errors.Is(err, ErrUnavailable):
		appErr = apperrors.NewStorageError(apperrors.ErrCodeStoreUnavailable, "resume store unavailable", err)
	default:
		appErr = apperrors.NewStorageError(apperrors.ErrCodeStoreFailed, "resume store operation failed", err)
	}
	return appErr.WithContext("slot", slot)
}
