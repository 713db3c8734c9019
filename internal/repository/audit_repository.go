package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tesseract-hub/translation-api/internal/models"
)

// AuditRepository persists access and content records. Callers treat
// both writes as best-effort: a failed audit write never fails the
// request that produced it.
type AuditRepository interface {
	LogAccess(ctx context.Context, record *models.AccessRecord) error
	LogContent(ctx context.Context, record *models.ContentRecord) error
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a GORM-backed audit repository.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) LogAccess(ctx context.Context, record *models.AccessRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *auditRepository) LogContent(ctx context.Context, record *models.ContentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}
