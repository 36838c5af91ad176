package agentrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	entityName = "delivery agent"

	uniqueViolation = "23505"
)

// GormAgentRepository implements ports.AgentRepository using GORM.
type GormAgentRepository struct {
	db *gorm.DB
}

func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// Add inserts a new agent. A phone that is already registered is reported as
// an invalid phone value.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateWriteError(err)
	}

	return nil
}

// Update writes every mutable column when the stored version still equals
// aggregate.Version(), and bumps the stored version.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AgentDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(mutableColumns(dto))
	if result.Error != nil {
		return translateWriteError(result.Error)
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, dto.ID, aggregate)
	}

	return nil
}

// GetForUpdate retrieves an active agent and locks its row.
func (r *GormAgentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// PhoneTaken looks at active and inactive agents alike, matching the unique index.
func (r *GormAgentRepository) PhoneTaken(ctx context.Context, phone kernel.Phone, except *kernel.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&AgentDTO{}).Where("phone = ?", phone.String())
	if except != nil {
		query = query.Where("id <> ?", except.Bytes())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormAgentRepository) get(db *gorm.DB, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := db.First(&dto, "id = ? AND is_active = ?", id.Bytes(), true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entityName, id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAgentRepository) missOrConflict(ctx context.Context, id uuid.UUID, aggregate *agent.Agent) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&AgentDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(entityName, aggregate.ID().String())
	}
	return errs.NewConflictError(entityName, aggregate.ID().String(), aggregate.Version())
}

func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.NewValueIsInvalidErrorWithCause("phone", agent.ErrPhoneIsTaken)
	}
	return err
}
