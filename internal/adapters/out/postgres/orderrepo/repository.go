package orderrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const newestFirst = "created_at DESC, id DESC"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order and assigns the generated identifier to it.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceErrorWithCause("insert order", err)
	}
	if err := aggregate.AssignID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.first(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order with a row lock held until the transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.first(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) first(_ context.Context, db *gorm.DB, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, errs.NewPersistenceErrorWithCause("select order", err)
	}

	return toDomain(dto)
}

// UpdateStatus writes the status group guarded by the expected stored status.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":      dto.Status,
			"accepted_at": dto.AcceptedAt,
			"issued_at":   dto.IssuedAt,
		})
	if result.Error != nil {
		return errs.NewPersistenceErrorWithCause("update order status", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.explainMissedUpdate(ctx, dto.ID, aggregate.Status())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// explainMissedUpdate tells a vanished row apart from a concurrent transition.
func (r *GormOrderRepository) explainMissedUpdate(ctx context.Context, id int64, target order.Status) error {
	var stored OrderDTO
	err := r.db.WithContext(ctx).Select("id", "status").First(&stored, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", id)
	}
	if err != nil {
		return errs.NewPersistenceErrorWithCause("select order status", err)
	}
	return errs.NewConflictError("order", id, stored.Status, target.String())
}

// UpdateAcceptanceDetails writes ready date and master comment.
func (r *GormOrderRepository) UpdateAcceptanceDetails(ctx context.Context, aggregate *order.Order) error {
	return r.updateFields(ctx, aggregate, "update acceptance details", map[string]any{
		"ready_date":     aggregate.ReadyDate(),
		"master_comment": aggregate.MasterComment(),
	})
}

// UpdateReminderState writes the reminder flags.
func (r *GormOrderRepository) UpdateReminderState(ctx context.Context, aggregate *order.Order) error {
	return r.updateFields(ctx, aggregate, "update reminder state", map[string]any{
		"client_reminded":    aggregate.ClientReminded(),
		"last_reminder_date": aggregate.LastReminderDate(),
	})
}

// UpdateFeedbackState raises feedbackRequested. A false flag is not written.
func (r *GormOrderRepository) UpdateFeedbackState(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.FeedbackRequested() {
		return nil
	}
	return r.updateFields(ctx, aggregate, "update feedback state", map[string]any{
		"feedback_requested": true,
	})
}

func (r *GormOrderRepository) updateFields(
	ctx context.Context,
	aggregate *order.Order,
	operation string,
	fields map[string]any,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID()).Updates(fields)
	if result.Error != nil {
		return errs.NewPersistenceErrorWithCause(operation, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ListByStatus returns orders in the given statuses, or every order, newest first.
func (r *GormOrderRepository) ListByStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error) {
	db := r.db.WithContext(ctx).Order(newestFirst)
	if len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, s := range statuses {
			names = append(names, s.String())
		}
		db = db.Where("status IN ?", names)
	}
	return r.find(db, "list orders by status")
}

// ListStaleNew returns New orders that are due for a reminder.
func (r *GormOrderRepository) ListStaleNew(
	ctx context.Context,
	createdBefore, remindedBefore time.Time,
) ([]*order.Order, error) {
	db := r.db.WithContext(ctx).
		Where("status = ? AND client_reminded = ? AND created_at <= ?", order.New.String(), false, createdBefore).
		Where("last_reminder_date IS NULL OR last_reminder_date <= ?", remindedBefore).
		Order("created_at ASC, id ASC")
	return r.find(db, "list stale new orders")
}

// ListAcceptedBefore returns Accepted orders accepted at or before the instant.
func (r *GormOrderRepository) ListAcceptedBefore(ctx context.Context, acceptedBefore time.Time) ([]*order.Order, error) {
	db := r.db.WithContext(ctx).
		Where("status = ? AND accepted_at <= ?", order.Accepted.String(), acceptedBefore).
		Order("accepted_at ASC, id ASC")
	return r.find(db, "list stuck accepted orders")
}

// ListPendingFeedback returns Issued orders still waiting for a feedback prompt.
func (r *GormOrderRepository) ListPendingFeedback(ctx context.Context, issuedBefore time.Time) ([]*order.Order, error) {
	db := r.db.WithContext(ctx).
		Where("status = ? AND feedback_requested = ? AND issued_at <= ?", order.Issued.String(), false, issuedBefore).
		Order("issued_at ASC, id ASC")
	return r.find(db, "list orders pending feedback")
}

// SearchByClientName matches a case-insensitive substring of the client name.
func (r *GormOrderRepository) SearchByClientName(ctx context.Context, fragment string) ([]*order.Order, error) {
	pattern := "%" + escapeLike(strings.ToLower(fragment)) + "%"
	db := r.db.WithContext(ctx).
		Where(`LOWER(client_name) LIKE ? ESCAPE '\'`, pattern).
		Order(newestFirst)
	return r.find(db, "search orders by client name")
}

// ListByUser returns the newest orders of a user.
func (r *GormOrderRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*order.Order, error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", userID).Order(newestFirst)
	if limit > 0 {
		db = db.Limit(limit)
	}
	return r.find(db, "list orders by user")
}

// CountByUser returns how many orders the user has placed.
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, errs.NewPersistenceErrorWithCause("count orders by user", err)
	}
	return count, nil
}

func (r *GormOrderRepository) find(db *gorm.DB, operation string) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := db.Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceErrorWithCause(operation, err)
	}
	return toDomainList(dtos)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
