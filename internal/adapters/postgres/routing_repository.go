package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contentpipe/scheduler/internal/domain"
	"github.com/contentpipe/scheduler/internal/ports"
)

type routingRepository struct {
	db       *gorm.DB
	capacity int
}

// nextFreeSlot picks the smallest unused slot index below capacity, or -1
// when the (date, destination) pair is fully booked. Cancellations can leave
// holes below higher indexes, so the scan cannot assume used == [0..n).
func nextFreeSlot(used []int, capacity int) int {
	if capacity <= 0 {
		capacity = 1
	}
	taken := make(map[int]bool, len(used))
	for _, s := range used {
		taken[s] = true
	}
	for i := 0; i < capacity; i++ {
		if !taken[i] {
			return i
		}
	}
	return -1
}

// Create persists the decision, its expanded slot rows, and the outbox event
// in one transaction. Capacity is enforced here: a stale availability view
// that arrives after the day filled up gets domain.ErrSlotTaken. The unique
// (calendar_date, destination, slot) index remains the backstop for two
// transactions claiming the same free index concurrently; that lost race
// surfaces as gorm.ErrDuplicatedKey, mapped to the same sentinel so the
// caller retries with fresh availability either way.
func (r *routingRepository) Create(ctx context.Context, decision domain.RoutingDecision, outboxEvent ports.OutboxEvent) (domain.RoutingDecision, error) {
	rec := toRoutingModel(decision)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		for _, item := range domain.ExpandDecisions([]domain.RoutingDecision{decision}) {
			var used []int
			if err := tx.Model(&routingSlotModel{}).
				Where("calendar_date = ?", item.Date).
				Where("destination = ?", item.Destination).
				Order("slot ASC").
				Pluck("slot", &used).Error; err != nil {
				return err
			}
			idx := nextFreeSlot(used, r.capacity)
			if idx < 0 {
				return domain.ErrSlotTaken
			}
			slot := routingSlotModel{
				DecisionID:   decision.ID,
				CalendarDate: item.Date,
				Destination:  item.Destination,
				Slot:         idx,
				IsStagger:    item.IsStagger,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
		return tx.Create(&outboxModel{
			OutboxID:     outboxEvent.EventID,
			EventType:    outboxEvent.EventType,
			PartitionKey: outboxEvent.PartitionKey,
			Payload:      string(outboxEvent.Payload),
			CreatedAt:    outboxEvent.OccurredAt,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RoutingDecision{}, domain.ErrSlotTaken
		}
		return domain.RoutingDecision{}, err
	}
	return toDomainDecision(rec), nil
}

func (r *routingRepository) GetByIdeaID(ctx context.Context, ideaID uuid.UUID) (domain.RoutingDecision, error) {
	var rec routingModel
	if err := r.db.WithContext(ctx).Where("idea_id = ?", ideaID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RoutingDecision{}, domain.ErrNotFound
		}
		return domain.RoutingDecision{}, err
	}
	return toDomainDecision(rec), nil
}

// ListBetween returns every decision with an effective date inside the
// range: primary dates are indexed directly, staggered landings are matched
// through the expanded slot rows.
func (r *routingRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.RoutingDecision, error) {
	start = domain.NormalizeDate(start)
	end = domain.NormalizeDate(end)

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&routingSlotModel{}).
		Distinct("decision_id").
		Where("calendar_date BETWEEN ? AND ?", start, end).
		Pluck("decision_id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []routingModel
	if err := r.db.WithContext(ctx).
		Where("decision_id IN ?", ids).
		Order("calendar_date ASC, decision_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.RoutingDecision, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainDecision(row))
	}
	return result, nil
}

// UpdateStatus transitions a routing record; cancelling also frees its
// calendar slots so the days become bookable again.
func (r *routingRepository) UpdateStatus(ctx context.Context, decisionID uuid.UUID, status string, updatedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&routingModel{}).
			Where("decision_id = ?", decisionID).
			Updates(map[string]any{"status": status, "updated_at": updatedAt})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if status == domain.RoutingStatusCancelled {
			return tx.Where("decision_id = ?", decisionID).Delete(&routingSlotModel{}).Error
		}
		return nil
	})
}
