package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"service-calendar/internal/model"
	"service-calendar/internal/rpc"
)

// ErrStaleStatus is returned when a transition finds the order no longer
// in the status it was read with.
var ErrStaleStatus = errors.New("service order status changed concurrently")

var serviceOrderColumns = map[string]string{
	"id":              "service_orders.id",
	"name":            "service_orders.name",
	"partner_id":      "service_orders.partner_id",
	"equipment_id":    "service_orders.equipment_id",
	"service_type_id": "service_orders.service_type_id",
	"technician_id":   "service_orders.technician_id",
	"status":          "service_orders.status",
	"priority":        "service_orders.priority",
	"scheduled_date":  "service_orders.scheduled_date",
	"start_date":      "service_orders.start_date",
	"end_date":        "service_orders.end_date",
}

type ServiceOrderRepository struct {
	db *gorm.DB
}

func NewServiceOrderRepository(db *gorm.DB) *ServiceOrderRepository {
	return &ServiceOrderRepository{db: db}
}

func (r *ServiceOrderRepository) Search(ctx context.Context, domain rpc.Domain, limit int) ([]model.ServiceOrder, error) {
	query, err := applyDomain(r.db.WithContext(ctx).Model(&model.ServiceOrder{}), domain, serviceOrderColumns)
	if err != nil {
		return nil, err
	}

	var orders []model.ServiceOrder
	if err := preloadRelations(applyLimit(query, limit)).
		Order("service_orders.scheduled_date ASC NULLS LAST, service_orders.created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *ServiceOrderRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ServiceOrder, error) {
	if len(ids) == 0 {
		return []model.ServiceOrder{}, nil
	}
	var orders []model.ServiceOrder
	if err := preloadRelations(r.db.WithContext(ctx).Model(&model.ServiceOrder{})).
		Where("service_orders.id IN ?", ids).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *ServiceOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceOrder, error) {
	var order model.ServiceOrder
	if err := preloadRelations(r.db.WithContext(ctx).Model(&model.ServiceOrder{})).
		First(&order, "service_orders.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Transition moves the order from its current status to logEntry.NewStatus
// and records the change in one transaction.
func (r *ServiceOrderRepository) Transition(ctx context.Context, id uuid.UUID, from model.ServiceStatus, updates map[string]interface{}, logEntry *model.ServiceOrderStatusLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		values := make(map[string]interface{}, len(updates)+1)
		for k, v := range updates {
			values[k] = v
		}
		values["status"] = logEntry.NewStatus

		res := tx.Model(&model.ServiceOrder{}).
			Where("id = ? AND status = ?", id, from).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleStatus
		}

		prev := from
		logEntry.ServiceOrderID = id
		logEntry.OldStatus = &prev
		return tx.Create(logEntry).Error
	})
}

func (r *ServiceOrderRepository) StatusHistory(ctx context.Context, id uuid.UUID) ([]model.ServiceOrderStatusLog, error) {
	var logs []model.ServiceOrderStatusLog
	if err := r.db.WithContext(ctx).
		Where("service_order_id = ?", id).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func preloadRelations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Partner").
		Preload("Equipment").
		Preload("ServiceType").
		Preload("Technician")
}
