package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"service-calendar/internal/model"
	"service-calendar/internal/rpc"
)

var technicianColumns = map[string]string{
	"id":               "id",
	"name":             "name",
	"user_id":          "user_id",
	"is_technician":    "is_technician",
	"active":           "active",
	"max_daily_orders": "max_daily_orders",
}

type TechnicianRepository struct {
	db *gorm.DB
}

func NewTechnicianRepository(db *gorm.DB) *TechnicianRepository {
	return &TechnicianRepository{db: db}
}

// Search only ever returns active employees.
func (r *TechnicianRepository) Search(ctx context.Context, domain rpc.Domain, limit int) ([]model.Technician, error) {
	query, err := applyDomain(r.db.WithContext(ctx).Model(&model.Technician{}).Where("active = ?", true), domain, technicianColumns)
	if err != nil {
		return nil, err
	}
	var rows []model.Technician
	if err := applyLimit(query, limit).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *TechnicianRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Technician, error) {
	if len(ids) == 0 {
		return []model.Technician{}, nil
	}
	var rows []model.Technician
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Assignable returns the active technician with id, or gorm.ErrRecordNotFound.
func (r *TechnicianRepository) Assignable(ctx context.Context, id uuid.UUID) (*model.Technician, error) {
	var technician model.Technician
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_technician = ? AND active = ?", id, true, true).
		First(&technician).Error; err != nil {
		return nil, err
	}
	return &technician, nil
}

// CountDailyOrders counts the technician's open orders scheduled in
// [from, to), leaving out excludeID.
func (r *TechnicianRepository) CountDailyOrders(ctx context.Context, technicianID, excludeID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := dailyOrdersQuery(r.db.WithContext(ctx), technicianID, excludeID, from, to).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func dailyOrdersQuery(db *gorm.DB, technicianID, excludeID uuid.UUID, from, to time.Time) *gorm.DB {
	return db.Model(&model.ServiceOrder{}).
		Where("technician_id = ? AND id <> ?", technicianID, excludeID).
		Where("scheduled_date >= ? AND scheduled_date < ?", from, to).
		Where("status NOT IN ?", []model.ServiceStatus{model.ServiceStatusCancelled, model.ServiceStatusDone})
}
