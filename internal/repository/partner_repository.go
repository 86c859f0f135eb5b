package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"service-calendar/internal/model"
	"service-calendar/internal/rpc"
)

var partnerColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"city":         "city",
	"state_name":   "state_name",
	"country_name": "country_name",
}

type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Partner, error) {
	if len(ids) == 0 {
		return []model.Partner{}, nil
	}
	var rows []model.Partner
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PartnerRepository) Search(ctx context.Context, domain rpc.Domain, limit int) ([]model.Partner, error) {
	query, err := applyDomain(r.db.WithContext(ctx).Model(&model.Partner{}), domain, partnerColumns)
	if err != nil {
		return nil, err
	}
	var rows []model.Partner
	if err := applyLimit(query, limit).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
