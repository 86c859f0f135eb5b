package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceOrderStatusLog struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ServiceOrderID uuid.UUID      `gorm:"type:uuid;not null" json:"service_order_id"`
	OldStatus      *ServiceStatus `gorm:"type:service_order_status" json:"old_status"`
	NewStatus      ServiceStatus  `gorm:"type:service_order_status;not null" json:"new_status"`
	Note           string         `gorm:"type:text" json:"note"`
	ChangedBy      *uuid.UUID     `gorm:"type:uuid" json:"changed_by"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (ServiceOrderStatusLog) TableName() string {
	return "service_order_status_log"
}

func (l *ServiceOrderStatusLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
