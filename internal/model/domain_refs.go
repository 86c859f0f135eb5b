package model

import (
	"github.com/google/uuid"
)

type Partner struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(255)"`
	Phone   string    `gorm:"type:varchar(32)"`
	Street  *string   `gorm:"type:varchar(255)"`
	City    *string   `gorm:"type:varchar(128)"`
	Region  *string   `gorm:"column:state_name;type:varchar(128)"`
	Country *string   `gorm:"column:country_name;type:varchar(128)"`
}

func (Partner) TableName() string {
	return "partners"
}

func (p Partner) Address() CustomerAddress {
	return CustomerAddress{
		Street:  p.Street,
		City:    p.City,
		Region:  p.Region,
		Country: p.Country,
	}
}

type Equipment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255)"`
	SerialNumber string    `gorm:"type:varchar(64)"`
}

func (Equipment) TableName() string {
	return "equipment"
}

type ServiceType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(128)"`
}

func (ServiceType) TableName() string {
	return "service_types"
}

// Technician is an employee record; only rows with IsTechnician set may
// be assigned to service orders.
type Technician struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name           string     `gorm:"type:varchar(255)"`
	UserID         *uuid.UUID `gorm:"type:uuid"`
	IsTechnician   bool       `gorm:"not null;default:false"`
	Active         bool       `gorm:"not null;default:true"`
	MaxDailyOrders int        `gorm:"not null;default:4"`
}

func (Technician) TableName() string {
	return "employees"
}
