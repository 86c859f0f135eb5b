package model

import (
	"time"

	"github.com/google/uuid"
)

type ServiceStatus string

const (
	ServiceStatusDraft           ServiceStatus = "draft"
	ServiceStatusAssigned        ServiceStatus = "assigned"
	ServiceStatusInProgress      ServiceStatus = "in_progress"
	ServiceStatusPendingApproval ServiceStatus = "pending_approval"
	ServiceStatusAccepted        ServiceStatus = "accepted"
	ServiceStatusDone            ServiceStatus = "done"
	ServiceStatusCancelled       ServiceStatus = "cancelled"
)

// ServiceStatuses lists every status in lifecycle order.
var ServiceStatuses = []ServiceStatus{
	ServiceStatusDraft,
	ServiceStatusAssigned,
	ServiceStatusInProgress,
	ServiceStatusPendingApproval,
	ServiceStatusAccepted,
	ServiceStatusDone,
	ServiceStatusCancelled,
}

var serviceStatusLabels = map[ServiceStatus]string{
	ServiceStatusDraft:           "Draft",
	ServiceStatusAssigned:        "Assigned",
	ServiceStatusInProgress:      "In Progress",
	ServiceStatusPendingApproval: "Pending Approval",
	ServiceStatusAccepted:        "Accepted",
	ServiceStatusDone:            "Done",
	ServiceStatusCancelled:       "Cancelled",
}

// forward holds the single non-cancel successor of each status.
var forward = map[ServiceStatus]ServiceStatus{
	ServiceStatusDraft:           ServiceStatusAssigned,
	ServiceStatusAssigned:        ServiceStatusInProgress,
	ServiceStatusInProgress:      ServiceStatusPendingApproval,
	ServiceStatusPendingApproval: ServiceStatusAccepted,
	ServiceStatusAccepted:        ServiceStatusDone,
}

func (s ServiceStatus) Valid() bool {
	_, ok := serviceStatusLabels[s]
	return ok
}

func (s ServiceStatus) Label() string {
	if label, ok := serviceStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s ServiceStatus) IsTerminal() bool {
	return s == ServiceStatusDone || s == ServiceStatusCancelled
}

// CanTransition reports whether the lifecycle allows moving from s to target.
func (s ServiceStatus) CanTransition(target ServiceStatus) bool {
	if !s.Valid() || !target.Valid() || s.IsTerminal() {
		return false
	}
	if target == ServiceStatusCancelled {
		return true
	}
	return forward[s] == target
}

type Priority string

const (
	PriorityNormal Priority = "0"
	PriorityLow    Priority = "1"
	PriorityHigh   Priority = "2"
	PriorityUrgent Priority = "3"
)

var priorityLabels = map[Priority]string{
	PriorityNormal: "Normal",
	PriorityLow:    "Low",
	PriorityHigh:   "High",
	PriorityUrgent: "Urgent",
}

func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

type ServiceOrder struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name          string        `gorm:"type:varchar(32);not null" json:"name"`
	PartnerID     uuid.UUID     `gorm:"type:uuid;not null" json:"partner_id"`
	EquipmentID   *uuid.UUID    `gorm:"type:uuid" json:"equipment_id"`
	ServiceTypeID *uuid.UUID    `gorm:"type:uuid" json:"service_type_id"`
	TechnicianID  *uuid.UUID    `gorm:"type:uuid" json:"technician_id"`
	Status        ServiceStatus `gorm:"type:service_order_status;not null;default:'draft'" json:"status"`
	Priority      Priority      `gorm:"type:varchar(1);not null;default:'0'" json:"priority"`
	ScheduledDate *time.Time    `gorm:"column:scheduled_date" json:"scheduled_date"`
	Duration      float64       `gorm:"not null;default:1" json:"duration"`
	StartDate     *time.Time    `gorm:"column:start_date" json:"start_date"`
	EndDate       *time.Time    `gorm:"column:end_date" json:"end_date"`
	ReportedFault string        `gorm:"type:text" json:"reported_fault"`
	Diagnosis     string        `gorm:"type:text" json:"diagnosis"`
	WorkPerformed string        `gorm:"type:text" json:"work_performed"`
	TotalAmount   float64       `gorm:"type:numeric(14,2);not null;default:0" json:"total_amount"`
	CurrencyCode  string        `gorm:"type:varchar(3);not null;default:'USD'" json:"currency_code"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Partner     *Partner     `gorm:"foreignKey:PartnerID"`
	Equipment   *Equipment   `gorm:"foreignKey:EquipmentID"`
	ServiceType *ServiceType `gorm:"foreignKey:ServiceTypeID"`
	Technician  *Technician  `gorm:"foreignKey:TechnicianID"`
}

func (ServiceOrder) TableName() string {
	return "service_orders"
}

// EndsAt is the scheduled end derived from the duration in hours.
func (o ServiceOrder) EndsAt() *time.Time {
	if o.ScheduledDate == nil {
		return nil
	}
	hours := o.Duration
	if hours <= 0 {
		hours = 1
	}
	end := o.ScheduledDate.Add(time.Duration(hours * float64(time.Hour)))
	return &end
}
