package model

import (
	"time"

	"github.com/google/uuid"
)

// Ref is a many-to-one reference: the related id plus its display label.
type Ref struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

// ServiceRecord is the read-only snapshot the technician dialog works on.
type ServiceRecord struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Customer      *Ref          `json:"customer"`
	Equipment     *Ref          `json:"equipment"`
	Status        ServiceStatus `json:"status"`
	ReportedFault string        `json:"reported_fault"`
	Diagnosis     string        `json:"diagnosis"`
	WorkPerformed string        `json:"work_performed"`
	TotalAmount   float64       `json:"total_amount"`
	CurrencyCode  string        `json:"currency_code"`
}

type ServiceDialog struct {
	Record  ServiceRecord `json:"record"`
	Actions []Action      `json:"actions"`
}

type EventPopover struct {
	Client        string `json:"client"`
	Equipment     string `json:"equipment"`
	ServiceType   string `json:"service_type"`
	Technician    string `json:"technician"`
	PriorityLabel string `json:"priority"`
}

type CalendarEvent struct {
	ID       uuid.UUID     `json:"id"`
	Title    string        `json:"title"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   ServiceStatus `json:"status"`
	Priority Priority      `json:"priority"`
	Classes  []string      `json:"classes"`
	Popover  EventPopover  `json:"popover"`
	Address  string        `json:"address,omitempty"`
}
