package model

import (
	"strings"

	"github.com/google/uuid"
)

type Action string

const (
	ActionStartService       Action = "start_service"
	ActionCompleteService    Action = "complete_service"
	ActionNavigateToCustomer Action = "navigate_to_customer"
	ActionClose              Action = "close"
)

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationDanger  NotificationType = "danger"
	NotificationInfo    NotificationType = "info"
)

type Notification struct {
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
}

// Result is the outcome of a command issued from the technician dialog.
type Result struct {
	Notification Notification `json:"notification"`
	Reload       bool         `json:"reload"`
}

type DirectiveContext struct {
	DefaultServiceOrderID uuid.UUID `json:"default_service_order_id"`
}

// NavigationDirective tells the presentation surface which form to open next.
type NavigationDirective struct {
	Type     string           `json:"type"`
	Name     string           `json:"name"`
	ResModel string           `json:"res_model"`
	ViewMode string           `json:"view_mode"`
	Target   string           `json:"target"`
	Context  DirectiveContext `json:"context"`
}

type TechnicianIdentity struct {
	IsTechnician bool       `json:"is_technician"`
	TechnicianID *uuid.UUID `json:"technician_id,omitempty"`
}

// CustomerAddress components are optional; nil or blank means absent.
type CustomerAddress struct {
	Street  *string `json:"street,omitempty"`
	City    *string `json:"city,omitempty"`
	Region  *string `json:"region,omitempty"`
	Country *string `json:"country,omitempty"`
}

// Parts returns the present components in street, city, region, country order.
func (a CustomerAddress) Parts() []string {
	parts := make([]string, 0, 4)
	for _, p := range []*string{a.Street, a.City, a.Region, a.Country} {
		if p == nil {
			continue
		}
		v := strings.TrimSpace(*p)
		if v == "" {
			continue
		}
		parts = append(parts, v)
	}
	return parts
}

type Navigation struct {
	Available bool   `json:"available"`
	Address   string `json:"address,omitempty"`
	URL       string `json:"url,omitempty"`
	Message   string `json:"message,omitempty"`
}
