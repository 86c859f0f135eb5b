// Package calendar turns service orders into calendar events: state and
// priority classes for styling, popover details and an iCalendar export.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"service-calendar/internal/model"
	"service-calendar/internal/rpc"
	"service-calendar/internal/workflow"
)

const (
	statusClassPrefix   = "o_calendar_service_"
	priorityClassPrefix = "o_calendar_priority_"
)

var ErrInvalidRange = errors.New("invalid calendar range")

var eventFields = []string{
	"name", "partner_id", "equipment_id", "service_type_id", "technician_id",
	"status", "priority", "scheduled_date", "date_end", "partner_address",
}

type Service struct {
	client   rpc.Reader
	maxRange time.Duration
}

func NewService(client rpc.Reader, maxRange time.Duration) *Service {
	return &Service{client: client, maxRange: maxRange}
}

// Events returns the service orders scheduled in [from, to) that match
// domain. Orders without a scheduled date never show up.
func (s *Service) Events(ctx context.Context, domain rpc.Domain, from, to time.Time) ([]model.CalendarEvent, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidRange)
	}
	if s.maxRange > 0 && to.Sub(from) > s.maxRange {
		return nil, fmt.Errorf("%w: range exceeds %s", ErrInvalidRange, s.maxRange)
	}

	query := domain.And(
		rpc.Condition{Field: "scheduled_date", Operator: rpc.OpGte, Value: from},
		rpc.Condition{Field: "scheduled_date", Operator: rpc.OpLt, Value: to},
	)
	records, err := s.client.SearchRead(ctx, rpc.ModelServiceOrder, query, eventFields, 0)
	if err != nil {
		return nil, fmt.Errorf("load calendar events: %w", err)
	}

	events := make([]model.CalendarEvent, 0, len(records))
	for _, rec := range records {
		event, ok := buildEvent(rec)
		if !ok {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// EventClasses returns the CSS classes for an event. Normal priority adds
// no priority class.
func EventClasses(status model.ServiceStatus, priority model.Priority) []string {
	classes := make([]string, 0, 2)
	if status != "" {
		classes = append(classes, statusClassPrefix+string(status))
	}
	if priority != "" && priority != model.PriorityNormal {
		classes = append(classes, priorityClassPrefix+string(priority))
	}
	return classes
}

func buildEvent(rec rpc.Record) (model.CalendarEvent, bool) {
	start := rec.Time("scheduled_date")
	if start == nil {
		return model.CalendarEvent{}, false
	}
	end := rec.Time("date_end")
	if end == nil || !end.After(*start) {
		e := start.Add(time.Hour)
		end = &e
	}

	status := model.ServiceStatus(rec.String("status"))
	priority := model.Priority(rec.String("priority"))
	client := rec.RefLabel("partner_id")

	title := rec.String("name")
	if client != "" {
		title += " - " + client
	}

	event := model.CalendarEvent{
		ID:       rec.ID(),
		Title:    title,
		Start:    *start,
		End:      *end,
		Status:   status,
		Priority: priority,
		Classes:  EventClasses(status, priority),
		Popover: model.EventPopover{
			Client:        client,
			Equipment:     rec.RefLabel("equipment_id"),
			ServiceType:   rec.RefLabel("service_type_id"),
			Technician:    rec.RefLabel("technician_id"),
			PriorityLabel: priority.Label(),
		},
	}
	if addr, ok := rec["partner_address"].(model.CustomerAddress); ok {
		event.Address = workflow.FormatAddress(addr)
	}
	return event, true
}
