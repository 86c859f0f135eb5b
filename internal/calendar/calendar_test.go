package calendar

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"service-calendar/internal/model"
	"service-calendar/internal/rpc"
	"service-calendar/internal/rpc/rpcmock"
)

func TestEventClasses(t *testing.T) {
	cases := []struct {
		status   model.ServiceStatus
		priority model.Priority
		want     []string
	}{
		{model.ServiceStatusAssigned, model.PriorityNormal, []string{"o_calendar_service_assigned"}},
		{model.ServiceStatusInProgress, model.PriorityUrgent, []string{"o_calendar_service_in_progress", "o_calendar_priority_3"}},
		{model.ServiceStatusDone, "", []string{"o_calendar_service_done"}},
		{"", model.PriorityHigh, []string{"o_calendar_priority_2"}},
	}
	for _, tc := range cases {
		if got := EventClasses(tc.status, tc.priority); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("EventClasses(%q, %q) = %v, want %v", tc.status, tc.priority, got, tc.want)
		}
	}
}

func TestEventsRestrictsRangeAndDomain(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := rpcmock.NewMockClient(ctrl)
	svc := NewService(client, 31*24*time.Hour)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	techID := uuid.New()
	domain := rpc.Domain{rpc.Eq("technician_id", techID)}

	scheduled := from.Add(9 * time.Hour)
	orderID := uuid.New()
	street, city := "Main St", "Springfield"

	client.EXPECT().
		SearchRead(gomock.Any(), rpc.ModelServiceOrder, rpc.Domain{
			rpc.Eq("technician_id", techID),
			{Field: "scheduled_date", Operator: rpc.OpGte, Value: from},
			{Field: "scheduled_date", Operator: rpc.OpLt, Value: to},
		}, eventFields, 0).
		Return([]rpc.Record{
			{
				"id":              orderID,
				"name":            "OS00001",
				"partner_id":      model.Ref{ID: uuid.New(), Label: "ACME"},
				"equipment_id":    model.Ref{ID: uuid.New(), Label: "Split 12k BTU"},
				"service_type_id": model.Ref{ID: uuid.New(), Label: "Maintenance"},
				"technician_id":   model.Ref{ID: techID, Label: "Luis"},
				"status":          "assigned",
				"priority":        "2",
				"scheduled_date":  scheduled,
				"date_end":        scheduled.Add(2 * time.Hour),
				"partner_address": model.CustomerAddress{Street: &street, City: &city},
			},
			{
				"id":     uuid.New(),
				"name":   "OS00002",
				"status": "draft",
			},
		}, nil)

	events, err := svc.Events(context.Background(), domain, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected unscheduled orders to be skipped, got %d events", len(events))
	}

	e := events[0]
	if e.ID != orderID || e.Title != "OS00001 - ACME" {
		t.Fatalf("unexpected event %+v", e)
	}
	if !e.End.Equal(scheduled.Add(2 * time.Hour)) {
		t.Fatalf("end = %s", e.End)
	}
	wantPopover := model.EventPopover{
		Client:        "ACME",
		Equipment:     "Split 12k BTU",
		ServiceType:   "Maintenance",
		Technician:    "Luis",
		PriorityLabel: "High",
	}
	if e.Popover != wantPopover {
		t.Fatalf("popover = %+v", e.Popover)
	}
	if e.Address != "Main St, Springfield" {
		t.Fatalf("address = %q", e.Address)
	}
	if len(domain) != 1 {
		t.Fatal("caller domain must not be modified")
	}
}

func TestEventsInvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewService(rpcmock.NewMockClient(ctrl), 7*24*time.Hour)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Events(context.Background(), nil, from, from); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("empty range: expected ErrInvalidRange, got %v", err)
	}
	if _, err := svc.Events(context.Background(), nil, from, from.AddDate(0, 1, 0)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("long range: expected ErrInvalidRange, got %v", err)
	}
}

func TestEncodeICS(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	id := uuid.New()
	events := []model.CalendarEvent{{
		ID:       id,
		Title:    "OS00001 - ACME",
		Start:    start,
		End:      start.Add(time.Hour),
		Status:   model.ServiceStatusAssigned,
		Priority: model.PriorityUrgent,
		Address:  "Main St",
		Popover:  model.EventPopover{Client: "ACME", PriorityLabel: "Urgent"},
	}}

	out := EncodeICS(events, start)
	if !strings.Contains(out, "UID:"+id.String()+"@service-calendar") {
		t.Fatalf("missing uid in:\n%s", out)
	}

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	parsed := cal.Events()
	if len(parsed) != 1 {
		t.Fatalf("expected 1 event, got %d", len(parsed))
	}
	if p := parsed[0].GetProperty(ical.ComponentPropertySummary); p == nil || p.Value != "OS00001 - ACME" {
		t.Fatalf("unexpected summary %v", p)
	}
	if p := parsed[0].GetProperty(ical.ComponentPropertyPriority); p == nil || p.Value != "1" {
		t.Fatalf("unexpected priority %v", p)
	}
}
