package calendar

import (
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"service-calendar/internal/model"
)

const (
	icsProductID = "-//service-calendar//Service Orders//EN"
	icsUIDDomain = "@service-calendar"
)

// EncodeICS renders events as an iCalendar (RFC 5545) feed.
func EncodeICS(events []model.CalendarEvent, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetName("Service Calendar")

	for _, e := range events {
		ev := cal.AddEvent(e.ID.String() + icsUIDDomain)
		ev.SetDtStampTime(stamp.UTC())
		ev.SetStartAt(e.Start.UTC())
		ev.SetEndAt(e.End.UTC())
		ev.SetSummary(e.Title)
		ev.SetDescription(describe(e))
		if e.Address != "" {
			ev.SetLocation(e.Address)
		}
		ev.SetProperty(ical.ComponentPropertyCategories, e.Status.Label())
		ev.SetProperty(ical.ComponentPropertyPriority, strconv.Itoa(icsPriority(e.Priority)))
	}

	return cal.Serialize()
}

func describe(e model.CalendarEvent) string {
	lines := make([]string, 0, 5)
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}
	add("Client", e.Popover.Client)
	add("Equipment", e.Popover.Equipment)
	add("Type", e.Popover.ServiceType)
	add("Technician", e.Popover.Technician)
	add("Priority", e.Popover.PriorityLabel)
	return strings.Join(lines, "\n")
}

// icsPriority maps to the RFC 5545 scale where 1 is highest and 0 undefined.
func icsPriority(p model.Priority) int {
	switch p {
	case model.PriorityUrgent:
		return 1
	case model.PriorityHigh:
		return 3
	case model.PriorityLow:
		return 7
	case model.PriorityNormal:
		return 5
	default:
		return 0
	}
}
