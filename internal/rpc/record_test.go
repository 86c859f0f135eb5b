package rpc

import (
	"testing"

	"github.com/google/uuid"

	"service-calendar/internal/model"
)

func TestRecordAccessors(t *testing.T) {
	id := uuid.New()
	partnerID := uuid.New()
	rec := Record{
		"id":           id.String(),
		"name":         "OS00010",
		"partner_id":   model.Ref{ID: partnerID, Label: "ACME"},
		"equipment_id": nil,
		"street":       false,
		"total_amount": 120.5,
	}

	if rec.ID() != id {
		t.Fatalf("id = %s, want %s", rec.ID(), id)
	}
	if rec.String("name") != "OS00010" {
		t.Fatalf("name = %q", rec.String("name"))
	}
	if got, ok := rec.UUID("partner_id"); !ok || got != partnerID {
		t.Fatalf("partner id = %s, %v", got, ok)
	}
	if rec.Ref("equipment_id") != nil {
		t.Fatal("nil reference expected for empty many-to-one")
	}
	if rec.RefLabel("partner_id") != "ACME" {
		t.Fatalf("label = %q", rec.RefLabel("partner_id"))
	}
	if rec.OptString("street") != nil {
		t.Fatal("false must read as absent")
	}
	if rec.Float("total_amount") != 120.5 {
		t.Fatalf("total = %v", rec.Float("total_amount"))
	}
}

func TestRecordPickKeepsID(t *testing.T) {
	rec := Record{"id": uuid.New(), "name": "OS1", "status": "draft"}

	picked := rec.Pick([]string{"status", "missing"})
	if len(picked) != 2 {
		t.Fatalf("unexpected fields %v", picked)
	}
	if picked["id"] != rec["id"] || picked["status"] != "draft" {
		t.Fatalf("unexpected pick %v", picked)
	}
}

func TestDomainAndDoesNotAlias(t *testing.T) {
	base := make(Domain, 1, 4)
	base[0] = Eq("technician_id", uuid.New())

	a := base.And(Eq("id", 1))
	b := base.And(Eq("id", 2))
	if a[1].Value != 1 || b[1].Value != 2 {
		t.Fatalf("domains share backing storage: %v %v", a, b)
	}
	if len(base) != 1 {
		t.Fatalf("base domain modified: %v", base)
	}
}

func TestMessageOf(t *testing.T) {
	err := &Error{Model: ModelServiceOrder, Method: MethodStartService, Message: "  Service must be in assigned state to start. "}
	if got := MessageOf(err); got != "Service must be in assigned state to start." {
		t.Fatalf("message = %q", got)
	}
	if got := MessageOf(ErrUnknownModel); got != "" {
		t.Fatalf("plain errors carry no user message, got %q", got)
	}
}
