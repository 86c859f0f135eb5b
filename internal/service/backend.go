package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"service-calendar/internal/model"
	"service-calendar/internal/repository"
	"service-calendar/internal/rpc"
)

var (
	serviceOrderFields = fieldSet(
		"id", "name", "partner_id", "equipment_id", "service_type_id", "technician_id",
		"status", "priority", "scheduled_date", "date_end", "duration", "start_date", "end_date",
		"reported_fault", "diagnosis", "work_performed", "total_amount", "currency_code",
		"partner_address",
	)
	employeeFields = fieldSet("id", "name", "user_id", "is_technician", "active", "max_daily_orders")
	partnerFields  = fieldSet("id", "name", "phone", "street", "city", "state_name", "country_name")
)

// Backend exposes the repositories and the lifecycle service through the
// record-level rpc.Client contract.
type Backend struct {
	orders      *repository.ServiceOrderRepository
	technicians *repository.TechnicianRepository
	partners    *repository.PartnerRepository
	lifecycle   *LifecycleService
}

var _ rpc.Client = (*Backend)(nil)

func NewBackend(
	orders *repository.ServiceOrderRepository,
	technicians *repository.TechnicianRepository,
	partners *repository.PartnerRepository,
	lifecycle *LifecycleService,
) *Backend {
	return &Backend{
		orders:      orders,
		technicians: technicians,
		partners:    partners,
		lifecycle:   lifecycle,
	}
}

func (b *Backend) Read(ctx context.Context, modelName string, ids []uuid.UUID, fields []string) ([]rpc.Record, error) {
	if err := checkFields(modelName, fields); err != nil {
		return nil, err
	}

	switch modelName {
	case rpc.ModelServiceOrder:
		orders, err := b.orders.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return serviceOrderRecords(orders, fields), nil
	case rpc.ModelEmployee:
		rows, err := b.technicians.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return employeeRecords(rows, fields), nil
	case rpc.ModelPartner:
		rows, err := b.partners.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return partnerRecords(rows, fields), nil
	default:
		return nil, fmt.Errorf("%w: %s", rpc.ErrUnknownModel, modelName)
	}
}

func (b *Backend) SearchRead(ctx context.Context, modelName string, domain rpc.Domain, fields []string, limit int) ([]rpc.Record, error) {
	if err := checkFields(modelName, fields); err != nil {
		return nil, err
	}

	switch modelName {
	case rpc.ModelServiceOrder:
		orders, err := b.orders.Search(ctx, domain, limit)
		if err != nil {
			return nil, err
		}
		return serviceOrderRecords(orders, fields), nil
	case rpc.ModelEmployee:
		rows, err := b.technicians.Search(ctx, domain, limit)
		if err != nil {
			return nil, err
		}
		return employeeRecords(rows, fields), nil
	case rpc.ModelPartner:
		rows, err := b.partners.Search(ctx, domain, limit)
		if err != nil {
			return nil, err
		}
		return partnerRecords(rows, fields), nil
	default:
		return nil, fmt.Errorf("%w: %s", rpc.ErrUnknownModel, modelName)
	}
}

// Call runs a lifecycle method on each id in order and stops at the first
// failure. Failures with a user-facing message come back as *rpc.Error.
func (b *Backend) Call(ctx context.Context, modelName, method string, ids []uuid.UUID) (any, error) {
	if modelName != rpc.ModelServiceOrder {
		return nil, fmt.Errorf("%w: %s", rpc.ErrUnknownModel, modelName)
	}

	var action func(context.Context, uuid.UUID) error
	switch method {
	case rpc.MethodAssign:
		action = b.lifecycle.Assign
	case rpc.MethodStartService:
		action = b.lifecycle.Start
	case rpc.MethodRequestApproval:
		action = b.lifecycle.RequestApproval
	case rpc.MethodCustomerAccept:
		action = b.lifecycle.Accept
	case rpc.MethodCompleteService:
		action = b.lifecycle.Complete
	case rpc.MethodCancel:
		action = func(ctx context.Context, id uuid.UUID) error {
			return b.lifecycle.Cancel(ctx, id, "")
		}
	default:
		return nil, fmt.Errorf("%w: %s.%s", rpc.ErrUnknownMethod, modelName, method)
	}

	for _, id := range ids {
		if err := action(ctx, id); err != nil {
			return nil, toRPCError(modelName, method, err)
		}
	}
	return true, nil
}

func toRPCError(modelName, method string, err error) error {
	var userErr *UserError
	switch {
	case errors.As(err, &userErr):
		return &rpc.Error{Model: modelName, Method: method, Message: userErr.Message, Err: err}
	case errors.Is(err, ErrNotFound):
		return &rpc.Error{Model: modelName, Method: method, Message: "The service order does not exist.", Err: err}
	case errors.Is(err, ErrPermissionDenied):
		return &rpc.Error{Model: modelName, Method: method, Message: "You are not allowed to perform this action.", Err: err}
	default:
		return &rpc.Error{Model: modelName, Method: method, Err: err}
	}
}

func checkFields(modelName string, fields []string) error {
	var allowed map[string]struct{}
	switch modelName {
	case rpc.ModelServiceOrder:
		allowed = serviceOrderFields
	case rpc.ModelEmployee:
		allowed = employeeFields
	case rpc.ModelPartner:
		allowed = partnerFields
	default:
		return fmt.Errorf("%w: %s", rpc.ErrUnknownModel, modelName)
	}
	for _, f := range fields {
		if _, ok := allowed[f]; !ok {
			return fmt.Errorf("%w: %s.%s", rpc.ErrUnknownField, modelName, f)
		}
	}
	return nil
}

func fieldSet(fields ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func serviceOrderRecords(orders []model.ServiceOrder, fields []string) []rpc.Record {
	out := make([]rpc.Record, 0, len(orders))
	for _, o := range orders {
		out = append(out, serviceOrderRecord(o).Pick(fields))
	}
	return out
}

func serviceOrderRecord(o model.ServiceOrder) rpc.Record {
	rec := rpc.Record{
		"id":              o.ID,
		"name":            o.Name,
		"partner_id":      nil,
		"equipment_id":    nil,
		"service_type_id": nil,
		"technician_id":   nil,
		"status":          string(o.Status),
		"priority":        string(o.Priority),
		"scheduled_date":  optionalTime(o.ScheduledDate),
		"date_end":        optionalTime(o.EndsAt()),
		"duration":        o.Duration,
		"start_date":      optionalTime(o.StartDate),
		"end_date":        optionalTime(o.EndDate),
		"reported_fault":  o.ReportedFault,
		"diagnosis":       o.Diagnosis,
		"work_performed":  o.WorkPerformed,
		"total_amount":    o.TotalAmount,
		"currency_code":   o.CurrencyCode,
		"partner_address": nil,
	}
	if o.Partner != nil {
		rec["partner_id"] = model.Ref{ID: o.Partner.ID, Label: o.Partner.Name}
		rec["partner_address"] = o.Partner.Address()
	}
	if o.Equipment != nil {
		rec["equipment_id"] = model.Ref{ID: o.Equipment.ID, Label: o.Equipment.Name}
	}
	if o.ServiceType != nil {
		rec["service_type_id"] = model.Ref{ID: o.ServiceType.ID, Label: o.ServiceType.Name}
	}
	if o.Technician != nil {
		rec["technician_id"] = model.Ref{ID: o.Technician.ID, Label: o.Technician.Name}
	}
	return rec
}

func employeeRecords(rows []model.Technician, fields []string) []rpc.Record {
	out := make([]rpc.Record, 0, len(rows))
	for _, t := range rows {
		rec := rpc.Record{
			"id":               t.ID,
			"name":             t.Name,
			"user_id":          nil,
			"is_technician":    t.IsTechnician,
			"active":           t.Active,
			"max_daily_orders": t.MaxDailyOrders,
		}
		if t.UserID != nil {
			rec["user_id"] = *t.UserID
		}
		out = append(out, rec.Pick(fields))
	}
	return out
}

func partnerRecords(rows []model.Partner, fields []string) []rpc.Record {
	out := make([]rpc.Record, 0, len(rows))
	for _, p := range rows {
		rec := rpc.Record{
			"id":           p.ID,
			"name":         p.Name,
			"phone":        p.Phone,
			"street":       optionalString(p.Street),
			"city":         optionalString(p.City),
			"state_name":   optionalString(p.Region),
			"country_name": optionalString(p.Country),
		}
		out = append(out, rec.Pick(fields))
	}
	return out
}

func optionalString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func optionalTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}
