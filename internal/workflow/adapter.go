package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"service-calendar/internal/model"
	"service-calendar/internal/rpc"
)

const (
	MsgServiceStarted     = "Service started."
	MsgStartFailed        = "Could not start the service."
	MsgAddressUnavailable = "The customer has no address to navigate to."
)

var ErrRecordNotFound = errors.New("service order not found")

var (
	recordFields = []string{
		"name", "partner_id", "equipment_id", "status",
		"reported_fault", "diagnosis", "work_performed",
		"total_amount", "currency_code",
	}
	addressFields = []string{"street", "city", "state_name", "country_name"}
)

// Adapter drives the technician dialog on top of a record backend. It keeps
// no state between calls.
type Adapter struct {
	client        rpc.Client
	directionsURL string
	log           zerolog.Logger
}

func NewAdapter(client rpc.Client, directionsURL string, log zerolog.Logger) *Adapter {
	return &Adapter{
		client:        client,
		directionsURL: directionsURL,
		log:           log,
	}
}

// ResolveIdentity looks up the technician linked to userID. Any failure,
// including no match, yields a non-technician identity.
func (a *Adapter) ResolveIdentity(ctx context.Context, userID uuid.UUID) model.TechnicianIdentity {
	domain := rpc.Domain{
		rpc.Eq("user_id", userID),
		rpc.Eq("is_technician", true),
	}
	records, err := a.client.SearchRead(ctx, rpc.ModelEmployee, domain, []string{"id"}, 1)
	if err != nil {
		a.log.Warn().Err(err).Str("user_id", userID.String()).Msg("technician lookup failed")
		return model.TechnicianIdentity{}
	}
	if len(records) == 0 {
		return model.TechnicianIdentity{}
	}
	id := records[0].ID()
	if id == uuid.Nil {
		return model.TechnicianIdentity{}
	}
	return model.TechnicianIdentity{IsTechnician: true, TechnicianID: &id}
}

// Record fetches the snapshot of a service order visible under identity.
func (a *Adapter) Record(ctx context.Context, identity model.TechnicianIdentity, recordID uuid.UUID) (*model.ServiceRecord, error) {
	domain := BuildFilterDomain(identity).And(rpc.Eq("id", recordID))
	records, err := a.client.SearchRead(ctx, rpc.ModelServiceOrder, domain, recordFields, 1)
	if err != nil {
		return nil, fmt.Errorf("read service order: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrRecordNotFound
	}
	record := toServiceRecord(records[0])
	if !record.Status.Valid() {
		return nil, fmt.Errorf("service order %s: unknown status %q", record.ID, record.Status)
	}
	return &record, nil
}

func (a *Adapter) Dialog(ctx context.Context, identity model.TechnicianIdentity, recordID uuid.UUID) (*model.ServiceDialog, error) {
	record, err := a.Record(ctx, identity, recordID)
	if err != nil {
		return nil, err
	}
	return &model.ServiceDialog{
		Record:  *record,
		Actions: AvailableActions(record.Status),
	}, nil
}

// StartService moves the record to in progress. The outcome is reported as
// a notification; failures are not retried.
func (a *Adapter) StartService(ctx context.Context, recordID uuid.UUID) model.Result {
	_, err := a.client.Call(ctx, rpc.ModelServiceOrder, rpc.MethodStartService, []uuid.UUID{recordID})
	if err != nil {
		a.log.Warn().Err(err).Str("service_order_id", recordID.String()).Msg("start service failed")
		msg := rpc.MessageOf(err)
		if msg == "" {
			msg = MsgStartFailed
		}
		return model.Result{
			Notification: model.Notification{Type: model.NotificationDanger, Message: msg},
		}
	}
	return model.Result{
		Notification: model.Notification{Type: model.NotificationSuccess, Message: MsgServiceStarted},
		Reload:       true,
	}
}

// BuildNavigationAddress resolves the customer's address into a directions
// link. A customer without any address component is not an error: the
// result is marked unavailable and carries no URL.
func (a *Adapter) BuildNavigationAddress(ctx context.Context, record model.ServiceRecord) (model.Navigation, error) {
	unavailable := model.Navigation{Message: MsgAddressUnavailable}
	if record.Customer == nil || record.Customer.ID == uuid.Nil {
		return unavailable, nil
	}

	records, err := a.client.Read(ctx, rpc.ModelPartner, []uuid.UUID{record.Customer.ID}, addressFields)
	if err != nil {
		return model.Navigation{}, fmt.Errorf("read customer address: %w", err)
	}
	if len(records) == 0 {
		return unavailable, nil
	}

	address := FormatAddress(addressFromRecord(records[0]))
	if address == "" {
		return unavailable, nil
	}
	return model.Navigation{
		Available: true,
		Address:   address,
		URL:       DirectionsURL(a.directionsURL, address),
	}, nil
}

func addressFromRecord(r rpc.Record) model.CustomerAddress {
	return model.CustomerAddress{
		Street:  r.OptString("street"),
		City:    r.OptString("city"),
		Region:  r.OptString("state_name"),
		Country: r.OptString("country_name"),
	}
}

func toServiceRecord(r rpc.Record) model.ServiceRecord {
	return model.ServiceRecord{
		ID:            r.ID(),
		Name:          r.String("name"),
		Customer:      r.Ref("partner_id"),
		Equipment:     r.Ref("equipment_id"),
		Status:        model.ServiceStatus(r.String("status")),
		ReportedFault: r.String("reported_fault"),
		Diagnosis:     r.String("diagnosis"),
		WorkPerformed: r.String("work_performed"),
		TotalAmount:   r.Float("total_amount"),
		CurrencyCode:  r.String("currency_code"),
	}
}
