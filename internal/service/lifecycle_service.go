package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"service-calendar/internal/model"
	"service-calendar/internal/repository"
)

const msgCapacityReached = "The selected technician has reached the maximum capacity for this date."

// ServiceOrderStore is the part of repository.ServiceOrderRepository the
// lifecycle needs.
type ServiceOrderStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceOrder, error)
	Transition(ctx context.Context, id uuid.UUID, from model.ServiceStatus, updates map[string]interface{}, logEntry *model.ServiceOrderStatusLog) error
	StatusHistory(ctx context.Context, id uuid.UUID) ([]model.ServiceOrderStatusLog, error)
}

type TechnicianStore interface {
	Assignable(ctx context.Context, id uuid.UUID) (*model.Technician, error)
	CountDailyOrders(ctx context.Context, technicianID, excludeID uuid.UUID, from, to time.Time) (int64, error)
}

// LifecycleService owns every status change of a service order.
type LifecycleService struct {
	orders      ServiceOrderStore
	technicians TechnicianStore
	location    *time.Location
	log         zerolog.Logger
	now         func() time.Time
}

// NewLifecycleService builds the service. location decides which calendar
// day a scheduled date falls on for the daily capacity check.
func NewLifecycleService(
	orders ServiceOrderStore,
	technicians TechnicianStore,
	location *time.Location,
	log zerolog.Logger,
) *LifecycleService {
	if location == nil {
		location = time.UTC
	}
	return &LifecycleService{
		orders:      orders,
		technicians: technicians,
		location:    location,
		log:         log,
		now:         time.Now,
	}
}

func (s *LifecycleService) Assign(ctx context.Context, id uuid.UUID) error {
	return s.Transition(ctx, id, model.ServiceStatusAssigned, "")
}

func (s *LifecycleService) Start(ctx context.Context, id uuid.UUID) error {
	return s.Transition(ctx, id, model.ServiceStatusInProgress, "")
}

func (s *LifecycleService) RequestApproval(ctx context.Context, id uuid.UUID) error {
	return s.Transition(ctx, id, model.ServiceStatusPendingApproval, "")
}

func (s *LifecycleService) Accept(ctx context.Context, id uuid.UUID) error {
	return s.Transition(ctx, id, model.ServiceStatusAccepted, "")
}

func (s *LifecycleService) Complete(ctx context.Context, id uuid.UUID) error {
	return s.Transition(ctx, id, model.ServiceStatusDone, "")
}

func (s *LifecycleService) Cancel(ctx context.Context, id uuid.UUID, note string) error {
	return s.Transition(ctx, id, model.ServiceStatusCancelled, note)
}

func (s *LifecycleService) Transition(ctx context.Context, id uuid.UUID, target model.ServiceStatus, note string) error {
	if !target.Valid() {
		return ErrInvalidInput
	}

	principal, hasPrincipal := PrincipalFrom(ctx)
	if requiresManager(target) && !(hasPrincipal && principal.CanManage()) {
		return ErrPermissionDenied
	}

	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return err
	}

	if err := checkTransition(order, target); err != nil {
		return err
	}

	if target == model.ServiceStatusAssigned {
		if err := s.checkTechnician(ctx, order); err != nil {
			return err
		}
	}

	logEntry := &model.ServiceOrderStatusLog{
		NewStatus: target,
		Note:      strings.TrimSpace(note),
	}
	if hasPrincipal {
		logEntry.ChangedBy = &principal.UserID
	}

	err = s.orders.Transition(ctx, order.ID, order.Status, transitionUpdates(target, s.now()), logEntry)
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return userError(ErrConflict, "The service order was changed by someone else. Reload and try again.")
		}
		return err
	}

	s.log.Info().
		Str("service_order_id", order.ID.String()).
		Str("from", string(order.Status)).
		Str("to", string(target)).
		Msg("service order status changed")
	return nil
}

func (s *LifecycleService) History(ctx context.Context, id uuid.UUID) ([]model.ServiceOrderStatusLog, error) {
	if _, err := s.loadOrder(ctx, id); err != nil {
		return nil, err
	}
	return s.orders.StatusHistory(ctx, id)
}

func (s *LifecycleService) loadOrder(ctx context.Context, id uuid.UUID) (*model.ServiceOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// checkTechnician runs after checkTransition, so the order has a
// technician and a scheduled date.
func (s *LifecycleService) checkTechnician(ctx context.Context, order *model.ServiceOrder) error {
	technician, err := s.technicians.Assignable(ctx, *order.TechnicianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return userError(ErrInvalidInput, "The selected employee is not an active technician.")
		}
		return err
	}

	from, to := dayBounds(*order.ScheduledDate, s.location)
	booked, err := s.technicians.CountDailyOrders(ctx, technician.ID, order.ID, from, to)
	if err != nil {
		return err
	}
	return checkDailyCapacity(technician.MaxDailyOrders, booked)
}

// checkDailyCapacity rejects an assignment once the technician already has
// maxDaily open orders that day.
func checkDailyCapacity(maxDaily int, booked int64) error {
	if booked >= int64(maxDaily) {
		return userError(ErrInvalidInput, msgCapacityReached)
	}
	return nil
}

// dayBounds returns the local calendar day containing ts as [from, to).
func dayBounds(ts time.Time, location *time.Location) (time.Time, time.Time) {
	local := ts.In(location)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	return from, from.AddDate(0, 0, 1)
}

func requiresManager(target model.ServiceStatus) bool {
	return target == model.ServiceStatusAssigned || target == model.ServiceStatusCancelled
}

// checkTransition validates the preconditions of moving order to target.
func checkTransition(order *model.ServiceOrder, target model.ServiceStatus) error {
	switch target {
	case model.ServiceStatusAssigned:
		if order.Status != model.ServiceStatusDraft {
			return userError(ErrInvalidStatus, "Only draft services can be assigned.")
		}
		if order.TechnicianID == nil {
			return userError(ErrInvalidInput, "Please select a technician before assigning.")
		}
		if order.ScheduledDate == nil {
			return userError(ErrInvalidInput, "Please set a scheduled date before assigning.")
		}
	case model.ServiceStatusInProgress:
		if order.Status != model.ServiceStatusAssigned {
			return userError(ErrInvalidStatus, "Service must be in assigned state to start.")
		}
	case model.ServiceStatusPendingApproval:
		if order.Status != model.ServiceStatusInProgress {
			return userError(ErrInvalidStatus, "Service must be in progress to request approval.")
		}
		if strings.TrimSpace(order.Diagnosis) == "" {
			return userError(ErrInvalidInput, "Please provide a diagnosis before requesting approval.")
		}
	case model.ServiceStatusAccepted:
		if order.Status != model.ServiceStatusPendingApproval {
			return userError(ErrInvalidStatus, "Service must be pending approval to be accepted.")
		}
	case model.ServiceStatusDone:
		if order.Status != model.ServiceStatusAccepted {
			return userError(ErrInvalidStatus, "Service must be accepted to complete.")
		}
		if strings.TrimSpace(order.WorkPerformed) == "" {
			return userError(ErrInvalidInput, "Please describe the work performed before completing.")
		}
	case model.ServiceStatusCancelled:
		if order.Status.IsTerminal() {
			return userError(ErrInvalidStatus, "Service is already closed.")
		}
	}

	if !order.Status.CanTransition(target) {
		return userError(ErrInvalidStatus, fmt.Sprintf("Cannot move service from %s to %s.", order.Status.Label(), target.Label()))
	}
	return nil
}

func transitionUpdates(target model.ServiceStatus, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{}
	switch target {
	case model.ServiceStatusInProgress:
		updates["start_date"] = now
	case model.ServiceStatusDone:
		updates["end_date"] = now
	}
	return updates
}
