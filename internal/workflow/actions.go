package workflow

import (
	"github.com/google/uuid"

	"service-calendar/internal/model"
	"service-calendar/internal/rpc"
)

const completionWizardModel = "service.complete.wizard"

// AvailableActions returns the dialog buttons for a record in the given
// status. The order is fixed: status-specific action first, then
// navigation, then close.
func AvailableActions(status model.ServiceStatus) []model.Action {
	actions := make([]model.Action, 0, 3)
	switch status {
	case model.ServiceStatusAssigned:
		actions = append(actions, model.ActionStartService)
	case model.ServiceStatusInProgress:
		actions = append(actions, model.ActionCompleteService)
	}
	return append(actions, model.ActionNavigateToCustomer, model.ActionClose)
}

// BuildFilterDomain restricts a technician to the records assigned to them.
// Everyone else gets a nil domain, meaning no restriction.
func BuildFilterDomain(identity model.TechnicianIdentity) rpc.Domain {
	if !identity.IsTechnician || identity.TechnicianID == nil {
		return nil
	}
	return rpc.Domain{rpc.Eq("technician_id", *identity.TechnicianID)}
}

// CompleteService does not change the record; it describes the completion
// wizard the presentation surface should open for it.
func CompleteService(recordID uuid.UUID) model.NavigationDirective {
	return model.NavigationDirective{
		Type:     "ir.actions.act_window",
		Name:     "Complete Service",
		ResModel: completionWizardModel,
		ViewMode: "form",
		Target:   "new",
		Context: model.DirectiveContext{
			DefaultServiceOrderID: recordID,
		},
	}
}
