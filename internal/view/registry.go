// Package view holds the fixed table of calendar views the frontend can
// ask for by key.
package view

import (
	"errors"
	"fmt"
	"sort"
)

const (
	KeyServiceCalendar    = "service_calendar"
	KeyTechnicianCalendar = "technician_calendar"
)

var (
	ErrUnknownView   = errors.New("unknown view")
	ErrDuplicateView = errors.New("duplicate view")
)

type Descriptor struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	Icon        string `json:"icon"`
	Model       string `json:"model"`
	HasCreate   bool   `json:"has_create"`
	HasEdit     bool   `json:"has_edit"`
	// Restricted views apply the technician filter and expose the
	// technician dialog.
	Restricted bool `json:"restricted"`
}

type Registry struct {
	views map[string]Descriptor
}

func NewRegistry() *Registry {
	return &Registry{views: make(map[string]Descriptor)}
}

func (r *Registry) Register(d Descriptor) error {
	if d.Key == "" {
		return fmt.Errorf("%w: empty key", ErrUnknownView)
	}
	if _, exists := r.views[d.Key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateView, d.Key)
	}
	r.views[d.Key] = d
	return nil
}

func (r *Registry) Lookup(key string) (Descriptor, error) {
	d, ok := r.views[key]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownView, key)
	}
	return d, nil
}

func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.views))
	for k := range r.views {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that every required key is registered.
func (r *Registry) Validate(required ...string) error {
	var errs []error
	for _, key := range required {
		if _, ok := r.views[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s not registered", ErrUnknownView, key))
		}
	}
	return errors.Join(errs...)
}

// Default returns the registry with the built-in calendar views.
func Default(serviceModel string) (*Registry, error) {
	r := NewRegistry()
	for _, d := range []Descriptor{
		{
			Key:         KeyServiceCalendar,
			Type:        "calendar",
			DisplayName: "Service Calendar",
			Icon:        "fa-calendar",
			Model:       serviceModel,
			HasCreate:   true,
			HasEdit:     true,
		},
		{
			Key:         KeyTechnicianCalendar,
			Type:        "calendar",
			DisplayName: "Technician Calendar",
			Icon:        "fa-wrench",
			Model:       serviceModel,
			Restricted:  true,
		},
	} {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	if err := r.Validate(KeyServiceCalendar, KeyTechnicianCalendar); err != nil {
		return nil, err
	}
	return r, nil
}
