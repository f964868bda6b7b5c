package config

import (
	"errors"
	"fmt"

	"github.com/ccswitch/ccswitch/internal/config/errz"
)

// CategoryOfficial marks a built-in provider. Official providers never need
// the plugin integration marker key in the live file.
const CategoryOfficial = "official"

// Provider is one selectable configuration preset for an application.
// Settings is an opaque document consumed verbatim by the owning app.
type Provider struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Settings map[string]any `json:"settings,omitempty"`
	Category string         `json:"category,omitempty"`
}

// IsOfficial reports whether the provider is a built-in one.
func (p *Provider) IsOfficial() bool {
	return p.Category == CategoryOfficial
}

// Validate checks the provider definition.
func (p *Provider) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, fmt.Errorf("%w: provider ID", errz.ErrEmptyID))
	}
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("%w: provider '%s' has no name", errz.ErrMissingRequiredField, p.ID))
	}
	return errors.Join(errs...)
}

// AppConfig holds the per-application provider set and the active selection.
type AppConfig struct {
	Providers         map[string]*Provider `json:"providers"`
	CurrentProviderID string               `json:"currentProviderId,omitempty"`
}

// NewAppConfig returns an empty per-application config.
func NewAppConfig() *AppConfig {
	return &AppConfig{Providers: map[string]*Provider{}}
}

// CurrentProvider returns the active provider, or nil when none is selected.
func (ac *AppConfig) CurrentProvider() *Provider {
	if ac.CurrentProviderID == "" {
		return nil
	}
	return ac.Providers[ac.CurrentProviderID]
}

// Validate checks every provider and the current-provider reference.
func (ac *AppConfig) Validate() error {
	var errs []error
	for id, p := range ac.Providers {
		if p == nil {
			errs = append(errs, fmt.Errorf("%w: provider '%s' is null", errz.ErrInvalidValue, id))
			continue
		}
		if p.ID != "" && p.ID != id {
			errs = append(errs, fmt.Errorf("%w: provider key '%s' does not match ID '%s'",
				errz.ErrInvalidValue, id, p.ID))
		}
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if ac.CurrentProviderID != "" {
		if _, ok := ac.Providers[ac.CurrentProviderID]; !ok {
			errs = append(errs, fmt.Errorf("%w: currentProviderId '%s'",
				errz.ErrInvalidReference, ac.CurrentProviderID))
		}
	}
	return errors.Join(errs...)
}
