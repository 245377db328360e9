package provider

import (
	"errors"
	"time"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

// ErrProviderIsNotConstructed is returned when a Provider instance was not
// created through NewProvider or RestoreProvider.
var ErrProviderIsNotConstructed = errors.New("Provider must be created via NewProvider or RestoreProvider")

// Provider is the aggregate for a mechanic offering roadside service. It
// tracks the provider's verification and availability flags, declared skills,
// last known location and the request they are currently assigned to.
//
// A provider is matchable only when verified, available, located and
// unassigned. Assignment and release always travel through AssignRequest and
// Release so that availability can never drift out of sync with the active
// request id.
type Provider struct {
	id       kernel.UUID
	name     string
	skills   Skills
	verified bool

	available bool
	location  *kernel.GeoPoint
	locatedAt *time.Time

	activeRequestID *kernel.UUID

	version int
	guard   guard.ConstructorGuard
}

// NewProvider registers a provider. New providers start unverified, offline
// and without a location; they become matchable only after verification and
// an explicit GoOnline.
func NewProvider(id kernel.UUID, name string, skills Skills) (*Provider, error) {
	if err := errors.Join(id.Validate(), skills.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Provider{
		id:      id,
		name:    name,
		skills:  skills,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreProviderParams carries the full persisted state of a provider.
type RestoreProviderParams struct {
	ID              kernel.UUID
	Name            string
	Skills          Skills
	Verified        bool
	Available       bool
	Location        *kernel.GeoPoint
	LocatedAt       *time.Time
	ActiveRequestID *kernel.UUID
	Version         int
}

// RestoreProvider reconstructs a Provider aggregate from persistent storage.
func RestoreProvider(p RestoreProviderParams) (*Provider, error) {
	if err := errors.Join(p.ID.Validate(), p.Skills.Validate()); err != nil {
		return nil, err
	}
	if p.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("provider")
	}

	return &Provider{
		id:              p.ID,
		name:            p.Name,
		skills:          p.Skills,
		verified:        p.Verified,
		available:       p.Available,
		location:        p.Location,
		locatedAt:       p.LocatedAt,
		activeRequestID: p.ActiveRequestID,
		version:         p.Version,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Provider was created through a constructor.
func (p *Provider) Validate() error {
	if p == nil {
		return ErrProviderIsNotConstructed
	}
	return p.guard.Validate(ErrProviderIsNotConstructed)
}

// IsEqual compares two providers by identity.
func (p *Provider) IsEqual(other *Provider) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// MarkVerified records that the provider passed verification.
func (p *Provider) MarkVerified() {
	p.verified = true
}

// EnsureCanAccept checks every precondition for taking on a request. It
// returns a NotEligibleError naming the first failed precondition, or nil
// when the provider may accept.
func (p *Provider) EnsureCanAccept() error {
	switch {
	case !p.verified:
		return errs.NewNotEligibleError("provider", "is not verified")
	case !p.available:
		return errs.NewNotEligibleError("provider", "is not available")
	case p.location == nil:
		return errs.NewNotEligibleError("provider", "has no known location")
	case p.activeRequestID != nil:
		return errs.NewNotEligibleError("provider", "already has an active request")
	}
	return nil
}

// AssignRequest binds the provider to a request and takes them off the
// market. All EnsureCanAccept preconditions are rechecked here so the two
// calls cannot be split by a state change.
func (p *Provider) AssignRequest(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	if err := p.EnsureCanAccept(); err != nil {
		return err
	}

	p.activeRequestID = &requestID
	p.available = false
	return nil
}

// Release frees the provider after their active request reached a terminal
// status, putting them back on the market. Releasing an unassigned provider
// is a no-op.
func (p *Provider) Release() {
	if p.activeRequestID == nil {
		return
	}
	p.activeRequestID = nil
	p.available = true
}

// GoOnline marks a verified provider as available at the given location.
// A provider with an active request cannot toggle availability.
func (p *Provider) GoOnline(location kernel.GeoPoint, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if !p.verified {
		return errs.NewNotEligibleError("provider", "is not verified")
	}
	if p.activeRequestID != nil {
		return errs.NewNotEligibleError("provider", "already has an active request")
	}

	p.available = true
	p.location = &location
	p.locatedAt = &now
	return nil
}

// GoOffline takes the provider off the market. A provider with an active
// request cannot go offline; they must finish or be released first.
func (p *Provider) GoOffline() error {
	if p.activeRequestID != nil {
		return errs.NewNotEligibleError("provider", "already has an active request")
	}

	p.available = false
	return nil
}

// UpdateLocation records the provider's current position.
func (p *Provider) UpdateLocation(location kernel.GeoPoint, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	p.location = &location
	p.locatedAt = &now
	return nil
}

// ID returns the provider's unique identifier.
func (p *Provider) ID() kernel.UUID { return p.id }

// Name returns the provider's display name.
func (p *Provider) Name() string { return p.name }

// Skills returns the provider's declared skills.
func (p *Provider) Skills() Skills { return p.skills }

// IsVerified reports whether the provider passed verification.
func (p *Provider) IsVerified() bool { return p.verified }

// IsAvailable reports whether the provider is on the market.
func (p *Provider) IsAvailable() bool { return p.available }

// Location returns the provider's last known position, or nil.
func (p *Provider) Location() *kernel.GeoPoint { return p.location }

// LocatedAt returns when the location was last reported, or nil.
func (p *Provider) LocatedAt() *time.Time { return p.locatedAt }

// ActiveRequestID returns the request the provider is assigned to, or nil.
func (p *Provider) ActiveRequestID() *kernel.UUID { return p.activeRequestID }

// Version returns the optimistic-concurrency version of the persisted state
// this aggregate was restored from.
func (p *Provider) Version() int { return p.version }
