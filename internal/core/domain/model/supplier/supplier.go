// Package supplier models vendor accounts. A supplier must be active to sign in
// and act on the orders addressed to it.
package supplier

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
)

var ErrSupplierIsNotConstructed = errors.New("Supplier must be created via NewSupplier constructor")

// Status gates sign-in.
//
//	Pending ──activate──> Active <──activate── Suspended
//	                        └──────suspend──────>┘
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusActive
	StatusSuspended
)

var statusNames = map[Status]string{
	StatusPending:   "pending",
	StatusActive:    "active",
	StatusSuspended: "suspended",
}

func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func ParseStatus(s string) (Status, error) {
	for k, v := range statusNames {
		if strings.EqualFold(v, s) {
			return k, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

type Supplier struct {
	id        kernel.UUID
	name      string
	email     string
	phone     string
	address   string
	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewSupplier registers a supplier in pending status.
func NewSupplier(id kernel.UUID, name, email, phone, address string, createdAt time.Time) (*Supplier, error) {
	return RestoreSupplier(id, name, email, phone, address, StatusPending, createdAt)
}

func RestoreSupplier(id kernel.UUID, name, email, phone, address string, status Status, createdAt time.Time) (*Supplier, error) {
	s := &Supplier{
		phone:         strings.TrimSpace(phone),
		address:       strings.TrimSpace(address),
		status:        status,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		s.setName(name),
		s.setEmail(email),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	s.id = id
	return s, nil
}

func (s *Supplier) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSupplierIsNotConstructed
	}
	return nil
}

func (s *Supplier) ID() kernel.UUID      { return s.id }
func (s *Supplier) Name() string         { return s.name }
func (s *Supplier) Email() string        { return s.email }
func (s *Supplier) Phone() string        { return s.phone }
func (s *Supplier) Address() string      { return s.address }
func (s *Supplier) Status() Status       { return s.status }
func (s *Supplier) CreatedAt() time.Time { return s.createdAt }

// CanSignIn reports whether a token may be issued for this supplier.
func (s *Supplier) CanSignIn() bool {
	return s.status == StatusActive
}

// Activate approves a pending supplier or reinstates a suspended one.
func (s *Supplier) Activate() error {
	if s.status != StatusPending && s.status != StatusSuspended {
		return errs.NewInvalidStateError("supplier", "activate", s.status.String())
	}
	s.status = StatusActive
	return nil
}

// Suspend blocks an active supplier from signing in.
func (s *Supplier) Suspend() error {
	if s.status != StatusActive {
		return errs.NewInvalidStateError("supplier", "suspend", s.status.String())
	}
	s.status = StatusSuspended
	return nil
}

func (s *Supplier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Supplier) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	s.email = email
	return nil
}
