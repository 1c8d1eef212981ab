package commands

import (
	"errors"
	"fmt"
	"strings"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
	"ferryops/internal/pkg/guard"
)

var (
	ErrRegisterSupplierCommandIsNotConstructed = errors.New(
		"RegisterSupplierCommand must be created via NewRegisterSupplierCommand constructor")
	ErrChangeSupplierStatusCommandIsNotConstructed = errors.New(
		"ChangeSupplierStatusCommand must be created via NewChangeSupplierStatusCommand constructor")
)

// RegisterSupplierCommand creates a supplier account awaiting activation.
type RegisterSupplierCommand struct { //nolint:recvcheck //using for validation
	name    string
	email   string
	phone   string
	address string

	guard guard.ConstructorGuard
}

func NewRegisterSupplierCommand(name, email, phone, address string) (RegisterSupplierCommand, error) {
	var errList []error
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if strings.TrimSpace(email) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("email"))
	}
	if err := errors.Join(errList...); err != nil {
		return RegisterSupplierCommand{}, err
	}

	return RegisterSupplierCommand{
		name:    name,
		email:   email,
		phone:   phone,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterSupplierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterSupplierCommandIsNotConstructed)
}

func (c RegisterSupplierCommand) Name() string    { return c.name }
func (c RegisterSupplierCommand) Email() string   { return c.email }
func (c RegisterSupplierCommand) Phone() string   { return c.phone }
func (c RegisterSupplierCommand) Address() string { return c.address }

// SupplierAction is an admin change to a supplier's status.
type SupplierAction int

const (
	SupplierActionUnknown SupplierAction = iota
	SupplierActionActivate
	SupplierActionSuspend
)

func (a SupplierAction) String() string {
	switch a {
	case SupplierActionActivate:
		return "activate"
	case SupplierActionSuspend:
		return "suspend"
	default:
		return "unknown"
	}
}

type ChangeSupplierStatusCommand struct { //nolint:recvcheck //using for validation
	supplierID kernel.UUID
	action     SupplierAction

	guard guard.ConstructorGuard
}

func NewChangeSupplierStatusCommand(supplierID kernel.UUID, action SupplierAction) (ChangeSupplierStatusCommand, error) {
	var actionErr error
	if action != SupplierActionActivate && action != SupplierActionSuspend {
		actionErr = errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid supplier action", action))
	}
	if err := errors.Join(supplierID.Validate(), actionErr); err != nil {
		return ChangeSupplierStatusCommand{}, err
	}

	return ChangeSupplierStatusCommand{supplierID: supplierID, action: action, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeSupplierStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeSupplierStatusCommandIsNotConstructed)
}

func (c ChangeSupplierStatusCommand) SupplierID() kernel.UUID { return c.supplierID }
func (c ChangeSupplierStatusCommand) Action() SupplierAction  { return c.action }
