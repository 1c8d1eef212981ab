package commands

import (
	"fmt"
	"strings"

	"ferryops/internal/pkg/errs"
)

// Decision is a yes/no verdict on an order, a supply amount or a payment.
type Decision int

const (
	DecisionUnknown Decision = iota
	DecisionApprove
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionApprove:
		return "approved"
	case DecisionReject:
		return "rejected"
	default:
		return "unknown"
	}
}

func (d Decision) Validate() error {
	if d != DecisionApprove && d != DecisionReject {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%d is not a valid decision", d))
	}
	return nil
}

// ParseDecision accepts the verbs and past participles clients send
// ("approve", "approved", "accept", "accepted", "reject", "rejected").
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "approved", "accept", "accepted":
		return DecisionApprove, nil
	case "reject", "rejected":
		return DecisionReject, nil
	default:
		return DecisionUnknown, errs.NewValueIsInvalidErrorWithCause(
			"decision", fmt.Errorf("%q must be approved or rejected", s))
	}
}
