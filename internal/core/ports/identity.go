// Package ports defines the interfaces between the application core and its
// adapters: repositories, the broadcast hub, the push dispatcher and the
// authenticated identity supplied by the external auth collaborator.
package ports

import (
	"fmt"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/pkg/errs"
)

// Role is the coarse access level carried by an authenticated identity.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleRider    Role = "rider"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole validates the textual role from a token claim.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleRider, RoleManager, RoleAdmin:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", s))
	}
}

// IsStaff reports whether the role grants dispatch-wide visibility.
func (r Role) IsStaff() bool {
	return r == RoleManager || r == RoleAdmin
}

// Identity is the authenticated caller of a request or websocket connection.
// Authentication itself is an external collaborator; the application only
// consumes its result.
type Identity struct {
	UserID kernel.UUID
	Role   Role
}

// Validate checks that the identity carries a user id and a known role.
func (i Identity) Validate() error {
	if err := i.UserID.Validate(); err != nil {
		return err
	}
	if _, err := ParseRole(string(i.Role)); err != nil {
		return err
	}
	return nil
}

// CanViewOrder reports whether this identity may read the given order's
// tracking projection: customers see their own orders, riders the orders
// assigned to them, staff everything.
func (i Identity) CanViewOrder(customerID kernel.UUID, riderID *kernel.UUID) bool {
	switch i.Role {
	case RoleCustomer:
		return i.UserID.IsEqual(customerID)
	case RoleRider:
		return riderID != nil && i.UserID.IsEqual(*riderID)
	case RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}
