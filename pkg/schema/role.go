package schema

import (
	"encoding/json"
	"fmt"
)

//////////////////////////////////////////////////////////////////////////////
// TYPES

// Role is the semantic side of the call a speaker belongs to. There are
// exactly two roles.
type Role uint

//////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	RoleCustomer Role = iota
	RoleOperator
)

//////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleOperator:
		return "Operator"
	default:
		return fmt.Sprintf("Role(%d)", uint(r))
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", uint(r))
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	role, err := ParseRole(v)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

//////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Valid returns true for the two defined roles
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleOperator
}

// ParseRole returns the role for "Customer" or "Operator"
func ParseRole(v string) (Role, error) {
	switch v {
	case RoleCustomer.String():
		return RoleCustomer, nil
	case RoleOperator.String():
		return RoleOperator, nil
	}
	return 0, fmt.Errorf("invalid role %q", v)
}
