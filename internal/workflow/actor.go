package workflow

import (
	"slices"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/util"
)

// Actor is the authenticated caller of a workflow operation. Every operation
// takes it explicitly.
type Actor struct {
	ID           string
	Email        string
	Role         constant.Role
	Capabilities []constant.Capability
}

// NewActor builds an actor with the capability set derived from its role.
func NewActor(id, email string, role constant.Role) Actor {
	return Actor{
		ID:           id,
		Email:        email,
		Role:         role,
		Capabilities: util.CapabilitiesOf(role),
	}
}

func (a Actor) Can(capability constant.Capability) bool {
	return slices.Contains(a.Capabilities, capability)
}

func (a Actor) IsAdmin() bool {
	return a.Role == constant.RoleAdmin
}

func (a Actor) require(capability constant.Capability) error {
	if a.ID == "" || !a.Can(capability) {
		return newError(KindUnauthorized, "", "missing capability %s", capability)
	}
	return nil
}
