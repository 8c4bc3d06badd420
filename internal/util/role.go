package util

import (
	"slices"

	"github.com/SeakMengs/ConfPortal/internal/constant"
)

var roleCapabilities = map[constant.Role][]constant.Capability{
	constant.RoleAdmin: {
		constant.PaperAssign,
		constant.PaperApprove,
		constant.PaperReview,
		constant.ConferenceManage,
		constant.AgendaManage,
	},
	constant.RoleReviewer: {
		constant.PaperReview,
		constant.PaperCreate,
		constant.PaperSubmit,
	},
	constant.RoleAuthor: {
		constant.PaperCreate,
		constant.PaperSubmit,
	},
}

// CapabilitiesOf returns a copy of the capability set granted to a role.
func CapabilitiesOf(role constant.Role) []constant.Capability {
	return slices.Clone(roleCapabilities[role])
}

// checks if all capabilities are granted by at least one of the roles.
func HasCapability(roles []constant.Role, capabilities []constant.Capability) bool {
	for _, capability := range capabilities {
		granted := false
		for _, role := range roles {
			if slices.Contains(roleCapabilities[role], capability) {
				granted = true
				break
			}
		}
		if !granted {
			return false
		}
	}
	return true
}
