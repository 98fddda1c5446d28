package domain

// Capability is a permission a caller must hold within an organization.
type Capability string

const (
	CapAccountingRead  Capability = "accounting:read"
	CapAccountingWrite Capability = "accounting:write"
	CapAccountingPost  Capability = "accounting:post"
)

// Wildcard grants every organization or capability.
const Wildcard = "*"

// Grants are the organizations and capabilities asserted by the caller's token.
type Grants struct {
	Organizations []string
	Capabilities  []string
}

// Allows reports whether the grants cover capability within organizationID.
func (g Grants) Allows(organizationID string, capability Capability) bool {
	return contains(g.Organizations, organizationID) && contains(g.Capabilities, string(capability))
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == Wildcard || v == want {
			return true
		}
	}
	return false
}
