package models

// Role represents the privilege level of a profile within its tenant
type Role string

const (
	RoleSuperAdmin     Role = "super_admin"
	RoleChurchAdmin    Role = "church_admin"
	RoleFinanceManager Role = "finance_manager"
	RoleMember         Role = "member"
)

// TopRole is the role granted to the profile created when a tenant is bootstrapped
const TopRole = RoleSuperAdmin

// IsValid checks if the Role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleChurchAdmin, RoleFinanceManager, RoleMember:
		return true
	}
	return false
}
