package rbac

// Role constants. A role is declared at registration and never changes.
const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
)

// Permission constants
const (
	PermPostJob            = "post_job"
	PermApproveApplication = "approve_application"
	PermApproveSubmission  = "approve_submission"
	PermApply              = "apply_to_job"
	PermSubmitWork         = "submit_work"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleClient: {
		PermPostJob, PermApproveApplication, PermApproveSubmission,
	},
	RoleFreelancer: {
		PermApply, PermSubmitWork,
	},
}

// IsValidRole reports whether role is one of the declared roles.
func IsValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// IsFinancialOperation checks if permission moves escrowed funds.
func IsFinancialOperation(permission string) bool {
	return permission == PermPostJob || permission == PermApproveSubmission
}
