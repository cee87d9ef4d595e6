package domain

// Access policy: pure decision functions consulted by every service mutation
// before any state is touched. A denial is always surfaced as an error, never
// a silent no-op.

// CanReadApplication reports whether the caller may view the application.
// Admins see everything; a USER only their own.
func CanReadApplication(role Role, callerID, ownerID string) bool {
	if role.IsAdmin() {
		return true
	}
	return callerID == ownerID
}

// CanEditApplication decides whether the caller may mutate the application
// (field updates and document uploads). Only the owner may edit, and only
// while the status is still editable.
func CanEditApplication(role Role, callerID string, app *Application) error {
	if role.IsAdmin() || callerID != app.OwnerID {
		// Admins review, they do not edit applicant data.
		return ErrForbidden
	}
	if !app.Status.Editable() {
		return ErrInvalidState
	}
	return nil
}

// CanManageUsers reports whether the caller may change roles and active flags
// or delete accounts.
func CanManageUsers(role Role) bool {
	return role.IsAdmin()
}

// CanAssignRole decides whether the actor may move a user from their current
// role to the requested one. SUPER_ADMIN may assign anything; ADMIN may
// shuffle USER and ADMIN but may neither grant SUPER_ADMIN nor change the
// role of an existing SUPER_ADMIN.
func CanAssignRole(actor, current, next Role) bool {
	switch actor {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return current != RoleSuperAdmin && next != RoleSuperAdmin
	}
	return false
}
