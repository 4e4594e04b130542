package rbac

var (
	studentPermissions = []Permission{
		ViewOwnProfile, EditOwnProfile,
		ViewCourses,
		EnrollInCourse,
		ViewAssignments, SubmitAssignment,
		ViewForum, PostInForum,
		ViewAnnouncements,
		ViewOwnGrades,
		ViewNotifications,
	}

	teacherPermissions = []Permission{
		ViewOwnProfile, EditOwnProfile,
		ViewCourses, CreateCourse, EditCourse,
		ViewEnrollments, ManageEnrollments,
		ViewAssignments, CreateAssignment, EditAssignment, DeleteAssignment,
		ViewForum, PostInForum, ModerateForum,
		ViewAnnouncements, CreateAnnouncement,
		GradeSubmissions, ViewAllGrades,
		ViewNotifications, SendNotifications,
		ViewAnalytics,
	}
)

// DefaultRoles returns a fresh copy of the compiled-in matrix.
func DefaultRoles() []RoleDefinition {
	return []RoleDefinition{
		{Role: RoleStudent, Permissions: clonePermissions(studentPermissions)},
		{Role: RoleTeacher, Permissions: clonePermissions(teacherPermissions)},
		{Role: RoleAdmin, Permissions: clonePermissions(allPermissions)},
	}
}

// Default builds a Registry from DefaultRoles.
func Default() *Registry {
	return MustRegistry(DefaultRoles()...)
}

func clonePermissions(perms []Permission) []Permission {
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}
