package rbac

// Role is a named category of principals.
type Role string

// Roles
const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

var knownRoles = map[Role]struct{}{
	RoleStudent: {},
	RoleTeacher: {},
	RoleAdmin:   {},
}

// ParseRole maps a raw role name to a Role.
// Unrecognized names yield the zero Role and false.
func ParseRole(name string) (Role, bool) {
	role := Role(name)
	if _, ok := knownRoles[role]; !ok {
		return "", false
	}
	return role, true
}

func (r Role) String() string { return string(r) }

// Permission is an atomic capability flag.
type Permission string

// Permissions
const (
	// profile
	ViewOwnProfile Permission = "viewOwnProfile"
	EditOwnProfile Permission = "editOwnProfile"

	// course
	ViewCourses  Permission = "viewCourses"
	CreateCourse Permission = "createCourse"
	EditCourse   Permission = "editCourse"
	DeleteCourse Permission = "deleteCourse"

	// enrollment
	EnrollInCourse    Permission = "enrollInCourse"
	ViewEnrollments   Permission = "viewEnrollments"
	ManageEnrollments Permission = "manageEnrollments"

	// assignment
	ViewAssignments  Permission = "viewAssignments"
	SubmitAssignment Permission = "submitAssignment"
	CreateAssignment Permission = "createAssignment"
	EditAssignment   Permission = "editAssignment"
	DeleteAssignment Permission = "deleteAssignment"

	// forum
	ViewForum     Permission = "viewForum"
	PostInForum   Permission = "postInForum"
	ModerateForum Permission = "moderateForum"

	// announcement
	ViewAnnouncements  Permission = "viewAnnouncements"
	CreateAnnouncement Permission = "createAnnouncement"

	// grading
	ViewOwnGrades    Permission = "viewOwnGrades"
	GradeSubmissions Permission = "gradeSubmissions"
	ViewAllGrades    Permission = "viewAllGrades"

	// notification
	ViewNotifications Permission = "viewNotifications"
	SendNotifications Permission = "sendNotifications"

	// system
	ManageUsers          Permission = "manageUsers"
	ManageRoles          Permission = "manageRoles"
	ManageSystemSettings Permission = "manageSystemSettings"
	ViewAnalytics        Permission = "viewAnalytics"
)

var allPermissions = []Permission{
	ViewOwnProfile, EditOwnProfile,
	ViewCourses, CreateCourse, EditCourse, DeleteCourse,
	EnrollInCourse, ViewEnrollments, ManageEnrollments,
	ViewAssignments, SubmitAssignment, CreateAssignment, EditAssignment, DeleteAssignment,
	ViewForum, PostInForum, ModerateForum,
	ViewAnnouncements, CreateAnnouncement,
	ViewOwnGrades, GradeSubmissions, ViewAllGrades,
	ViewNotifications, SendNotifications,
	ManageUsers, ManageRoles, ManageSystemSettings, ViewAnalytics,
}

var knownPermissions = NewPermissionSet(allPermissions...)

// AllPermissions lists every permission known to the platform, grouped by subject area.
func AllPermissions() []Permission {
	return clonePermissions(allPermissions)
}

// ParsePermission maps a raw permission name to a Permission.
// Unrecognized names yield the zero Permission and false.
func ParsePermission(name string) (Permission, bool) {
	perm := Permission(name)
	if !knownPermissions.Has(perm) {
		return "", false
	}
	return perm, true
}

func (p Permission) String() string { return string(p) }
