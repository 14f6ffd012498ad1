package router

import (
	"github.com/etuitionbd/etuition-cli/internal/models"
	"github.com/etuitionbd/etuition-cli/internal/pages"
)

// Table is the declarative route map: public pages under the public
// chrome, the guarded /dashboard subtree under the dashboard chrome.
func Table(reg *pages.Registry) []Route {
	student := []models.Role{models.RoleStudent}
	tutor := []models.Role{models.RoleTutor}
	admin := []models.Role{models.RoleAdmin}

	return []Route{
		{Path: "/", Render: reg.RenderHome},
		{Path: "/login", Render: reg.RenderLogin},
		{Path: "/register", Render: reg.RenderRegister},
		{Path: "/tuitions", Render: reg.RenderTuitionsList},
		{Path: "/tutors", Render: reg.RenderTutorsList},
		{Path: "/about", Render: reg.RenderAbout},
		{Path: "/contact", Render: reg.RenderContact},

		{Path: "/dashboard", Shell: DashboardShell, Render: reg.RenderDashboard},
		{Path: "/dashboard/profile", Shell: DashboardShell, Render: reg.RenderProfilePage},
		{Path: "/dashboard/messages", Shell: DashboardShell, Render: reg.RenderMessages},
		{Path: "/dashboard/notifications", Shell: DashboardShell, Render: reg.RenderNotifications},
		{Path: "/dashboard/schedules", Shell: DashboardShell, Render: reg.RenderSchedules},
		{Path: "/dashboard/payments", Shell: DashboardShell, Render: reg.RenderPayments},
		{Path: "/dashboard/settings", Shell: DashboardShell, Render: reg.RenderSettings},

		{Path: "/dashboard/my-tuitions", Shell: DashboardShell, Render: reg.RenderMyTuitions, Roles: student},
		{Path: "/dashboard/post-tuition", Shell: DashboardShell, Render: reg.RenderPostTuition, Roles: student},
		{Path: "/dashboard/applications", Shell: DashboardShell, Render: reg.RenderMyApplications, Roles: tutor},

		{Path: "/dashboard/admin/users", Shell: DashboardShell, Render: reg.RenderAdminUsers, Roles: admin},
		{Path: "/dashboard/admin/tuitions", Shell: DashboardShell, Render: reg.RenderAdminTuitions, Roles: admin},
	}
}
