package pages

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/etuitionbd/etuition-cli/internal/api"
	"github.com/etuitionbd/etuition-cli/internal/logging"
	"github.com/etuitionbd/etuition-cli/internal/models"
	"github.com/etuitionbd/etuition-cli/internal/session"
	"github.com/etuitionbd/etuition-cli/internal/storage"
)

// Registry bundles the page services and their text renderers. Renderers
// share one signature so the route table can bind them directly.
type Registry struct {
	Tuitions      *Tuitions
	Applications  *Applications
	Tutors        *Tutors
	Profile       *Profile
	Payments      *Payments
	Messages      *Messages
	Notifications *Notifications
	Schedules     *Schedules
	Contact       *Contact
	Admin         *Admin
	Themes        *storage.ThemeStore
}

func NewRegistry(client api.Client, sess *session.Service, gateway Gateway, themes *storage.ThemeStore, pollInterval time.Duration, log logging.Logger) *Registry {
	return &Registry{
		Tuitions:      NewTuitions(client),
		Applications:  NewApplications(client),
		Tutors:        NewTutors(client),
		Profile:       NewProfile(client, sess),
		Payments:      NewPayments(client, gateway),
		Messages:      NewMessages(client, pollInterval, log),
		Notifications: NewNotifications(client),
		Schedules:     NewSchedules(client),
		Contact:       NewContact(client),
		Admin:         NewAdmin(client),
		Themes:        themes,
	}
}

func (r *Registry) RenderHome(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	fmt.Fprintln(w, "Find tutors and tuitions across Bangladesh.")
	fmt.Fprintln(w, "Browse /tuitions or /tutors, or sign in for your dashboard.")
	return nil
}

func (r *Registry) RenderLogin(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	fmt.Fprintln(w, "Sign in with the 'login' command, or 'google <role>' for Google sign-in.")
	return nil
}

func (r *Registry) RenderRegister(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	fmt.Fprintln(w, "Create an account with the 'register' command.")
	return nil
}

func (r *Registry) RenderAbout(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	fmt.Fprintln(w, "eTuitionBD connects students, tutors and guardians.")
	return nil
}

func (r *Registry) RenderContact(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	fmt.Fprintln(w, "Send us a message with the 'contact' command.")
	return nil
}

func (r *Registry) RenderTuitionsList(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	list, err := r.Tuitions.Browse(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No tuitions posted yet.")
		return nil
	}
	for _, t := range list {
		fmt.Fprintf(w, "[%s] %s — %s, %s (%s)\n", t.ID, t.Title, t.Subject, t.Location, t.Salary)
	}
	return nil
}

func (r *Registry) RenderTutorsList(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	list, err := r.Tutors.Browse(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No tutors registered yet.")
		return nil
	}
	for _, t := range list {
		fmt.Fprintf(w, "[%s] %s — %s (rating %.1f)\n", t.ID, t.Name, t.Location, t.Rating)
	}
	return nil
}

// RenderDashboard shows the role-conditional dashboard menu.
func (r *Registry) RenderDashboard(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	role := snap.Role.Resolve()
	fmt.Fprintf(w, "Dashboard (%s)\n", role)
	fmt.Fprintln(w, "  /dashboard/profile       your profile")
	fmt.Fprintln(w, "  /dashboard/messages      conversations")
	fmt.Fprintln(w, "  /dashboard/notifications notifications")
	fmt.Fprintln(w, "  /dashboard/schedules     class schedules")
	fmt.Fprintln(w, "  /dashboard/payments      payment history")
	fmt.Fprintln(w, "  /dashboard/settings      theme and account")

	switch role {
	case models.RoleStudent:
		fmt.Fprintln(w, "  /dashboard/my-tuitions   tuitions you posted")
		fmt.Fprintln(w, "  /dashboard/post-tuition  post a new tuition")
	case models.RoleTutor:
		fmt.Fprintln(w, "  /dashboard/applications  your applications")
	case models.RoleAdmin:
		fmt.Fprintln(w, "  /dashboard/admin/users    manage users")
		fmt.Fprintln(w, "  /dashboard/admin/tuitions moderate tuitions")
	}
	return nil
}

func (r *Registry) RenderProfilePage(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	me, err := r.Profile.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s <%s>\n", me.DisplayName, me.Email)
	if me.Phone != "" {
		fmt.Fprintf(w, "phone:   %s\n", me.Phone)
	}
	if me.Address != "" {
		fmt.Fprintf(w, "address: %s\n", me.Address)
	}
	if me.Bio != "" {
		fmt.Fprintf(w, "bio:     %s\n", me.Bio)
	}
	return nil
}

func (r *Registry) RenderMyTuitions(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	list, err := r.Tuitions.Mine(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "You have not posted any tuitions.")
		return nil
	}
	for _, t := range list {
		fmt.Fprintf(w, "[%s] %s — %s\n", t.ID, t.Title, t.Status)
	}
	fmt.Fprintln(w, "Commands: edit <id>, remove <id>, applicants <id>, accept <id>, reject <id>.")
	return nil
}

func (r *Registry) RenderPostTuition(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	fmt.Fprintln(w, "Post a tuition with the 'post' command.")
	return nil
}

func (r *Registry) RenderMyApplications(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	list, err := r.Applications.Mine(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "You have not applied to any tuitions.")
		return nil
	}
	for _, a := range list {
		fmt.Fprintf(w, "[%s] tuition %s — %s\n", a.ID, a.TuitionID, a.Status)
	}
	return nil
}

func (r *Registry) RenderMessages(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	list, err := r.Messages.Conversations(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No conversations yet.")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(w, "[%s] %s\n", c.ID, c.Peer)
	}
	fmt.Fprintln(w, "Open one with the 'chat <id>' command.")
	return nil
}

func (r *Registry) RenderNotifications(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	list, err := r.Notifications.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No notifications.")
		return nil
	}
	for _, n := range list {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Fprintf(w, "%s [%s] %s\n", marker, n.ID, n.Text)
	}
	fmt.Fprintln(w, "Mark one read with 'read <id>'.")
	return nil
}

func (r *Registry) RenderSchedules(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	list, err := r.Schedules.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No schedules.")
		return nil
	}
	for _, s := range list {
		fmt.Fprintf(w, "[%s] tuition %s — %s %s\n", s.ID, s.TuitionID, s.Day, s.Time)
	}
	fmt.Fprintln(w, "Create with 'schedule', delete with 'unschedule <id>'.")
	return nil
}

func (r *Registry) RenderPayments(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	list, err := r.Payments.History(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No payments yet.")
		return nil
	}
	for _, p := range list {
		fmt.Fprintf(w, "[%s] %d BDT — %s\n", p.ID, p.Amount, p.Status)
	}
	return nil
}

func (r *Registry) RenderSettings(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	theme, err := r.Themes.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "theme: %s (switch with 'theme dark|light')\n", theme)
	fmt.Fprintf(w, "role:  %s (switch with 'role student|tutor')\n", snap.Role.Resolve())
	return nil
}

func (r *Registry) RenderAdminUsers(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	list, err := r.Admin.Users(ctx)
	if err != nil {
		return err
	}
	for _, u := range list {
		fmt.Fprintf(w, "[%s] %s <%s> %s\n", u.ID, u.Name, u.Email, u.Role)
	}
	fmt.Fprintln(w, "Delete an account with 'rmuser <id>'.")
	return nil
}

func (r *Registry) RenderAdminTuitions(ctx context.Context, w io.Writer, snap session.Snapshot) error {
	list, err := r.Admin.Tuitions(ctx)
	if err != nil {
		return err
	}
	for _, t := range list {
		fmt.Fprintf(w, "[%s] %s — %s\n", t.ID, t.Title, t.Status)
	}
	fmt.Fprintln(w, "Moderate with 'approve <id>' or 'deny <id>'.")
	return nil
}
