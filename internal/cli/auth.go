package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etuitionbd/etuition-cli/internal/common"
	"github.com/etuitionbd/etuition-cli/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, display name, role and password and creates
// a new account. On success the user lands on the dashboard.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	displayName, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	roleText, err := getSimpleText(a.reader, "Role (student/tutor)", a.out)
	if err != nil {
		return err
	}
	role := models.ParseRole(roleText)

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	if _, err := a.session.SignUp(ctx, email, password, displayName, role); err != nil {
		fmt.Fprintln(a.out, registerFailure(err))
		return err
	}

	fmt.Fprintln(a.out, "Account created.")
	return a.Open(ctx, "/dashboard")
}

func registerFailure(err error) string {
	switch {
	case errors.Is(err, common.ErrValidation):
		return err.Error()
	case errors.Is(err, common.ErrCredential):
		return "Could not create the account. The email may already be in use."
	case errors.Is(err, common.ErrUnavailable):
		return "Could not reach the identity service. Please try again."
	default:
		return "Registration failed: " + err.Error()
	}
}

// Login prompts for credentials and signs in. Wrong credentials keep the
// user on the login page with a notice; transport failures get their own
// message.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	if _, err := a.session.Login(ctx, email, password); err != nil {
		switch {
		case errors.Is(err, common.ErrCredential):
			fmt.Fprintln(a.out, "Invalid email or password.")
		case errors.Is(err, common.ErrUnavailable):
			fmt.Fprintln(a.out, "Could not reach the identity service. Please try again.")
		default:
			fmt.Fprintln(a.out, "Login failed:", err)
		}
		return err
	}

	fmt.Fprintln(a.out, "Signed in.")
	return a.Open(ctx, "/dashboard")
}

// GoogleSignIn runs the federated flow in the system browser. An optional
// role argument ("google tutor") picks the role for first-time users.
func (a *App) GoogleSignIn(ctx context.Context, args []string) error {
	role := models.RoleUnset
	if len(args) > 0 {
		role = models.ParseRole(args[0])
		if !role.Valid() {
			fmt.Fprintln(a.out, "Usage: google [student|tutor]")
			return nil
		}
	}

	fmt.Fprintln(a.out, "Opening the browser for Google sign-in...")
	if _, err := a.session.FederatedSignIn(ctx, role); err != nil {
		fmt.Fprintln(a.out, "Google sign-in failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Signed in.")
	return a.Open(ctx, "/dashboard")
}

// Logout signs out, clears the persisted token and lands on the home page.
// Safe to call when already signed out.
func (a *App) Logout(ctx context.Context) error {
	a.stopPoll()
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return a.Open(ctx, "/")
}

// WhoAmI prints the current session snapshot and theme.
func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.session.Current()
	switch {
	case snap.Loading:
		fmt.Fprintln(a.out, "Session is still loading.")
	case snap.Profile == nil:
		fmt.Fprintln(a.out, "Not signed in.")
	default:
		fmt.Fprintf(a.out, "%s <%s> — %s\n", snap.Profile.DisplayName, snap.Profile.Email, snap.Role.Resolve())
	}

	theme, _ := a.themes.Load(ctx)
	fmt.Fprintln(a.out, "Theme:", theme)
	return nil
}

// SetRole switches the stored role for the signed-in account.
func (a *App) SetRole(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: role <student|tutor>")
		return nil
	}
	role := models.ParseRole(args[0])
	if !role.Valid() {
		fmt.Fprintln(a.out, "Usage: role <student|tutor>")
		return nil
	}

	if err := a.session.UpdateRole(ctx, role); err != nil {
		fmt.Fprintln(a.out, "Could not update the role:", err)
		return err
	}
	fmt.Fprintln(a.out, "Role set to", role)
	return nil
}

// SetName changes the display name at the identity provider.
func (a *App) SetName(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: name <text>")
		return nil
	}
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Sign in first.")
		return nil
	}

	name := strings.Join(args, " ")
	if err := a.session.UpdateDisplayName(ctx, name); err != nil {
		fmt.Fprintln(a.out, "Could not change the name:", err)
		return err
	}
	fmt.Fprintln(a.out, "Name changed to", name)
	return nil
}

// Theme persists the preferred theme. Anything but "dark" is stored as light.
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: theme <dark|light>")
		return nil
	}

	if err := a.themes.Save(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "Could not save the theme:", err)
		return err
	}
	theme, _ := a.themes.Load(ctx)
	fmt.Fprintln(a.out, "Theme:", theme)
	return nil
}

// ChangePassword re-authenticates with the current password before setting
// the new one.
func (a *App) ChangePassword(ctx context.Context) error {
	snap := a.session.Current()
	if snap.Profile == nil {
		fmt.Fprintln(a.out, "Sign in first.")
		return nil
	}

	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	next, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}

	if err := a.provider.UpdatePassword(ctx, snap.Profile.Email, current, next); err != nil {
		if errors.Is(err, common.ErrCredential) {
			fmt.Fprintln(a.out, "The current password is wrong.")
		} else {
			fmt.Fprintln(a.out, "Could not change the password:", err)
		}
		return err
	}

	fmt.Fprintln(a.out, "Password changed.")
	return nil
}
