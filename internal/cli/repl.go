package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Open(ctx context.Context, path string) error
	Routes(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	GoogleSignIn(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Contact(ctx context.Context) error
	PostTuition(ctx context.Context) error
	EditTuition(ctx context.Context, args []string) error
	DeleteTuition(ctx context.Context, args []string) error
	Apply(ctx context.Context, args []string) error
	Applicants(ctx context.Context, args []string) error
	Accept(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	Chat(ctx context.Context, args []string) error
	LeaveChat(ctx context.Context) error
	Say(ctx context.Context, args []string) error
	Pay(ctx context.Context) error
	MarkRead(ctx context.Context, args []string) error
	Schedule(ctx context.Context) error
	Unschedule(ctx context.Context, args []string) error
	ApproveTuition(ctx context.Context, args []string) error
	RejectTuition(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
	Theme(ctx context.Context, args []string) error
	SetRole(ctx context.Context, args []string) error
	SetName(ctx context.Context, args []string) error
	ChangePassword(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the eTuitionBD CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always available:
//	  - help            — show available commands
//	  - go <path>       — open a page (e.g. go /tuitions)
//	  - routes          — list page paths
//	  - contact         — send a message to the site team
//	  - exit | quit     — leave the program
//
//	Signed out:
//	  - register        — create an account
//	  - login           — sign in with email and password
//	  - google [role]   — sign in with Google
//
//	Signed in:
//	  - whoami          — show the current session
//	  - post            — post a tuition (students)
//	  - edit <id>       — edit a posted tuition (students)
//	  - remove <id>     — delete a posted tuition (students)
//	  - applicants <id> — list applications for a posted tuition
//	  - accept <id>     — accept an application
//	  - reject <id>     — reject an application
//	  - apply <id>      — apply to a tuition (tutors)
//	  - chat <id>       — open a conversation (live updates)
//	  - leave           — leave the open conversation
//	  - say <text>      — send a message to the open conversation
//	  - pay             — pay for an accepted application
//	  - read <id>       — mark a notification read
//	  - schedule        — create a schedule entry
//	  - unschedule <id> — delete a schedule entry
//	  - theme <t>       — switch theme (dark|light)
//	  - role <r>        — change role (student|tutor)
//	  - name <text>     — change display name
//	  - password        — change password
//	  - logout          — sign out
//
//	Admins additionally get:
//	  - approve <id>    — approve a pending tuition
//	  - deny <id>       — reject a pending tuition
//	  - rmuser <id>     — delete a user account
//
// Each dispatch runs inside a recover guard: a panicking page never takes
// the loop down, the user is offered the home page instead.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("etuition> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		dispatch(ctx, a, cmd, args)
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) {
	defer func() {
		if rec := recover(); rec != nil {
			printlnFn("Something went wrong rendering this page:", rec)
			_ = a.Open(ctx, "/")
		}
	}()

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: go <path>, routes, contact, whoami, post, edit <id>, remove <id>, applicants <id>, accept <id>, reject <id>, apply <id>, chat <id>, leave, say <text>, pay, read <id>, schedule, unschedule <id>, approve <id>, deny <id>, rmuser <id>, theme <dark|light>, role <student|tutor>, name <text>, password, logout, exit")
		} else {
			printlnFn("Available commands: go <path>, routes, contact, register, login, google [role], exit")
		}

	case "go":
		if len(args) == 0 {
			printlnFn("Usage: go <path>")
			return
		}
		_ = a.Open(ctx, args[0])

	case "routes":
		_ = a.Routes(ctx)

	case "register":
		_ = a.Register(ctx)

	case "login":
		_ = a.Login(ctx)

	case "google":
		_ = a.GoogleSignIn(ctx, args)

	case "whoami":
		_ = a.WhoAmI(ctx)

	case "contact":
		_ = a.Contact(ctx)

	case "post":
		_ = a.PostTuition(ctx)

	case "edit":
		_ = a.EditTuition(ctx, args)

	case "remove":
		_ = a.DeleteTuition(ctx, args)

	case "applicants":
		_ = a.Applicants(ctx, args)

	case "accept":
		_ = a.Accept(ctx, args)

	case "reject":
		_ = a.Reject(ctx, args)

	case "apply":
		_ = a.Apply(ctx, args)

	case "chat":
		_ = a.Chat(ctx, args)

	case "leave":
		_ = a.LeaveChat(ctx)

	case "say":
		_ = a.Say(ctx, args)

	case "pay":
		_ = a.Pay(ctx)

	case "read":
		_ = a.MarkRead(ctx, args)

	case "schedule":
		_ = a.Schedule(ctx)

	case "unschedule":
		_ = a.Unschedule(ctx, args)

	case "approve":
		_ = a.ApproveTuition(ctx, args)

	case "deny":
		_ = a.RejectTuition(ctx, args)

	case "rmuser":
		_ = a.DeleteUser(ctx, args)

	case "theme":
		_ = a.Theme(ctx, args)

	case "role":
		_ = a.SetRole(ctx, args)

	case "name":
		_ = a.SetName(ctx, args)

	case "password":
		_ = a.ChangePassword(ctx)

	case "logout":
		_ = a.Logout(ctx)

	default:
		printlnFn("Unknown command:", cmd)
	}
}
