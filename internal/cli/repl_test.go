package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Open(ctx context.Context, path string) error {
	f.record("open", []string{path})
	return nil
}
func (f *fakeExec) Routes(ctx context.Context) error { f.record("routes", nil); return nil }
func (f *fakeExec) Register(ctx context.Context) error {
	f.record("register", nil)
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login", nil)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) GoogleSignIn(ctx context.Context, args []string) error {
	f.record("google", args)
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout", nil)
	f.loggedIn = false
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error      { f.record("whoami", nil); return nil }
func (f *fakeExec) Contact(ctx context.Context) error     { f.record("contact", nil); return nil }
func (f *fakeExec) PostTuition(ctx context.Context) error { f.record("post", nil); return nil }
func (f *fakeExec) EditTuition(ctx context.Context, args []string) error {
	f.record("edit", args)
	return nil
}
func (f *fakeExec) DeleteTuition(ctx context.Context, args []string) error {
	f.record("remove", args)
	return nil
}
func (f *fakeExec) Applicants(ctx context.Context, args []string) error {
	f.record("applicants", args)
	return nil
}
func (f *fakeExec) Accept(ctx context.Context, args []string) error {
	f.record("accept", args)
	return nil
}
func (f *fakeExec) Reject(ctx context.Context, args []string) error {
	f.record("reject", args)
	return nil
}
func (f *fakeExec) MarkRead(ctx context.Context, args []string) error {
	f.record("read", args)
	return nil
}
func (f *fakeExec) Schedule(ctx context.Context) error { f.record("schedule", nil); return nil }
func (f *fakeExec) Unschedule(ctx context.Context, args []string) error {
	f.record("unschedule", args)
	return nil
}
func (f *fakeExec) ApproveTuition(ctx context.Context, args []string) error {
	f.record("approve", args)
	return nil
}
func (f *fakeExec) RejectTuition(ctx context.Context, args []string) error {
	f.record("deny", args)
	return nil
}
func (f *fakeExec) DeleteUser(ctx context.Context, args []string) error {
	f.record("rmuser", args)
	return nil
}
func (f *fakeExec) Apply(ctx context.Context, args []string) error {
	f.record("apply", args)
	return nil
}
func (f *fakeExec) Chat(ctx context.Context, args []string) error {
	f.record("chat", args)
	return nil
}
func (f *fakeExec) LeaveChat(ctx context.Context) error { f.record("leave", nil); return nil }
func (f *fakeExec) Say(ctx context.Context, args []string) error {
	f.record("say", args)
	return nil
}
func (f *fakeExec) Pay(ctx context.Context) error { f.record("pay", nil); return nil }
func (f *fakeExec) Theme(ctx context.Context, args []string) error {
	f.record("theme", args)
	return nil
}
func (f *fakeExec) SetRole(ctx context.Context, args []string) error {
	f.record("role", args)
	return nil
}
func (f *fakeExec) SetName(ctx context.Context, args []string) error {
	f.record("name", args)
	return nil
}
func (f *fakeExec) ChangePassword(ctx context.Context) error {
	f.record("password", nil)
	return nil
}

func muteOutput(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"go /tuitions",
		"chat conv-1",
		"say hello there",
		"leave",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "open", "chat", "say", "leave"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgsPassedThrough(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("say hello world\nchat conv-9\nquit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	if len(exec.calls) != 2 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if got := exec.args[0]; len(got) != 2 || got[0] != "hello" || got[1] != "world" {
		t.Fatalf("say args: %v", got)
	}
	if got := exec.args[1]; len(got) != 1 || got[0] != "conv-9" {
		t.Fatalf("chat args: %v", got)
	}
}

func TestRunREPL_ContactCommandIsWired(t *testing.T) {
	var printed []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		for _, a := range args {
			if s, ok := a.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })

	input := strings.NewReader("contact\nexit\n")
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	if len(exec.calls) != 1 || exec.calls[0] != "contact" {
		t.Fatalf("contact not dispatched: %v", exec.calls)
	}
	for _, s := range printed {
		if s == "Unknown command:" {
			t.Fatal("contact reported as unknown command")
		}
	}
}

func TestRunREPL_ModerationCommands(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"edit t-1",
		"remove t-2",
		"applicants t-3",
		"accept app-1",
		"reject app-2",
		"read n-1",
		"schedule",
		"unschedule sc-1",
		"approve t-4",
		"deny t-5",
		"rmuser u-1",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	want := []string{"edit", "remove", "applicants", "accept", "reject",
		"read", "schedule", "unschedule", "approve", "deny", "rmuser"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls: %v", exec.calls)
	}
	for i, c := range want {
		if exec.calls[i] != c {
			t.Fatalf("call %d = %q, want %q (all: %v)", i, exec.calls[i], c, exec.calls)
		}
	}
	if exec.args[3][0] != "app-1" || exec.args[4][0] != "app-2" {
		t.Fatalf("status args: %v", exec.args)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("go\nquit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

// panicExec wraps fakeExec so one command panics, the way a broken page
// renderer would.
type panicExec struct {
	fakeExec
}

func (p *panicExec) WhoAmI(ctx context.Context) error { panic("broken page") }

func TestRunREPL_PanicInCommandFallsBackToHome(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("whoami\nroutes\nexit\n")
	exec := &panicExec{}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	// The panic is contained: home is opened and the loop keeps serving.
	if len(exec.calls) != 2 || exec.calls[0] != "open" || exec.calls[1] != "routes" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if exec.args[0][0] != "/" {
		t.Fatalf("fallback path: %v", exec.args[0])
	}
}
