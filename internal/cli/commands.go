package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/etuitionbd/etuition-cli/internal/pages"
)

// Routes lists every registered page path.
func (a *App) Routes(ctx context.Context) error {
	for _, p := range a.router.Paths() {
		fmt.Fprintln(a.out, " ", p)
	}
	return nil
}

// PostTuition walks a student through posting a tuition.
func (a *App) PostTuition(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	subject, err := getSimpleText(a.reader, "Subject", a.out)
	if err != nil {
		return err
	}
	classLevel, err := getSimpleText(a.reader, "Class level", a.out)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Location", a.out)
	if err != nil {
		return err
	}
	salary, err := getSimpleText(a.reader, "Expected salary", a.out)
	if err != nil {
		return err
	}

	err = a.registry.Tuitions.Post(ctx, pages.Tuition{
		Title:      title,
		Subject:    subject,
		ClassLevel: classLevel,
		Location:   location,
		Salary:     salary,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Could not post the tuition:", err)
		return err
	}

	fmt.Fprintln(a.out, "Tuition posted. It will appear once approved.")
	return nil
}

// promptKeep prompts for a field showing its current value; an empty reply
// keeps it.
func (a *App) promptKeep(label, current string) (string, error) {
	v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", label, current), a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

// EditTuition loads a posted tuition and prompts per field; empty input
// keeps the current value.
func (a *App) EditTuition(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: edit <tuition-id>")
		return nil
	}

	cur, err := a.registry.Tuitions.Get(ctx, args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Could not load the tuition:", err)
		return err
	}

	next := *cur
	if next.Title, err = a.promptKeep("Title", cur.Title); err != nil {
		return err
	}
	if next.Subject, err = a.promptKeep("Subject", cur.Subject); err != nil {
		return err
	}
	if next.ClassLevel, err = a.promptKeep("Class level", cur.ClassLevel); err != nil {
		return err
	}
	if next.Location, err = a.promptKeep("Location", cur.Location); err != nil {
		return err
	}
	if next.Salary, err = a.promptKeep("Expected salary", cur.Salary); err != nil {
		return err
	}

	if err := a.registry.Tuitions.Update(ctx, args[0], next); err != nil {
		fmt.Fprintln(a.out, "Could not update the tuition:", err)
		return err
	}
	fmt.Fprintln(a.out, "Tuition updated.")
	return nil
}

// DeleteTuition removes one of the user's posted tuitions.
func (a *App) DeleteTuition(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: remove <tuition-id>")
		return nil
	}

	if err := a.registry.Tuitions.Delete(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "Could not delete the tuition:", err)
		return err
	}
	fmt.Fprintln(a.out, "Tuition deleted.")
	return nil
}

// Applicants lists the applications received for a posted tuition.
func (a *App) Applicants(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: applicants <tuition-id>")
		return nil
	}

	apps, err := a.registry.Applications.ForTuition(ctx, args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Could not load the applications:", err)
		return err
	}
	if len(apps) == 0 {
		fmt.Fprintln(a.out, "No applications yet.")
		return nil
	}
	for _, app := range apps {
		fmt.Fprintf(a.out, "%s  tutor=%s  status=%s  %s\n", app.ID, app.TutorID, app.Status, app.CoverNote)
	}
	return nil
}

// Accept marks an application accepted.
func (a *App) Accept(ctx context.Context, args []string) error {
	return a.setApplicationStatus(ctx, args, "accept", "accepted")
}

// Reject marks an application rejected.
func (a *App) Reject(ctx context.Context, args []string) error {
	return a.setApplicationStatus(ctx, args, "reject", "rejected")
}

func (a *App) setApplicationStatus(ctx context.Context, args []string, verb, status string) error {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Usage: %s <application-id>\n", verb)
		return nil
	}

	if err := a.registry.Applications.SetStatus(ctx, args[0], status); err != nil {
		fmt.Fprintln(a.out, "Could not update the application:", err)
		return err
	}
	fmt.Fprintf(a.out, "Application %s.\n", status)
	return nil
}

// Apply submits a tutor application for the given tuition.
func (a *App) Apply(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: apply <tuition-id>")
		return nil
	}

	coverNote, err := GetMultiline(a.reader, "Cover note", a.out)
	if err != nil {
		return err
	}

	if err := a.registry.Applications.Apply(ctx, args[0], coverNote); err != nil {
		fmt.Fprintln(a.out, "Could not apply:", err)
		return err
	}
	fmt.Fprintln(a.out, "Application submitted.")
	return nil
}

// Chat opens a conversation: prints the history once, then keeps a live
// poll running that prints new messages as they arrive. Opening another
// conversation or leaving the page stops the previous poll.
func (a *App) Chat(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: chat <conversation-id>")
		return nil
	}
	convID := args[0]

	a.stopPoll()

	msgs, err := a.registry.Messages.List(ctx, convID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not open the conversation:", err)
		return err
	}
	a.printMessages(msgs)
	fmt.Fprintln(a.out, "(live — 'say <text>' to reply, 'leave' to close)")

	poll := a.registry.Messages.StartPoll(ctx, convID, func(latest []pages.Message) {
		a.printMessages(latest)
	})

	a.pollMu.Lock()
	a.activePoll = poll
	a.activeConv = convID
	a.pollMu.Unlock()
	return nil
}

// LeaveChat closes the open conversation, if any.
func (a *App) LeaveChat(ctx context.Context) error {
	a.stopPoll()
	fmt.Fprintln(a.out, "Left the conversation.")
	return nil
}

// Say sends a message to the open conversation.
func (a *App) Say(ctx context.Context, args []string) error {
	a.pollMu.Lock()
	convID := a.activeConv
	a.pollMu.Unlock()

	if convID == "" {
		fmt.Fprintln(a.out, "No open conversation. Use 'chat <conversation-id>' first.")
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: say <text>")
		return nil
	}

	if err := a.registry.Messages.Send(ctx, convID, strings.Join(args, " ")); err != nil {
		fmt.Fprintln(a.out, "Could not send the message:", err)
		return err
	}
	return nil
}

func (a *App) printMessages(msgs []pages.Message) {
	for _, m := range msgs {
		fmt.Fprintf(a.out, "[%s] %s: %s\n", m.CreatedAt, m.SenderID, m.Text)
	}
}

// Pay walks through paying for an accepted application: the card details
// go to the gateway, never to the backend.
func (a *App) Pay(ctx context.Context) error {
	appID, err := getSimpleText(a.reader, "Application id", a.out)
	if err != nil {
		return err
	}
	amountText, err := getSimpleText(a.reader, "Amount (BDT)", a.out)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseInt(amountText, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Amount must be a whole number.")
		return nil
	}

	number, err := getSimpleText(a.reader, "Card number", a.out)
	if err != nil {
		return err
	}
	expiry, err := getSimpleText(a.reader, "Expiry (MM/YY)", a.out)
	if err != nil {
		return err
	}
	month, year := parseExpiry(expiry)
	cvc, err := getPassword(a.out, "CVC")
	if err != nil {
		return err
	}

	card := pages.CardDetails{Number: number, ExpMonth: month, ExpYear: year, CVC: cvc}
	if err := a.registry.Payments.Pay(ctx, appID, amount, card); err != nil {
		fmt.Fprintln(a.out, "Payment failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Payment recorded.")
	return nil
}

// Contact sends a message to the site team. Name and email prefill from
// the signed-in profile; guests are prompted for both.
func (a *App) Contact(ctx context.Context) error {
	name, email := "", ""
	if snap := a.session.Current(); snap.Profile != nil {
		name, email = snap.Profile.DisplayName, snap.Profile.Email
	}

	var err error
	if name, err = a.promptKeep("Your name", name); err != nil {
		return err
	}
	if email, err = a.promptKeep("Your email", email); err != nil {
		return err
	}
	message, err := GetMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}

	ticketID, err := a.registry.Contact.Send(ctx, name, email, message)
	if err != nil {
		fmt.Fprintln(a.out, "Could not send the message:", err)
		return err
	}
	fmt.Fprintln(a.out, "Message sent. Ticket:", ticketID)
	return nil
}

// MarkRead marks a notification read.
func (a *App) MarkRead(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: read <notification-id>")
		return nil
	}

	if err := a.registry.Notifications.MarkRead(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "Could not mark the notification read:", err)
		return err
	}
	fmt.Fprintln(a.out, "Marked read.")
	return nil
}

// Schedule creates a schedule entry for an accepted tuition.
func (a *App) Schedule(ctx context.Context) error {
	tuitionID, err := getSimpleText(a.reader, "Tuition id", a.out)
	if err != nil {
		return err
	}
	day, err := getSimpleText(a.reader, "Day (e.g. Monday)", a.out)
	if err != nil {
		return err
	}
	at, err := getSimpleText(a.reader, "Time (e.g. 18:00)", a.out)
	if err != nil {
		return err
	}
	note, err := getSimpleText(a.reader, "Note (optional)", a.out)
	if err != nil {
		return err
	}

	err = a.registry.Schedules.Create(ctx, pages.Schedule{
		TuitionID: tuitionID,
		Day:       day,
		Time:      at,
		Note:      note,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Could not create the schedule:", err)
		return err
	}
	fmt.Fprintln(a.out, "Schedule created.")
	return nil
}

// Unschedule deletes a schedule entry.
func (a *App) Unschedule(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: unschedule <schedule-id>")
		return nil
	}

	if err := a.registry.Schedules.Delete(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "Could not delete the schedule:", err)
		return err
	}
	fmt.Fprintln(a.out, "Schedule deleted.")
	return nil
}

// ApproveTuition publishes a pending tuition (admins).
func (a *App) ApproveTuition(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: approve <tuition-id>")
		return nil
	}

	if err := a.registry.Admin.ApproveTuition(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "Could not approve the tuition:", err)
		return err
	}
	fmt.Fprintln(a.out, "Tuition approved.")
	return nil
}

// RejectTuition rejects a pending tuition (admins).
func (a *App) RejectTuition(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: deny <tuition-id>")
		return nil
	}

	if err := a.registry.Admin.RejectTuition(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "Could not reject the tuition:", err)
		return err
	}
	fmt.Fprintln(a.out, "Tuition rejected.")
	return nil
}

// DeleteUser removes a user account (admins).
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: rmuser <user-id>")
		return nil
	}

	if err := a.registry.Admin.DeleteUser(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "Could not delete the user:", err)
		return err
	}
	fmt.Fprintln(a.out, "User deleted.")
	return nil
}

// parseExpiry accepts MM/YY or MM/YYYY; malformed input yields zeros and
// the gateway rejects the card.
func parseExpiry(s string) (month, year int) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	month, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	year, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	if year < 100 {
		year += 2000
	}
	return month, year
}
