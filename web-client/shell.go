package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/arunvm123/bookingportal/web-client/admin"
	"github.com/arunvm123/bookingportal/web-client/history"
	"github.com/arunvm123/bookingportal/web-client/model"
	"github.com/arunvm123/bookingportal/web-client/portal"
	"github.com/arunvm123/bookingportal/web-client/resource"
	"github.com/arunvm123/bookingportal/web-client/session"
	"github.com/arunvm123/bookingportal/web-client/tracker"
	"github.com/arunvm123/bookingportal/web-client/view"
	"golang.org/x/term"
)

const dateDisplayLayout = "Mon, 02 Jan 2006 15:04"

const helpText = `Commands:
  events                  list events
  book <event-id> <seats> book seats for an event
  bookings                show your bookings
  cancel <booking-id>     cancel one of your bookings
  admin                   catalog management (admins only)
  create                  create an event (admin view)
  delete <event-id>       delete an event (admin view)
  login <email>           log in
  signup                  create an account
  logout                  log out
  help                    show this text
  quit                    leave`

// shell is a line-oriented front end over the portal.
type shell struct {
	portal *portal.Portal
	in     *bufio.Reader
	out    io.Writer

	readPassword func() (string, error)
}

func newShell(p *portal.Portal, in *bufio.Reader, out io.Writer) *shell {
	sh := &shell{portal: p, in: in, out: out}
	sh.readPassword = sh.terminalPassword
	return sh
}

func (sh *shell) Run(ctx context.Context) error {
	sh.portal.Start(ctx)
	sh.render()

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(sh.out, "> ")
		line, err := sh.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading command: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if sh.dispatch(ctx, fields[0], fields[1:]) {
			sh.render()
		}
	}
}

// dispatch runs one command and reports whether the screen should be redrawn.
func (sh *shell) dispatch(ctx context.Context, command string, args []string) bool {
	switch command {
	case "help":
		fmt.Fprintln(sh.out, helpText)
		return false
	case "events":
		sh.navigate(ctx, view.Events)
	case "bookings", "mybookings":
		sh.navigate(ctx, view.MyBookings)
	case "admin":
		sh.navigate(ctx, view.Admin)
	case "login":
		sh.login(ctx, args)
	case "signup":
		sh.signup(ctx)
	case "logout":
		sh.portal.Logout(ctx)
	case "book":
		sh.book(ctx, args)
	case "cancel":
		sh.cancel(ctx, args)
	case "create":
		sh.create(ctx)
	case "delete":
		sh.delete(ctx, args)
	default:
		fmt.Fprintf(sh.out, "Unknown command %q. Type \"help\" for commands.\n", command)
		return false
	}
	return true
}

func (sh *shell) navigate(ctx context.Context, v view.View) {
	if err := sh.portal.Navigate(ctx, v); err != nil {
		fmt.Fprintln(sh.out, err)
	}
}

func (sh *shell) login(ctx context.Context, args []string) {
	if err := sh.portal.Navigate(ctx, view.Login); err != nil {
		fmt.Fprintln(sh.out, err)
		return
	}

	email := ""
	if len(args) > 0 {
		email = args[0]
	} else {
		email = sh.prompt("Email")
	}
	password, err := sh.readPassword()
	if err != nil {
		fmt.Fprintln(sh.out, err)
		return
	}
	if err := sh.portal.Login(ctx, email, password); err != nil {
		fmt.Fprintln(sh.out, err)
	}
}

func (sh *shell) signup(ctx context.Context) {
	if err := sh.portal.Navigate(ctx, view.Signup); err != nil {
		fmt.Fprintln(sh.out, err)
		return
	}

	name := sh.prompt("Name")
	email := sh.prompt("Email")
	password, err := sh.readPassword()
	if err != nil {
		fmt.Fprintln(sh.out, err)
		return
	}
	if err := sh.portal.Signup(ctx, name, email, password); err != nil {
		fmt.Fprintln(sh.out, err)
	}
}

func (sh *shell) book(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(sh.out, "Usage: book <event-id> <seats>")
		return
	}
	eventID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(sh.out, "Invalid event id %q\n", args[0])
		return
	}
	seats, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(sh.out, "Invalid seat count %q\n", args[1])
		return
	}

	// Server outcomes are shown next to the event when the screen is redrawn.
	_, err = sh.portal.Tracker.Submit(ctx, eventID, seats)
	switch {
	case errors.Is(err, tracker.ErrInvalidSeats), errors.Is(err, tracker.ErrExceedsAvailable),
		errors.Is(err, tracker.ErrInFlight), errors.Is(err, session.ErrNoSession):
		fmt.Fprintln(sh.out, err)
	}
}

func (sh *shell) cancel(ctx context.Context, args []string) {
	id, ok := sh.idArg(args, "Usage: cancel <booking-id>")
	if !ok {
		return
	}
	_, err := sh.portal.History.Cancel(ctx, id)
	switch {
	case errors.Is(err, history.ErrAlreadyCancelled), errors.Is(err, history.ErrDeclined),
		errors.Is(err, history.ErrInFlight), errors.Is(err, session.ErrNoSession):
		fmt.Fprintln(sh.out, err)
	}
}

func (sh *shell) create(ctx context.Context) {
	if sh.portal.Router.Current() != view.Admin || sh.portal.Router.Render().Denied {
		fmt.Fprintln(sh.out, view.MessageAdminRequired)
		return
	}
	sh.portal.Admin.SetForm(model.EventForm{
		Title:      sh.prompt("Title"),
		Location:   sh.prompt("Location"),
		Date:       sh.prompt("Date (YYYY-MM-DDTHH:MM)"),
		TotalSeats: sh.prompt("Total seats"),
	})
	if _, err := sh.portal.Admin.CreateEvent(ctx); errors.Is(err, admin.ErrInFlight) {
		fmt.Fprintln(sh.out, err)
	}
}

func (sh *shell) delete(ctx context.Context, args []string) {
	if sh.portal.Router.Current() != view.Admin || sh.portal.Router.Render().Denied {
		fmt.Fprintln(sh.out, view.MessageAdminRequired)
		return
	}
	id, ok := sh.idArg(args, "Usage: delete <event-id>")
	if !ok {
		return
	}
	_, err := sh.portal.Admin.DeleteEvent(ctx, id)
	if errors.Is(err, admin.ErrDeclined) || errors.Is(err, admin.ErrInFlight) {
		fmt.Fprintln(sh.out, err)
	}
}

func (sh *shell) idArg(args []string, usage string) (int64, bool) {
	if len(args) != 1 {
		fmt.Fprintln(sh.out, usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(sh.out, "Invalid id %q\n", args[0])
		return 0, false
	}
	return id, true
}

func (sh *shell) prompt(label string) string {
	fmt.Fprintf(sh.out, "%s: ", label)
	line, _ := sh.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// terminalPassword reads without echo when stdin is a terminal.
func (sh *shell) terminalPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return sh.prompt("Password"), nil
	}
	fmt.Fprint(sh.out, "Password: ")
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(sh.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}

func (sh *shell) render() {
	screen := sh.portal.Router.Render()

	labels := make([]string, 0, 5)
	for _, link := range sh.portal.Router.Links() {
		labels = append(labels, fmt.Sprintf("[%s]", link.Command))
	}
	fmt.Fprintf(sh.out, "\n%s\n", strings.Join(labels, " "))

	if screen.Notice != "" {
		fmt.Fprintln(sh.out, screen.Notice)
	}
	if screen.Denied {
		fmt.Fprintln(sh.out, screen.Message)
		return
	}

	switch screen.View {
	case view.Events:
		if screen.Message != "" {
			fmt.Fprintln(sh.out, screen.Message)
			return
		}
		sh.renderEvents(sh.portal.Inventory.Snapshot(), true)
	case view.MyBookings:
		sh.renderBookings()
	case view.Admin:
		sh.renderAdmin()
	case view.Login:
		fmt.Fprintln(sh.out, "Log in with: login <email>")
	case view.Signup:
		fmt.Fprintln(sh.out, "Create an account with: signup")
	}
}

func (sh *shell) renderEvents(state resource.State[[]model.Event], withBookingState bool) {
	if !renderStatus(sh.out, state.Status, state.Err, len(state.Data), "Events", "No events available.") {
		return
	}

	w := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tDATE\tSEATS\t")
	for _, event := range state.Data {
		seats := fmt.Sprintf("%d/%d", event.AvailableSeats, event.TotalSeats)
		if event.SoldOut() {
			seats = "SOLD OUT"
		}
		status := ""
		if withBookingState {
			status = operationText(sh.portal.Tracker.State(event.ID))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			event.ID, event.Title, event.Location, event.Date.Local().Format(dateDisplayLayout), seats, status)
	}
	w.Flush()
}

func (sh *shell) renderBookings() {
	state := sh.portal.History.Snapshot()
	if !renderStatus(sh.out, state.Status, state.Err, len(state.Data), "Bookings", "You have no bookings.") {
		return
	}

	w := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEVENT\tSEATS\tSTATUS\t")
	for _, booking := range state.Data {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\n",
			booking.ID, booking.EventID, booking.SeatsBooked, booking.Status,
			operationText(sh.portal.History.CancelState(booking.ID)))
	}
	w.Flush()
}

func (sh *shell) renderAdmin() {
	if text := operationText(sh.portal.Admin.Operation()); text != "" {
		fmt.Fprintln(sh.out, text)
	}
	sh.renderEvents(sh.portal.Admin.Events(), false)

	state := sh.portal.Admin.AllBookings()
	fmt.Fprintln(sh.out)
	if !renderStatus(sh.out, state.Status, state.Err, len(state.Data), "All bookings", "No bookings yet.") {
		return
	}
	w := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSER\tEMAIL\tEVENT\tSEATS\tSTATUS")
	for _, b := range state.Data {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", b.ID, b.UserName, b.UserEmail, b.EventTitle, b.SeatsBooked, b.Status)
	}
	w.Flush()
}

// renderStatus prints loading, error and empty states. It reports whether
// the caller should go on to print rows.
func renderStatus(out io.Writer, status resource.Status, err error, rows int, title, empty string) bool {
	switch {
	case status == resource.StatusLoading:
		fmt.Fprintf(out, "%s: loading...\n", title)
		return false
	case status == resource.StatusFailed:
		fmt.Fprintf(out, "%s: failed to load (%v)\n", title, err)
		return rows > 0
	case status == resource.StatusIdle:
		return false
	case rows == 0:
		fmt.Fprintln(out, empty)
		return false
	}
	return true
}

func operationText(state model.OperationState) string {
	switch state.Status {
	case model.OperationLoading:
		return "working..."
	case model.OperationSuccess, model.OperationError:
		return state.Message
	default:
		return ""
	}
}
