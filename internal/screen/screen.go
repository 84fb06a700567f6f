package screen

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nais/usersync/internal/controller"
	"github.com/nais/usersync/internal/search"
	"github.com/nais/usersync/internal/users"
	"github.com/sirupsen/logrus"
)

const (
	title      = "User management"
	emptyState = "No users!"
	loadingMsg = "Loading..."
)

const help = `commands:
  name <text>      set the name of the new user
  address <text>   set the address of the new user
  email <text>     set the email of the new user
  submit           add the new user
  reload           fetch the users again
  find <query>     show users matching query
  show             show the screen
  help             show this help
  quit             exit`

// Controller is the part of the user sync controller the screen dispatches to
type Controller interface {
	Initialize(ctx context.Context)
	ListUsers(ctx context.Context) error
	CreateUser(ctx context.Context) (*users.User, error)
	SetName(string)
	SetAddress(string)
	SetEmail(string)
	State() controller.State
}

// Screen is a line oriented terminal front end for the controller
type Screen struct {
	in   io.Reader
	log  logrus.FieldLogger
	ctrl Controller

	// set while a request started from the screen is running
	inflight atomic.Bool
	requests sync.WaitGroup

	lock sync.Mutex
	out  io.Writer
}

func New(in io.Reader, out io.Writer, log logrus.FieldLogger) *Screen {
	return &Screen{in: in, out: out, log: log}
}

// Attach sets the controller the screen dispatches to. It must be called before Run.
func (s *Screen) Attach(ctrl Controller) {
	s.ctrl = ctrl
}

// Notify implements controller.Notifier
func (s *Screen) Notify(n controller.Notification) {
	s.printf("[%s] %s\n", n.Title, n.Message)
}

// StateChanged shows the loading indicator. It is registered as a controller state listener.
func (s *Screen) StateChanged(state controller.State) {
	if state.Status.Loading() {
		s.printf("%s\n", loadingMsg)
	}
}

// Run mounts the screen and handles commands until the input ends, quit is read or ctx is done.
// Submit and reload run in the background, Run returns once they have completed.
func (s *Screen) Run(ctx context.Context) error {
	if s.ctrl == nil {
		return fmt.Errorf("no controller attached")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.requests.Wait()

	s.ctrl.Initialize(ctx)
	s.Render(s.ctrl.State())

	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-errs; err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				return nil
			}
			if quit := s.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

func (s *Screen) handle(ctx context.Context, line string) (quit bool) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	s.log.WithField("command", cmd).Debug("handling command")

	switch strings.ToLower(cmd) {
	case "":
	case "name":
		s.ctrl.SetName(arg)
	case "address":
		s.ctrl.SetAddress(arg)
	case "email":
		s.ctrl.SetEmail(arg)
	case "submit":
		s.dispatch(ctx, func(ctx context.Context) {
			_, _ = s.ctrl.CreateUser(ctx)
		})
	case "reload":
		s.dispatch(ctx, func(ctx context.Context) {
			_ = s.ctrl.ListUsers(ctx)
		})
	case "find":
		s.renderRecords(search.Users(s.ctrl.State().Records, arg))
	case "show":
		s.Render(s.ctrl.State())
	case "help":
		s.printf("%s\n", help)
	case "quit", "exit":
		return true
	default:
		s.printf("unknown command %q, type help for a list of commands\n", cmd)
	}
	return false
}

// dispatch runs fn in the background unless a request is already running
func (s *Screen) dispatch(ctx context.Context, fn func(ctx context.Context)) {
	if s.ctrl.State().Status.Loading() || !s.inflight.CompareAndSwap(false, true) {
		s.printf("busy, wait for the current request to finish\n")
		return
	}

	s.requests.Add(1)
	go func() {
		defer s.requests.Done()
		defer s.inflight.Store(false)
		fn(ctx)
		s.Render(s.ctrl.State())
	}()
}

// Render writes the whole screen for state
func (s *Screen) Render(state controller.State) {
	b := &strings.Builder{}
	fmt.Fprintf(b, "== %s ==\n", title)
	fmt.Fprintf(b, "Name:    %s\n", state.Draft.Name)
	fmt.Fprintf(b, "Address: %s\n", state.Draft.Address)
	fmt.Fprintf(b, "Email:   %s\n", state.Draft.Email)

	switch state.Status.Kind {
	case controller.StatusLoading:
		fmt.Fprintf(b, "%s\n", loadingMsg)
	case controller.StatusError:
		fmt.Fprintf(b, "! %s\n", state.Status.Message)
	}

	b.WriteString("--\n")
	writeRecords(b, state.Records)
	s.printf("%s", b.String())
}

func (s *Screen) renderRecords(records []users.User) {
	b := &strings.Builder{}
	writeRecords(b, records)
	s.printf("%s", b.String())
}

func writeRecords(w io.Writer, records []users.User) {
	if len(records) == 0 {
		fmt.Fprintf(w, "%s\n", emptyState)
		return
	}
	for _, u := range records {
		fmt.Fprintf(w, "Name: %s\nAddress: %s\nEmail: %s\n\n", u.Name, u.Address, u.Email)
	}
}

func (s *Screen) printf(format string, args ...any) {
	s.lock.Lock()
	defer s.lock.Unlock()
	fmt.Fprintf(s.out, format, args...)
}
