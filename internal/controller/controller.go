package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/nais/usersync/internal/users"
	"github.com/sirupsen/logrus"
)

var errEmptyResponse = errors.New("no user in response")

// Store is the remote user collection
type Store interface {
	List(ctx context.Context) ([]users.User, error)
	Create(ctx context.Context, user users.NewUser) (*users.User, error)
}

// Draft holds the values of the create form that has not been submitted yet
type Draft struct {
	Name    string
	Address string
	Email   string
}

func (d Draft) missing() []string {
	ret := []string{}
	if d.Name == "" {
		ret = append(ret, "name")
	}
	if d.Address == "" {
		ret = append(ret, "address")
	}
	if d.Email == "" {
		ret = append(ret, "email")
	}
	return ret
}

// State is a snapshot of the controller, safe to keep after the controller changes
type State struct {
	Records []users.User
	Draft   Draft
	Status  Status
}

type Option func(*Controller)

func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithStateListener registers a function called with a snapshot after every state change.
// It is called without the controller lock held.
func WithStateListener(fn func(State)) Option {
	return func(c *Controller) {
		c.listener = fn
	}
}

// Controller keeps a local copy of the user collection in sync with the remote endpoint.
// List and create requests are not coordinated with each other: whichever response
// resolves last decides the status.
type Controller struct {
	store    Store
	log      logrus.FieldLogger
	notifier Notifier
	listener func(State)
	init     sync.Once

	lock    sync.Mutex
	records []users.User
	draft   Draft
	status  Status
}

func New(store Store, log logrus.FieldLogger, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		log:      log,
		notifier: discard,
		records:  []users.User{},
		status:   idle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize fetches the collection the first time it is called. Subsequent calls do nothing.
func (c *Controller) Initialize(ctx context.Context) {
	c.init.Do(func() {
		_ = c.ListUsers(ctx)
	})
}

// ListUsers replaces the local records with the collection held by the endpoint.
// On failure the records are left untouched.
func (c *Controller) ListUsers(ctx context.Context) error {
	c.update(func() {
		c.status = loading()
	})

	records, err := c.store.List(ctx)
	if err != nil {
		err = &RequestError{Op: "list users", Err: err}
		c.update(func() {
			c.status = failed(MessageFetchFailed, err)
		})
		c.notifier.Notify(Notification{Level: LevelError, Title: TitleError, Message: MessageFetchFailed})
		return err
	}

	if records == nil {
		records = []users.User{}
	}
	c.update(func() {
		c.records = records
		c.status = idle()
	})
	c.log.WithField("count", len(records)).Debug("fetched users")
	return nil
}

// CreateUser submits the current draft. The returned record is appended to the local records
// and the draft is cleared.
func (c *Controller) CreateUser(ctx context.Context) (*users.User, error) {
	c.lock.Lock()
	draft := c.draft
	c.lock.Unlock()

	if missing := draft.missing(); len(missing) > 0 {
		err := &ValidationError{Missing: missing}
		c.update(func() {
			c.status = failed(MessageMissingFields, err)
		})
		c.notifier.Notify(Notification{Level: LevelError, Title: TitleError, Message: err.Error()})
		return nil, err
	}

	c.update(func() {
		c.status = loading()
	})

	user, err := c.store.Create(ctx, users.NewUser{
		Name:    draft.Name,
		Address: draft.Address,
		Email:   draft.Email,
	})
	if err == nil && user == nil {
		err = errEmptyResponse
	}
	if err != nil {
		err = &RequestError{Op: "create user", Err: err}
		c.update(func() {
			c.status = failed(MessageCreateFailed, err)
		})
		c.notifier.Notify(Notification{Level: LevelError, Title: TitleError, Message: MessageCreateFailed})
		return nil, err
	}

	c.update(func() {
		c.records = append(c.records, *user)
		c.draft = Draft{}
		c.status = idle()
	})
	c.log.WithField("id", user.ID).Debug("created user")
	c.notifier.Notify(Notification{Level: LevelInfo, Title: TitleSuccess, Message: MessageUserCreated})
	return user, nil
}

func (c *Controller) SetName(name string) {
	c.update(func() {
		c.draft.Name = name
	})
}

func (c *Controller) SetAddress(address string) {
	c.update(func() {
		c.draft.Address = address
	})
}

func (c *Controller) SetEmail(email string) {
	c.update(func() {
		c.draft.Email = email
	})
}

func (c *Controller) State() State {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.snapshot()
}

func (c *Controller) update(fn func()) {
	c.lock.Lock()
	fn()
	s := c.snapshot()
	c.lock.Unlock()

	if c.listener != nil {
		c.listener(s)
	}
}

func (c *Controller) snapshot() State {
	records := make([]users.User, len(c.records))
	copy(records, c.records)
	return State{
		Records: records,
		Draft:   c.draft,
		Status:  c.status,
	}
}
