// Package entity implements the list-mirror controller used for every
// secondary resource (departments, programs, students, roles): a private
// in-memory copy of the server list, loading/error state, and remote CRUD
// that reconciles the mirror after each call completes.
package entity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/CampusFoundry/ums-console/pkg/umsapi"
)

// errTTL is how long a surfaced error stays readable before it self-clears.
const errTTL = 5 * time.Second

// Service is the remote side of a controller. Implementations adapt one
// umsapi entity family to the generic contract.
type Service[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, dto any) (*T, error)
	Update(ctx context.Context, id string, dto any) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Controller owns a local mirror of one entity list. Entities are addressed
// by their server id everywhere; positions are resolved against the mirror
// only at the moment of a call, and a stale id fails fast instead of
// touching the wrong element.
type Controller[T any] struct {
	name    string // entity kind for messages, e.g. "department"
	service Service[T]
	idOf    func(T) string

	mu       sync.Mutex
	list     []T
	loading  bool
	err      string
	errTimer *time.Timer
	closed   bool
}

// NewController builds a controller for one entity kind. idOf extracts the
// server-assigned id from an entity.
func NewController[T any](name string, service Service[T], idOf func(T) string) *Controller[T] {
	return &Controller[T]{
		name:    name,
		service: service,
		idOf:    idOf,
		list:    []T{},
	}
}

// List returns a snapshot of the mirror.
func (c *Controller[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.list))
	copy(out, c.list)
	return out
}

// Loading reports whether a remote call is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the current user-facing error message, empty when none. The
// message self-clears five seconds after it was set.
func (c *Controller[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close stops the controller: subsequent completions no longer touch its
// state and any pending error expiry is cancelled.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.errTimer != nil {
		c.errTimer.Stop()
		c.errTimer = nil
	}
}

// Refresh replaces the mirror wholesale with the server list. A nil result
// becomes an empty list. The loading flag always clears, success or not.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.setLoading(true)
	c.clearErr()
	defer c.setLoading(false)

	items, err := c.service.List(ctx)
	if err != nil {
		c.fail(err)
		return err
	}
	if items == nil {
		items = []T{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.list = items
	return nil
}

// Add creates an entity remotely, appends the server-shaped result to the
// mirror, then refreshes the whole list so server-derived fields (computed
// codes, counts) reconcile. The error is returned as well as surfaced so a
// caller mid-flow can react.
func (c *Controller[T]) Add(ctx context.Context, dto any) (*T, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	created, err := c.service.Create(ctx, dto)
	if err != nil {
		c.fail(err)
		return nil, err
	}

	c.mu.Lock()
	if !c.closed {
		c.list = append(c.list, *created)
	}
	c.mu.Unlock()

	if err := c.Refresh(ctx); err != nil {
		slog.Warn("post-create refresh failed", "entity", c.name, "error", err)
	}
	return created, nil
}

// Edit updates the entity with the given id. A missing id aborts before any
// network call. On success the mirror element is replaced in place and the
// list refreshed.
func (c *Controller[T]) Edit(ctx context.Context, id string, dto any) (*T, error) {
	if _, ok := c.resolve(id); !ok {
		err := umsapi.ValidationError("invalid %s selected", c.name)
		c.fail(err)
		return nil, err
	}

	c.setLoading(true)
	defer c.setLoading(false)

	updated, err := c.service.Update(ctx, id, dto)
	if err != nil {
		c.fail(err)
		return nil, err
	}

	c.mu.Lock()
	if !c.closed {
		// Re-resolve: the mirror may have shifted while the call was out.
		for i := range c.list {
			if c.idOf(c.list[i]) == id {
				c.list[i] = *updated
				break
			}
		}
	}
	c.mu.Unlock()

	if err := c.Refresh(ctx); err != nil {
		slog.Warn("post-edit refresh failed", "entity", c.name, "error", err)
	}
	return updated, nil
}

// Delete removes the entity with the given id. No forced refresh afterwards:
// deletion has no server-derived fields to reconcile.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	if _, ok := c.resolve(id); !ok {
		err := umsapi.ValidationError("invalid %s selected", c.name)
		c.fail(err)
		return err
	}

	c.setLoading(true)
	defer c.setLoading(false)

	if err := c.service.Delete(ctx, id); err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	for i := range c.list {
		if c.idOf(c.list[i]) == id {
			c.list = append(c.list[:i], c.list[i+1:]...)
			break
		}
	}
	return nil
}

// AutoRefresh re-lists the entity at the given interval until ctx is
// cancelled. The first refresh fires immediately.
func (c *Controller[T]) AutoRefresh(ctx context.Context, interval time.Duration, onUpdate func([]T)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := c.Refresh(ctx); err != nil {
			slog.Warn("auto-refresh failed", "entity", c.name, "error", err)
		} else if onUpdate != nil {
			onUpdate(c.List())
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// resolve finds the mirror position of an id at call time.
func (c *Controller[T]) resolve(id string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == "" {
		return -1, false
	}
	for i := range c.list {
		if c.idOf(c.list[i]) == id {
			return i, true
		}
	}
	return -1, false
}

func (c *Controller[T]) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.loading = v
}

// fail records a user-facing error message and arms the self-clear timer,
// superseding any previous one.
func (c *Controller[T]) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.err = err.Error()
	if c.errTimer != nil {
		c.errTimer.Stop()
	}
	c.errTimer = time.AfterFunc(errTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.err = ""
		c.errTimer = nil
	})
}

func (c *Controller[T]) clearErr() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = ""
	if c.errTimer != nil {
		c.errTimer.Stop()
		c.errTimer = nil
	}
}

// String names the controller for logs.
func (c *Controller[T]) String() string {
	return fmt.Sprintf("entity.Controller[%s]", c.name)
}
