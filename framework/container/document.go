package container

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ── Page document ────────────────────────────────────────────────────────────

// Document is the page the loader inserts file elements into. Append starts
// loading el; the document must later call exactly one of el.Loaded or
// el.Failed, from any goroutine. An error from Append means the element
// could not be inserted and counts as a failed load.
type Document interface {
	Append(ctx context.Context, el *Element) error
}

// DocumentFunc adapts a function to Document.
type DocumentFunc func(ctx context.Context, el *Element) error

func (f DocumentFunc) Append(ctx context.Context, el *Element) error { return f(ctx, el) }

// Element is a loadable script or stylesheet element.
type Element struct {
	Name string
	Kind ResourceKind
	Path string

	once sync.Once
	done chan error
}

// NewElement creates an element for a file dependency's final path.
func NewElement(name string, kind ResourceKind, path string) *Element {
	return &Element{Name: name, Kind: kind, Path: path, done: make(chan error, 1)}
}

// Loaded signals success. Only the first signal counts.
func (e *Element) Loaded() { e.settle(nil) }

// Failed signals a load error. Only the first signal counts.
func (e *Element) Failed(err error) {
	if err == nil {
		err = errors.New("element failed to load")
	}
	e.settle(err)
}

// Done delivers the element's single load result.
func (e *Element) Done() <-chan error { return e.done }

func (e *Element) settle(err error) {
	e.once.Do(func() {
		e.done <- err
		close(e.done)
	})
}

// ── Future ────────────────────────────────────────────────────────────────────

// Future is the pending or settled result of an on-demand file load. Every
// caller asking for the same file gets the same Future.
type Future struct {
	ID string

	once sync.Once
	done chan struct{}
	err  error
}

func newFuture() *Future {
	return &Future{ID: uuid.NewString(), done: make(chan struct{})}
}

// Done is closed once the load settles.
func (f *Future) Done() <-chan struct{} { return f.done }

// Err returns the load error once settled, nil while pending or on success.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Wait blocks until the load settles or ctx is done.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Future) settle(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}
