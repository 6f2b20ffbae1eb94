package innertube

import (
	"context"
	"errors"
)

var (
	ErrPagerDone            = errors.New("innertube: pager exhausted")
	ErrContinuationReplayed = errors.New("innertube: continuation already consumed")
)

// Page is one step of a listing. An empty Continuation ends the listing;
// an empty Items with a Continuation does not.
type Page[T any] struct {
	Items        []T
	Continuation string
}

type (
	FirstPageFunc[T any] func(ctx context.Context) (Page[T], error)
	PageFunc[T any]      func(ctx context.Context, continuation string) (Page[T], error)
)

// Pager walks a listing page by page. It moves Start -> HasPage -> Done,
// and only a page without a continuation ends it. A failed fetch leaves the
// state unchanged so the same step can be tried again.
type Pager[T any] struct {
	first    FirstPageFunc[T]
	next     PageFunc[T]
	started  bool
	done     bool
	cursor   string
	consumed map[string]struct{}
}

func NewPager[T any](first FirstPageFunc[T], next PageFunc[T]) *Pager[T] {
	return &Pager[T]{first: first, next: next, consumed: make(map[string]struct{})}
}

// ResumePager continues a listing from a checkpointed cursor.
func ResumePager[T any](cursor string, next PageFunc[T]) *Pager[T] {
	return &Pager[T]{
		next:     next,
		started:  true,
		done:     cursor == "",
		cursor:   cursor,
		consumed: make(map[string]struct{}),
	}
}

// Next fetches the following page. Once Done it returns ErrPagerDone.
func (p *Pager[T]) Next(ctx context.Context) ([]T, error) {
	if p.done {
		return nil, ErrPagerDone
	}

	var (
		page Page[T]
		err  error
	)
	if !p.started {
		page, err = p.first(ctx)
	} else {
		if _, seen := p.consumed[p.cursor]; seen {
			return nil, ErrContinuationReplayed
		}
		page, err = p.next(ctx, p.cursor)
	}
	if err != nil {
		return nil, err
	}

	if p.started {
		p.consumed[p.cursor] = struct{}{}
	}
	p.started = true
	p.cursor = page.Continuation
	p.done = page.Continuation == ""
	return page.Items, nil
}

func (p *Pager[T]) Done() bool {
	return p.done
}

// Cursor is the continuation the next call will consume, empty when none.
func (p *Pager[T]) Cursor() string {
	if p.done {
		return ""
	}
	return p.cursor
}

// All drains the pager.
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	var out []T
	for !p.done {
		items, err := p.Next(ctx)
		if err != nil {
			return out, err
		}
		out = append(out, items...)
	}
	return out, nil
}
