// Package store holds the in-memory template, contact and campaign
// collections. Each store is an explicit instance that starts empty and may
// write through to a repository before committing a change, so a failed
// write leaves the store untouched.
package store

import (
	"time"

	"github.com/google/uuid"
)

type options struct {
	newID func() string
	now   func() time.Time
}

type Option func(*options)

// WithIDGenerator replaces the uuid based id generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(o *options) { o.now = fn }
}

func buildOptions(opts []Option) options {
	o := options{
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
