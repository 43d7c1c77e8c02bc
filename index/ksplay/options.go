package ksplay

import (
	"log/slog"

	"github.com/btree-query-bench/ksplay/persist"
)

// Options configures a Tree. A nil *Options selects the defaults.
type Options struct {
	// Logger receives per-step debug output and invariant failures.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// CheckInvariants runs a full Check after every operation. Expensive;
	// meant for tests and debugging.
	CheckInvariants bool

	// Storage is handed to persist by Dict.SaveTo and Dict.LoadFrom. When nil,
	// snapshots go to the OS filesystem and log through Logger.
	Storage *persist.Options
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o *Options) storage() *persist.Options {
	if o == nil {
		return nil
	}
	if o.Storage != nil {
		return o.Storage
	}
	return &persist.Options{Logger: o.Logger}
}
