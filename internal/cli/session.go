package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/roach88/dynarray/internal/canonical"
	"github.com/roach88/dynarray/internal/dynarray"
	"github.com/roach88/dynarray/internal/store"
)

// session is a list loaded into an array for the duration of one command.
type session struct {
	store *store.Store
	list  *store.List[string]
	array *dynarray.Array[string]
}

// openSession opens the configured database and loads the configured list.
func openSession(ctx context.Context, opts *RootOptions) (*session, error) {
	st, err := openStore(opts)
	if err != nil {
		return nil, err
	}

	var listOpts []store.ListOption
	if opts.RevisionGenerator != nil {
		listOpts = append(listOpts, store.WithRevisionGenerator(opts.RevisionGenerator))
	}
	list, err := store.NewList(st, opts.Config.List, store.TextCodec{}, listOpts...)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, CodeInvalidArgument, "invalid list", err)
	}

	array, err := dynarray.NewFromStore[string](ctx, list)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitFailure, CodeStore, "failed to load list", err)
	}

	slog.Debug("list opened",
		"list", list.Name(),
		"length", array.Len(),
	)
	return &session{store: st, list: list, array: array}, nil
}

// openStore opens the configured database.
func openStore(opts *RootOptions) (*store.Store, error) {
	slog.Debug("opening database", "path", opts.Config.Database)
	st, err := store.Open(opts.Config.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, CodeStore, "failed to open database", err)
	}
	return st, nil
}

// save persists pending changes.
func (s *session) save(ctx context.Context) error {
	if err := s.array.Save(ctx); err != nil {
		return WrapExitError(ExitFailure, CodeStore, "failed to save list", err)
	}
	return nil
}

func (s *session) close() {
	if err := s.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// mutate loads the list, applies fn and saves the result.
func mutate(ctx context.Context, opts *RootOptions, fn func(a *dynarray.Array[string]) error) (*session, error) {
	s, err := openSession(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer s.close()

	if err := fn(s.array); err != nil {
		return nil, err
	}
	if err := s.save(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// MutationResult reports the list state after a change.
type MutationResult struct {
	List     string `json:"list"`
	Length   int    `json:"length"`
	Capacity int    `json:"capacity"`
}

func (s *session) mutationResult() MutationResult {
	return MutationResult{
		List:     s.list.Name(),
		Length:   s.array.Len(),
		Capacity: s.array.Cap(),
	}
}

// canonicalValues converts command-line values to canonical JSON text.
// Values that are not JSON are stored as JSON strings.
func canonicalValues(args []string) ([]string, error) {
	values := make([]string, len(args))
	for i, arg := range args {
		v, err := canonical.Canonicalize(arg)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, CodeInvalidArgument,
				fmt.Sprintf("invalid value %q", arg), err)
		}
		values[i] = v
	}
	return values, nil
}

// parseIndex parses a command-line index.
func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, CodeInvalidArgument,
			fmt.Sprintf("invalid index %q", arg), err)
	}
	return i, nil
}

// operationError maps an array error to an ExitError.
func operationError(err error) error {
	switch {
	case errors.Is(err, dynarray.ErrIndexOutOfRange):
		return WrapExitError(ExitFailure, CodeIndexOutOfRange, "index out of range", err)
	case errors.Is(err, dynarray.ErrNullArgument), errors.Is(err, dynarray.ErrInvalidArgument):
		return WrapExitError(ExitCommandError, CodeInvalidArgument, "invalid argument", err)
	default:
		return WrapExitError(ExitFailure, CodeStore, "operation failed", err)
	}
}
