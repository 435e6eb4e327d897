package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/repository"
)

// existence is one "does this referenced row exist?" question asked
// alongside a primary operation.
type existence struct {
	key   repository.Key
	value any
}

func exists(key repository.Key, value any) existence {
	return existence{key: key, value: value}
}

// joinChecked runs primary and every check concurrently and waits for all of
// them before deciding what to report.
//
// PRECEDENCE:
//  1. primary failed with anything other than not-found: that error
//  2. a check itself failed (database error): that error
//  3. a check found nothing: NotFound naming that resource and value
//  4. otherwise primary's own result (nil or its not-found)
//
// So "POST a comment as an unknown user" reports "user nobody not found"
// instead of an anonymous foreign-key failure, while an empty but real parent
// (an article with no comments) is a plain success.
func joinChecked(ctx context.Context, checker repository.ExistenceChecker, primary func(ctx context.Context) error, checks ...existence) error {
	var (
		g          errgroup.Group
		primaryErr error
		found      = make([]bool, len(checks))
		checkErrs  = make([]error, len(checks))
	)

	// Each goroutine records its own outcome and returns nil, so Wait only
	// synchronises. Cancelling siblings on first failure would lose the
	// information the precedence rules need.
	g.Go(func() error {
		primaryErr = primary(ctx)
		return nil
	})
	for i, c := range checks {
		g.Go(func() error {
			found[i], checkErrs[i] = checker.Exists(ctx, c.key, c.value)
			return nil
		})
	}
	_ = g.Wait()

	if primaryErr != nil && apperror.KindOf(primaryErr) != apperror.KindNotFound {
		return primaryErr
	}
	for _, err := range checkErrs {
		if err != nil {
			return err
		}
	}
	for i, c := range checks {
		if !found[i] {
			return apperror.NotFound(c.key.Resource(), fmt.Sprint(c.value))
		}
	}
	return primaryErr
}

// checkVoteDelta rejects inc_votes values the votes columns cannot hold.
func checkVoteDelta(delta int) error {
	if delta < math.MinInt32 || delta > math.MaxInt32 {
		return apperror.ValidationFailed("inc_votes",
			fmt.Sprintf("inc_votes must be between %d and %d", math.MinInt32, math.MaxInt32))
	}
	return nil
}

// logFailure adds service context to a store failure at Debug. The handler
// reports the same error once at Error, together with its incident id.
// Client mistakes (validation, not-found, conflict) are not logged at all.
func logFailure(logger *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	if apperror.KindOf(err) != apperror.KindInternal {
		return
	}
	args := make([]any, 0, len(attrs)+1)
	for _, a := range attrs {
		args = append(args, a)
	}
	args = append(args, slog.String("error", err.Error()))
	logger.Debug(msg, args...)
}
