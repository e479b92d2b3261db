package middleware

import (
	"context"

	"stayquote/internal/app/commands"
	"stayquote/internal/app/queries"
)

// CommandMiddleware wraps a command bus with one concern (validation, tx, outbox).
type CommandMiddleware func(next commands.Bus) commands.Bus

// QueryMiddleware wraps a query bus the same way.
type QueryMiddleware func(next queries.Bus) queries.Bus

// ChainCommands applies middleware so the first argument runs outermost:
// ChainCommands(bus, Validation(...), Transaction(...)) validates before it
// opens a transaction.
func ChainCommands(base commands.Bus, mws ...CommandMiddleware) commands.Bus {
	wrapped := base
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	return wrapped
}

// ChainQueries applies query middleware, first argument outermost.
func ChainQueries(base queries.Bus, mws ...QueryMiddleware) queries.Bus {
	wrapped := base
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	return wrapped
}

type commandFunc func(ctx context.Context, cmd commands.Command) (any, error)

func (f commandFunc) Dispatch(ctx context.Context, cmd commands.Command) (any, error) {
	return f(ctx, cmd)
}

func wrapCommand(next commands.Bus) commandFunc {
	return func(ctx context.Context, cmd commands.Command) (any, error) {
		return next.Dispatch(ctx, cmd)
	}
}

type queryFunc func(ctx context.Context, query queries.Query) (any, error)

func (f queryFunc) Ask(ctx context.Context, q queries.Query) (any, error) {
	return f(ctx, q)
}

func wrapQuery(next queries.Bus) queryFunc {
	return func(ctx context.Context, q queries.Query) (any, error) {
		return next.Ask(ctx, q)
	}
}
