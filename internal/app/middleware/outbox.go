package middleware

import (
	"context"

	"stayquote/internal/app/commands"
	"stayquote/internal/app/outbox"
)

// OutboxFlush flushes the outbox after a command succeeds, so calendar and
// profile events written during the command become visible to the publisher.
func OutboxFlush(box outbox.Outbox) CommandMiddleware {
	if box == nil {
		panic("middleware: outbox required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			res, err := nextFn(ctx, cmd)
			if err != nil {
				return nil, err
			}
			if err := box.Flush(ctx); err != nil {
				return nil, err
			}
			return res, nil
		})
	}
}
