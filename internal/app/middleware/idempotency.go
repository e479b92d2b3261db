package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"stayquote/internal/app/commands"
)

// IdempotentCommand must be implemented by commands that want idempotency guarantees.
type IdempotentCommand interface {
	commands.Command
	IdempotencyKey() string
	ResultPrototype() any // should match the handler result type
}

type IdempotencyRecord struct {
	Key        string
	Payload    []byte
	Error      string
	OccurredAt time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool, error)
	Save(ctx context.Context, rec IdempotencyRecord) error
}

type ResultCodec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}

type JSONResultCodec struct{}

func (JSONResultCodec) Encode(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSONResultCodec) Decode(data []byte, out any) error { return json.Unmarshal(data, out) }

var errMissingPrototype = errors.New("middleware: idempotent command requires result prototype")

// Idempotency replays the stored outcome for a repeated Idempotency-Key
// instead of re-running the handler. Failed attempts are stored too, so a
// retried key reproduces the original rejection rather than applying the
// same overrides twice.
func Idempotency(store IdempotencyStore, codec ResultCodec) CommandMiddleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	if codec == nil {
		codec = JSONResultCodec{}
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			idCmd, ok := cmd.(IdempotentCommand)
			if !ok || idCmd.IdempotencyKey() == "" {
				return nextFn(ctx, cmd)
			}
			key := idCmd.IdempotencyKey()

			rec, found, err := store.Get(ctx, key)
			if err != nil {
				return nil, err
			}
			if found {
				return replay(rec, idCmd, codec)
			}

			result, err := nextFn(ctx, cmd)
			if saveErr := record(ctx, store, codec, key, result, err); saveErr != nil {
				if err != nil {
					return nil, errors.Join(err, saveErr)
				}
				return nil, saveErr
			}
			if err != nil {
				return nil, err
			}
			return result, nil
		})
	}
}

func replay(rec IdempotencyRecord, cmd IdempotentCommand, codec ResultCodec) (any, error) {
	if rec.Error != "" {
		return nil, errors.New(rec.Error)
	}
	proto := cmd.ResultPrototype()
	if proto == nil {
		return nil, errMissingPrototype
	}
	if err := codec.Decode(rec.Payload, proto); err != nil {
		return nil, err
	}
	return normalizePrototype(proto), nil
}

func record(ctx context.Context, store IdempotencyStore, codec ResultCodec, key string, result any, handlerErr error) error {
	rec := IdempotencyRecord{Key: key, OccurredAt: time.Now().UTC()}
	if handlerErr != nil {
		rec.Error = handlerErr.Error()
		return store.Save(ctx, rec)
	}
	if result != nil {
		payload, err := codec.Encode(result)
		if err != nil {
			return err
		}
		rec.Payload = payload
	}
	return store.Save(ctx, rec)
}

func normalizePrototype(proto any) any {
	rv := reflect.ValueOf(proto)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Interface()
	}
	return proto
}
