package support

import (
	"context"

	"stayquote/internal/app/uow"
)

// BeginReadOnlyUnit reuses an ambient unit of work when one is already open,
// otherwise starts a read-only unit and returns a cleanup that rolls it back.
func BeginReadOnlyUnit(ctx context.Context, factory uow.UoWFactory) (uow.UnitOfWork, context.Context, func(), error) {
	unit, ok := uow.FromContext(ctx)
	if ok {
		return unit, ctx, nil, nil
	}
	if factory == nil {
		return nil, ctx, nil, uow.ErrUnitOfWorkMissing
	}
	newUnit, err := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, ctx, nil, err
	}
	execCtx := uow.Attach(ctx, newUnit)
	cleanup := func() {
		_ = newUnit.Rollback(execCtx)
	}
	return newUnit, execCtx, cleanup, nil
}

// BeginWriteUnit reuses an ambient unit of work when the transaction
// middleware already opened one, otherwise starts a managed unit the caller
// must commit or roll back.
func BeginWriteUnit(ctx context.Context, factory uow.UoWFactory) (uow.UnitOfWork, context.Context, bool, error) {
	unit, ok := uow.FromContext(ctx)
	if ok {
		return unit, ctx, false, nil
	}
	if factory == nil {
		return nil, ctx, false, uow.ErrUnitOfWorkMissing
	}
	newUnit, err := factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, ctx, false, err
	}
	return newUnit, uow.Attach(ctx, newUnit), true, nil
}
