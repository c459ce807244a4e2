package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"

	logx "github.com/mindmate-ai/server/pkg/logger"
)

// newNodeHandler logs node lifecycle events around every graph component.
func newNodeHandler() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, input einocb.CallbackInput) context.Context {
			if info != nil {
				logx.Debug().
					Str("component", string(info.Component)).
					Str("node", info.Name).
					Msg("node start")
			}
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, output einocb.CallbackOutput) context.Context {
			if info != nil {
				logx.Debug().
					Str("component", string(info.Component)).
					Str("node", info.Name).
					Msg("node end")
			}
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			if info != nil {
				logx.Error().
					Err(err).
					Str("component", string(info.Component)).
					Str("node", info.Name).
					Msg("node error")
			}
			return ctx
		}).
		Build()
}
