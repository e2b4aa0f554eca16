package common

import (
	"context"
	"reflect"
	"strings"

	"github.com/andrescamacho/mekanik-go/internal/application/mediator"
)

// LoggerMiddleware injects logger into the context of every request that does
// not carry one yet, and logs failed requests at ERROR
func LoggerMiddleware(logger Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if _, ok := ctx.Value(loggerKey).(Logger); !ok {
			ctx = WithLogger(ctx, logger)
		}

		response, err := next(ctx, request)
		if err != nil {
			LoggerFromContext(ctx).Log("ERROR", "Request failed", map[string]interface{}{
				"request": requestName(request),
				"error":   err.Error(),
			})
		}
		return response, err
	}
}

func requestName(request mediator.Request) string {
	if request == nil {
		return "nil"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	return name[strings.LastIndex(name, ".")+1:]
}
