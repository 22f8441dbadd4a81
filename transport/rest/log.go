package rest

import "github.com/gofiber/fiber/v2"

func LogHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		requestLog(ctx).Infoln("Handling request.")
		return ctx.Next()
	}
}

type RequestObserver interface {
	ObserveRequest(route string, code int)
}

// MetricsHandler reports the final status code of every request to observer.
// Errors are resolved through the app error handler first so that the
// reported code is the one sent to the client.
func MetricsHandler(observer RequestObserver) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			if err := ctx.App().Config().ErrorHandler(ctx, err); err != nil {
				return err
			}
		}
		observer.ObserveRequest(ctx.Route().Path, ctx.Response().StatusCode())
		return nil
	}
}
