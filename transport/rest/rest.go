package rest

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	ErrorMessage string `json:"error_message"`
}

// Client visible error with a json body describing what went wrong.
type apiError struct {
	Status        int               `json:"status"`
	Title         string            `json:"error"`
	Message       string            `json:"message"`
	Filters       map[string]string `json:"filters,omitempty"`
	AllowedFields []string          `json:"allowedFields,omitempty"`
	Count         int               `json:"count,omitempty"`
	Releases      interface{}       `json:"releases,omitempty"`
}

func (e *apiError) Error() string {
	return e.Message
}

func requestLog(ctx *fiber.Ctx) *logrus.Entry {
	return logrus.
		WithField("remote_addr", ctx.Context().RemoteAddr()).
		WithField("path", ctx.Path()).
		WithField("query", string(ctx.Request().URI().QueryString())).
		WithField("z_user_agent", string(ctx.Request().Header.Peek("User-Agent"))).
		WithField("z_x_forwared_for", string(ctx.Request().Header.Peek("X-Forwarded-For")))
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var ae *apiError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ae):
		return ctx.Status(ae.Status).JSON(ae)
	case errors.As(err, &fe):
		return ctx.
			Status(fe.Code).
			JSON(&ErrorResponse{ErrorMessage: fe.Message})
	default:
		requestLog(ctx).WithError(err).Errorln("Internal server error.")
		// keep internal server errors private. reply with generic error message.
		return ctx.
			Status(fiber.ErrInternalServerError.Code).
			JSON(&ErrorResponse{ErrorMessage: fiber.ErrInternalServerError.Message})
	}
}

func NotFoundHandler(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotFound)
}
