package rest

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/splunk-releases/releases"
)

const SnapshotHeader = "X-Catalog-Snapshot"

type ReleaseController struct {
	Store  releases.CatalogStore
	Limits releases.Limits
}

func (c *ReleaseController) InstallTo(app *fiber.App) {
	app.Get("/details", c.details)
	app.Get("/download", c.redirectTo(releases.FieldLink))
	app.Get("/md5", c.redirectTo(releases.FieldMD5))
	app.Get("/sha512", c.redirectTo(releases.FieldSHA512))
}

func (c *ReleaseController) limits() releases.Limits {
	if c.Limits.Default <= 0 || c.Limits.Max <= 0 {
		return releases.DefaultLimits
	}
	return c.Limits
}

func (c *ReleaseController) details(ctx *fiber.Ctx) error {
	var fields []string
	for _, f := range ctx.Context().QueryArgs().PeekMulti("field") {
		fields = append(fields, string(f))
	}
	if err := releases.ValidateFields(fields); err != nil {
		return c.clientError(ctx, err)
	}
	var req releases.PageRequest
	var err error
	if req.Start, err = releases.ParsePageParam("start", ctx.Query("start")); err != nil {
		return c.clientError(ctx, err)
	}
	if req.Limit, err = releases.ParsePageParam("limit", ctx.Query("limit")); err != nil {
		return c.clientError(ctx, err)
	}

	matches, err := c.matching(ctx)
	if err != nil {
		return err
	}
	projected, err := releases.Project(matches, fields)
	if err != nil {
		return c.clientError(ctx, err)
	}

	err = ctx.JSON(releases.Paginate(projected, req, c.limits()))
	if err != nil {
		return fmt.Errorf("json serialize: %w", err)
	}
	return nil
}

func (c *ReleaseController) redirectTo(field releases.Field) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		matches, err := c.matching(ctx)
		if err != nil {
			return err
		}
		release, err := releases.Single(matches)
		if err != nil {
			return c.clientError(ctx, err)
		}
		location, _ := release.Value(field)
		ctx.Set(fiber.HeaderLocation, location)
		return ctx.Status(fiber.StatusSeeOther).SendString("303 see other " + location)
	}
}

// matching returns deduplicated releases matching the query filters.
func (c *ReleaseController) matching(ctx *fiber.Ctx) ([]releases.Release, error) {
	force, _ := strconv.ParseBool(ctx.Query("refresh"))
	snapshot, err := c.Store.Catalog(ctx.UserContext(), force)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	ctx.Set(SnapshotHeader, snapshot.Id)

	matches := releases.Dedup(releases.Filter(snapshot.Releases, queryCriteria(ctx)))
	if len(matches) == 0 {
		return nil, c.clientError(ctx, &releases.NoMatchError{})
	}
	return matches, nil
}

func queryCriteria(ctx *fiber.Ctx) releases.Criteria {
	criteria := make(releases.Criteria)
	for _, field := range releases.FilterFields {
		if v := ctx.Query(string(field)); v != "" {
			criteria[field] = v
		}
	}
	return criteria
}

// clientError converts a domain error into the json error body sent to the client.
func (c *ReleaseController) clientError(ctx *fiber.Ctx, err error) error {
	var (
		noMatch   *releases.NoMatchError
		ambiguous *releases.AmbiguousMatchError
		field     *releases.InvalidFieldError
		param     *releases.InvalidParameterError
	)
	switch {
	case errors.As(err, &noMatch):
		filters := make(map[string]string)
		for f, v := range queryCriteria(ctx) {
			filters[string(f)] = v
		}
		return &apiError{
			Status:  fiber.StatusNotFound,
			Title:   "No Releases",
			Message: "No releases match the filters provided",
			Filters: filters,
		}
	case errors.As(err, &ambiguous):
		listed := ambiguous.Matches
		if len(listed) > c.limits().Default {
			listed = listed[:c.limits().Default]
		}
		return &apiError{
			Status:   fiber.StatusBadRequest,
			Title:    "Needs Further Filtering",
			Message:  ambiguous.Error() + " See releases for list.",
			Count:    len(ambiguous.Matches),
			Releases: listed,
		}
	case errors.As(err, &field):
		allowed := make([]string, len(releases.AllowedFields))
		for i, f := range releases.AllowedFields {
			allowed[i] = string(f)
		}
		return &apiError{
			Status:        fiber.StatusBadRequest,
			Title:         "Invalid Field",
			Message:       field.Error(),
			AllowedFields: allowed,
		}
	case errors.As(err, &param):
		return &apiError{
			Status:  fiber.StatusBadRequest,
			Title:   "Invalid " + param.Name,
			Message: param.Error(),
		}
	default:
		return err
	}
}
