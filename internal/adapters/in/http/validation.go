package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"workshop/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

var errInvalidAdminToken = errors.New("missing or invalid admin token")

// newRequestValidator checks every request that matches an operation of
// the document: parameters against their schemas and the AdminToken
// security scheme through authenticate. Requests outside the document pass
// through untouched.
func newRequestValidator(swagger *openapi3.T, authenticate openapi3filter.AuthenticationFunc) (echo.MiddlewareFunc, error) {
	swagger.Servers = nil
	router, err := gorillamux.NewRouter(swagger)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{AuthenticationFunc: authenticate}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, err := router.FindRoute(req)
			if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
				return next(ctx)
			}
			if err != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: err.Error()})
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return rejectRequest(ctx, err)
			}
			return next(ctx)
		}
	}, nil
}

func rejectRequest(ctx echo.Context, err error) error {
	var securityErr *openapi3filter.SecurityRequirementsError
	if errors.As(err, &securityErr) {
		return ctx.JSON(http.StatusUnauthorized, servers.Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing or invalid admin token",
		})
	}
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: err.Error()})
}

// authenticate accepts the AdminToken scheme when the header matches the
// configured token. An empty token rejects every request.
func (s *Server) authenticate(_ context.Context, input *openapi3filter.AuthenticationInput) error {
	if input.SecuritySchemeName != "AdminToken" {
		return fmt.Errorf("unsupported security scheme %q", input.SecuritySchemeName)
	}
	token := input.RequestValidationInput.Request.Header.Get(AdminTokenHeader)
	if s.adminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
		return errInvalidAdminToken
	}
	return nil
}
