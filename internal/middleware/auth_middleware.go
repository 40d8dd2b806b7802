package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jobdeck/api/internal/service"
	"github.com/jobdeck/api/internal/util"
)

const authUserKey = "authUser"

// RequireAuth verifies the bearer token against the auth provider and
// attaches the resolved identity to the request.
func RequireAuth(verifier service.AuthVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "missing bearer token",
			})
		}
		user, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "invalid bearer token",
			}, err)
		}
		c.Locals(authUserKey, user)
		return c.Next()
	}
}

// RequireCapability gates a route on the authenticated user's role. Must run
// after RequireAuth.
func RequireCapability(cap service.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentUser(c).Can(cap) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusForbidden,
				Message: "not allowed",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the identity attached by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *service.AuthUser {
	user, _ := c.Locals(authUserKey).(*service.AuthUser)
	return user
}
