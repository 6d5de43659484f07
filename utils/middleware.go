package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant/auth"
	"restaurant/model"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session token.
const SessionCookie = "session"

const userContextKey = "user"

// RequireAuth resolves the session cookie through the auth service and stores
// the user in the request context. Passing roles restricts the route to them;
// super_admin implicitly passes any admin requirement.
func RequireAuth(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)

		user, err := auth.Authorize(token, roles...)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrForbidden):
				c.AbortWithStatusJSON(http.StatusForbidden, StandardResponse{
					Success: false,
					Error:   "Insufficient permissions",
				})
			case errors.Is(err, auth.ErrSessionExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, StandardResponse{
					Success: false,
					Error:   "Not authenticated",
				})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, StandardResponse{
					Success: false,
					Error:   "Authorization failed",
				})
			}
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth, or nil outside of an
// authenticated route.
func CurrentUser(c *gin.Context) *model.AdminUser {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*model.AdminUser); ok {
			return user
		}
	}
	return nil
}
