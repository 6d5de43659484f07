package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant/auth"
	"restaurant/config"
	"restaurant/utils"
)

var sessionMaxAge = int(auth.SessionLifetime / time.Second)

// Login verifies credentials and sets the session cookie.
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		utils.BadRequest(c, "Email and password are required")
		return
	}

	session, user, err := auth.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		utils.StoreFailure(c, err)
		return
	}

	c.SetCookie(utils.SessionCookie, session.ID, sessionMaxAge, "/", "", config.IsRelease(), true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user.Public(),
	})
}

// CurrentUser returns the user bound to the session cookie.
func CurrentUser(c *gin.Context) {
	token, _ := c.Cookie(utils.SessionCookie)

	user, err := auth.Validate(token)
	if err != nil {
		if errors.Is(err, auth.ErrSessionExpired) {
			utils.Error(c, http.StatusUnauthorized, "Session expired")
			return
		}
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user.Public(),
	})
}

// Logout revokes the session and clears the cookie. Always succeeds, even
// without a valid cookie.
func Logout(c *gin.Context) {
	if token, err := c.Cookie(utils.SessionCookie); err == nil && token != "" {
		if err := auth.Revoke(token); err != nil {
			utils.StoreFailure(c, err)
			return
		}
	}

	c.SetCookie(utils.SessionCookie, "", -1, "/", "", config.IsRelease(), true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}
