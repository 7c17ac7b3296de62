package controllers

import (
	"net/http"
	"time"

	"bazaar-api/middleware"
	"bazaar-api/models"
	"bazaar-api/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService  *services.AuthService
	sessionTTL   time.Duration
	cookieSecure bool
}

func NewAuthController(authService *services.AuthService, sessionTTL time.Duration, cookieSecure bool) *AuthController {
	return &AuthController{
		authService:  authService,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

// Signup godoc
// @Summary Register new user
// @Description Register a new customer account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /signup [post]
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request", err)
		return
	}

	user, err := ctrl.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "User created successfully",
		Data:    gin.H{"id": user.ID, "username": user.Username, "email": user.Email},
	})
}

// Login godoc
// @Summary User login
// @Description Login with email and password. The session is returned as an httpOnly cookie and as a bearer token.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request", err)
		return
	}

	token, identity, err := ctrl.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(ctrl.sessionTTL.Seconds()), "/", "", ctrl.cookieSecure, true)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Logged in successfully",
		Data:    gin.H{"token": token, "user": identity},
	})
}

// Logout godoc
// @Summary Logout
// @Description Revoke the current session
// @Tags Authentication
// @Security SessionCookie
// @Produce json
// @Success 200 {object} models.Response
// @Router /logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), identity); err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ctrl.cookieSecure, true)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Logged out successfully",
	})
}

// Profile godoc
// @Summary Get profile
// @Description Get the caller's username and email
// @Tags Authentication
// @Security SessionCookie
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /profile [get]
func (ctrl *AuthController) Profile(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	profile, err := ctrl.authService.Profile(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile retrieved",
		Data:    profile,
	})
}

// SessionData godoc
// @Summary Get session data
// @Description Get the identity behind the current session, empty when there is none
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.Response
// @Router /session-data [get]
func (ctrl *AuthController) SessionData(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Session retrieved",
		Data:    identity,
	})
}
