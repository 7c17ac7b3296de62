package controllers

import (
	"net/http"

	"bazaar-api/models"
	"bazaar-api/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *services.UserService
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// @Summary List users
// @Tags Admin Users
// @Security SessionCookie
// @Produce json
// @Success 200 {object} models.Response
// @Router /users [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	users, err := ctrl.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Users retrieved successfully",
		Data:    users,
	})
}

// @Summary Create user
// @Tags Admin Users
// @Security SessionCookie
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	user, err := ctrl.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "User created successfully",
		Data:    user,
	})
}
