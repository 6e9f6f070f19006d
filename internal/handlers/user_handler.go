package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// Register is POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.Users.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewUserResponse(user))
}

// CurrentUser is GET /users/current-user
func (h *UserHandler) CurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, dtos.NewUserResponse(currentUser(c)))
}

// UpdateCurrentUser is PATCH /users/current-user. The body is decoded into a
// map so unknown keys can be rejected rather than silently dropped.
func (h *UserHandler) UpdateCurrentUser(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	user, err := h.Users.UpdateCurrentUser(c.Request.Context(), currentUser(c), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewUserResponse(user))
}

// EmployerOnly is GET /users/employer-only
func (h *UserHandler) EmployerOnly(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "EMPLOYER OK"})
}
