package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/middleware"
	"github.com/justsurfingit/ejobs/internal/models"
)

// respondError writes err as {"error": ...}. Internal errors are attached to
// the gin context for the request logger instead of being shown to clients.
func respondError(c *gin.Context, err error) {
	e := apperr.From(err)
	if e.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	body := gin.H{"error": e.Message}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	c.AbortWithStatusJSON(e.Status, body)
}

// bindJSON decodes the body and answers 400 itself when it does not validate.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, apperr.NotFound("not found"))
		return 0, false
	}
	return uint(id), true
}

// currentUser is only called behind the authentication middleware.
func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}
