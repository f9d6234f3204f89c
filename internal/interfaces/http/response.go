package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lovepages-admin/internal/entities"
)

// The response envelope every endpoint uses:
// {success, data, message?, pagination?}.

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, items interface{}, p entities.Pagination) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "pagination": p})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg})
}
