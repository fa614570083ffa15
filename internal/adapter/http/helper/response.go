package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapi/internal/core/model/response"
)

func SendSuccess(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func SendNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func SendMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, response.MessageResponse{Message: message})
}

func SendValidationErrors(c *gin.Context, errors []response.ValidationError) {
	c.JSON(http.StatusBadRequest, response.ValidationErrorResponse{Errors: errors})
}

func AbortWithMessage(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, response.MessageResponse{Message: message})
}

func SendUnauthorizedError(c *gin.Context) {
	AbortWithMessage(c, http.StatusUnauthorized, "Unauthorized")
}

func SendNotFoundError(c *gin.Context, message string) {
	SendMessage(c, http.StatusNotFound, message)
}
