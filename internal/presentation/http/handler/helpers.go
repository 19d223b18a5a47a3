package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-terminal/internal/presentation/http/middleware"
	"github.com/sangkips/pos-terminal/pkg/apperror"
)

// GetTerminal extracts the terminal context set by the auth middleware
func GetTerminal(c *gin.Context) *entity.TerminalContext {
	return middleware.GetTerminal(c)
}

// lineIndex parses the :index path parameter
func lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.ValidationError(c, []apperror.FieldError{{Field: "index", Message: "Index must be a non-negative number"}})
		return 0, false
	}
	return index, true
}

// bind decodes the JSON body into req and answers 400 when it cannot
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// view answers with the document view or the error of a session operation
func view(c *gin.Context, message string, v interface{}, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, v)
}
