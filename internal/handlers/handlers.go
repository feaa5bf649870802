package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/personal-finance-ledger/internal/ledger"
)

// statusForError переводит ошибки леджера в HTTP-статусы.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrRequestClosed), errors.Is(err, ledger.ErrDuplicateRequest):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrAmountNotPositive),
		errors.Is(err, ledger.ErrMissingName),
		errors.Is(err, ledger.ErrMissingAccount),
		errors.Is(err, ledger.ErrMissingToAccount),
		errors.Is(err, ledger.ErrSameAccount),
		errors.Is(err, ledger.ErrUnknownType),
		errors.Is(err, ledger.ErrUnknownCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный идентификатор"})
		return 0, false
	}
	return id, true
}

func userIDQuery(c *gin.Context) (int, bool) {
	userID, err := strconv.Atoi(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный user_id"})
		return 0, false
	}
	return userID, true
}
