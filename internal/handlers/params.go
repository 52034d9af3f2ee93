package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string) (int, bool) {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0, false
	}
	return v, true
}
