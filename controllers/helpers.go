package controllers

import (
	"net/http"
	"strconv"

	"venditto/storage"

	"github.com/gin-gonic/gin"
)

func ParamID(c *gin.Context, name string) (int64, bool) {
	v := c.Param(name)
	if v == "" {
		RespondError(c, name+" é obrigatório", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, name+" inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// respondStorageError traduz a taxonomia do storage para HTTP:
// NotFound -> 404, ConstraintViolation -> 400, resto -> 500.
func respondStorageError(c *gin.Context, err error) {
	switch {
	case storage.IsNotFound(err):
		RespondError(c, "registro não encontrado", http.StatusNotFound)
	case storage.IsConstraintViolation(err):
		RespondError(c, err.Error(), http.StatusBadRequest)
	default:
		RespondError(c, err.Error(), http.StatusInternalServerError)
	}
}

// sourceURL devolve de onde o comprador veio, para o event_source_url do pixel.
func sourceURL(c *gin.Context) string {
	if ref := c.Request.Referer(); ref != "" {
		return ref
	}
	return c.GetHeader("Origin")
}
