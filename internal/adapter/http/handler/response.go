package handler

import "github.com/gin-gonic/gin"

// DetailResponse is the error body shape for every failure mode.
type DetailResponse struct {
	Detail string `json:"detail"`
}

func respondError(c *gin.Context, status int, detail string) {
	c.JSON(status, DetailResponse{Detail: detail})
}
