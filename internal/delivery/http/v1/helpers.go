package v1

import (
	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/middleware"
	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/response"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"github.com/gin-gonic/gin"
)

func caller(c *gin.Context) domain.Identity {
	return middleware.Identity(c)
}

func bindError(err error) error {
	return response.BindError(err, "Invalid request body")
}
