package v1

import (
	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services AesServices, defaultKeyLength cryptoalg.KeyLength, logger logger.Logger) {
	v1 := r.Group(BasePath) // lookup in version file

	aesHandler := NewAesHandler(services, defaultKeyLength, logger)
	v1.POST("/keys", aesHandler.GenerateKey)
	v1.POST("/encrypt", aesHandler.Encrypt)
	v1.POST("/decrypt", aesHandler.Decrypt)
	v1.GET("/configurations", aesHandler.ListConfigurations)
}
