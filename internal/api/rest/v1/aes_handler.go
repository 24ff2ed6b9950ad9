package v1

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const decryptErrorMessage = "error decrypting data"

// AesServices groups buffer encryption services by the key length they are configured for
type AesServices map[cryptoalg.KeyLength]cryptoalg.BufferEncryptionService

// AesHandler defines the interface for handling AES operations
type AesHandler interface {
	GenerateKey(ctx *gin.Context)
	Encrypt(ctx *gin.Context)
	Decrypt(ctx *gin.Context)
	ListConfigurations(ctx *gin.Context)
}

// aesHandler struct holds the services
type aesHandler struct {
	services         AesServices
	defaultKeyLength cryptoalg.KeyLength
	logger           logger.Logger
}

// NewAesHandler creates a new AesHandler.
// defaultKeyLength selects the service used when a request carries no key.
func NewAesHandler(services AesServices, defaultKeyLength cryptoalg.KeyLength, logger logger.Logger) AesHandler {
	return &aesHandler{
		services:         services,
		defaultKeyLength: defaultKeyLength,
		logger:           logger,
	}
}

// GenerateKey handles the POST request to generate an AES key
// @Summary Generate an AES key
// @Tags AES
// @Accept json
// @Produce json
// @Param requestBody body GenerateKeyRequest true "Key length in bits"
// @Success 201 {object} GenerateKeyResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [post]
func (handler *aesHandler) GenerateKey(ctx *gin.Context) {
	var request GenerateKeyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		handler.respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid key request: %v", err))
		return
	}

	if err := request.Validate(); err != nil {
		handler.respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	service, err := handler.serviceFor(cryptoalg.KeyLength(request.KeyLength))
	if err != nil {
		handler.respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	key, err := service.GenerateKey()
	if err != nil {
		handler.respondError(ctx, statusFor(err), fmt.Sprintf("error generating key: %v", err))
		return
	}
	defer key.Destroy()

	ctx.JSON(http.StatusCreated, GenerateKeyResponse{
		ID:        uuid.New().String(),
		KeyLength: request.KeyLength,
		Key:       encode(key.Bytes()),
	})
}

// Encrypt handles the POST request to encrypt a buffer
// @Summary Encrypt a buffer with AES-CBC
// @Tags AES
// @Accept json
// @Produce json
// @Param requestBody body EncryptRequest true "Base64 plaintext and optional key"
// @Success 200 {object} EncryptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /encrypt [post]
func (handler *aesHandler) Encrypt(ctx *gin.Context) {
	var request EncryptRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		handler.respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid encrypt request: %v", err))
		return
	}

	if err := request.Validate(); err != nil {
		handler.respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	plaintext, err := base64.StdEncoding.DecodeString(request.Plaintext)
	if err != nil {
		handler.respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid plaintext: %v", err))
		return
	}

	var encrypted *cryptoalg.EncryptedBuffer
	if request.Key == "" {
		service, serr := handler.serviceFor(handler.defaultKeyLength)
		if serr != nil {
			handler.respondError(ctx, http.StatusInternalServerError, serr.Error())
			return
		}
		encrypted, err = service.Encrypt(plaintext)
	} else {
		key, service, kerr := handler.keyAndService(request.Key)
		if kerr != nil {
			handler.respondError(ctx, http.StatusBadRequest, kerr.Error())
			return
		}
		defer key.Destroy()
		encrypted, err = service.EncryptWithKey(key, plaintext)
	}
	if err != nil {
		handler.respondError(ctx, statusFor(err), fmt.Sprintf("error encrypting data: %v", err))
		return
	}
	defer encrypted.Key.Destroy()

	framed, err := encrypted.Framed()
	if err != nil {
		handler.respondError(ctx, statusFor(err), fmt.Sprintf("error framing ciphertext: %v", err))
		return
	}

	ctx.JSON(http.StatusOK, EncryptResponse{
		ID:         uuid.New().String(),
		Key:        encode(encrypted.Key.Bytes()),
		IV:         encode(encrypted.IV.Bytes()),
		Ciphertext: encode(encrypted.Ciphertext),
		Framed:     encode(framed),
	})
}

// Decrypt handles the POST request to decrypt a framed buffer
// @Summary Decrypt a framed buffer with AES-CBC
// @Tags AES
// @Accept json
// @Produce json
// @Param requestBody body DecryptRequest true "Base64 key and framed ciphertext"
// @Success 200 {object} DecryptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /decrypt [post]
func (handler *aesHandler) Decrypt(ctx *gin.Context) {
	var request DecryptRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		handler.respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid decrypt request: %v", err))
		return
	}

	if err := request.Validate(); err != nil {
		handler.respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	framed, err := base64.StdEncoding.DecodeString(request.Framed)
	if err != nil {
		handler.respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid framed data: %v", err))
		return
	}

	key, service, err := handler.keyAndService(request.Key)
	if err != nil {
		handler.respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	defer key.Destroy()

	plaintext, err := service.DecryptFramed(key, framed)
	if err != nil {
		// transform details such as the recovered pad byte stay in the log
		handler.logger.Warn(fmt.Sprintf("error decrypting data: %v", err))
		ctx.JSON(statusFor(err), ErrorResponse{Message: decryptErrorMessage})
		return
	}

	ctx.JSON(http.StatusOK, DecryptResponse{
		ID:        uuid.New().String(),
		Plaintext: encode(plaintext),
	})
}

// ListConfigurations handles the GET request to list the AES configurations
// @Summary List AES configurations
// @Tags AES
// @Produce json
// @Success 200 {array} ConfigurationResponse
// @Router /configurations [get]
func (handler *aesHandler) ListConfigurations(ctx *gin.Context) {
	var listResponse = []ConfigurationResponse{}
	for _, config := range cryptoalg.Configurations() {
		listResponse = append(listResponse, ConfigurationResponse{
			Name:        config.Name,
			KeyLength:   int(config.KeyLength),
			Mode:        string(config.Mode),
			Padding:     string(config.Padding),
			IVLength:    config.IVLength(),
			Implemented: config.Validate() == nil,
		})
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *aesHandler) serviceFor(keyLength cryptoalg.KeyLength) (cryptoalg.BufferEncryptionService, error) {
	service, ok := handler.services[keyLength]
	if !ok {
		return nil, fmt.Errorf("%w: no engine configured for %d bit keys", cryptoalg.ErrInvalidKey, int(keyLength))
	}
	return service, nil
}

func (handler *aesHandler) keyAndService(encodedKey string) (cryptoalg.Key, cryptoalg.BufferEncryptionService, error) {
	material, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return cryptoalg.Key{}, nil, fmt.Errorf("invalid key encoding: %w", err)
	}
	key := cryptoalg.NewKey(material)

	keyLength, ok := cryptoalg.KeyLengthFromBytes(key.Len())
	if !ok {
		return cryptoalg.Key{}, nil, fmt.Errorf("%w: length %d bytes is not one of 16, 24 or 32", cryptoalg.ErrInvalidKey, key.Len())
	}

	service, err := handler.serviceFor(keyLength)
	if err != nil {
		return cryptoalg.Key{}, nil, err
	}
	return key, service, nil
}

func (handler *aesHandler) respondError(ctx *gin.Context, status int, message string) {
	if status >= http.StatusInternalServerError {
		handler.logger.Error(message)
	} else {
		handler.logger.Warn(message)
	}
	ctx.JSON(status, ErrorResponse{Message: message})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case cryptoalg.IsInvalidKey(err), cryptoalg.IsInvalidIV(err), cryptoalg.IsInvalidFormat(err):
		return http.StatusBadRequest
	case cryptoalg.IsDecryptionFailed(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
