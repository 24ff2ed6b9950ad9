//go:build unit
// +build unit

package v1

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handlerFunc gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handlerFunc(c)
	return w
}

func setupAesHandler(t *testing.T) (AesHandler, *MockBufferEncryptionService, *MockBufferEncryptionService) {
	t.Helper()
	service128 := new(MockBufferEncryptionService)
	service256 := new(MockBufferEncryptionService)

	handler := NewAesHandler(AesServices{
		cryptoalg.KeyLength128: service128,
		cryptoalg.KeyLength256: service256,
	}, cryptoalg.KeyLength256, testutil.SetupTestLogger(t))
	return handler, service128, service256
}

func TestAesHandler_GenerateKey_Success(t *testing.T) {
	handler, service128, _ := setupAesHandler(t)
	key := cryptoalg.NewKey(bytes.Repeat([]byte{0x01}, 16))
	service128.On("GenerateKey").Return(key, nil)

	w := performRequest(t, handler.GenerateKey, `{"key_length": 128}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response GenerateKeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, 16)), response.Key)
	assert.Equal(t, 128, response.KeyLength)
	assert.NotEmpty(t, response.ID)
	service128.AssertExpectations(t)
}

func TestAesHandler_GenerateKey_BadRequests(t *testing.T) {
	handler, _, _ := setupAesHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"key_length":`},
		{"unsupported length", `{"key_length": 512}`},
		{"no engine for length", `{"key_length": 192}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(t, handler.GenerateKey, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "message")
		})
	}
}

func TestAesHandler_Encrypt_GeneratedKey(t *testing.T) {
	handler, _, service256 := setupAesHandler(t)

	encrypted := &cryptoalg.EncryptedBuffer{
		IV:         cryptoalg.NewIV(bytes.Repeat([]byte{0x02}, 16)),
		Key:        cryptoalg.NewKey(bytes.Repeat([]byte{0x03}, 32)),
		Ciphertext: bytes.Repeat([]byte{0x04}, 16),
	}
	service256.On("Encrypt", []byte("Just Don't")).Return(encrypted, nil)

	body := fmt.Sprintf(`{"plaintext": %q}`, base64.StdEncoding.EncodeToString([]byte("Just Don't")))
	w := performRequest(t, handler.Encrypt, body)

	assert.Equal(t, http.StatusOK, w.Code)
	var response EncryptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	framed, err := base64.StdEncoding.DecodeString(response.Framed)
	require.NoError(t, err)
	assert.Equal(t, byte(16), framed[0])
	assert.Len(t, framed, 33)
	assert.Equal(t, base64.StdEncoding.EncodeToString(encrypted.Ciphertext), response.Ciphertext)
	service256.AssertExpectations(t)
}

func TestAesHandler_Encrypt_SuppliedKeySelectsEngine(t *testing.T) {
	handler, service128, service256 := setupAesHandler(t)

	keyMaterial := bytes.Repeat([]byte{0x05}, 16)
	encrypted := &cryptoalg.EncryptedBuffer{
		IV:         cryptoalg.NewIV(bytes.Repeat([]byte{0x06}, 16)),
		Key:        cryptoalg.NewKey(keyMaterial),
		Ciphertext: bytes.Repeat([]byte{0x07}, 16),
	}
	service128.On("EncryptWithKey", cryptoalg.NewKey(keyMaterial), []byte("hi")).Return(encrypted, nil)

	body := fmt.Sprintf(`{"plaintext": %q, "key": %q}`,
		base64.StdEncoding.EncodeToString([]byte("hi")),
		base64.StdEncoding.EncodeToString(keyMaterial))
	w := performRequest(t, handler.Encrypt, body)

	assert.Equal(t, http.StatusOK, w.Code)
	service128.AssertExpectations(t)
	service256.AssertNotCalled(t, "Encrypt", mock.Anything)
}

func TestAesHandler_Encrypt_InvalidKeyLength(t *testing.T) {
	handler, _, _ := setupAesHandler(t)

	body := fmt.Sprintf(`{"plaintext": "aGk=", "key": %q}`, base64.StdEncoding.EncodeToString([]byte("short")))
	w := performRequest(t, handler.Encrypt, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAesHandler_Decrypt(t *testing.T) {
	keyMaterial := bytes.Repeat([]byte{0x09}, 32)
	framed := append([]byte{16}, bytes.Repeat([]byte{0x0A}, 32)...)
	body := fmt.Sprintf(`{"key": %q, "framed": %q}`,
		base64.StdEncoding.EncodeToString(keyMaterial),
		base64.StdEncoding.EncodeToString(framed))

	tests := []struct {
		name           string
		result         []byte
		err            error
		expectedStatus int
	}{
		{"success", []byte("plaintext"), nil, http.StatusOK},
		{"bad padding", nil, cryptoalg.NewCipherError(cryptoalg.OperationDecrypt, cryptoalg.AesCbcPkcs7256, "unable to finalize cipher", fmt.Errorf("invalid PKCS7 padding")), http.StatusUnprocessableEntity},
		{"zero IV", nil, fmt.Errorf("%w: not secure to use a zero IV", cryptoalg.ErrInvalidIV), http.StatusBadRequest},
		{"truncated frame", nil, fmt.Errorf("%w: framed data too short", cryptoalg.ErrInvalidFormat), http.StatusBadRequest},
		{"unexpected", nil, fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _, service256 := setupAesHandler(t)
			if tt.err != nil {
				service256.On("DecryptFramed", cryptoalg.NewKey(keyMaterial), framed).Return(nil, tt.err)
			} else {
				service256.On("DecryptFramed", cryptoalg.NewKey(keyMaterial), framed).Return(tt.result, nil)
			}

			w := performRequest(t, handler.Decrypt, body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.err != nil {
				var response ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, "error decrypting data", response.Message)
			} else {
				var response DecryptResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, base64.StdEncoding.EncodeToString(tt.result), response.Plaintext)
			}
			service256.AssertExpectations(t)
		})
	}
}

func TestAesHandler_Decrypt_MissingFields(t *testing.T) {
	handler, _, _ := setupAesHandler(t)

	w := performRequest(t, handler.Decrypt, `{"key": "AAECAwQFBgcICQoLDA0ODw=="}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAesHandler_ListConfigurations(t *testing.T) {
	handler, _, _ := setupAesHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/configurations", nil)

	handler.ListConfigurations(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []ConfigurationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 9)

	implemented := 0
	for _, config := range response {
		if config.Implemented {
			implemented++
			assert.Equal(t, "CBC", config.Mode)
		}
	}
	assert.Equal(t, 3, implemented)
}

func TestAesHandler_Decrypt_HidesTransformDetails(t *testing.T) {
	handler, _, service256 := setupAesHandler(t)
	keyMaterial := bytes.Repeat([]byte{0x0B}, 32)
	framed := append([]byte{16}, bytes.Repeat([]byte{0x0C}, 32)...)

	cause := fmt.Errorf("invalid PKCS7 padding: pad length 143")
	service256.On("DecryptFramed", cryptoalg.NewKey(keyMaterial), framed).
		Return(nil, cryptoalg.NewCipherError(cryptoalg.OperationDecrypt, cryptoalg.AesCbcPkcs7256, "unable to finalize cipher", cause))

	body := fmt.Sprintf(`{"key": %q, "framed": %q}`,
		base64.StdEncoding.EncodeToString(keyMaterial),
		base64.StdEncoding.EncodeToString(framed))
	w := performRequest(t, handler.Decrypt, body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NotContains(t, w.Body.String(), "padding")
	assert.NotContains(t, w.Body.String(), "143")
}

func TestAesHandler_Encrypt_WipesGeneratedKey(t *testing.T) {
	handler, _, service256 := setupAesHandler(t)

	keyMaterial := bytes.Repeat([]byte{0x0D}, 32)
	encrypted := &cryptoalg.EncryptedBuffer{
		IV:         cryptoalg.NewIV(bytes.Repeat([]byte{0x0E}, 16)),
		Key:        cryptoalg.NewKey(keyMaterial),
		Ciphertext: bytes.Repeat([]byte{0x0F}, 16),
	}
	service256.On("Encrypt", []byte("hi")).Return(encrypted, nil)

	w := performRequest(t, handler.Encrypt, `{"plaintext": "aGk="}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response EncryptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, base64.StdEncoding.EncodeToString(keyMaterial), response.Key)
	assert.True(t, encrypted.Key.IsZero())
}
