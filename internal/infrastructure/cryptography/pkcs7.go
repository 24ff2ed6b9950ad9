package cryptography

import (
	"bytes"
	"errors"
	"fmt"
)

var errInvalidPadding = errors.New("invalid PKCS7 padding")

// pkcs7Pad appends between 1 and blockSize bytes, each holding the pad length.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data), len(data)+padLen)
	copy(padded, data)
	return append(padded, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// pkcs7Unpad strips PKCS7 padding. data must be a non-empty multiple of blockSize.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: data length %d", errInvalidPadding, len(data))
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, fmt.Errorf("%w: pad length %d", errInvalidPadding, padLen)
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, errInvalidPadding
		}
	}
	return data[:len(data)-padLen], nil
}
