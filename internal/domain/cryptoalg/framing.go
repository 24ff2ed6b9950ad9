package cryptoalg

import "fmt"

// Frame lays out an IV and its ciphertext as: [1 byte IV length N][N bytes IV][ciphertext].
func Frame(iv IV, ciphertext []byte) ([]byte, error) {
	n := iv.Len()
	if n > MaxFramedIVLength {
		return nil, fmt.Errorf("%w: IV of %d bytes does not fit a one byte length prefix", ErrInvalidFormat, n)
	}

	framed := make([]byte, 0, 1+n+len(ciphertext))
	framed = append(framed, byte(n))
	framed = append(framed, iv.data...)
	framed = append(framed, ciphertext...)
	return framed, nil
}

// Unframe splits data produced by Frame back into the IV and the ciphertext.
// The returned ciphertext is a copy, safe from later mutation of data.
func Unframe(data []byte) (IV, []byte, error) {
	if len(data) == 0 {
		return IV{}, nil, fmt.Errorf("%w: empty framed data", ErrInvalidFormat)
	}

	n := int(data[0])
	if len(data) < 1+n {
		return IV{}, nil, fmt.Errorf("%w: framed data too short for an IV of %d bytes", ErrInvalidFormat, n)
	}

	iv := NewIV(data[1 : 1+n])
	ciphertext := cloneBytes(data[1+n:])
	return iv, ciphertext, nil
}
