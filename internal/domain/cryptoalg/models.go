package cryptoalg

import (
	"bytes"

	"github.com/awnumar/memguard"
)

// Key holds AES key material. The material is copied on the way in and on the way out,
// so a Key cannot be mutated once constructed.
type Key struct {
	material []byte
}

// NewKey creates a Key from a copy of material.
func NewKey(material []byte) Key {
	return Key{material: cloneBytes(material)}
}

// Bytes returns a copy of the key material.
func (k Key) Bytes() []byte {
	return cloneBytes(k.material)
}

// Len returns the key length in bytes.
func (k Key) Len() int {
	return len(k.material)
}

// IsZero reports whether every byte of the key is zero.
func (k Key) IsZero() bool {
	return allZero(k.material)
}

// Equal compares two keys by content.
func (k Key) Equal(other Key) bool {
	return bytes.Equal(k.material, other.material)
}

// Destroy wipes the key material. The key must not be used afterwards.
func (k Key) Destroy() {
	memguard.WipeBytes(k.material)
}

// IV holds an initialization vector.
type IV struct {
	data []byte
}

// NewIV creates an IV from a copy of data.
func NewIV(data []byte) IV {
	return IV{data: cloneBytes(data)}
}

// Bytes returns a copy of the IV.
func (iv IV) Bytes() []byte {
	return cloneBytes(iv.data)
}

// Len returns the IV length in bytes.
func (iv IV) Len() int {
	return len(iv.data)
}

// IsZero reports whether every byte of the IV is zero. A zeroed IV is never safe to encrypt with.
func (iv IV) IsZero() bool {
	return allZero(iv.data)
}

// Equal compares two IVs by content.
func (iv IV) Equal(other IV) bool {
	return bytes.Equal(iv.data, other.data)
}

// Destroy wipes the IV.
func (iv IV) Destroy() {
	memguard.WipeBytes(iv.data)
}

// KeyAndIV pairs a key with the IV used alongside it.
type KeyAndIV struct {
	Key Key
	IV  IV
}

// Destroy wipes both the key and the IV.
func (k KeyAndIV) Destroy() {
	k.Key.Destroy()
	k.IV.Destroy()
}

// EncryptedBuffer is the result of encrypting an in-memory buffer.
type EncryptedBuffer struct {
	IV         IV
	Key        Key
	Ciphertext []byte
}

// Framed returns the IV length prefix, the IV and the ciphertext as a single byte slice.
func (b *EncryptedBuffer) Framed() ([]byte, error) {
	return Frame(b.IV, b.Ciphertext)
}

// EncryptedFileReference points at a ciphertext file together with the key and IV that produced it.
type EncryptedFileReference struct {
	KeyAndIV KeyAndIV
	Path     string
}

// DecryptedFileReference points at a cleartext file together with the key and IV that recovered it.
type DecryptedFileReference struct {
	KeyAndIV KeyAndIV
	Path     string
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
