package cryptoalg

import (
	"fmt"
	"strings"
)

// Operation is the direction of a cipher transformation.
type Operation int

const (
	// OperationEncrypt turns plaintext into ciphertext
	OperationEncrypt Operation = iota
	// OperationDecrypt turns ciphertext into plaintext
	OperationDecrypt
)

// String returns "Encrypt" or "Decrypt".
func (o Operation) String() string {
	switch o {
	case OperationEncrypt:
		return "Encrypt"
	case OperationDecrypt:
		return "Decrypt"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// KeyLength is an AES key length expressed in bits.
type KeyLength int

const (
	// KeyLength128 selects AES-128
	KeyLength128 KeyLength = 128
	// KeyLength192 selects AES-192
	KeyLength192 KeyLength = 192
	// KeyLength256 selects AES-256
	KeyLength256 KeyLength = 256
)

// KeyLengths lists every supported key length.
var KeyLengths = []KeyLength{KeyLength128, KeyLength192, KeyLength256}

// Bytes returns the key length in bytes.
func (k KeyLength) Bytes() int {
	return int(k) / 8
}

// IsSupported reports whether k is one of the AES key lengths.
func (k KeyLength) IsSupported() bool {
	for _, l := range KeyLengths {
		if l == k {
			return true
		}
	}
	return false
}

// KeyLengthFromBytes returns the key length matching n bytes, if any.
func KeyLengthFromBytes(n int) (KeyLength, bool) {
	for _, l := range KeyLengths {
		if l.Bytes() == n {
			return l, true
		}
	}
	return 0, false
}

// BlockMode names a block chaining mode.
type BlockMode string

const (
	// BlockModeCBC is Cipher Block Chaining
	BlockModeCBC BlockMode = "CBC"
	// BlockModeCTR is Counter mode. Declared but not implemented.
	BlockModeCTR BlockMode = "CTR"
	// BlockModeGCM is Galois/Counter mode. Declared but not implemented.
	BlockModeGCM BlockMode = "GCM"
)

// ModeParameters describes what a block mode expects from its inputs.
type ModeParameters struct {
	IVLengthBytes    int
	RequiresPadding  bool
	RequiresSecureIV bool
	Implemented      bool
}

var modeTable = map[BlockMode]ModeParameters{
	BlockModeCBC: {IVLengthBytes: 16, RequiresPadding: true, RequiresSecureIV: true, Implemented: true},
	BlockModeCTR: {IVLengthBytes: 16, RequiresPadding: false, RequiresSecureIV: false},
	BlockModeGCM: {IVLengthBytes: 12, RequiresPadding: false, RequiresSecureIV: false},
}

func init() {
	if err := validateModeTable(); err != nil {
		panic(err)
	}
}

// validateModeTable makes sure every mode has an IV length that fits a framed buffer.
func validateModeTable() error {
	for mode, params := range modeTable {
		if params.IVLengthBytes <= 0 || params.IVLengthBytes > MaxFramedIVLength {
			return fmt.Errorf("block mode %s has an invalid IV length %d", mode, params.IVLengthBytes)
		}
	}
	return nil
}

// Parameters returns the look-up table entry of the mode.
func (m BlockMode) Parameters() (ModeParameters, bool) {
	p, ok := modeTable[m]
	return p, ok
}

// IVLength returns the IV length in bytes required by the mode, or 0 for an unknown mode.
func (m BlockMode) IVLength() int {
	return modeTable[m].IVLengthBytes
}

// Padding names a padding scheme.
type Padding string

const (
	// PaddingPKCS7 pads to a multiple of the block size with PKCS#7
	PaddingPKCS7 Padding = "PKCS7"
	// PaddingNone leaves the data untouched
	PaddingNone Padding = "NoPadding"
)

// Configuration ties together the key length, block mode and padding of an AES engine.
type Configuration struct {
	Name      string
	KeyLength KeyLength
	Mode      BlockMode
	Padding   Padding
}

// Supported configurations. Only the CBC variants are operable.
var (
	AesCbcPkcs7256 = Configuration{Name: "AES_CBC_PKCS7_256", KeyLength: KeyLength256, Mode: BlockModeCBC, Padding: PaddingPKCS7}
	AesCbcPkcs7192 = Configuration{Name: "AES_CBC_PKCS7_192", KeyLength: KeyLength192, Mode: BlockModeCBC, Padding: PaddingPKCS7}
	AesCbcPkcs7128 = Configuration{Name: "AES_CBC_PKCS7_128", KeyLength: KeyLength128, Mode: BlockModeCBC, Padding: PaddingPKCS7}

	AesCtr256 = Configuration{Name: "AES_CTR_NOPADDING_256", KeyLength: KeyLength256, Mode: BlockModeCTR, Padding: PaddingNone}
	AesCtr192 = Configuration{Name: "AES_CTR_NOPADDING_192", KeyLength: KeyLength192, Mode: BlockModeCTR, Padding: PaddingNone}
	AesCtr128 = Configuration{Name: "AES_CTR_NOPADDING_128", KeyLength: KeyLength128, Mode: BlockModeCTR, Padding: PaddingNone}

	AesGcm256 = Configuration{Name: "AES_GCM_NOPADDING_256", KeyLength: KeyLength256, Mode: BlockModeGCM, Padding: PaddingNone}
	AesGcm192 = Configuration{Name: "AES_GCM_NOPADDING_192", KeyLength: KeyLength192, Mode: BlockModeGCM, Padding: PaddingNone}
	AesGcm128 = Configuration{Name: "AES_GCM_NOPADDING_128", KeyLength: KeyLength128, Mode: BlockModeGCM, Padding: PaddingNone}
)

// Configurations returns the full enumeration of declared configurations.
func Configurations() []Configuration {
	return []Configuration{
		AesCbcPkcs7256, AesCbcPkcs7192, AesCbcPkcs7128,
		AesCtr256, AesCtr192, AesCtr128,
		AesGcm256, AesGcm192, AesGcm128,
	}
}

// ConfigurationByName looks a configuration up by its name, ignoring case.
func ConfigurationByName(name string) (Configuration, error) {
	for _, c := range Configurations() {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return Configuration{}, fmt.Errorf("unknown AES configuration %q", name)
}

// IVLength returns the IV length in bytes required by the configured mode.
func (c Configuration) IVLength() int {
	return c.Mode.IVLength()
}

// Validate returns ErrNotImplemented for reserved modes and an error for combinations
// outside the enumeration.
func (c Configuration) Validate() error {
	params, ok := c.Mode.Parameters()
	if !ok {
		return fmt.Errorf("unknown block mode %q", c.Mode)
	}
	if !params.Implemented {
		return fmt.Errorf("%w: %s block mode", ErrNotImplemented, c.Mode)
	}
	if !c.KeyLength.IsSupported() {
		return fmt.Errorf("unsupported key length %d bits", int(c.KeyLength))
	}
	if params.RequiresPadding != (c.Padding != PaddingNone) {
		return fmt.Errorf("padding %s is not compatible with block mode %s", c.Padding, c.Mode)
	}
	return nil
}

// String renders the configuration as AES/<mode>/<padding>/<bits>.
func (c Configuration) String() string {
	return fmt.Sprintf("%s/%s/%s/%d", AlgorithmAES, c.Mode, c.Padding, int(c.KeyLength))
}
