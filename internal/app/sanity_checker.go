package app

import (
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
)

// IVPolicy decides how an all-zero IV is treated.
type IVPolicy int

const (
	// RejectZeroIV fails validation of an all-zero IV. Use it for everything new.
	RejectZeroIV IVPolicy = iota
	// WarnAndAllowZeroIV reports an all-zero IV through the insecure IV hook and accepts it.
	// Kept for callers that still decrypt data produced with a zero IV.
	WarnAndAllowZeroIV
)

func (p IVPolicy) String() string {
	switch p {
	case RejectZeroIV:
		return "RejectZeroIV"
	case WarnAndAllowZeroIV:
		return "WarnAndAllowZeroIV"
	default:
		return fmt.Sprintf("IVPolicy(%d)", int(p))
	}
}

// InsecureIVHook is called when WarnAndAllowZeroIV lets an all-zero IV through.
type InsecureIVHook func(config cryptoalg.Configuration)

// SanityCheckerOption configures a SanityChecker
type SanityCheckerOption func(*SanityChecker)

// WithInsecureIVHook sets the hook invoked for accepted all-zero IVs.
func WithInsecureIVHook(hook InsecureIVHook) SanityCheckerOption {
	return func(c *SanityChecker) {
		if hook != nil {
			c.onInsecureIV = hook
		}
	}
}

// SanityChecker validates keys and IVs against a configuration.
// It holds no mutable state and can be shared between goroutines.
type SanityChecker struct {
	config       cryptoalg.Configuration
	params       cryptoalg.ModeParameters
	policy       IVPolicy
	onInsecureIV InsecureIVHook
}

// NewSanityChecker creates a checker for config. Reserved block modes fail with ErrNotImplemented.
func NewSanityChecker(config cryptoalg.Configuration, policy IVPolicy, opts ...SanityCheckerOption) (*SanityChecker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if policy != RejectZeroIV && policy != WarnAndAllowZeroIV {
		return nil, fmt.Errorf("unknown IV policy %s", policy)
	}

	params, _ := config.Mode.Parameters()
	c := &SanityChecker{
		config:       config,
		params:       params,
		policy:       policy,
		onInsecureIV: func(cryptoalg.Configuration) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Configuration returns the configuration the checker validates against
func (c *SanityChecker) Configuration() cryptoalg.Configuration {
	return c.config
}

// Policy returns the zero IV policy of the checker
func (c *SanityChecker) Policy() IVPolicy {
	return c.policy
}

// ValidateKey rejects keys whose length is not an AES key length, and all-zero keys.
func (c *SanityChecker) ValidateKey(key cryptoalg.Key) error {
	if _, ok := cryptoalg.KeyLengthFromBytes(key.Len()); !ok {
		return fmt.Errorf("%w: length %d bytes is not one of 16, 24 or 32", cryptoalg.ErrInvalidKey, key.Len())
	}
	if key.IsZero() {
		return fmt.Errorf("%w: key material is all zero", cryptoalg.ErrInvalidKey)
	}
	return nil
}

// ValidateIV rejects IVs of the wrong length for the mode. An all-zero IV is handled by the policy.
func (c *SanityChecker) ValidateIV(iv cryptoalg.IV) error {
	if iv.Len() != c.params.IVLengthBytes {
		return fmt.Errorf("%w: %s requires %d bytes, got %d", cryptoalg.ErrInvalidIV, c.config.Mode, c.params.IVLengthBytes, iv.Len())
	}
	if !iv.IsZero() {
		return nil
	}

	if c.policy == RejectZeroIV {
		return fmt.Errorf("%w: not secure to use a zero IV", cryptoalg.ErrInvalidIV)
	}
	c.onInsecureIV(c.config)
	return nil
}

// Validate checks the IV, then the key.
func (c *SanityChecker) Validate(keyAndIV cryptoalg.KeyAndIV) error {
	if err := c.ValidateIV(keyAndIV.IV); err != nil {
		return err
	}
	return c.ValidateKey(keyAndIV.Key)
}
