// Package cryptoalg defines the core model and contracts for AES encryption of in-memory buffers and files,
// such as keys, initialization vectors, supported configurations, the error taxonomy, the IV framing codec
// and the interfaces implemented by the platform cipher backends.
package cryptoalg
