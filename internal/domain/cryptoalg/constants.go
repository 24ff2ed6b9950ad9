package cryptoalg

// AlgorithmAES represents the AES encryption algorithm
const AlgorithmAES = "AES"

// AESBlockSize is the AES block size in bytes, shared by all key lengths
const AESBlockSize = 16

// AESKeySize128 is the 128-bit AES key size in bytes
const AESKeySize128 = 16

// AESKeySize192 is the 192-bit AES key size in bytes
const AESKeySize192 = 24

// AESKeySize256 is the 256-bit AES key size in bytes
const AESKeySize256 = 32

// MaxFramedIVLength is the largest IV length that fits the one byte length prefix of a framed buffer
const MaxFramedIVLength = 255

// DefaultChunkSize is the number of bytes read per iteration when streaming a file (1 MiB)
const DefaultChunkSize = 1024 * 1024

// EncryptedFileSuffix is appended to a source path to name the temporary output of an encryption
const EncryptedFileSuffix = "encrypted"

// DecryptedFileSuffix is appended to a source path to name the temporary output of a decryption
const DecryptedFileSuffix = "decrypted"
