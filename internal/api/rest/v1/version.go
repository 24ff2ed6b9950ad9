package v1

// BasePath of the version 1 AES API
const BasePath = "/api/v1/aes"
