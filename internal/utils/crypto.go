package utils

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrBadPadding is returned by Decrypt when the plaintext padding is malformed,
// usually because the key is wrong or the ciphertext was altered.
var ErrBadPadding = errors.New("invalid padding")

// Sign returns a hex HMAC-SHA256 over the parts joined by a unit separator
func Sign(secret string, parts ...string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify checks a signature produced by Sign in constant time
func Verify(secret, signature string, parts ...string) bool {
	return hmac.Equal([]byte(Sign(secret, parts...)), []byte(signature))
}

// Encrypt seals text with AES-CBC and returns hex(IV || ciphertext)
func Encrypt(text string, key []byte) (string, error) {
	if text == "" {
		return "", errors.New("nothing to encrypt")
	}
	block, err := newBlock(key)
	if err != nil {
		return "", err
	}

	out := make([]byte, aes.BlockSize, aes.BlockSize+len(text)+aes.BlockSize)
	if _, err := rand.Read(out); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}
	padded := pad([]byte(text))
	sealed := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, out[:aes.BlockSize]).CryptBlocks(sealed, padded)

	return hex.EncodeToString(append(out, sealed...)), nil
}

// Decrypt opens a value produced by Encrypt
func Decrypt(sealedHex string, key []byte) (string, error) {
	block, err := newBlock(key)
	if err != nil {
		return "", err
	}
	raw, err := hex.DecodeString(sealedHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode hex: %w", err)
	}
	if len(raw) < 2*aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return "", fmt.Errorf("sealed message has invalid length %d", len(raw))
	}

	iv, sealed := raw[:aes.BlockSize], raw[aes.BlockSize:]
	plain := make([]byte, len(sealed))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, sealed)

	text, err := unpad(plain)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

func newBlock(key []byte) (cipher.Block, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("key must be 16, 24 or 32 bytes, got %d", len(key))
	}
	return aes.NewCipher(key)
}

// pad applies PKCS#7 padding to a whole number of AES blocks
func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, ErrBadPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, ErrBadPadding
	}
	if !bytes.Equal(b[len(b)-n:], bytes.Repeat([]byte{byte(n)}, n)) {
		return nil, ErrBadPadding
	}
	return b[:len(b)-n], nil
}
