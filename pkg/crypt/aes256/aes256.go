// Package aes256 encrypts backup archives with AES-256-GCM before
// they leave the collect directory. The IV is written as a prefix of
// the encrypted file so decryption only needs the secret.
package aes256

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"os"
)

const ivSize = 12

func newGCM(secret []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func Encrypt(data []byte, secret []byte, iv []byte) ([]byte, error) {
	aesgcm, err := newGCM(secret)
	if err != nil {
		return nil, err
	}
	return aesgcm.Seal(nil, iv, data, nil), nil
}

func Decrypt(ciphertext []byte, secret []byte, iv []byte) ([]byte, error) {
	aesgcm, err := newGCM(secret)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, iv, ciphertext, nil)
}

func GenerateSecret() (secret []byte, err error) {
	secret = make([]byte, 32)
	_, err = rand.Read(secret)
	return
}

// Never use more than 2^32 random nonces with a given key because of
// the risk of a repeat.
func GenerateIV() (iv []byte, err error) {
	iv = make([]byte, ivSize)
	_, err = io.ReadFull(rand.Reader, iv)
	return
}

// EncryptFile encrypts src into dst with a fresh IV, prefixing the IV
// to the ciphertext.
func EncryptFile(src, dst string, secret []byte) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	iv, err := GenerateIV()
	if err != nil {
		return err
	}
	encrypted, err := Encrypt(data, secret, iv)
	if err != nil {
		return fmt.Errorf("encrypting %s: %w", src, err)
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := out.Write(iv); err != nil {
		out.Close()
		return err
	}
	if _, err := out.Write(encrypted); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// DecryptFile reverses EncryptFile.
func DecryptFile(src, dst string, secret []byte) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if len(data) < ivSize {
		return fmt.Errorf("encrypted file %s is truncated", src)
	}
	decrypted, err := Decrypt(data[ivSize:], secret, data[:ivSize])
	if err != nil {
		return fmt.Errorf("decrypting %s: %w", src, err)
	}
	return os.WriteFile(dst, decrypted, 0600)
}
