package domain

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ParsePrivateKey decodes a hex signing key (with or without 0x) and derives its address
func ParsePrivateKey(privateKeyHex string) (*ecdsa.PrivateKey, common.Address, error) {
	privateKeyHex = strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if privateKeyHex == "" {
		return nil, common.Address{}, ErrMissingCredential
	}

	privateKeyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("%w: not valid hex", ErrInvalidCredential)
	}

	privateKey, err := crypto.ToECDSA(privateKeyBytes)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	return privateKey, crypto.PubkeyToAddress(privateKey.PublicKey), nil
}
