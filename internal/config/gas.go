package config

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

var gasUnits = map[string]*big.Int{
	"wei":   big.NewInt(params.Wei),
	"gwei":  big.NewInt(params.GWei),
	"ether": big.NewInt(params.Ether),
}

// ParseGasPrice parses a gas price setting into wei.
// "", "auto" and "0" return nil, meaning the node's suggestion is used.
// Accepted forms: "1000000000", "1gwei", "1.5 gwei", "0.000000001ether".
func ParseGasPrice(raw string) (*big.Int, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == "auto" || s == "0" {
		return nil, nil
	}

	unit := gasUnits["wei"]
	for _, name := range []string{"gwei", "ether", "wei"} {
		if strings.HasSuffix(s, name) {
			unit = gasUnits[name]
			s = strings.TrimSpace(strings.TrimSuffix(s, name))
			break
		}
	}

	amount, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid gas price %q", raw)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("gas price %q is negative", raw)
	}

	wei := amount.Mul(amount, new(big.Rat).SetInt(unit))
	if !wei.IsInt() {
		return nil, fmt.Errorf("gas price %q is not a whole number of wei", raw)
	}
	if wei.Sign() == 0 {
		return nil, nil
	}
	return new(big.Int).Set(wei.Num()), nil
}
