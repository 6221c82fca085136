package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGasPriceString(t *testing.T) {
	tests := []struct {
		name  string
		price *big.Int
		want  string
	}{
		{"unset", nil, "auto"},
		{"zero", big.NewInt(0), "auto"},
		{"one gwei", big.NewInt(1_000_000_000), "1 gwei"},
		{"fractional", big.NewInt(1_500_000_000), "1.5 gwei"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &NetworkProfile{GasPrice: tt.price}
			assert.Equal(t, tt.want, n.GasPriceString())
			assert.Equal(t, tt.want != "auto", n.FixedGasPrice())
		})
	}
}
