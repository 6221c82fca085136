package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEnvVar(t *testing.T) {
	tests := []struct {
		name       string
		rawValue   string
		wantEnvVar string
		wantIsVar  bool
	}{
		{
			name:       "simple env var",
			rawValue:   "${SEPOLIA_RPC_URL}",
			wantEnvVar: "SEPOLIA_RPC_URL",
			wantIsVar:  true,
		},
		{
			name:       "env var with underscores",
			rawValue:   "${BLAST_SEPOLIA_RPC_URL}",
			wantEnvVar: "BLAST_SEPOLIA_RPC_URL",
			wantIsVar:  true,
		},
		{
			name:       "hardcoded URL",
			rawValue:   "https://sepolia.base.org",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "env var with path suffix",
			rawValue:   "${MY_VAR}/path",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "empty string",
			rawValue:   "",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "localhost URL",
			rawValue:   "http://localhost:8545",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "env var starting with underscore",
			rawValue:   "${_MY_VAR}",
			wantEnvVar: "_MY_VAR",
			wantIsVar:  true,
		},
		{
			name:       "partial env var syntax - missing closing brace",
			rawValue:   "${UNCLOSED",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "dollar without braces",
			rawValue:   "$MY_VAR",
			wantEnvVar: "",
			wantIsVar:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envVar, isVar := DetectEnvVar(tt.rawValue)
			assert.Equal(t, tt.wantEnvVar, envVar)
			assert.Equal(t, tt.wantIsVar, isVar)
		})
	}
}

func TestGenerateEnvVarName(t *testing.T) {
	tests := []struct {
		name        string
		networkName string
		want        string
	}{
		{
			name:        "simple network",
			networkName: "sepolia",
			want:        "SEPOLIA_RPC_URL",
		},
		{
			name:        "network with dash",
			networkName: "blast-sepolia",
			want:        "BLAST_SEPOLIA_RPC_URL",
		},
		{
			name:        "network with number and dash",
			networkName: "anvil-31337",
			want:        "ANVIL_31337_RPC_URL",
		},
		{
			name:        "already uppercase",
			networkName: "MAINNET",
			want:        "MAINNET_RPC_URL",
		},
		{
			name:        "mixed case with dash",
			networkName: "Base-Sepolia",
			want:        "BASE_SEPOLIA_RPC_URL",
		},
		{
			name:        "network with dot",
			networkName: "polygon.zkevm",
			want:        "POLYGON_ZKEVM_RPC_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateEnvVarName(tt.networkName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandRPCURL(t *testing.T) {
	t.Setenv("VDEPLOY_TEST_RPC", "https://rpc.example.org")
	t.Setenv("VDEPLOY_TEST_API_KEY", "abc123")

	t.Run("pure reference", func(t *testing.T) {
		got, missing := ExpandRPCURL("${VDEPLOY_TEST_RPC}")
		assert.Equal(t, "https://rpc.example.org", got)
		assert.Empty(t, missing)
	})

	t.Run("embedded reference", func(t *testing.T) {
		got, missing := ExpandRPCURL("https://rpc.ankr.com/blast_testnet_sepolia/${VDEPLOY_TEST_API_KEY}")
		assert.Equal(t, "https://rpc.ankr.com/blast_testnet_sepolia/abc123", got)
		assert.Empty(t, missing)
	})

	t.Run("unset reference is kept and reported", func(t *testing.T) {
		got, missing := ExpandRPCURL("${VDEPLOY_TEST_UNSET_RPC}")
		assert.Equal(t, "${VDEPLOY_TEST_UNSET_RPC}", got)
		assert.Equal(t, []string{"VDEPLOY_TEST_UNSET_RPC"}, missing)
	})

	t.Run("plain URL untouched", func(t *testing.T) {
		got, missing := ExpandRPCURL("http://localhost:8545")
		assert.Equal(t, "http://localhost:8545", got)
		assert.Empty(t, missing)
	})
}

func TestRPCURLOverride(t *testing.T) {
	t.Setenv("BLAST_SEPOLIA_RPC_URL", "https://override.example.org")

	got, ok := RPCURLOverride("blast-sepolia")
	require.True(t, ok)
	assert.Equal(t, "https://override.example.org", got)

	t.Setenv("BLAST_SEPOLIA_RPC_URL", "")
	_, ok = RPCURLOverride("blast-sepolia")
	assert.False(t, ok)
}
