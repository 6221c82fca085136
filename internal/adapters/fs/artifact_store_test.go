package fs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/domain/config"
)

const foundryVault = `{
  "abi": [],
  "bytecode": {"object": "0x6001600c60003960016000f300", "sourceMap": "", "linkReferences": {}},
  "metadata": {
    "compiler": {"version": "0.8.20+commit.a1b79de6"},
    "settings": {"compilationTarget": {"src/Vault.sol": "Vault"}, "optimizer": {"enabled": true, "runs": 200}}
  }
}`

const hardhatVault = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "Vault",
  "sourceName": "contracts/Vault.sol",
  "abi": [],
  "bytecode": "0x6001600c60003960016000f300",
  "deployedBytecode": "0x00",
  "linkReferences": {}
}`

func writeArtifact(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestStore(root string) *ArtifactStore {
	cfg := &config.RuntimeConfig{ProjectRoot: root}
	return NewArtifactStore(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestGetContract_Foundry(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, "out/Vault.sol/Vault.json", foundryVault)
	writeArtifact(t, root, "out/build-info/abc.json", `{"id": "abc"}`)

	contract, err := newTestStore(root).GetContract(context.Background(), "Vault")
	require.NoError(t, err)

	assert.Equal(t, "Vault", contract.Name)
	assert.Equal(t, "src/Vault.sol", contract.Path)
	assert.Equal(t, "out/Vault.sol/Vault.json", contract.ArtifactPath)
	assert.Equal(t, "0.8.20", contract.Artifact.CompilerVersion())
	assert.False(t, contract.Artifact.Bytecode.Empty())
}

func TestGetContract_Hardhat(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, "artifacts/contracts/Vault.sol/Vault.json", hardhatVault)
	writeArtifact(t, root, "artifacts/contracts/Vault.sol/Vault.dbg.json", `{"_format": "hh-sol-dbg-1", "buildInfo": "x"}`)

	contract, err := newTestStore(root).GetContract(context.Background(), "Vault")
	require.NoError(t, err)

	assert.Equal(t, "contracts/Vault.sol", contract.Path)
	bytecode, err := contract.Artifact.Bytecode.Bytes()
	require.NoError(t, err)
	assert.Len(t, bytecode, 13)
}

func TestGetContract_NotFound(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, "out/Vault.sol/Vault.json", foundryVault)

	_, err := newTestStore(root).GetContract(context.Background(), "Treasury")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
	assert.Equal(t, domain.KindArtifact, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Treasury")
}

func TestGetContract_NoBuildOutput(t *testing.T) {
	_, err := newTestStore(t.TempDir()).GetContract(context.Background(), "Vault")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
}

func TestGetContract_Ambiguous(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, "out/Vault.sol/Vault.json", foundryVault)
	writeArtifact(t, root, "artifacts/contracts/Vault.sol/Vault.json", hardhatVault)

	store := newTestStore(root)
	_, err := store.GetContract(context.Background(), "Vault")
	require.Error(t, err)

	var ambiguous domain.AmbiguousContractErr
	require.ErrorAs(t, err, &ambiguous)
	assert.ElementsMatch(t, []string{"src/Vault.sol", "contracts/Vault.sol"}, ambiguous.Matches)
	assert.Equal(t, domain.KindArtifact, domain.KindOf(err))

	contract, err := store.GetContract(context.Background(), "contracts/Vault.sol:Vault")
	require.NoError(t, err)
	assert.Equal(t, "artifacts/contracts/Vault.sol/Vault.json", contract.ArtifactPath)
}

func TestGetContract_SameSourceMultipleVersions(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, "out/Vault.sol/Vault.0.8.20.json", foundryVault)
	writeArtifact(t, root, "out/Vault.sol/Vault.0.8.24.json", foundryVault)

	contract, err := newTestStore(root).GetContract(context.Background(), "Vault")
	require.NoError(t, err)
	assert.Equal(t, "out/Vault.sol/Vault.0.8.20.json", contract.ArtifactPath)
}

func TestGetContract_Refresh(t *testing.T) {
	root := t.TempDir()
	store := newTestStore(root)

	_, err := store.GetContract(context.Background(), "Vault")
	require.Error(t, err)

	writeArtifact(t, root, "out/Vault.sol/Vault.json", foundryVault)
	_, err = store.GetContract(context.Background(), "Vault")
	require.Error(t, err, "index is cached until refreshed")

	store.Refresh()
	_, err = store.GetContract(context.Background(), "Vault")
	require.NoError(t, err)
}

func TestSplitRef(t *testing.T) {
	tests := []struct {
		ref      string
		wantPath string
		wantName string
	}{
		{"Vault", "", "Vault"},
		{"src/Vault.sol:Vault", "src/Vault.sol", "Vault"},
		{" Vault ", "", "Vault"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			path, name := splitRef(tt.ref)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantName, name)
		})
	}
}
