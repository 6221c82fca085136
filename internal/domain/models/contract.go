package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Contract represents a compiled contract found in the build output
type Contract struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ArtifactPath string    `json:"artifactPath,omitempty"`
	Artifact     *Artifact `json:"artifact,omitempty"`
}

// Key returns the "path:Name" form used to disambiguate contracts
func (c *Contract) Key() string {
	return fmt.Sprintf("%s:%s", c.Path, c.Name)
}

// BytecodeObject represents bytecode in a build artifact. Foundry writes
// an object with an "object" field, Hardhat writes a bare hex string.
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap,omitempty"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Object = s
		return nil
	}

	type plain BytecodeObject
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BytecodeObject(p)
	return nil
}

// Empty reports whether there is no code to deploy
func (b BytecodeObject) Empty() bool {
	obj := strings.TrimPrefix(b.Object, "0x")
	return obj == ""
}

// Linked reports whether all library placeholders have been resolved
func (b BytecodeObject) Linked() bool {
	return len(b.LinkReferences) == 0 && !strings.Contains(b.Object, "__$")
}

// Bytes decodes the hex bytecode
func (b BytecodeObject) Bytes() ([]byte, error) {
	obj := b.Object
	if !strings.HasPrefix(obj, "0x") {
		obj = "0x" + obj
	}
	return hexutil.Decode(obj)
}

// Artifact represents a compilation artifact (Foundry or Hardhat layout)
type Artifact struct {
	Format       string           `json:"_format,omitempty"`
	ContractName string           `json:"contractName,omitempty"`
	SourceName   string           `json:"sourceName,omitempty"`
	ABI          json.RawMessage  `json:"abi"`
	Bytecode     BytecodeObject   `json:"bytecode"`
	Metadata     ArtifactMetadata `json:"metadata"`
}

// ArtifactMetadata is the subset of solc metadata we read
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
		Optimizer         struct {
			Enabled bool `json:"enabled"`
			Runs    int  `json:"runs"`
		} `json:"optimizer"`
	} `json:"settings"`
}

// CompilerVersion returns the solc version without the commit suffix
func (a *Artifact) CompilerVersion() string {
	v := a.Metadata.Compiler.Version
	if idx := strings.Index(v, "+"); idx != -1 {
		v = v[:idx]
	}
	return v
}
