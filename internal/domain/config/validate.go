package config

import (
	"fmt"
	"strings"

	"github.com/trebuchet-org/vdeploy/internal/domain"
)

// Validate checks every field a deploy needs before anything touches the
// network or the compiler. The first problem found is returned as a
// DeployError of kind config or credential.
func (c *RuntimeConfig) Validate() error {
	if c.Network == nil {
		return domain.NewError(domain.KindConfig, "configuration", fmt.Errorf("no network selected"))
	}
	if strings.TrimSpace(c.Contract) == "" {
		return domain.NewError(domain.KindConfig, "configuration", fmt.Errorf("contract name is empty"))
	}

	n := c.Network
	if strings.TrimSpace(n.RPCURL) == "" {
		return domain.NewError(domain.KindConfig, "configuration",
			fmt.Errorf("network %s has no rpc_url", n.Name))
	}
	if strings.Contains(n.RPCURL, "${") {
		return domain.NewError(domain.KindConfig, "configuration",
			fmt.Errorf("network %s rpc_url references an unset environment variable: %s", n.Name, n.RPCURL))
	}
	if n.GasPrice != nil && n.GasPrice.Sign() < 0 {
		return domain.NewError(domain.KindConfig, "configuration",
			fmt.Errorf("network %s has a negative gas_price", n.Name))
	}

	if !c.SkipBuild && c.Compiler.Tool != "none" && strings.TrimSpace(c.Compiler.Version) == "" {
		return domain.NewError(domain.KindConfig, "configuration", fmt.Errorf("compiler version is empty"))
	}

	envVar := n.PrivateKeyEnv
	if envVar == "" {
		envVar = domain.DefaultPrivateKeyEnv
	}
	if strings.TrimSpace(n.PrivateKey) == "" {
		return domain.NewError(domain.KindCredential, "configuration",
			fmt.Errorf("%w: set %s for network %s", domain.ErrMissingCredential, envVar, n.Name))
	}
	if _, _, err := domain.ParsePrivateKey(n.PrivateKey); err != nil {
		return domain.NewError(domain.KindCredential, "configuration",
			fmt.Errorf("%s: %w", envVar, err))
	}

	return nil
}
