package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR_NAME} patterns in config values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// embeddedEnvVarPattern matches ${VAR_NAME} anywhere in a value
var embeddedEnvVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// DetectEnvVar checks if a raw config value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName generates a conventional env var name for a network's RPC URL.
// Convention: uppercase, dashes/dots to underscores, append _RPC_URL.
// Examples: sepolia -> SEPOLIA_RPC_URL, blast-sepolia -> BLAST_SEPOLIA_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// ExpandRPCURL expands ${VAR} references. References to unset variables are
// left in place and returned in missing, so validation can name them.
func ExpandRPCURL(raw string) (expanded string, missing []string) {
	expanded = embeddedEnvVarPattern.ReplaceAllStringFunc(raw, func(ref string) string {
		name := embeddedEnvVarPattern.FindStringSubmatch(ref)[1]
		if val, ok := os.LookupEnv(name); ok && val != "" {
			return val
		}
		missing = append(missing, name)
		return ref
	})
	return expanded, missing
}

// RPCURLOverride returns the conventional <NETWORK>_RPC_URL env value, if set
func RPCURLOverride(networkName string) (string, bool) {
	val, ok := os.LookupEnv(GenerateEnvVarName(networkName))
	if !ok || val == "" {
		return "", false
	}
	return val, true
}
