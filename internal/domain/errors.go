package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for deploy operations
var (
	// ErrMissingCredential is returned when the signing key env var is unset or empty
	ErrMissingCredential = errors.New("signing credential not set")

	// ErrInvalidCredential is returned when the signing key cannot be parsed
	ErrInvalidCredential = errors.New("invalid signing credential")

	// ErrNetworkNotFound is returned when a network name is not configured
	ErrNetworkNotFound = errors.New("network not found")

	// ErrContractNotFound is returned when no compiled artifact matches the contract name
	ErrContractNotFound = errors.New("contract not found")

	// ErrEmptyBytecode is returned when an artifact has no creation bytecode (abstract/interface)
	ErrEmptyBytecode = errors.New("artifact has no bytecode")

	// ErrConstructorArgs is returned when the constructor expects arguments
	ErrConstructorArgs = errors.New("constructor requires arguments")

	// ErrChainIDMismatch is returned when the endpoint reports a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrTransactionReverted is returned when the deployment receipt has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrNoCode is returned when no code is found at the deployed address
	ErrNoCode = errors.New("no code at deployed address")
)

// ErrorKind classifies a failure so callers can tell them apart without parsing messages
type ErrorKind string

const (
	KindConfig     ErrorKind = "config"
	KindCredential ErrorKind = "credential"
	KindArtifact   ErrorKind = "artifact"
	KindBuild      ErrorKind = "build"
	KindNetwork    ErrorKind = "network"
)

// DeployError is an error tagged with its kind and the operation that failed
type DeployError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *DeployError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DeployError) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind and operation. A nil err yields nil.
func NewError(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &DeployError{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost DeployError in err's chain.
// Untagged errors are treated as network errors since everything that
// is not configuration or build related happens against the RPC endpoint.
func KindOf(err error) ErrorKind {
	var de *DeployError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindNetwork
}

// AmbiguousContractErr is returned when a bare contract name matches several artifacts
type AmbiguousContractErr struct {
	Name    string
	Matches []string
}

func (e AmbiguousContractErr) Error() string {
	sorted := make([]string, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Strings(sorted)

	var suggestions []string
	for _, m := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s:%s", m, e.Name))
	}

	return fmt.Sprintf("multiple contracts named %s found - use path:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
