package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/domain/config"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectNetwork lets the user pick a network from a fuzzy-searchable list.
// The cursor starts on current when it is in the list.
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []*domain.NetworkProfile, current string) (*domain.NetworkProfile, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(networks) == 0 {
		return nil, fmt.Errorf("no networks configured")
	}

	if len(networks) == 1 {
		return networks[0], nil
	}

	options := formatNetworkOptions(networks)
	searchable := make([]string, len(networks))
	cursor := 0
	for i, n := range networks {
		searchable[i] = n.Name + " " + n.RPCURL
		if n.Name == current {
			cursor = i
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, / to search, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     "Select network",
		Items:     options,
		Templates: templates,
		Size:      10,
		CursorPos: cursor,
		Searcher:  createFuzzySearchFunc(searchable),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return networks[index], nil
}

// Confirm asks a yes/no question. Answering no is not an error.
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return true, nil
	}

	p := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// formatNetworkOptions creates display strings like "blast-sepolia (chain 168587773)"
func formatNetworkOptions(networks []*domain.NetworkProfile) []string {
	options := make([]string, len(networks))
	for i, n := range networks {
		name := color.New(color.FgWhite, color.Bold).Sprint(n.Name)
		detail := "chain unknown"
		if n.ChainID != 0 {
			detail = fmt.Sprintf("chain %d", n.ChainID)
		}
		options[i] = fmt.Sprintf("%s (%s)", name, color.New(color.FgBlue).Sprint(detail))
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.NetworkSelector = (*SelectorAdapter)(nil)
