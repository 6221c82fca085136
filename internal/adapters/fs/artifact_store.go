package fs

import (
	"context"
	"encoding/json"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/domain/config"
	"github.com/trebuchet-org/vdeploy/internal/domain/models"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// ArtifactDirs are the build output directories searched, relative to the project root.
// "out" is Foundry's layout, "artifacts" is Hardhat's.
var ArtifactDirs = []string{"out", "artifacts"}

// ArtifactStore indexes compiled contract artifacts in the project's build output
type ArtifactStore struct {
	projectRoot string
	log         *slog.Logger

	mu      sync.Mutex
	indexed bool
	byName  map[string][]*models.Contract // key: contract name
}

// NewArtifactStore creates a new artifact store for the project root
func NewArtifactStore(cfg *config.RuntimeConfig, log *slog.Logger) *ArtifactStore {
	return &ArtifactStore{
		projectRoot: cfg.ProjectRoot,
		log:         log.With("component", "ArtifactStore"),
	}
}

// GetContract looks a contract up by "Name" or "path/to/File.sol:Name".
// The index is built on first use so it sees the output of a preceding build.
func (s *ArtifactStore) GetContract(ctx context.Context, ref string) (*models.Contract, error) {
	if err := s.ensureIndexed(); err != nil {
		return nil, err
	}

	path, name := splitRef(ref)
	candidates := s.byName[name]

	if path != "" {
		for _, c := range candidates {
			if c.Path == path {
				return c, nil
			}
		}
		return nil, s.notFound(ref)
	}

	switch paths := distinctPaths(candidates); len(paths) {
	case 0:
		return nil, s.notFound(ref)
	case 1:
		return candidates[0], nil
	default:
		return nil, domain.NewError(domain.KindArtifact, "resolve "+name,
			domain.AmbiguousContractErr{Name: name, Matches: paths})
	}
}

// Refresh drops the index so the next lookup rescans the build output
func (s *ArtifactStore) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexed = false
	s.byName = nil
}

func (s *ArtifactStore) notFound(ref string) error {
	dirs := make([]string, 0, len(ArtifactDirs))
	for _, d := range ArtifactDirs {
		dirs = append(dirs, filepath.Join(s.projectRoot, d))
	}
	return domain.NewError(domain.KindArtifact, "resolve "+ref,
		fmt.Errorf("%w: no artifact for %s in %s (did the build run?)", domain.ErrContractNotFound, ref, strings.Join(dirs, ", ")))
}

func (s *ArtifactStore) ensureIndexed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexed {
		return nil
	}

	s.byName = make(map[string][]*models.Contract)
	for _, dir := range ArtifactDirs {
		root := filepath.Join(s.projectRoot, dir)
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		if err := s.indexDir(root); err != nil {
			return domain.NewError(domain.KindArtifact, "index artifacts",
				fmt.Errorf("failed to scan %s: %w", root, err))
		}
	}

	// Deterministic order so the first candidate of a name is stable
	for name := range s.byName {
		sort.SliceStable(s.byName[name], func(i, j int) bool {
			return s.byName[name][i].ArtifactPath < s.byName[name][j].ArtifactPath
		})
	}

	s.indexed = true
	return nil
}

func (s *ArtifactStore) indexDir(root string) error {
	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}

		contract, err := s.loadArtifact(path)
		if err != nil {
			// Not every JSON file in the output is an artifact
			s.log.Debug("skipping file", "path", path, "error", err)
			return nil
		}
		if contract != nil {
			s.byName[contract.Name] = append(s.byName[contract.Name], contract)
		}
		return nil
	})
}

// loadArtifact parses one artifact file and works out its source path and contract name
func (s *ArtifactStore) loadArtifact(path string) (*models.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, err
	}
	if artifact.ABI == nil {
		return nil, fmt.Errorf("no abi")
	}

	var name, source string
	switch {
	case artifact.ContractName != "":
		// Hardhat
		name, source = artifact.ContractName, artifact.SourceName
	case len(artifact.Metadata.Settings.CompilationTarget) > 0:
		// Foundry
		for src, n := range artifact.Metadata.Settings.CompilationTarget {
			source, name = src, n
		}
	default:
		// Foundry without metadata: out/<File>.sol/<Name>[.<version>].json
		base := strings.TrimSuffix(filepath.Base(path), ".json")
		if idx := strings.Index(base, "."); idx != -1 {
			base = base[:idx]
		}
		name = base
		source = filepath.Base(filepath.Dir(path))
	}

	if name == "" {
		return nil, nil
	}

	rel, err := filepath.Rel(s.projectRoot, path)
	if err != nil {
		rel = path
	}

	return &models.Contract{
		Name:         name,
		Path:         filepath.ToSlash(source),
		ArtifactPath: filepath.ToSlash(rel),
		Artifact:     &artifact,
	}, nil
}

// splitRef splits "path:Name" into its parts. A bare name has an empty path.
func splitRef(ref string) (string, string) {
	ref = strings.TrimSpace(ref)
	if idx := strings.LastIndex(ref, ":"); idx != -1 {
		return filepath.ToSlash(ref[:idx]), ref[idx+1:]
	}
	return "", ref
}

func distinctPaths(contracts []*models.Contract) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, c := range contracts {
		if !seen[c.Path] {
			seen[c.Path] = true
			paths = append(paths, c.Path)
		}
	}
	return paths
}

// Ensure the store implements the interface
var _ usecase.ArtifactRepository = (*ArtifactStore)(nil)
