package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lvillani/vagrant-metadata/internal/cache"
	"github.com/lvillani/vagrant-metadata/internal/checksum"
	"github.com/lvillani/vagrant-metadata/internal/config"
	"github.com/lvillani/vagrant-metadata/internal/domain"
	"github.com/lvillani/vagrant-metadata/internal/manifest"
	"github.com/lvillani/vagrant-metadata/internal/utils"
)

// Orchestrator loads a manifest, reconciles it with the box tree and
// writes it back
type Orchestrator struct {
	config   *config.Config
	logger   *utils.Logger
	progress domain.Progress
	digester domain.Digester
	cached   domain.Digester
	cache    domain.DigestCache
	loader   *manifest.Loader
	writer   *manifest.Writer
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	Config   *config.Config
	Verbose  bool
	Progress domain.Progress
	// LogOutput defaults to stderr
	LogOutput io.Writer
	// Digester defaults to SHA-1
	Digester domain.Digester
	// Cache overrides the BadgerDB cache opened when cache.enabled is set
	Cache domain.DigestCache
}

// RunOptions describes one invocation
type RunOptions struct {
	Root        string
	Name        string
	Description string
	BaseURL     string
	Force       bool
	DryRun      bool
	// Stdout receives the manifest in dry-run mode
	Stdout io.Writer
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  opts.LogOutput,
		Verbose: opts.Verbose,
	})

	digester := opts.Digester
	if digester == nil {
		digester = checksum.NewSHA1Digester()
	}

	o := &Orchestrator{
		config:   cfg,
		logger:   logger,
		progress: opts.Progress,
		digester: digester,
		loader:   manifest.NewLoader(),
		writer:   manifest.NewWriter(),
	}

	c := opts.Cache
	if c == nil && cfg.Cache.Enabled {
		bc, err := cache.NewBadgerCache(cache.Options{Directory: utils.ExpandPath(cfg.Cache.Directory)})
		if err != nil {
			return nil, fmt.Errorf("failed to open digest cache: %w", err)
		}
		c = bc
	}
	if c != nil {
		o.cache = c
		o.cached = checksum.NewCachedDigester(digester, c, cfg.Cache.TTL, logger)
		logger.Debug().Str("directory", cfg.Cache.Directory).Msg("Digest cache enabled")
	}

	return o, nil
}

// Run reconciles the manifest of opts.Root and persists it
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) (*manifest.Result, error) {
	startTime := time.Now()

	root := opts.Root
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, domain.NewFilesystemError("stat", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("box root %s is not a directory", root)
	}

	output := o.OutputPath(root)
	o.logger.Info().
		Str("root", root).
		Str("output", output).
		Bool("force", opts.Force).
		Int("workers", o.config.Digest.Workers).
		Msg("Generating box metadata")

	m, err := o.loader.Seed(output, opts.Name, opts.Description, opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	reconciler := manifest.NewReconciler(o.digesterFor(opts.Force), manifest.ReconcileOptions{
		Workers:  o.config.Digest.Workers,
		Progress: o.progress,
		Logger:   o.logger,
	})

	result, err := reconciler.Reconcile(ctx, root, m, opts.Force)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		data, err := o.writer.Marshal(result.Manifest, filepath.Ext(output))
		if err != nil {
			return nil, err
		}
		stdout := opts.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		if _, err := stdout.Write(data); err != nil {
			return nil, err
		}
	} else if err := o.writer.Write(output, result.Manifest); err != nil {
		return nil, err
	}

	o.logger.Info().
		Dur("duration", time.Since(startTime)).
		Int("providers", result.Manifest.ProviderCount()).
		Bool("dry_run", opts.DryRun).
		Msg("Box metadata generated")

	return result, nil
}

// OutputPath resolves the configured manifest path against root
func (o *Orchestrator) OutputPath(root string) string {
	output := utils.ExpandPath(o.config.Manifest.Output)
	if filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(root, output)
}

// digesterFor bypasses the digest cache in force mode so every artifact
// is actually rehashed
func (o *Orchestrator) digesterFor(force bool) domain.Digester {
	if o.cached == nil || force {
		return o.digester
	}
	return o.cached
}

// Close releases resources held by the orchestrator
func (o *Orchestrator) Close() error {
	if o.cache != nil {
		return o.cache.Close()
	}
	return nil
}
