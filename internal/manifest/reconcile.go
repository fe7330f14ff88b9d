package manifest

import (
	"context"
	"errors"
	"path/filepath"
	"sort"

	"github.com/lvillani/vagrant-metadata/internal/domain"
	"github.com/lvillani/vagrant-metadata/internal/scanner"
	"github.com/lvillani/vagrant-metadata/internal/utils"
)

// DefaultWorkers is the number of artifacts hashed concurrently when
// ReconcileOptions.Workers is not set
const DefaultWorkers = 4

// ReconcileOptions configures a Reconciler
type ReconcileOptions struct {
	Workers  int
	Progress domain.Progress
	Logger   *utils.Logger
}

// Result is the outcome of one reconciliation pass
type Result struct {
	Manifest *domain.Manifest
	// Computed counts providers whose checksum and URL were (re)computed
	Computed int
	// Preserved counts providers copied unchanged from the input
	Preserved int
	// Dropped lists the input versions ("1.0.0") and providers
	// ("1.0.0/virtualbox") that no longer exist on disk
	Dropped []string
}

// Reconciler merges an existing manifest with the box tree on disk
type Reconciler struct {
	digester domain.Digester
	workers  int
	progress domain.Progress
	logger   *utils.Logger
}

// NewReconciler creates a Reconciler hashing artifacts with digester
func NewReconciler(digester domain.Digester, opts ReconcileOptions) *Reconciler {
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Reconciler{
		digester: digester,
		workers:  workers,
		progress: opts.Progress,
		logger:   logger.WithComponent("reconciler"),
	}
}

// providerJob is one provider directory found on disk together with the
// entry that will be emitted for it
type providerJob struct {
	artifact  string
	entry     domain.Provider
	recompute bool
}

type versionPlan struct {
	version   string
	providers []*providerJob
}

// Reconcile builds a new manifest from the tree under root. Versions and
// providers are emitted in ascending directory name order. A provider's
// checksum and URL are recomputed when its previous checksum is empty or
// when force is set; otherwise the previous entry is kept as is. Entries of
// m missing on disk are dropped. m itself is never modified.
//
// The whole pass fails on the first scanner or digest error; no partial
// manifest is returned.
func (r *Reconciler) Reconcile(ctx context.Context, root string, m *domain.Manifest, force bool) (*Result, error) {
	if m == nil {
		return nil, errors.New("reconcile: nil manifest")
	}

	log := r.logger.WithPath(root)
	log.Debug().Bool("force", force).Msg("Scanning box tree")

	plan, err := r.plan(root, m, force)
	if err != nil {
		return nil, err
	}

	if err := r.digestAll(ctx, root, m.BaseURL, plan); err != nil {
		return nil, err
	}

	result := assemble(m, plan)
	result.Dropped = dropped(m, plan)

	for _, key := range result.Dropped {
		log.Debug().Str("entry", key).Msg("Dropping entry missing on disk")
	}
	log.Info().
		Int("versions", len(result.Manifest.Versions)).
		Int("computed", result.Computed).
		Int("preserved", result.Preserved).
		Int("dropped", len(result.Dropped)).
		Msg("Reconciled manifest")

	return result, nil
}

// plan walks the tree and decides, per provider, whether it needs hashing
func (r *Reconciler) plan(root string, m *domain.Manifest, force bool) ([]versionPlan, error) {
	versionDirs, err := sortedSubdirectories(root)
	if err != nil {
		return nil, err
	}

	plan := make([]versionPlan, 0, len(versionDirs))
	for _, versionDir := range versionDirs {
		version := filepath.Base(versionDir)
		previous := m.FindVersion(version)

		providerDirs, err := sortedSubdirectories(versionDir)
		if err != nil {
			return nil, err
		}

		vp := versionPlan{version: version}
		for _, providerDir := range providerDirs {
			artifact, err := scanner.FindArtifact(providerDir)
			if err != nil {
				return nil, err
			}

			entry := previous.FindProvider(filepath.Base(providerDir))
			vp.providers = append(vp.providers, &providerJob{
				artifact:  artifact,
				entry:     entry,
				recompute: entry.Checksum == "" || force,
			})
		}
		plan = append(plan, vp)
	}

	return plan, nil
}

// digestAll hashes every job that needs it. Jobs are only updated once
// every digest succeeded.
func (r *Reconciler) digestAll(ctx context.Context, root, baseURL string, plan []versionPlan) error {
	var jobs []*providerJob
	for _, vp := range plan {
		for _, job := range vp.providers {
			if job.recompute {
				jobs = append(jobs, job)
			}
		}
	}

	if r.progress != nil {
		r.progress.Start(len(jobs))
		defer r.progress.Finish()
	}

	type computed struct {
		checksum string
		url      string
	}
	results := make([]computed, len(jobs))
	indexes := make([]int, len(jobs))
	for i := range indexes {
		indexes[i] = i
	}

	errs := utils.ParallelForEach(ctx, indexes, r.workers, func(ctx context.Context, i int) error {
		job := jobs[i]
		digest, err := r.digester.Digest(ctx, job.artifact)
		if err != nil {
			return err
		}
		rel, err := utils.RelativeSlashPath(root, job.artifact)
		if err != nil {
			return domain.NewFilesystemError("relpath", job.artifact, err)
		}

		results[i] = computed{
			checksum: digest,
			url:      utils.JoinURL(baseURL, rel),
		}
		r.logger.Debug().Str("artifact", job.artifact).Str("checksum", digest).Msg("Computed checksum")

		if r.progress != nil {
			r.progress.Advance()
		}
		return nil
	})
	if err := utils.FirstError(errs); err != nil {
		return err
	}

	for i, job := range jobs {
		job.entry.ChecksumType = r.digester.Type()
		job.entry.Checksum = results[i].checksum
		job.entry.URL = results[i].url
	}
	return nil
}

func assemble(m *domain.Manifest, plan []versionPlan) *Result {
	out := domain.NewManifest(m.Name, m.Description, m.BaseURL)
	result := &Result{Manifest: out}

	for _, vp := range plan {
		version := domain.NewVersion(vp.version)
		for _, job := range vp.providers {
			version.Providers = append(version.Providers, job.entry)
			if job.recompute {
				result.Computed++
			} else {
				result.Preserved++
			}
		}
		out.Versions = append(out.Versions, version)
	}

	return result
}

// dropped lists input entries that have no counterpart in plan
func dropped(m *domain.Manifest, plan []versionPlan) []string {
	onDisk := make(map[string]bool)
	for _, vp := range plan {
		onDisk[vp.version] = true
		for _, job := range vp.providers {
			onDisk[vp.version+"/"+job.entry.Name] = true
		}
	}

	var keys []string
	for _, v := range m.Versions {
		if !onDisk[v.Version] {
			keys = append(keys, v.Version)
			continue
		}
		for _, p := range v.Providers {
			if key := v.Version + "/" + p.Name; !onDisk[key] {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

func sortedSubdirectories(path string) ([]string, error) {
	dirs, err := scanner.ListSubdirectories(path)
	if err != nil {
		return nil, err
	}
	sort.Slice(dirs, func(i, j int) bool {
		return filepath.Base(dirs[i]) < filepath.Base(dirs[j])
	})
	return dirs, nil
}
