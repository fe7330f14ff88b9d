package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lvillani/vagrant-metadata/internal/app"
	"github.com/lvillani/vagrant-metadata/internal/cache"
	"github.com/lvillani/vagrant-metadata/internal/config"
	"github.com/lvillani/vagrant-metadata/internal/tui"
	"github.com/lvillani/vagrant-metadata/internal/utils"
	"github.com/lvillani/vagrant-metadata/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Dependencies for testing
	osStat               = os.Stat
	progressTo io.Writer = os.Stderr
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	cfgFile     string
	verbose     bool
	name        string
	description string
	baseURL     string
	force       bool
	dryRun      bool
	noCache     bool
	progress    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "vagrant-metadata [root]",
		Short: "Generate Vagrant box catalog metadata",
		Long: `vagrant-metadata scans a tree of Vagrant boxes laid out as
<root>/<version>/<provider>/<box>.box and writes the catalog metadata file
Vagrant uses to discover and verify them.

Checksums already present in the manifest are kept unless --force is given,
so re-running after adding a box only hashes the new one.`,
		Version:       version.Short(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, opts, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ~/.vagrant-metadata/config.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().StringVar(&opts.name, "name", "", "Box name, e.g. hashicorp/precise64")
	rootCmd.Flags().StringVar(&opts.description, "description", "", "Box description")
	rootCmd.Flags().StringVar(&opts.baseURL, "baseurl", "", "URL the box root is served from")
	rootCmd.Flags().StringP("output", "o", config.DefaultManifestFile, "Manifest file, relative to root unless absolute")
	rootCmd.Flags().BoolVar(&opts.force, "force", false, "Recompute every checksum")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the manifest instead of writing it")
	rootCmd.Flags().IntP("workers", "j", config.DefaultWorkers, "Number of boxes hashed concurrently")
	rootCmd.Flags().Bool("cache", config.DefaultCacheEnabled, "Cache checksums across runs")
	rootCmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Disable the checksum cache")
	rootCmd.Flags().String("cache-dir", "", "Checksum cache directory (default is ~/.vagrant-metadata/cache)")
	rootCmd.Flags().BoolVar(&opts.progress, "progress", false, "Show a progress bar while hashing")

	// Bind flags to viper
	_ = v.BindPFlag("manifest.output", rootCmd.Flags().Lookup("output"))
	_ = v.BindPFlag("digest.workers", rootCmd.Flags().Lookup("workers"))
	_ = v.BindPFlag("cache.enabled", rootCmd.Flags().Lookup("cache"))

	rootCmd.AddCommand(newCacheCmd(v, opts))
	rootCmd.AddCommand(newConfigureCmd(opts))
	rootCmd.AddCommand(newDoctorCmd(v, opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig reads the configuration and applies flags that do not map
// one to one onto a config key
func loadConfig(cmd *cobra.Command, v *viper.Viper, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.LoadWithViper(v, opts.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flag := cmd.Flags().Lookup("cache-dir"); flag != nil && flag.Changed {
		cfg.Cache.Directory = utils.ExpandPath(flag.Value.String())
	}
	if opts.noCache {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

func run(cmd *cobra.Command, v *viper.Viper, opts *rootOptions, args []string) error {
	cfg, err := loadConfig(cmd, v, opts)
	if err != nil {
		return err
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	orchOpts := app.OrchestratorOptions{
		Config:  cfg,
		Verbose: opts.verbose,
	}
	if opts.progress {
		orchOpts.Progress = utils.NewBarProgress(utils.DescHashing, progressTo)
	}

	orchestrator, err := app.NewOrchestrator(orchOpts)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	_, err = orchestrator.Run(ctx, app.RunOptions{
		Root:        root,
		Name:        opts.name,
		Description: opts.description,
		BaseURL:     opts.baseURL,
		Force:       opts.force,
		DryRun:      opts.dryRun,
		Stdout:      cmd.OutOrStdout(),
	})
	return err
}

func newCacheCmd(v *viper.Viper, opts *rootOptions) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the checksum cache",
	}
	cacheCmd.PersistentFlags().String("cache-dir", "", "Checksum cache directory (default is ~/.vagrant-metadata/cache)")

	// openCache opens the configured cache, or returns nil when it was never created
	openCache := func(cmd *cobra.Command) (*cache.BadgerCache, string, error) {
		cfg, err := loadConfig(cmd, v, opts)
		if err != nil {
			return nil, "", err
		}
		dir := cfg.Cache.Directory
		if _, err := osStat(dir); err != nil {
			return nil, dir, nil
		}
		c, err := cache.NewBadgerCache(cache.Options{Directory: dir})
		if err != nil {
			return nil, dir, fmt.Errorf("failed to open digest cache: %w", err)
		}
		return c, dir, nil
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the cache location and number of entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, dir, err := openCache(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Directory: %s\n", dir)
			if c == nil {
				fmt.Fprintln(out, "Entries: 0 (not created yet)")
				return nil
			}
			defer c.Close()
			fmt.Fprintf(out, "Entries: %d\n", c.Size())
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached checksum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, dir, err := openCache(cmd)
			if err != nil {
				return err
			}
			if c == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to clear in %s\n", dir)
				return nil
			}
			defer c.Close()

			removed := c.Size()
			if err := c.Clear(); err != nil {
				return fmt.Errorf("failed to clear digest cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries from %s\n", removed, dir)
			return nil
		},
	})

	return cacheCmd
}

// runTUI is replaced in tests
var runTUI = tui.Run

func newConfigureCmd(opts *rootOptions) *cobra.Command {
	var accessible bool
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Edit the configuration file interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.cfgFile
			if path == "" {
				path = config.ConfigFilePath()
			}
			path = utils.ExpandPath(path)

			cfg := config.Default()
			if _, err := osStat(path); err == nil {
				loaded, err := config.LoadWithViper(viper.New(), path)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				cfg = loaded
			}

			return runTUI(tui.Options{
				Config:     cfg,
				Path:       path,
				Accessible: accessible,
				SaveFunc: func(c *config.Config) error {
					return config.Save(c, path)
				},
			})
		},
	}
	cmd.Flags().BoolVar(&accessible, "accessible", false, "Use plain prompts suitable for screen readers")
	return cmd
}

func newDoctorCmd(v *viper.Viper, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [root]",
		Short: "Check configuration and box tree",
		Long:  "Verifies that the configuration loads, the box root is writable and the cache directory is usable.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			fmt.Fprintln(out, "Checking vagrant-metadata setup...")
			allPassed := true

			fmt.Fprint(out, "  Config file: ")
			cfg, err := loadConfig(cmd, v, opts)
			if err != nil {
				fmt.Fprintf(out, "FAILED (%v)\n", err)
				cfg = config.Default()
				allPassed = false
			} else {
				fmt.Fprintln(out, "OK")
			}

			fmt.Fprint(out, "  Box root: ")
			if checkWritable(root) {
				fmt.Fprintf(out, "OK (%s)\n", root)
			} else {
				fmt.Fprintf(out, "FAILED (%s is not a writable directory)\n", root)
				allPassed = false
			}

			fmt.Fprint(out, "  Cache directory: ")
			switch {
			case !cfg.Cache.Enabled:
				fmt.Fprintln(out, "DISABLED")
			case checkCacheDir(cfg.Cache.Directory):
				fmt.Fprintf(out, "OK (%s)\n", cfg.Cache.Directory)
			default:
				fmt.Fprintln(out, "WARN (will be created on first use)")
			}

			fmt.Fprintln(out)
			if !allPassed {
				return fmt.Errorf("some checks failed")
			}
			fmt.Fprintln(out, "All checks passed!")
			return nil
		},
	}
}

// checkWritable checks that dir is a directory we can create files in
func checkWritable(dir string) bool {
	info, err := osStat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	f, err := os.CreateTemp(dir, ".vagrant-metadata-write-*")
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(f.Name())
	return true
}

// checkCacheDir checks if the cache directory exists
func checkCacheDir(path string) bool {
	info, err := osStat(filepath.Clean(path))
	if err != nil {
		return false
	}
	return info.IsDir()
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				data, err := version.Get().JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
