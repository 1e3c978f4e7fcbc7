// Package main provides the depscan CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"depscan/builder"
	"depscan/config"
	"depscan/graph"
	"depscan/logger"
	"depscan/output"
)

// Version is the current depscan version.
var Version = "0.3.0"

var flags struct {
	configPath  string
	ignore      []string
	ignoreNodes []string

	includeAssets   bool
	includeExternal bool
	includeBuiltins bool
	includeFolders  bool
	includePackages bool

	format   string
	out      string
	workers  int
	prune    bool
	compress bool
	verbose  bool
	noColor  bool
}

var rootCmd = &cobra.Command{
	Use:   "depscan [path]",
	Short: "Analyze JS/TS dependencies into a graph (dot, json or sqlite)",
	Long: `depscan statically scans a JS/TS source tree, honoring .gitignore files,
and builds a dependency graph connecting files, folders, packages, and
external or builtin modules. The graph can be exported as Graphviz dot,
JSON, or a SQLite database.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "config file (default <path>/"+config.DefaultFileName+")")
	f.StringArrayVar(&flags.ignore, "ignore", nil, "file or folder patterns to ignore when scanning")
	f.StringArrayVar(&flags.ignoreNodes, "ignore-node", nil, "node name patterns to drop from output")

	f.BoolVar(&flags.includeAssets, "include-assets", true, "include imported asset files in output")
	f.BoolVar(&flags.includeExternal, "include-external", true, "include external packages in output")
	f.BoolVar(&flags.includeBuiltins, "include-builtins", true, "include node builtins in output")
	f.BoolVar(&flags.includeFolders, "include-folders", false, "include folder nodes in output")
	f.BoolVar(&flags.includePackages, "include-packages", true, "include package nodes in output")

	f.StringVar(&flags.format, "format", "dot", "output format (dot, json or sqlite)")
	f.StringVarP(&flags.out, "output", "o", "", "output file (default stdout; required for sqlite)")
	f.IntVar(&flags.workers, "workers", 0, "limit worker threads (default one per CPU)")
	f.BoolVar(&flags.prune, "prune", false, "prune nodes without edges")
	f.BoolVar(&flags.compress, "compress", false, "gzip the output file")
	f.BoolVar(&flags.verbose, "verbose", false, "verbose output")
	f.BoolVar(&flags.noColor, "no-color", os.Getenv("CI") != "", "disable colored logging")
}

func run(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	level := logger.LevelInfo
	if flags.verbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, flags.noColor)

	cfg, err := loadConfig(cmd, root, log)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	g, err := builder.Build(cmd.Context(), root, builder.Options{
		Workers:        cfg.Workers,
		Prune:          cfg.Prune,
		IgnorePatterns: cfg.Ignore,
		Log:            log,
	})
	if err != nil {
		return err
	}

	filtered := g.Filter(graph.FilterOptions{
		Include:        cfg.IncludeMap(),
		IgnorePatterns: cfg.IgnoreNodes,
	})

	if err := output.WriteFile(cfg.Output, filtered, format, cfg.Compress); err != nil {
		return err
	}
	if cfg.Output != "" {
		log.Infof("saved %s file %s", format, cfg.Output)
	}
	printSummary(log, filtered)
	return nil
}

// loadConfig reads depscan.yaml and lets explicitly-set flags override it.
// A broken file at the default location is reported and ignored; one named
// with --config must load, missing or not.
func loadConfig(cmd *cobra.Command, root string, log logger.Logger) (config.Config, error) {
	var cfg config.Config
	var err error
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
		if err != nil {
			return cfg, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg, err = config.Load(filepath.Join(root, config.DefaultFileName))
		if err != nil {
			log.Errorf("%v, using defaults", err)
			cfg = config.Default()
		}
	}

	f := cmd.Flags()
	if f.Changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if f.Changed("ignore-node") {
		cfg.IgnoreNodes = flags.ignoreNodes
	}
	if f.Changed("include-assets") {
		cfg.Include.Assets = flags.includeAssets
	}
	if f.Changed("include-external") {
		cfg.Include.Externals = flags.includeExternal
	}
	if f.Changed("include-builtins") {
		cfg.Include.Builtins = flags.includeBuiltins
	}
	if f.Changed("include-folders") {
		cfg.Include.Folders = flags.includeFolders
	}
	if f.Changed("include-packages") {
		cfg.Include.Packages = flags.includePackages
	}
	if f.Changed("format") {
		cfg.Format = flags.format
	}
	if f.Changed("output") {
		cfg.Output = flags.out
	}
	if f.Changed("workers") {
		cfg.Workers = flags.workers
	}
	if f.Changed("prune") {
		cfg.Prune = flags.prune
	}
	if f.Changed("compress") {
		cfg.Compress = flags.compress
	}
	return cfg, nil
}

// printSummary reports per-kind node and edge counts. Edges count under
// their source node's kind.
func printSummary(log logger.Logger, g *graph.Graph) {
	nodes := g.CountByKind()
	edges := make(map[graph.NodeKind]int)
	for _, e := range g.Edges() {
		if e.Type == graph.EdgeTypeOf || e.From.IsTypeNode() || e.To.IsTypeNode() {
			continue
		}
		edges[g.KindOf(e.From)]++
	}
	order := []graph.NodeKind{
		graph.KindFile,
		graph.KindExternal,
		graph.KindBuiltin,
		graph.KindFolder,
		graph.KindAsset,
		graph.KindPackage,
	}
	for _, kind := range order {
		log.Infof("%s: %d nodes & %d edges", kind, nodes[kind], edges[kind])
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
