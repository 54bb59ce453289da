package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds raw flag values until they are merged into a Config.
type Flags struct {
	cfg   Config
	types string
	tags  string
}

// BindFlags registers the generator flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVarP(&f.types, "type", "t", "", "comma-separated type names to derive constructors for")
	fs.StringVarP(&f.cfg.Pattern, "pkg", "p", "", "package pattern (default \".\")")
	fs.StringVarP(&f.cfg.Filename, "output", "o", "", "output file, relative to the package directory (default <type>_fromone.go)")
	fs.StringVar(&f.tags, "tags", "", "comma-separated build tags used when loading the package")
	fs.StringVarP(&f.cfg.ConfigFile, "config", "c", "", "YAML or TOML config file")
	fs.IntVarP(&f.cfg.Jobs, "jobs", "j", 0, "declarations derived in parallel (default GOMAXPROCS)")
	fs.BoolVar(&f.cfg.Dump, "dump", false, "print parsed declarations to stderr")
	fs.BoolVar(&f.cfg.Verbose, "verbose", false, "log origin types dropped as ambiguous")
	fs.BoolVar(&f.cfg.NoColor, "no-color", false, "disable coloured diagnostics")
	fs.BoolVarP(&f.cfg.ShowVersion, "version", "v", false, "show version")
	return f
}

// Config merges parsed flags over the optional config file and validates the
// result. A positional argument, if any, is the package pattern.
func (f *Flags) Config(fs *pflag.FlagSet, args []string) (*Config, error) {
	cfg := f.cfg
	cfg.Types = splitCommaList(f.types)
	cfg.BuildTags = splitCommaList(f.tags)
	if cfg.ShowVersion {
		return &cfg, nil
	}

	if len(args) > 1 {
		return nil, fmt.Errorf("at most one package argument, got %d", len(args))
	}
	if len(args) == 1 {
		if cfg.Pattern != "" {
			return nil, fmt.Errorf("package given both as argument and --pkg")
		}
		cfg.Pattern = args[0]
	}

	if cfg.ConfigFile != "" {
		file, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		mergeFile(fs, &cfg, file)
	}

	if strings.TrimSpace(cfg.Pattern) == "" {
		cfg.Pattern = "."
	}
	if len(cfg.Types) == 0 {
		return nil, fmt.Errorf("--type is required")
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}
	return &cfg, nil
}

// mergeFile fills every option not set on the command line from file.
func mergeFile(fs *pflag.FlagSet, cfg *Config, file *Config) {
	changed := func(name string) bool {
		return fs != nil && fs.Changed(name)
	}

	if !changed("type") && len(file.Types) > 0 {
		cfg.Types = file.Types
	}
	if !changed("pkg") && cfg.Pattern == "" && file.Pattern != "" {
		cfg.Pattern = file.Pattern
	}
	if !changed("output") && file.Filename != "" {
		cfg.Filename = file.Filename
	}
	if !changed("tags") && len(file.BuildTags) > 0 {
		cfg.BuildTags = file.BuildTags
	}
	if !changed("jobs") && file.Jobs > 0 {
		cfg.Jobs = file.Jobs
	}
	if !changed("no-color") && file.NoColor {
		cfg.NoColor = true
	}
	if !changed("verbose") && file.Verbose {
		cfg.Verbose = true
	}
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
