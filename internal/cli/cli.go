package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var typesRaw, includeRaw, excludeRaw string

	fs := pflag.NewFlagSet("gen-optics", pflag.ContinueOnError)
	fs.StringVarP(&typesRaw, "types", "t", "", "comma-separated root type names")
	fs.StringVarP(&cfg.Package, "package", "p", "", "package path containing the root types")
	fs.StringVarP(&cfg.Filename, "filename", "o", "", "output file name")
	fs.StringVar(&cfg.PackageName, "pkg-name", "", "package name for the emitted file (default: package path base)")
	fs.IntVar(&cfg.Depth, "depth", 3, "navigator recursion depth, clamped to [1, 10]")
	fs.BoolVar(&cfg.AllowMutable, "allow-mutable", false, "tolerate types with a mutation surface")
	fs.StringVar(&includeRaw, "include-fields", "", "comma-separated field names to navigate (default: all)")
	fs.StringVar(&excludeRaw, "exclude-fields", "", "comma-separated field names to skip")
	fs.IntVar(&cfg.StepsFrom, "steps-from", 0, "lowest path-step arity to generate (0 disables)")
	fs.IntVar(&cfg.StepsTo, "steps-to", 0, "highest path-step arity to generate (0 disables)")
	fs.BoolVar(&cfg.Dump, "dump", false, "dump derivation results to stderr")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	cfg.Types = splitCommaList(typesRaw)
	if len(cfg.Types) == 0 {
		return nil, fmt.Errorf("--types is required")
	}
	if strings.TrimSpace(cfg.Package) == "" {
		return nil, fmt.Errorf("--package is required")
	}
	if strings.TrimSpace(cfg.Filename) == "" {
		return nil, fmt.Errorf("--filename is required")
	}
	if (cfg.StepsFrom == 0) != (cfg.StepsTo == 0) {
		return nil, fmt.Errorf("--steps-from and --steps-to must be set together")
	}

	cfg.IncludeFields = splitCommaList(includeRaw)
	cfg.ExcludeFields = splitCommaList(excludeRaw)
	return cfg, nil
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
