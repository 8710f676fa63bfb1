package cli

import "strings"

// Config stores CLI options for a single derivation run.
type Config struct {
	Types         []string
	Package       string
	Filename      string
	PackageName   string
	Depth         int
	AllowMutable  bool
	IncludeFields []string
	ExcludeFields []string
	StepsFrom     int
	StepsTo       int
	Dump          bool
	ShowVersion   bool
}

// OutputFilename returns the destination file path for the emit layer.
func (c *Config) OutputFilename() string {
	return c.Filename
}

// TargetPackage returns the package name and import path the emitted file
// belongs to. The name defaults to the package path's base element.
func (c *Config) TargetPackage() (name, path string) {
	name = c.PackageName
	if name == "" {
		name = c.Package
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
	}
	return name, c.Package
}
