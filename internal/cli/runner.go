package cli

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/seitarof/gen-optics/internal/describe"
	"github.com/seitarof/gen-optics/internal/emit"
	"github.com/seitarof/gen-optics/internal/engine"
	"github.com/seitarof/gen-optics/internal/model"
	"github.com/seitarof/gen-optics/internal/pathcomp"
	"github.com/seitarof/gen-optics/internal/shape"
	"github.com/seitarof/gen-optics/internal/synth"
)

// Runner orchestrates the describe/engine/emit layers.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	feed    describe.Feed
	emitter emit.Emitter
}

// NewRunner creates a default runner implementation.
func NewRunner(feed describe.Feed, e emit.Emitter) Runner {
	return &runnerImpl{feed: feed, emitter: e}
}

// Run executes a single derivation and emission cycle.
func (r *runnerImpl) Run(cfg *Config) error {
	eng := engine.New(r.feed, engine.Options{
		Shape: shape.Options{TolerateMutators: cfg.AllowMutable},
		Path: pathcomp.Options{
			MaxDepth:      cfg.Depth,
			IncludeFields: cfg.IncludeFields,
			ExcludeFields: cfg.ExcludeFields,
		},
	})

	roots := make([]model.TypeRef, len(cfg.Types))
	for i, name := range cfg.Types {
		roots[i] = model.Ref(qualify(cfg.Package, name))
	}

	results := eng.DeriveAll(roots)
	results = append(results, r.deriveHopTypes(eng, results)...)
	logDiagnostics(results)

	if cfg.Dump {
		spew.Fdump(os.Stderr, results)
	}

	if cfg.StepsFrom > 0 {
		family, err := synth.NewStepFamily(cfg.StepsFrom, cfg.StepsTo)
		if err != nil {
			return err
		}
		if err := r.emitter.EmitSteps(cfg, family); err != nil {
			return fmt.Errorf("emit steps: %w", err)
		}
	}

	if err := r.emitter.Emit(cfg, results); err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	return nil
}

// deriveHopTypes derives single-hop optics for every nested type the
// navigators traverse, so composed path functions can reference them.
// Navigators for these extra types are dropped: the roots already carry
// every composed path.
func (r *runnerImpl) deriveHopTypes(eng *engine.Engine, results []engine.Result) []engine.Result {
	rooted := map[string]bool{}
	for _, res := range results {
		rooted[res.Type.Name] = true
	}

	var nested []model.TypeRef
	seen := map[string]bool{}
	for _, res := range results {
		collectTargets(res.Navigators, rooted, seen, &nested)
	}
	if len(nested) == 0 {
		return nil
	}

	extra := eng.DeriveAll(nested)
	for i := range extra {
		extra[i].Navigators = nil
	}
	return extra
}

func collectTargets(navs []pathcomp.Navigator, rooted, seen map[string]bool, out *[]model.TypeRef) {
	for _, nav := range navs {
		if !rooted[nav.Target.Name] && !seen[nav.Target.Name] {
			seen[nav.Target.Name] = true
			*out = append(*out, nav.Target)
		}
		collectTargets(nav.Children, rooted, seen, out)
	}
}

// qualify turns a bare type name into a package-qualified reference. Names
// already carrying a package path pass through.
func qualify(pkgPath, name string) string {
	if strings.Contains(name, "/") || strings.Contains(name, ".") {
		return name
	}
	return pkgPath + "." + name
}

func logDiagnostics(results []engine.Result) {
	for _, res := range results {
		for _, d := range res.Diagnostics {
			if d.Code.Informational() {
				log.Printf("gen-optics: %v", d)
				continue
			}
			log.Printf("gen-optics: warning: %v", d)
		}
	}
}
