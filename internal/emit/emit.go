// Package emit renders derived optic specs and navigation paths into Go
// source: one constructor function per optic, composed path functions for
// navigators, formatted through goimports.
package emit

import (
	"bytes"
	"embed"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/seitarof/gen-optics/internal/container"
	"github.com/seitarof/gen-optics/internal/engine"
	"github.com/seitarof/gen-optics/internal/model"
	"github.com/seitarof/gen-optics/internal/pathcomp"
	"github.com/seitarof/gen-optics/internal/shape"
	"github.com/seitarof/gen-optics/internal/synth"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

const opticsPkg = "github.com/seitarof/gen-optics/optics"

// Emitter renders derivation results to a source file.
type Emitter interface {
	Emit(cfg Config, results []engine.Result) error
	EmitSteps(cfg Config, family synth.StepFamily) error
}

// Config is the minimum config contract required by the emitter.
type Config interface {
	OutputFilename() string
	TargetPackage() (name, path string)
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type emitterImpl struct {
	formatter Formatter
	writer    FileWriter
	tmpl      *template.Template
}

type goimportsFormatter struct{}

type fileWriter struct{}

type templateData struct {
	Package string
	Imports []string
	Funcs   []funcTemplateData
}

type funcTemplateData struct {
	Doc       string
	Name      string
	Signature string
	Body      string
}

// New creates an emitter.
func New(f Formatter, w FileWriter) Emitter {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.go.tmpl"))
	return &emitterImpl{formatter: f, writer: w, tmpl: tmpl}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (e *emitterImpl) Emit(cfg Config, results []engine.Result) error {
	data, err := buildTemplateData(cfg, results)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, "optics.go.tmpl", data); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	formatted, err := e.formatter.Format(cfg.OutputFilename(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if err := e.writer.Write(cfg.OutputFilename(), formatted); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

// renderer carries the target package context so type references render
// bare inside it and qualified with a recorded import outside it.
type renderer struct {
	pkgPath string
	imports map[string]struct{}
}

func buildTemplateData(cfg Config, results []engine.Result) (templateData, error) {
	pkgName, pkgPath := cfg.TargetPackage()
	if pkgName == "" {
		return templateData{}, fmt.Errorf("no target package configured")
	}
	r := &renderer{pkgPath: pkgPath, imports: map[string]struct{}{opticsPkg: {}}}

	var funcs []funcTemplateData
	seen := map[string]bool{}
	for _, res := range results {
		for _, spec := range res.Optics {
			fn, ok := r.renderOptic(spec)
			if !ok || seen[fn.Name] {
				continue
			}
			seen[fn.Name] = true
			funcs = append(funcs, fn)
		}
		for _, nav := range res.Navigators {
			r.renderNavigator(nav, seen, &funcs)
		}
	}
	if len(funcs) == 0 {
		return templateData{}, fmt.Errorf("nothing to emit")
	}

	importsList := make([]string, 0, len(r.imports))
	for path := range r.imports {
		importsList = append(importsList, path)
	}
	sort.Strings(importsList)

	return templateData{Package: pkgName, Imports: importsList, Funcs: funcs}, nil
}

func (r *renderer) renderOptic(spec synth.OpticSpec) (funcTemplateData, bool) {
	if spec.Container == container.KindArray {
		log.Printf("gen-optics: warning: array-typed focus %s.%s skipped in emission", spec.Source, spec.Field)
		return funcTemplateData{}, false
	}

	fn := funcTemplateData{
		Name: spec.Name,
		Doc:  fmt.Sprintf("// %s is the %s for the %s focus of %s.", spec.Name, spec.Kind, spec.Field, baseName(spec.Source)),
	}
	src := r.typeString(spec.Source)
	focus := r.typeString(spec.Focus)

	switch spec.Kind {
	case synth.KindLens:
		fn.Signature = fmt.Sprintf("optics.Lens[%s, %s]", src, focus)
		fn.Body = r.lensBody(spec, src, focus)
	case synth.KindAffine:
		fn.Signature = fmt.Sprintf("optics.Affine[%s, %s]", src, focus)
		fn.Body = r.wrappedBody(spec, src)
	case synth.KindTraversal, synth.KindFold:
		kind := "Traversal"
		if spec.Kind == synth.KindFold {
			kind = "Fold"
		}
		fn.Signature = fmt.Sprintf("optics.%s[%s, %s]", kind, src, focus)
		switch {
		case spec.Traverse != "":
			fn.Body = "\treturn " + spec.Traverse + "()\n"
		case spec.Kind == synth.KindFold:
			fn.Body = "\treturn " + r.wrappedExpr(spec, src) + ".AsFold()\n"
		default:
			fn.Body = r.wrappedBody(spec, src)
		}
	case synth.KindPrism:
		fn.Signature = fmt.Sprintf("optics.Prism[%s, %s]", src, focus)
		fn.Body = r.prismBody(spec, src, focus)
	case synth.KindIso:
		fn.Signature = fmt.Sprintf("optics.Iso[%s, %s]", src, focus)
		fn.Body = fmt.Sprintf(
			"\treturn optics.NewIso(\n\t\tfunc(s %s) %s { return %s },\n\t\tfunc(a %s) %s { return %s },\n\t)\n",
			src, focus, spec.Get, focus, src, spec.Construct)
	default:
		return funcTemplateData{}, false
	}
	return fn, true
}

// lensBody renders the plain exactly-one lens.
func (r *renderer) lensBody(spec synth.OpticSpec, src, focus string) string {
	return fmt.Sprintf(
		"\treturn optics.NewLens(\n\t\tfunc(s %s) %s { return %s },\n\t\tfunc(s %s, a %s) %s { %s },\n\t)\n",
		src, focus, spec.Get, src, focus, src, setStatements(spec.Set))
}

// wrappedBody renders an affine or traversal by wrapping the raw container
// field lens with the runtime helper matching the container kind.
func (r *renderer) wrappedBody(spec synth.OpticSpec, src string) string {
	return "\treturn " + r.wrappedExpr(spec, src) + "\n"
}

func (r *renderer) wrappedExpr(spec synth.OpticSpec, src string) string {
	raw := r.typeString(spec.FieldType)
	inner := fmt.Sprintf(
		"optics.NewLens(\n\t\tfunc(s %s) %s { return %s },\n\t\tfunc(s %s, a %s) %s { %s },\n\t)",
		src, raw, spec.Get, src, raw, src, setStatements(spec.Set))

	wrapper := "optics.SliceField"
	switch spec.Container {
	case container.KindOptional:
		if spec.FieldType.Name == "ptr" {
			wrapper = "optics.PointerField"
		} else {
			wrapper = "optics.OptionField"
		}
	case container.KindMap:
		wrapper = "optics.MapField"
	}
	return wrapper + "(" + inner + ")"
}

// prismBody renders the three match forms: type assertion for sum variants,
// identity comparison for enumerated constants, and a user predicate pair
// honored verbatim.
func (r *renderer) prismBody(spec synth.OpticSpec, src, focus string) string {
	var match string
	switch {
	case strings.HasPrefix(spec.Match, "v, ok := "):
		match = fmt.Sprintf(
			"\t\tfunc(s %s) optics.Option[%s] {\n\t\t\tif v, ok := s.(%s); ok {\n\t\t\t\treturn optics.Some(v)\n\t\t\t}\n\t\t\treturn optics.None[%s]()\n\t\t},",
			src, focus, focus, focus)
	case strings.HasPrefix(spec.Match, "s == "):
		match = fmt.Sprintf(
			"\t\tfunc(s %s) optics.Option[%s] {\n\t\t\tif %s {\n\t\t\t\treturn optics.Some(s)\n\t\t\t}\n\t\t\treturn optics.None[%s]()\n\t\t},",
			src, focus, spec.Match, focus)
	default:
		extract := spec.Get
		if extract == "" {
			extract = "s.(" + focus + ")"
		}
		match = fmt.Sprintf(
			"\t\tfunc(s %s) optics.Option[%s] {\n\t\t\tif %s {\n\t\t\t\treturn optics.Some(%s)\n\t\t\t}\n\t\t\treturn optics.None[%s]()\n\t\t},",
			src, focus, spec.Match, extract, focus)
	}

	construct := fmt.Sprintf("\t\tfunc(v %s) %s { return %s },", focus, src, spec.Construct)
	return "\treturn optics.NewPrism(\n" + match + "\n" + construct + "\n\t)\n"
}

// renderNavigator flattens a navigator tree into one composed-path function
// per leaf path.
func (r *renderer) renderNavigator(nav pathcomp.Navigator, seen map[string]bool, funcs *[]funcTemplateData) {
	for _, p := range nav.Paths {
		fn, ok := r.renderPath(p)
		if !ok || seen[fn.Name] {
			continue
		}
		seen[fn.Name] = true
		*funcs = append(*funcs, fn)
	}
	for _, child := range nav.Children {
		r.renderNavigator(child, seen, funcs)
	}
}

// renderPath composes the per-hop optic functions, widening the composition
// operator as cardinality accumulates.
func (r *renderer) renderPath(p pathcomp.Path) (funcTemplateData, bool) {
	if len(p.Hops) == 0 {
		return funcTemplateData{}, false
	}
	for _, h := range p.Hops {
		if h.Target.Name == "array" {
			log.Printf("gen-optics: warning: array hop %s skipped in emission", h.Field)
			return funcTemplateData{}, false
		}
	}

	expr := hopFunc(p.Hops[0])
	acc := p.Hops[0].Cardinality
	for _, h := range p.Hops[1:] {
		expr = composeCall(acc, h.Cardinality, expr, hopFunc(h))
		acc = acc.Join(h.Cardinality)
	}
	name := baseName(p.Hops[0].Source) + pathSuffix(p.Hops)

	src := r.typeString(p.Hops[0].Source)
	focus := r.typeString(focusOf(p.Target))

	var kind string
	switch p.Cardinality {
	case pathcomp.ExactlyOne:
		kind = "Lens"
	case pathcomp.ZeroOrOne:
		kind = "Affine"
	default:
		kind = "Traversal"
	}

	return funcTemplateData{
		Doc:       fmt.Sprintf("// %s is the composed %s path through %s.", name, strings.ToLower(kind), hopTrail(p.Hops)),
		Name:      name,
		Signature: fmt.Sprintf("optics.%s[%s, %s]", kind, src, focus),
		Body:      "\treturn " + expr + "\n",
	}, true
}

func pathSuffix(hops []pathcomp.Hop) string {
	var b strings.Builder
	for _, h := range hops {
		b.WriteString(shape.Capitalise(h.Field))
	}
	return b.String()
}

func hopTrail(hops []pathcomp.Hop) string {
	parts := make([]string, len(hops))
	for i, h := range hops {
		parts[i] = h.Field
	}
	return strings.Join(parts, ".")
}

// hopFunc names the single-hop optic function generated for a field.
func hopFunc(h pathcomp.Hop) string {
	return baseName(h.Source) + shape.Capitalise(h.Field) + "()"
}

// composeCall picks the composition operator for the accumulated and
// incoming cardinality pair.
func composeCall(acc, hop pathcomp.Cardinality, outer, inner string) string {
	var fn string
	switch {
	case acc == pathcomp.ExactlyOne && hop == pathcomp.ExactlyOne:
		fn = "optics.ComposeLens"
	case acc == pathcomp.ExactlyOne && hop == pathcomp.ZeroOrOne:
		fn = "optics.LensThenAffine"
	case acc == pathcomp.ExactlyOne:
		fn = "optics.LensThenTraversal"
	case acc == pathcomp.ZeroOrOne && hop == pathcomp.ExactlyOne:
		fn = "optics.AffineThenLens"
	case acc == pathcomp.ZeroOrOne && hop == pathcomp.ZeroOrOne:
		fn = "optics.ComposeAffine"
	case acc == pathcomp.ZeroOrOne:
		fn = "optics.AffineThenTraversal"
	case hop == pathcomp.ExactlyOne:
		fn = "optics.TraversalThenLens"
	case hop == pathcomp.ZeroOrOne:
		fn = "optics.TraversalThenAffine"
	default:
		fn = "optics.ComposeTraversal"
	}
	return fn + "(" + outer + ", " + inner + ")"
}

// focusOf unwraps a container hop target to its element.
func focusOf(ref model.TypeRef) model.TypeRef {
	det := container.Detect(ref)
	if det.Kind != container.KindNone {
		return det.Elem
	}
	return ref
}

// setStatements renders a symbolic set expression as a function body. A
// multi-statement strategy already carries its own return.
func setStatements(set string) string {
	if strings.Contains(set, "return ") {
		return set
	}
	return "return " + set
}

// typeString renders a structural reference as Go source, qualifying names
// from other packages and recording their imports.
func (r *renderer) typeString(ref model.TypeRef) string {
	switch ref.Name {
	case "ptr":
		return "*" + r.typeString(ref.Args[0])
	case "slice":
		return "[]" + r.typeString(ref.Args[0])
	case "map":
		return "map[" + r.typeString(ref.Args[0]) + "]" + r.typeString(ref.Args[1])
	}

	name := ref.Name
	if dot := strings.LastIndex(name, "."); dot > strings.LastIndex(name, "/") {
		pkg := name[:dot]
		bare := name[dot+1:]
		if pkg == r.pkgPath {
			name = bare
		} else {
			r.imports[pkg] = struct{}{}
			name = pkgBase(pkg) + "." + bare
		}
	}
	if len(ref.Args) == 0 {
		return name
	}
	args := make([]string, len(ref.Args))
	for i, a := range ref.Args {
		args[i] = r.typeString(a)
	}
	return name + "[" + strings.Join(args, ", ") + "]"
}

// baseName strips the package qualifier from a named reference.
func baseName(ref model.TypeRef) string {
	name := ref.Name
	if dot := strings.LastIndex(name, "."); dot > strings.LastIndex(name, "/") {
		name = name[dot+1:]
	}
	return name
}

func pkgBase(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
