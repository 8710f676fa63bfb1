package emit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/seitarof/gen-optics/internal/synth"
)

type stepsTemplateData struct {
	Package string
	Steps   []stepTemplateData
}

type stepTemplateData struct {
	Arity  int
	Params string
	Fields []string
}

// EmitSteps renders the N-ary path-step family next to the main output
// file: one generic aggregate per arity, grouping the foci collected along
// a multi-hop projection.
func (e *emitterImpl) EmitSteps(cfg Config, family synth.StepFamily) error {
	pkgName, _ := cfg.TargetPackage()
	if pkgName == "" {
		return fmt.Errorf("no target package configured")
	}

	data := stepsTemplateData{Package: pkgName}
	for _, arity := range family.Arities() {
		params := synth.TypeParams(arity)
		fields := make([]string, arity)
		for i, p := range params {
			fields[i] = fmt.Sprintf("F%d %s", i, p)
		}
		data.Steps = append(data.Steps, stepTemplateData{
			Arity:  arity,
			Params: strings.Join(params, ", "),
			Fields: fields,
		})
	}

	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, "steps.go.tmpl", data); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	filename := stepsFilename(cfg.OutputFilename())
	formatted, err := e.formatter.Format(filename, buf.Bytes())
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if err := e.writer.Write(filename, formatted); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func stepsFilename(out string) string {
	return strings.TrimSuffix(out, ".go") + "_steps.go"
}
