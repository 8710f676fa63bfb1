// Package describe captures structural type snapshots from Go packages.
// It is the type-descriptor feed behind the derivation engine: the engine
// never touches go/types directly, only the descriptors produced here.
package describe

import (
	"fmt"
	"strings"
	"sync"

	"go/types"

	"golang.org/x/tools/go/packages"

	"github.com/seitarof/gen-optics/internal/model"
)

// Feed captures type descriptors from Go packages.
type Feed interface {
	Describe(ref model.TypeRef) (*model.TypeDescriptor, error)
}

type feedImpl struct {
	mu    sync.Mutex
	cache map[string]*packages.Package
}

// New returns the default package-loading feed.
func New() Feed {
	return &feedImpl{cache: map[string]*packages.Package{}}
}

func (f *feedImpl) Describe(ref model.TypeRef) (*model.TypeDescriptor, error) {
	pkgPath, typeName, err := splitRef(ref.Name)
	if err != nil {
		return nil, err
	}

	pkg, err := f.loadPackage(pkgPath)
	if err != nil {
		return nil, err
	}
	if pkg.Types == nil || pkg.Types.Scope() == nil {
		return nil, fmt.Errorf("type info unavailable for package %q", pkgPath)
	}

	obj := pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		return nil, fmt.Errorf("type %q not found in package %q", typeName, pkgPath)
	}
	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%q in package %q is not a named type", typeName, pkgPath)
	}

	d := &model.TypeDescriptor{
		Name:    typeName,
		PkgPath: pkg.Types.Path(),
		Ref:     model.Ref(pkg.Types.Path() + "." + typeName),
	}

	switch under := named.Underlying().(type) {
	case *types.Struct:
		d.Aggregate = true
		d.Fields = structFields(under)
	case *types.Interface:
		d.Abstract = true
		d.Variants = implementers(pkg.Types.Scope(), under)
	case *types.Basic:
		d.EnumValues = packageConstants(pkg.Types.Scope(), named)
	}

	collectMethods(named, d)
	return d, nil
}

func (f *feedImpl) loadPackage(pkgPath string) (*packages.Package, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cached, ok := f.cache[pkgPath]; ok {
		return cached, nil
	}

	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedModule,
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pkgPath, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("package %q has compilation errors", pkgPath)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pkgPath)
	}
	f.cache[pkgPath] = pkgs[0]
	return pkgs[0], nil
}

// splitRef separates a qualified type reference into package path and type
// name. The type name is everything after the last dot past the last slash.
func splitRef(name string) (pkgPath, typeName string, err error) {
	slash := strings.LastIndex(name, "/")
	dot := strings.LastIndex(name, ".")
	if dot <= slash {
		return "", "", fmt.Errorf("type reference %q is not package-qualified", name)
	}
	return name[:dot], name[dot+1:], nil
}

func structFields(st *types.Struct) []model.FieldDescriptor {
	fields := make([]model.FieldDescriptor, 0, st.NumFields())
	for i := 0; i < st.NumFields(); i++ {
		fv := st.Field(i)
		fields = append(fields, model.FieldDescriptor{
			Name:     fv.Name(),
			Type:     typeRefOf(fv.Type()),
			Exported: fv.Exported(),
		})
	}
	return fields
}

// collectMethods splits the type's declared methods into accessor, modifier
// and mutator candidates by arity and result shape.
func collectMethods(named *types.Named, d *model.TypeDescriptor) {
	for i := 0; i < named.NumMethods(); i++ {
		fn := named.Method(i)
		sig, ok := fn.Type().(*types.Signature)
		if !ok {
			continue
		}

		m := model.MethodDescriptor{
			Name:       fn.Name(),
			ParamCount: sig.Params().Len(),
			Exported:   fn.Exported(),
		}
		if sig.Params().Len() == 1 {
			m.Param = typeRefOf(sig.Params().At(0).Type())
		}
		if sig.Results().Len() == 1 {
			ret := typeRefOf(sig.Results().At(0).Type())
			m.Returns = &ret
		}

		switch {
		case m.ParamCount == 0 && m.Returns != nil:
			d.Accessors = append(d.Accessors, m)
		case m.ParamCount == 1 && m.Returns != nil && returnsSelf(sig, named):
			d.Modifiers = append(d.Modifiers, m)
		case m.ParamCount == 1 && sig.Results().Len() == 0:
			d.Mutators = append(d.Mutators, m)
		}
	}
}

// returnsSelf reports whether the single result is the declaring type
// itself, by value or pointer.
func returnsSelf(sig *types.Signature, named *types.Named) bool {
	ret := sig.Results().At(0).Type()
	if p, ok := ret.(*types.Pointer); ok {
		ret = p.Elem()
	}
	return types.Identical(ret, named)
}

// implementers enumerates the package-local concrete types satisfying an
// interface. The closed variant list is deliberately scoped to the
// declaring package: implementations elsewhere make the sum open.
func implementers(scope *types.Scope, iface *types.Interface) []model.VariantDescriptor {
	var variants []model.VariantDescriptor
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !obj.Exported() {
			continue
		}
		named, ok := types.Unalias(obj.Type()).(*types.Named)
		if !ok {
			continue
		}
		if types.IsInterface(named) {
			continue
		}
		if types.Implements(named, iface) || types.Implements(types.NewPointer(named), iface) {
			variants = append(variants, model.VariantDescriptor{
				Name: obj.Name(),
				Type: typeRefOf(named),
			})
		}
	}
	return variants
}

// packageConstants enumerates the exported constants declared with the
// named type, the closed value list of an enumerated shape.
func packageConstants(scope *types.Scope, named *types.Named) []string {
	var values []string
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !c.Exported() {
			continue
		}
		if types.Identical(c.Type(), named) {
			values = append(values, c.Name())
		}
	}
	return values
}

// typeRefOf maps a go/types type onto the structural reference vocabulary:
// pointer, slice, array and map become the reserved container names, named
// types their qualified name plus type arguments.
func typeRefOf(t types.Type) model.TypeRef {
	switch v := types.Unalias(t).(type) {
	case *types.Basic:
		return model.Ref(v.Name())
	case *types.Pointer:
		return model.Ref("ptr", typeRefOf(v.Elem()))
	case *types.Slice:
		return model.Ref("slice", typeRefOf(v.Elem()))
	case *types.Array:
		return model.Ref("array", typeRefOf(v.Elem()))
	case *types.Map:
		return model.Ref("map", typeRefOf(v.Key()), typeRefOf(v.Elem()))
	case *types.Named:
		obj := v.Obj()
		name := obj.Name()
		if obj.Pkg() != nil {
			name = obj.Pkg().Path() + "." + obj.Name()
		}
		args := v.TypeArgs()
		if args == nil || args.Len() == 0 {
			return model.Ref(name)
		}
		refs := make([]model.TypeRef, args.Len())
		for i := 0; i < args.Len(); i++ {
			refs[i] = typeRefOf(args.At(i))
		}
		return model.Ref(name, refs...)
	case *types.Interface:
		return model.Ref("any")
	default:
		return model.Ref(strings.TrimSpace(types.TypeString(t, nil)))
	}
}
