package cli

import "testing"

func TestParseArgs_Success(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"--types", "Person, Basket",
		"--package", "example.com/m",
		"--filename", "optics_gen.go",
		"--depth", "5",
		"--exclude-fields", "Secret",
	})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if len(cfg.Types) != 2 || cfg.Types[1] != "Basket" {
		t.Fatalf("types = %v", cfg.Types)
	}
	if cfg.Depth != 5 {
		t.Fatalf("depth = %d", cfg.Depth)
	}
	if len(cfg.ExcludeFields) != 1 {
		t.Fatalf("exclude = %v", cfg.ExcludeFields)
	}
}

func TestParseArgs_RequiresFlags(t *testing.T) {
	if _, err := ParseArgs([]string{"--types", "Person"}); err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, err := ParseArgs([]string{
		"--package", "example.com/m",
		"--filename", "out.go",
	}); err == nil {
		t.Fatal("types must be required")
	}
}

func TestParseArgs_StepsFlagsPaired(t *testing.T) {
	_, err := ParseArgs([]string{
		"--types", "Person",
		"--package", "example.com/m",
		"--filename", "out.go",
		"--steps-from", "2",
	})
	if err == nil {
		t.Fatal("steps-from without steps-to must be rejected")
	}
}

func TestTargetPackage_Defaults(t *testing.T) {
	cfg := &Config{Package: "example.com/nested/model"}
	name, path := cfg.TargetPackage()
	if name != "model" || path != "example.com/nested/model" {
		t.Fatalf("target = %q %q", name, path)
	}

	cfg.PackageName = "optics"
	if name, _ := cfg.TargetPackage(); name != "optics" {
		t.Fatalf("explicit name ignored: %q", name)
	}
}
