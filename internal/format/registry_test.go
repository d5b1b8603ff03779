package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/agentsync/agsync/internal/canonical"
)

// mockAdapter is a minimal adapter for registry tests.
type mockAdapter struct {
	name   string
	suffix string
	kinds  map[canonical.Kind]bool
}

func (m *mockAdapter) Name() string                      { return m.name }
func (m *mockAdapter) Supports(kind canonical.Kind) bool { return m.kinds[kind] }
func (m *mockAdapter) Extension(canonical.Kind) string   { return m.suffix }
func (m *mockAdapter) CanHandle(path string) bool        { return strings.HasSuffix(path, m.suffix) }
func (m *mockAdapter) ToCanonical([]byte, canonical.Kind) (*Result, error) {
	return &Result{}, nil
}
func (m *mockAdapter) FromCanonical(canonical.Record, Options) (*Result, []byte, error) {
	return &Result{}, nil, nil
}

func newMock(name, suffix string) *mockAdapter {
	return &mockAdapter{
		name:   name,
		suffix: suffix,
		kinds:  map[canonical.Kind]bool{canonical.KindAgent: true},
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	reg.Register(newMock("alpha", ".alpha.md"))

	a, err := reg.Resolve("alpha")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if a.Name() != "alpha" {
		t.Errorf("Resolve returned %q", a.Name())
	}

	_, err = reg.Resolve("beta")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Resolve unknown err = %v, want ErrUnknownFormat", err)
	}
}

func TestRegistryRegisterPanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(newMock("alpha", ".a"))

	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", name)
			}
		}()
		fn()
	}

	assertPanics("duplicate register", func() { reg.Register(newMock("alpha", ".b")) })
	assertPanics("nil register", func() { reg.Register(nil) })
}

func TestRegistryDetect(t *testing.T) {
	reg := NewRegistry()
	reg.Register(newMock("alpha", ".alpha.md"))
	reg.Register(newMock("beta", ".beta.md"))
	reg.Register(newMock("greedy", ".md"))

	// Exactly one match.
	reg2 := NewRegistry()
	reg2.Register(newMock("alpha", ".alpha.md"))
	a, err := reg2.Detect("reviewer.alpha.md")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if a.Name() != "alpha" {
		t.Errorf("Detect returned %q", a.Name())
	}

	// Both "alpha" and "greedy" claim .alpha.md files.
	if _, err := reg.Detect("reviewer.alpha.md"); !errors.Is(err, ErrAmbiguousFormat) {
		t.Errorf("Detect ambiguous err = %v, want ErrAmbiguousFormat", err)
	}

	if _, err := reg.Detect("reviewer.toml"); !errors.Is(err, ErrNoFormatDetected) {
		t.Errorf("Detect no-match err = %v, want ErrNoFormatDetected", err)
	}
}

func TestRegistrySupportsAndNames(t *testing.T) {
	reg := NewRegistry()
	reg.Register(newMock("beta", ".b"))
	reg.Register(newMock("alpha", ".a"))

	if !reg.Supports("alpha", canonical.KindAgent) {
		t.Error("Supports(alpha, agent) = false")
	}
	if reg.Supports("alpha", canonical.KindPermission) {
		t.Error("Supports(alpha, permission) = true")
	}
	if reg.Supports("missing", canonical.KindAgent) {
		t.Error("Supports on unregistered name = true")
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("Names = %v, want sorted [alpha beta]", names)
	}
}

func TestBaseNameAndFileName(t *testing.T) {
	a := newMock("alpha", ".alpha.md")

	base, ok := BaseName("dir/reviewer.alpha.md", a, canonical.KindAgent)
	if !ok || base != "reviewer" {
		t.Errorf("BaseName = %q, %v", base, ok)
	}

	// Wrong suffix and bare-suffix names are rejected.
	if _, ok := BaseName("reviewer.md", a, canonical.KindAgent); ok {
		t.Error("BaseName accepted wrong suffix")
	}
	if _, ok := BaseName(".alpha.md", a, canonical.KindAgent); ok {
		t.Error("BaseName accepted a name that is only the suffix")
	}

	if got := FileName("reviewer", a, canonical.KindAgent); got != "reviewer.alpha.md" {
		t.Errorf("FileName = %q", got)
	}
}

func TestErrorClassifiers(t *testing.T) {
	if !IsSkippable(ErrMalformed) {
		t.Error("ErrMalformed should be skippable")
	}
	if IsSkippable(ErrUnknownFormat) {
		t.Error("ErrUnknownFormat should not be skippable")
	}
	for _, err := range []error{ErrUnknownFormat, ErrAmbiguousFormat, ErrNoFormatDetected, ErrUnsupportedKind} {
		if !IsPairFatal(err) {
			t.Errorf("%v should be pair-fatal", err)
		}
	}
	if IsPairFatal(nil) || IsPairFatal(ErrMalformed) {
		t.Error("IsPairFatal misclassified")
	}
}
