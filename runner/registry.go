package runner

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/puzpuzpuz/xsync/v3"
)

// ErrUnsupportedLanguage is returned by CreateRunner for languages with no
// registered strategy.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Constructor builds a fresh strategy lifecycle. Each CreateRunner call gets
// its own instance so concurrent runs never share state.
type Constructor func() Lifecycle

// nativeCapable is the fixed set of identifiers the host process can
// evaluate itself. Every other registered language resolves to the simulated
// strategy.
var nativeCapable = mapset.NewSet("javascript", "js")

// NativeCapable reports whether the host runtime can execute submissions in
// the given language directly.
func NativeCapable(language string) bool {
	return nativeCapable.Contains(Normalize(language))
}

// Normalize canonicalizes a language identifier: trimmed, lowercase.
func Normalize(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

// Registry maps normalized language identifiers to strategy constructors.
// It is the only structure shared between concurrent harness invocations,
// so it is safe for concurrent use; registration and removal may happen at
// run time.
type Registry struct {
	entries *xsync.MapOf[string, Constructor]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: xsync.NewMapOf[string, Constructor]()}
}

// Register binds a language to a strategy constructor, replacing any
// previous binding.
func (r *Registry) Register(language string, c Constructor) {
	r.entries.Store(Normalize(language), c)
}

// Unregister removes a language binding if present.
func (r *Registry) Unregister(language string) {
	r.entries.Delete(Normalize(language))
}

// IsSupported reports whether a strategy is registered for the language.
func (r *Registry) IsSupported(language string) bool {
	_, ok := r.entries.Load(Normalize(language))
	return ok
}

// ListSupported returns the registered language identifiers in sorted order.
func (r *Registry) ListSupported() []string {
	langs := make([]string, 0)
	r.entries.Range(func(lang string, _ Constructor) bool {
		langs = append(langs, lang)
		return true
	})
	sort.Strings(langs)
	return langs
}

// CreateRunner builds a fresh Runner for the language, or fails with
// ErrUnsupportedLanguage.
func (r *Registry) CreateRunner(language string) (*Runner, error) {
	c, ok := r.entries.Load(Normalize(language))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	return New(c()), nil
}

// simulatedLanguages is the catalog of identifiers registered by default
// with the no-runtime strategy.
var simulatedLanguages = []string{
	"python", "typescript", "java", "cpp", "c", "csharp", "go", "rust",
	"ruby", "swift", "kotlin", "php", "scala", "dart", "haskell",
}

// DefaultRegistry returns a registry with the native JavaScript strategy and
// the full simulated-language catalog registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for lang := range nativeCapable.Iter() {
		r.Register(lang, func() Lifecycle { return NewNative() })
	}
	for _, lang := range simulatedLanguages {
		lang := lang
		r.Register(lang, func() Lifecycle { return NewSimulated(lang) })
	}
	return r
}
