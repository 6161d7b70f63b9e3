package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/soar/pkg/logger"
)

// DefaultLanguage is used when nothing better can be negotiated.
const DefaultLanguage = "en"

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Translator resolves dotted keys against per-language catalogs.
// Catalog files are YAML documents keyed by language code at the top level:
//
//	en:
//	  auth:
//	    invalid_credentials: "Email or password is invalid."
//
// Translator is immutable after construction and safe for concurrent use.
type Translator struct {
	catalogs    map[string]map[string]string
	defaultLang string
	languages   []string
	matcher     language.Matcher
	log         *slog.Logger
}

type Option func(*Translator)

// WithDefaultLanguage sets the fallback language. It must be present in the catalogs.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = strings.ToLower(lang)
		}
	}
}

// WithLogger reports missing keys at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.log = l
		}
	}
}

// New reads every *.yaml and *.yml file at the root of fsys.
func New(fsys fs.FS, opts ...Option) (*Translator, error) {
	t := &Translator{
		catalogs:    make(map[string]map[string]string),
		defaultLang: DefaultLanguage,
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Join(ErrLoadCatalog, err)
	}

	for _, e := range entries {
		ext := path.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, errors.Join(ErrLoadCatalog, err)
		}
		if err := t.add(data); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadCatalog, e.Name(), err)
		}
	}

	if _, ok := t.catalogs[t.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoDefaultLanguage, t.defaultLang)
	}

	// default first: the matcher falls back to index 0
	t.languages = append(t.languages, t.defaultLang)
	for lang := range t.catalogs {
		if lang != t.defaultLang {
			t.languages = append(t.languages, lang)
		}
	}
	slices.Sort(t.languages[1:])

	tags := make([]language.Tag, 0, len(t.languages))
	for _, lang := range t.languages {
		tags = append(tags, language.Make(lang))
	}
	t.matcher = language.NewMatcher(tags)

	return t, nil
}

func (t *Translator) add(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for lang, v := range doc {
		tree, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("language %q: expected a map, got %T", lang, v)
		}
		lang = strings.ToLower(lang)
		if t.catalogs[lang] == nil {
			t.catalogs[lang] = make(map[string]string)
		}
		flatten(t.catalogs[lang], "", tree)
	}
	return nil
}

func flatten(dst map[string]string, prefix string, tree map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(dst, key, val)
		case string:
			dst[key] = val
		default:
			dst[key] = fmt.Sprint(val)
		}
	}
}

// Languages lists supported languages, default first.
func (t *Translator) Languages() []string {
	return slices.Clone(t.languages)
}

// Match picks the best supported language for the given candidates, each of
// which may be a plain code ("pt") or a full Accept-Language value.
func (t *Translator) Match(candidates ...string) string {
	candidates = slices.DeleteFunc(slices.Clone(candidates), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	if len(candidates) == 0 {
		return t.defaultLang
	}
	_, idx := language.MatchStrings(t.matcher, candidates...)
	return t.languages[idx]
}

// T translates key for lang. Args are name/value pairs substituted into
// %{name} placeholders. Missing keys fall back to the default language and
// then to the key itself.
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.lookup(strings.ToLower(lang), key)
	if !ok {
		t.log.Debug("translation missing", slog.String("lang", lang), slog.String("key", key))
		tmpl = key
	}
	return substitute(tmpl, args)
}

// Tc is T with the language taken from ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Has reports whether lang has its own translation for key.
func (t *Translator) Has(lang, key string) bool {
	_, ok := t.catalogs[strings.ToLower(lang)][key]
	return ok
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	if v, ok := t.catalogs[lang][key]; ok {
		return v, true
	}
	v, ok := t.catalogs[t.defaultLang][key]
	return v, ok
}

func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
