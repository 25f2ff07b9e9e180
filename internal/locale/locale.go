// Package locale resolves dialogue keys to display text from YAML message
// catalogs laid out as <locale>/<namespace>.yaml.
package locale

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale must be present; its messages back every other locale.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Catalog is a loaded set of message catalogs bound to one display locale.
// Messages are x/text format strings; write %% for a literal percent sign.
type Catalog struct {
	tag      language.Tag
	printer  *message.Printer
	messages map[string]string
	locales  []string
	logger   *log.Logger
	missing  map[string]bool
}

// LoadDir loads the catalogs under dir and selects the locale closest to want.
func LoadDir(dir, want string, logger *log.Logger) (*Catalog, error) {
	return LoadFS(os.DirFS(dir), want, logger)
}

// LoadFS loads every <locale>/<namespace>.yaml file in fsys.
func LoadFS(fsys fs.FS, want string, logger *log.Logger) (*Catalog, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	paths, err := fs.Glob(fsys, "*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	byLocale := map[string]map[string]string{}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := addFile(byLocale, p, file); err != nil {
			return nil, err
		}
	}
	base, ok := byLocale[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	locales := make([]string, 0, len(byLocale))
	for l := range byLocale {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	// The matcher prefers its first entry when nothing fits.
	tags := []language.Tag{language.MustParse(BaseLocale)}
	names := []string{BaseLocale}
	for _, l := range locales {
		if l == BaseLocale {
			continue
		}
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", l, err)
		}
		tags = append(tags, tag)
		names = append(names, l)
	}

	builder := catalog.NewBuilder(catalog.Fallback(tags[0]))
	for i, name := range names {
		merged := make(map[string]string, len(base))
		for k, v := range base {
			merged[k] = v
		}
		for k, v := range byLocale[name] {
			merged[k] = v
		}
		for k, v := range merged {
			if err := builder.SetString(tags[i], k, v); err != nil {
				return nil, fmt.Errorf("register %s %q: %w", name, k, err)
			}
		}
		byLocale[name] = merged
	}

	wantTag, err := language.Parse(strings.TrimSpace(want))
	if err != nil {
		logger.Printf("locale: bad locale %q, using %s: %v", want, BaseLocale, err)
		wantTag = tags[0]
	}
	_, idx, conf := language.NewMatcher(tags).Match(wantTag)
	if conf == language.No {
		idx = 0
	}
	chosen := tags[idx]
	logger.Printf("locale: using %s for %q", names[idx], want)

	return &Catalog{
		tag:      chosen,
		printer:  message.NewPrinter(chosen, message.Catalog(builder)),
		messages: byLocale[names[idx]],
		locales:  locales,
		logger:   logger,
		missing:  map[string]bool{},
	}, nil
}

func addFile(byLocale map[string]map[string]string, p string, file catalogFile) error {
	dir, name := path.Split(p)
	localeFromPath := path.Base(dir)
	namespaceFromPath := strings.TrimSuffix(name, path.Ext(name))

	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", p)
	}
	if locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, localeFromPath)
	}
	namespace := strings.TrimSpace(file.Namespace)
	if namespace == "" {
		return fmt.Errorf("catalog %s: namespace is required", p)
	}
	if namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", p, namespace, namespaceFromPath)
	}
	if file.Messages == nil {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}

	messages, ok := byLocale[locale]
	if !ok {
		messages = map[string]string{}
		byLocale[locale] = messages
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if _, dup := messages[key]; dup {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, locale)
		}
		messages[key] = value
	}
	return nil
}

// Resolve returns the display text for key. An unknown key is logged once
// and returned unchanged.
func (c *Catalog) Resolve(key string) string {
	if _, ok := c.messages[key]; !ok {
		if !c.missing[key] {
			c.missing[key] = true
			c.logger.Printf("locale: missing key %q in %s", key, c.tag)
		}
		return key
	}
	return c.printer.Sprintf(key)
}

// Has reports whether key resolves in the selected locale.
func (c *Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Tag is the locale chosen at load time.
func (c *Catalog) Tag() language.Tag { return c.tag }

// Locales lists every locale found on disk.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.locales))
	copy(out, c.locales)
	return out
}
