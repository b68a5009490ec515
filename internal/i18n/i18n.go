package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

const (
	LangPT = "pt"
	LangEN = "en"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

type Manager struct {
	defaultLanguage string
	locales         map[string]map[string]string
	supported       []string
	tags            []language.Tag
	matcher         language.Matcher
}

// NewManager loads the catalogs compiled into the binary.
func NewManager(defaultLanguage string) (*Manager, error) {
	locales, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}
	return NewManagerFromFS(defaultLanguage, locales)
}

func NewManagerFromFS(defaultLanguage string, locales fs.FS) (*Manager, error) {
	manager := &Manager{locales: map[string]map[string]string{}}

	entries, err := fs.ReadDir(locales, ".")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}

		lang := strings.TrimSuffix(strings.ToLower(entry.Name()), ".json")
		content, err := fs.ReadFile(locales, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		messages := map[string]string{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", lang)
		}
		manager.locales[lang] = messages
	}

	for _, required := range []string{LangPT, LangEN} {
		if _, ok := manager.locales[required]; !ok {
			return nil, fmt.Errorf("required locale %q missing", required)
		}
	}

	for lang := range manager.locales {
		manager.supported = append(manager.supported, lang)
	}
	sort.Strings(manager.supported)

	manager.defaultLanguage = LangPT
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)

	// The default goes first so the matcher falls back to it.
	manager.tags = append(manager.tags, language.Make(manager.defaultLanguage))
	for _, lang := range manager.supported {
		if lang != manager.defaultLanguage {
			manager.tags = append(manager.tags, language.Make(lang))
		}
	}
	manager.matcher = language.NewMatcher(manager.tags)
	return manager, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	result := make([]string, len(manager.supported))
	copy(result, manager.supported)
	return result
}

// NormalizeLanguage maps "pt-BR", "PT_br" and similar to a loaded catalog.
func (manager *Manager) NormalizeLanguage(raw string) string {
	lang := strings.ToLower(strings.TrimSpace(raw))
	lang = strings.ReplaceAll(lang, "_", "-")
	if separator := strings.Index(lang, "-"); separator >= 0 {
		lang = lang[:separator]
	}
	if _, ok := manager.locales[lang]; ok {
		return lang
	}
	return manager.defaultLanguage
}

func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return manager.defaultLanguage
	}
	_, index, confidence := manager.matcher.Match(desired...)
	if confidence == language.No {
		return manager.defaultLanguage
	}
	base, _ := manager.tags[index].Base()
	return manager.NormalizeLanguage(base.String())
}

func (manager *Manager) Translate(lang string, key string) string {
	if value, ok := manager.locales[manager.NormalizeLanguage(lang)][key]; ok && value != "" {
		return value
	}
	if value, ok := manager.locales[manager.defaultLanguage][key]; ok && value != "" {
		return value
	}
	return key
}

func (manager *Manager) Translatef(lang string, key string, args ...any) string {
	return fmt.Sprintf(manager.Translate(lang, key), args...)
}
