package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Message keys used by the dashboard and the terminal prompts.
const (
	MsgTitle            = "app.title"
	MsgSubtitle         = "app.subtitle"
	MsgSelectorHeader   = "selector.header"
	MsgSelectorAction   = "selector.action"
	MsgSelectPrompt     = "selector.prompt"
	MsgTemplateFound    = "status.template.found"
	MsgReferenceFound   = "status.reference.found"
	MsgFileMissing      = "status.missing"
	MsgStartHint        = "content.start"
	MsgCannotContinue   = "content.blocked"
	MsgCompleteHeader   = "content.complete.header"
	MsgCompleteBody     = "content.complete.body"
	MsgCompleteAction   = "content.complete.action"
	MsgFormHeader       = "content.form.header"
	MsgFormAction       = "content.form.action"
	MsgTemplateMissing  = "generate.template_missing"
	MsgGenerateSuccess  = "generate.success"
	MsgGenerateError    = "generate.error"
	MsgDiagnosticPrefix = "status.diagnostic"
	MsgUnknownType      = "selector.unknown"
)

// ErrMissingTranslator is passed to the missing handler when no translator is
// configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale. Args are applied with
// fmt.Sprintf semantics.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show for an unresolved key.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, _ []any, _ error) string {
	return key
}

// DefaultLocale is used when callers do not pick a locale.
const DefaultLocale = "vi"

var defaultMessages = map[string]map[string]string{
	"vi": {
		MsgTitle:            "📄 Tạo văn bản hành chính tự động",
		MsgSubtitle:         "Ứng dụng đọc dữ liệu có sẵn và tự động điền vào mẫu trình bày theo quy định",
		MsgSelectorHeader:   "Chọn Mẫu trình bày",
		MsgSelectorAction:   "Chọn",
		MsgSelectPrompt:     "Vui lòng chọn một mẫu.",
		MsgTemplateFound:    "✅ Template: %s",
		MsgReferenceFound:   "✅ File dữ liệu: %s",
		MsgFileMissing:      "❌ Không tìm thấy: %s",
		MsgStartHint:        "Chọn một mẫu để bắt đầu hoặc kiểm tra lại file.",
		MsgCannotContinue:   "Không thể tiếp tục vì file '%s' không tồn tại.",
		MsgCompleteHeader:   "🎉 Tất cả dữ liệu đã có sẵn!",
		MsgCompleteBody:     "Nhấn nút bên dưới để tạo văn bản ngay lập tức.",
		MsgCompleteAction:   "🔧 Tạo văn bản từ dữ liệu có sẵn",
		MsgFormHeader:       "✍️ Vui lòng nhập dữ liệu còn thiếu",
		MsgFormAction:       "🔧 Tạo văn bản",
		MsgTemplateMissing:  "Lỗi: Không tìm thấy file template.",
		MsgGenerateSuccess:  "✅ Văn bản đã được tạo thành công! Bắt đầu tải xuống...",
		MsgGenerateError:    "❌ Lỗi khi tạo văn bản: %s",
		MsgDiagnosticPrefix: "⚠️ %s",
		MsgUnknownType:      "❌ Không có loại văn bản: %s",
	},
	"en": {
		MsgTitle:            "📄 Administrative document generator",
		MsgSubtitle:         "Reads existing data and fills the prescribed document templates",
		MsgSelectorHeader:   "Choose a template",
		MsgSelectorAction:   "Select",
		MsgSelectPrompt:     "Please choose a template.",
		MsgTemplateFound:    "✅ Template: %s",
		MsgReferenceFound:   "✅ Data file: %s",
		MsgFileMissing:      "❌ Not found: %s",
		MsgStartHint:        "Choose a template to start or check the files.",
		MsgCannotContinue:   "Cannot continue because file '%s' does not exist.",
		MsgCompleteHeader:   "🎉 All data is available!",
		MsgCompleteBody:     "Press the button below to generate the document right away.",
		MsgCompleteAction:   "🔧 Generate from available data",
		MsgFormHeader:       "✍️ Please fill in the missing data",
		MsgFormAction:       "🔧 Generate document",
		MsgTemplateMissing:  "Error: template file not found.",
		MsgGenerateSuccess:  "✅ Document generated! Download starting...",
		MsgGenerateError:    "❌ Error while generating the document: %s",
		MsgDiagnosticPrefix: "⚠️ %s",
		MsgUnknownType:      "❌ Unknown document type: %s",
	},
}

// Catalog is an in-memory Translator keyed by locale then message key.
// Unknown locales fall back to the catalog's default locale.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	fallback string
}

// NewCatalog returns a catalog seeded with the built-in Vietnamese and
// English messages.
func NewCatalog() *Catalog {
	c := &Catalog{messages: make(map[string]map[string]string), fallback: DefaultLocale}
	for locale, messages := range defaultMessages {
		c.Add(locale, messages)
	}
	return c
}

// Add merges messages into locale, replacing existing keys.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = normalizeLocale(locale)
	if locale == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket := c.messages[locale]
	if bucket == nil {
		bucket = make(map[string]string, len(messages))
		c.messages[locale] = bucket
	}
	for key, value := range messages {
		bucket[strings.TrimSpace(key)] = value
	}
}

// Has reports whether locale has messages.
func (c *Catalog) Has(locale string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.messages[normalizeLocale(locale)]
	return ok
}

// Translate implements Translator.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	c.mu.RLock()
	format, ok := c.lookup(normalizeLocale(locale), key)
	if !ok {
		format, ok = c.lookup(c.fallback, key)
	}
	c.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("render: no translation for %q", key)
	}
	if len(args) == 0 {
		return format, nil
	}
	return fmt.Sprintf(format, args...), nil
}

func (c *Catalog) lookup(locale, key string) (string, bool) {
	bucket, ok := c.messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := bucket[key]
	return msg, ok
}

// normalizeLocale reduces "vi-VN" style tags to their language part.
func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		locale = locale[:idx]
	}
	return locale
}

// Localizer binds a translator to a locale.
type Localizer struct {
	Translator Translator
	Locale     string
	OnMissing  MissingTranslationHandler
}

// T translates key, falling back to OnMissing (or the key itself).
func (l Localizer) T(key string, args ...any) string {
	onMissing := l.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if l.Translator == nil {
		return onMissing(l.Locale, key, args, ErrMissingTranslator)
	}
	msg, err := l.Translator.Translate(l.Locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(l.Locale, key, args, err)
	}
	return msg
}
