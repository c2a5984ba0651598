package editorjs

import (
	"encoding/json"
	"fmt"
	"strings"
)

// renderer is implemented once per block type. Rendering is a pure function
// of the payload recovered at construction and the sanitize flag.
type renderer interface {
	render(sanitize bool) string
}

// renderers maps a block's type discriminator to its constructor. A
// constructor recovers the typed payload from the block's generic data map
// and fails only for the two closed-set validations (header level, list
// style); every other missing or ill-typed field degrades to its default.
var renderers = map[string]func(*Block) (renderer, error){
	"header":       newHeader,
	"paragraph":    newParagraph,
	"list":         newList,
	"quote":        newQuote,
	"warning":      newWarning,
	"code":         newCode,
	"delimiter":    newDelimiter,
	"raw":          newRaw,
	"embed":        newEmbed,
	"media":        newMedia,
	"telegramPost": newTelegramPost,
}

//
// Header
//

type headerBlock struct {
	text  string
	level int
}

func newHeader(b *Block) (renderer, error) {
	level := 1
	if v, ok := b.Data["level"]; ok {
		n, ok := asInt(v)
		if !ok || n < 1 || n > 6 {
			return nil, wrap("render", "data.level", fmt.Errorf("%w: %v", ErrInvalidHeaderLevel, v))
		}
		level = n
	}
	return &headerBlock{text: stringField(b.Data, "text"), level: level}, nil
}

func (h *headerBlock) render(sanitize bool) string {
	text := h.text
	if sanitize {
		text = SanitizeRich(text)
	}
	return fmt.Sprintf(`<h%d class="cdx-block ce-header">%s</h%d>`, h.level, text, h.level)
}

//
// Paragraph
//

type paragraphBlock struct {
	text      string
	alignment string
}

func newParagraph(b *Block) (renderer, error) {
	alignment := "left"
	if tune, ok := b.Tunes["AlignmentTune"].(map[string]any); ok {
		if a := stringField(tune, "alignment"); a != "" {
			alignment = a
		}
	}
	return &paragraphBlock{text: stringField(b.Data, "text"), alignment: alignment}, nil
}

func (p *paragraphBlock) render(sanitize bool) string {
	text := p.text
	if sanitize {
		text = SanitizeRich(text)
	}
	return fmt.Sprintf(`<p style="text-align: %s" class="cdx-block ce-paragraph">%s</p>`,
		attrEscape(p.alignment), text)
}

//
// List
//

type listBlock struct {
	style string
	items []string
}

func newList(b *Block) (renderer, error) {
	style := stringField(b.Data, "style")
	if style != "ordered" && style != "unordered" {
		return nil, wrap("render", "data.style", fmt.Errorf("%w: %q", ErrInvalidListStyle, style))
	}

	var items []string
	for _, it := range sliceField(b.Data, "items") {
		if s, ok := it.(string); ok {
			items = append(items, s)
		}
	}
	return &listBlock{style: style, items: items}, nil
}

func (l *listBlock) render(sanitize bool) string {
	tag := "ol"
	if l.style == "unordered" {
		tag = "ul"
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, `<%s class="cdx-block cdx-list cdx-list--%s">`, tag, l.style)
	for _, item := range l.items {
		if sanitize {
			item = SanitizeRich(item)
		}
		buf.WriteString("<li>" + item + "</li>")
	}
	fmt.Fprintf(&buf, `</%s>`, tag)
	return buf.String()
}

//
// Quote
//

type quoteBlock struct {
	text      string
	alignment string
	caption   string
}

func newQuote(b *Block) (renderer, error) {
	return &quoteBlock{
		text:      stringField(b.Data, "text"),
		alignment: stringField(b.Data, "alignment"),
		caption:   stringField(b.Data, "caption"),
	}, nil
}

func (q *quoteBlock) render(sanitize bool) string {
	text := q.text
	if sanitize {
		text = SanitizeRich(text)
	}
	caption := renderCaption(q.caption, sanitize)

	cite := ""
	if caption != "" {
		cite = `<cite class="ce-quote__caption">` + caption + `</cite>`
	}
	withCaption := ""
	if q.caption != "" {
		withCaption = " ce-quote-with-caption"
	}

	return `<div class="cdx-block ce-quote ce-quote-with-align-` + attrEscape(q.alignment) + withCaption + `">` +
		`<blockquote class="ce-quote__blockquote">` + text + cite + `</blockquote></div>`
}

//
// Warning
//

type warningBlock struct {
	title   string
	message string
}

func newWarning(b *Block) (renderer, error) {
	return &warningBlock{
		title:   stringField(b.Data, "title"),
		message: stringField(b.Data, "message"),
	}, nil
}

func (w *warningBlock) render(sanitize bool) string {
	title, message := w.title, w.message
	if sanitize {
		title = SanitizeRich(title)
		message = SanitizeRich(message)
	}

	var buf strings.Builder
	buf.WriteString(`<div class="cdx-block ce-warning"><blockquote class="ce-warning__blockquote">`)
	if title != "" {
		buf.WriteString(`<b class="ce-warning__title">` + title + `</b>`)
	}
	if message != "" {
		buf.WriteString(`<div class="ce-warning__message">` + message + `</div>`)
	}
	buf.WriteString(`</blockquote></div>`)
	return buf.String()
}

//
// Code
//

type codeBlock struct {
	code string
}

func newCode(b *Block) (renderer, error) {
	return &codeBlock{code: stringField(b.Data, "code")}, nil
}

// Code content is rendered verbatim under both sanitize settings.
func (c *codeBlock) render(bool) string {
	return `<div class="cdx-block ce-code"><pre>` + c.code + `</pre></div>`
}

//
// Delimiter
//

type delimiterBlock struct{}

func newDelimiter(*Block) (renderer, error) {
	return delimiterBlock{}, nil
}

func (delimiterBlock) render(bool) string {
	return `<div class="cdx-block ce-delimiter"><hr/></div>`
}

//
// Raw
//

type rawBlock struct {
	html string
}

func newRaw(b *Block) (renderer, error) {
	return &rawBlock{html: stringField(b.Data, "html")}, nil
}

// The raw block is an explicit trust boundary: its whole purpose is to pass
// caller-supplied markup through untouched, so no sanitization is ever
// applied here.
func (r *rawBlock) render(bool) string {
	return `<div class="cdx-block ce-raw">` + r.html + `</div>`
}

//
// Embed
//

type embedBlock struct {
	service string
	source  string
	embed   string
	caption string
}

func newEmbed(b *Block) (renderer, error) {
	return &embedBlock{
		service: stringField(b.Data, "service"),
		source:  stringField(b.Data, "source"),
		embed:   stringField(b.Data, "embed"),
		caption: stringField(b.Data, "caption"),
	}, nil
}

func (e *embedBlock) render(sanitize bool) string {
	caption := renderCaption(e.caption, sanitize)

	media := ""
	switch e.service {
	case "youtube":
		media = `<iframe src="` + attrEscape(e.embed) + `" width="100%" style="aspect-ratio: 16/9"` +
			` frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media;` +
			` gyroscope; picture-in-picture; web-share" allowfullscreen></iframe>`
	case "twitter":
		media = `<blockquote class="twitter-tweet"><a href="` + attrEscape(e.source) + `"></a></blockquote>` +
			`<script async src="https://platform.twitter.com/widgets.js" charset="utf-8"></script>`
	}

	return `<div class="cdx-block embed-tool embed-tool-` + attrEscape(e.service) + `"><figure>` +
		`<div class="embed-tool__embed">` + media + `</div>` +
		`<figcaption class="embed-tool__caption">` + caption + `</figcaption>` +
		`</figure></div>`
}

//
// Media
//

type mediaBlock struct {
	mimetype string
	full     string
	normal   string
	medium   string
	small    string
	caption  string

	withBorder     bool
	stretched      bool
	withBackground bool
}

func newMedia(b *Block) (renderer, error) {
	file := mapField(b.Data, "file")
	urls := mapField(file, "urls")
	return &mediaBlock{
		mimetype:       stringField(file, "mimetype"),
		full:           stringField(urls, "full"),
		normal:         stringField(urls, "normal"),
		medium:         stringField(urls, "medium"),
		small:          stringField(urls, "small"),
		caption:        stringField(b.Data, "caption"),
		withBorder:     boolField(b.Data, "withBorder"),
		stretched:      boolField(b.Data, "stretched"),
		withBackground: boolField(b.Data, "withBackground"),
	}, nil
}

func (m *mediaBlock) render(sanitize bool) string {
	caption := renderCaption(m.caption, sanitize)
	// Attribute positions (alt, data-placeholder) always take the plain form.
	plain := SanitizePlain(caption)

	classes := "cdx-block media-tool media-tool--filled"
	if m.stretched {
		classes += " media-tool--stretched"
	}
	if m.withBorder {
		classes += " media-tool--withBorder"
	}
	if m.withBackground {
		classes += " media-tool--withBackground"
	}

	media := ""
	switch {
	case strings.HasPrefix(m.mimetype, "image"):
		srcset := ""
		// SVG has no raster renditions; only the full URL applies.
		if !strings.Contains(m.mimetype, "image/svg") {
			srcset = ` srcset="` + attrEscape(m.normal) + ` 1080w, ` +
				attrEscape(m.medium) + ` 720w, ` + attrEscape(m.small) + ` 480w"`
		}
		media = `<img class="media-tool__media-picture" src="` + attrEscape(m.full) + `"` +
			srcset + ` alt="` + plain + `"/>`
	case strings.HasPrefix(m.mimetype, "video"):
		media = `<video class="media-tool__media-picture" src="` + attrEscape(m.full) + `" controls=""></video>`
	}

	return `<div class="` + classes + `"><figure>` +
		`<div class="media-tool__media">` + media + `</div>` +
		`<figcaption class="media-tool__caption" data-placeholder="` + plain + `">` + caption + `</figcaption>` +
		`</figure></div>`
}

//
// Telegram post
//

type telegramPostBlock struct {
	channelName string
	messageID   string
}

func newTelegramPost(b *Block) (renderer, error) {
	return &telegramPostBlock{
		channelName: stringField(b.Data, "channelName"),
		messageID:   stringField(b.Data, "messageId"),
	}, nil
}

func (t *telegramPostBlock) render(bool) string {
	return `<div class="cdx-block telegram-post">` +
		`<script async src="https://telegram.org/js/telegram-widget.js?22" data-telegram-post="` +
		attrEscape(t.channelName) + `/` + attrEscape(t.messageID) + `" data-width="100%"></script></div>`
}

//
// Payload recovery helpers
//

// renderCaption applies the common caption rule shared by quote, embed and
// media: sanitize first when asked, then strip a single trailing line-break
// placeholder so captions never end on a dangling break.
func renderCaption(caption string, sanitize bool) string {
	if sanitize {
		caption = SanitizeRich(caption)
	}
	return strings.TrimSuffix(caption, "<br>")
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	}
	return ""
}

func boolField(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func mapField(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

func sliceField(m map[string]any, key string) []any {
	v, _ := m[key].([]any)
	return v
}

// asInt accepts the integer representations a data map can carry depending
// on how it was produced: json.Number from Decode, float64 from plain
// encoding/json, or native ints from direct construction. Fractional values
// are not integers.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
