/*
Package editorjs renders Editor.js block documents to HTML fragments.

Editor.js is a block-based rich text editor whose saved documents are JSON:
an ordered list of typed block records, each carrying a free-form data
payload and optional formatting tunes. This package decodes those records
and maps each known block type to a well-formed HTML fragment, with an
optional sanitization pass over user-authored text fields.

# Quick Start

Decode a saved document and render it:

	input := `{"blocks":[{"type":"header","data":{"text":"Hello","level":2}}]}`
	doc, err := editorjs.DecodeString(input)
	if err != nil {
		log.Fatal(err)
	}
	html, err := doc.HTML(true) // sanitize user text fields
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(html) // <h2 class="cdx-block ce-header">Hello</h2>

A bare block array is accepted as well as the editor's full saved form
({"time": ..., "blocks": [...], "version": ...}).

# Core Types

  - Document: an ordered list of blocks; rendering concatenates the
    per-block fragments in source order with no separator
  - Block: one block record with type discriminator, data payload, tunes
  - HTMLOptions: document-level rendering options

Blocks can also be constructed directly:

	b := editorjs.Block{Type: "paragraph", Data: map[string]any{"text": "Hi"}}
	frag, err := b.HTML(false)

# Supported Block Types

header, paragraph, list, quote, warning, code, delimiter, raw, embed,
media, and telegramPost. Missing data fields degrade to empty output or
omitted sub-elements rather than failing; the only malformed-field errors
are a header level outside 1-6 and a list style other than
ordered/unordered, because those select the structural HTML tag.

Two types are deliberate pass-throughs: code content is rendered verbatim
and raw blocks emit their markup byte-for-byte, both regardless of the
sanitize flag.

# Sanitization

SanitizeRich keeps a small inline-tag allow-list and strips everything
else; SanitizePlain converts the <br> placeholder to a newline and strips
all markup. The sanitize flag on HTML applies these to every user-authored
text field (text, captions, titles, messages, list items). Structural
values such as URLs, style names and service names are never sanitized;
values interpolated into attribute or class positions are attribute-escaped
instead.

# Unknown Block Types

Document-level rendering skips blocks whose type has no renderer. Set
HTMLOptions.FailUnknown to get ErrUnknownBlockType instead:

	html, err := doc.HTMLWithOptions(editorjs.HTMLOptions{
		Sanitize:    true,
		FailUnknown: true,
	})

Rendering a single unknown Block directly always returns
ErrUnknownBlockType.

# Error Handling

Errors include path information for debugging:

	doc, err := editorjs.DecodeString(input)
	if err != nil {
		var e *editorjs.Error
		if errors.As(err, &e) {
			// e.Path shows where the error occurred,
			// e.g. "blocks[2].data.level"
			fmt.Printf("error at %s: %v\n", e.Path, e.Err)
		}
	}

Sentinel errors (ErrInvalidHeaderLevel, ErrInvalidListStyle,
ErrUnknownBlockType, ...) are matchable with errors.Is.

# Thread Safety

Rendering is a pure function of the block data and the sanitize flag.
Documents are safe for concurrent reads without synchronization; the
sanitization policies are built once and are safe for concurrent use.
*/
package editorjs
