package editorjs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

//
// Public API
//

// Document is an ordered list of Editor.js blocks.
// Document is safe for concurrent reads; concurrent writes require
// external synchronization.
type Document []Block

// Block represents one Editor.js block record: a type discriminator plus
// a free-form data payload and optional tunes. Data and Tunes hold the
// payload exactly as decoded; the per-type renderers recover typed values
// from them at render time.
type Block struct {
	ID    string         `json:"id,omitempty"`
	Type  string         `json:"type"`
	Data  map[string]any `json:"data,omitempty"`
	Tunes map[string]any `json:"tunes,omitempty"`
}

// HTMLOptions controls document-level rendering.
type HTMLOptions struct {
	Sanitize    bool // Apply the rich/plain sanitization policies to user text fields
	FailUnknown bool // Fail on unrecognized block types instead of skipping them
}

// Decode parses an Editor.js document into a Document.
// Both the editor's saved form ({"time":..., "blocks":[...], "version":...})
// and a bare block array are accepted; keys other than "blocks" are ignored.
// - Requires a non-empty type on every block record
// - Missing data/tunes default to empty maps
// - Numbers are decoded with UseNumber so integer payload fields survive intact
func Decode(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, wrap("decode", "", err)
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return nil, wrap("decode", "", fmt.Errorf("%w: expected '[' or '{'", ErrUnexpectedToken))
	}

	switch d {
	case '[':
		return decodeBlocks(dec, "")
	case '{':
		var doc Document
		found := false
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, wrap("decode", "", err)
			}
			key, _ := tok.(string)
			if key != "blocks" {
				var skip json.RawMessage
				if err := dec.Decode(&skip); err != nil {
					return nil, wrap("decode", key, err)
				}
				continue
			}

			tok, err = dec.Token()
			if err != nil {
				return nil, wrap("decode", "blocks", err)
			}
			if d, ok := tok.(json.Delim); !ok || d != '[' {
				return nil, wrap("decode", "blocks", ErrExpectedArray)
			}
			if doc, err = decodeBlocks(dec, "blocks"); err != nil {
				return nil, err
			}
			found = true
		}
		if _, err := dec.Token(); err != nil {
			return nil, wrap("decode", "", err)
		}
		if !found {
			return nil, wrap("decode", "", fmt.Errorf(`%w: missing "blocks"`, ErrExpectedArray))
		}
		return doc, nil
	default:
		return nil, wrap("decode", "", fmt.Errorf("%w: expected '[' or '{'", ErrUnexpectedToken))
	}
}

// DecodeString is a convenience wrapper for Decode.
func DecodeString(s string) (Document, error) {
	return Decode(strings.NewReader(s))
}

// decodeBlocks consumes block records up to and including the closing ']'.
func decodeBlocks(dec *json.Decoder, base string) (Document, error) {
	doc := Document{}
	i := 0
	for dec.More() {
		var rm json.RawMessage
		if err := dec.Decode(&rm); err != nil {
			return nil, wrap("decode", fmt.Sprintf("%s[%d]", base, i), err)
		}
		b, err := parseBlock(rm, fmt.Sprintf("%s[%d]", base, i))
		if err != nil {
			return nil, err
		}
		doc = append(doc, b)
		i++
	}

	tok, err := dec.Token()
	if err != nil {
		return nil, wrap("decode", base, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != ']' {
		return nil, wrap("decode", base, fmt.Errorf("%w: expected ']'", ErrUnexpectedToken))
	}
	return doc, nil
}

// Walk visits all blocks in order; stops early on fn error.
func Walk(doc Document, fn func(*Block) error) error {
	for i := range doc {
		if err := fn(&doc[i]); err != nil {
			return err
		}
	}
	return nil
}

// HTML renders the whole document to a single HTML fragment: each block's
// fragment in source order, concatenated with no separator. Blocks with an
// unrecognized type are skipped; use HTMLWithOptions to fail on them instead.
func (doc Document) HTML(sanitize bool) (string, error) {
	return doc.HTMLWithOptions(HTMLOptions{Sanitize: sanitize})
}

// HTMLWithOptions renders the document with explicit options.
func (doc Document) HTMLWithOptions(opts HTMLOptions) (string, error) {
	var buf strings.Builder
	for i := range doc {
		b := &doc[i]
		newRenderer, ok := renderers[b.Type]
		if !ok {
			if opts.FailUnknown {
				return "", wrap("render", fmt.Sprintf("[%d]", i), fmt.Errorf("%w: %q", ErrUnknownBlockType, b.Type))
			}
			continue
		}
		r, err := newRenderer(b)
		if err != nil {
			return "", prefix(err, fmt.Sprintf("[%d]", i))
		}
		buf.WriteString(r.render(opts.Sanitize))
	}
	return buf.String(), nil
}

// HTML renders a single block to its HTML fragment. Unlike document-level
// rendering, an unrecognized type is always an error here: the caller asked
// for this block specifically.
func (b *Block) HTML(sanitize bool) (string, error) {
	newRenderer, ok := renderers[b.Type]
	if !ok {
		return "", wrap("render", "", fmt.Errorf("%w: %q", ErrUnknownBlockType, b.Type))
	}
	r, err := newRenderer(b)
	if err != nil {
		return "", err
	}
	return r.render(sanitize), nil
}

//
// Errors (typed + path aware)
//

var (
	ErrMissingType        = errors.New("missing block type")
	ErrInvalidType        = errors.New("invalid block type")
	ErrExpectedObject     = errors.New("expected JSON object")
	ErrExpectedArray      = errors.New("expected JSON array")
	ErrUnexpectedToken    = errors.New("unexpected JSON token")
	ErrInvalidHeaderLevel = errors.New("invalid header level")
	ErrInvalidListStyle   = errors.New("invalid list style")
	ErrUnknownBlockType   = errors.New("unknown block type")
)

type Error struct {
	Op   string // "decode", "block", "render"
	Path string // e.g. "blocks[3].data.level"
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("editorjs %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("editorjs %s at %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Path: path, Err: err}
}

// prefix prepends a block index to the path of an already-wrapped error.
func prefix(err error, path string) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Path == "" {
			e.Path = path
		} else {
			e.Path = path + "." + e.Path
		}
		return err
	}
	return wrap("render", path, err)
}

//
// Parsing (path aware)
//

func parseBlock(b []byte, path string) (Block, error) {
	obj, err := decodeObjectUseNumber(b)
	if err != nil {
		return Block{}, wrap("block", path, err)
	}

	t, ok := obj["type"]
	if !ok {
		return Block{}, wrap("block", path, ErrMissingType)
	}
	ts, ok := t.(string)
	if !ok || ts == "" {
		return Block{}, wrap("block", path, ErrInvalidType)
	}

	blk := Block{
		Type:  ts,
		Data:  map[string]any{},
		Tunes: map[string]any{},
	}

	if v, ok := obj["id"]; ok {
		if s, ok := v.(string); ok {
			blk.ID = s
		}
	}
	if v, ok := obj["data"]; ok && v != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return Block{}, wrap("block", path+".data", ErrExpectedObject)
		}
		blk.Data = m
	}
	if v, ok := obj["tunes"]; ok && v != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return Block{}, wrap("block", path+".tunes", ErrExpectedObject)
		}
		blk.Tunes = m
	}

	return blk, nil
}

func decodeObjectUseNumber(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrExpectedObject
	}
	return obj, nil
}
