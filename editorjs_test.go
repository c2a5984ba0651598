package editorjs

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// Decode Tests
// ========================================

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantLen int
	}{
		{
			name:    "bare array",
			input:   `[{"type":"paragraph","data":{"text":"Hi"}}]`,
			wantLen: 1,
		},
		{
			name:    "editor saved form",
			input:   `{"time":1672531200000,"blocks":[{"type":"header","data":{"text":"T","level":2}},{"type":"delimiter"}],"version":"2.26.5"}`,
			wantLen: 2,
		},
		{
			name:    "empty document",
			input:   `[]`,
			wantLen: 0,
		},
		{
			name:    "empty blocks",
			input:   `{"blocks":[]}`,
			wantLen: 0,
		},
		{
			name:    "missing type",
			input:   `[{"data":{"text":"Hi"}}]`,
			wantErr: ErrMissingType,
		},
		{
			name:    "empty type",
			input:   `[{"type":"","data":{}}]`,
			wantErr: ErrInvalidType,
		},
		{
			name:    "non-string type",
			input:   `[{"type":7}]`,
			wantErr: ErrInvalidType,
		},
		{
			name:    "data not an object",
			input:   `[{"type":"paragraph","data":[1,2]}]`,
			wantErr: ErrExpectedObject,
		},
		{
			name:    "object without blocks",
			input:   `{"time":1}`,
			wantErr: ErrExpectedArray,
		},
		{
			name:    "blocks not an array",
			input:   `{"blocks":{"type":"paragraph"}}`,
			wantErr: ErrExpectedArray,
		},
		{
			name:    "top-level scalar",
			input:   `42`,
			wantErr: ErrUnexpectedToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeString(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, doc, tt.wantLen)
		})
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := DecodeString(`{not valid}`)
	require.Error(t, err)
}

func TestDecodeDefaults(t *testing.T) {
	doc, err := DecodeString(`[{"type":"delimiter"}]`)
	require.NoError(t, err)
	require.Len(t, doc, 1)

	b := doc[0]
	assert.Empty(t, b.ID)
	assert.Equal(t, "delimiter", b.Type)
	assert.NotNil(t, b.Data)
	assert.NotNil(t, b.Tunes)
}

func TestDecodeFields(t *testing.T) {
	input := `[{"id":"abc","type":"quote","data":{"text":"Hi","alignment":"left"},"tunes":{"AlignmentTune":{"alignment":"center"}}}]`
	doc, err := DecodeString(input)
	require.NoError(t, err)
	require.Len(t, doc, 1)

	b := doc[0]
	assert.Equal(t, "abc", b.ID)
	assert.Equal(t, "quote", b.Type)
	assert.Equal(t, "Hi", b.Data["text"])
	assert.Contains(t, b.Tunes, "AlignmentTune")
}

func TestDecodePreservesIntegerLevels(t *testing.T) {
	// Levels arrive as json.Number and must render exactly.
	doc, err := DecodeString(`{"blocks":[{"type":"header","data":{"text":"T","level":3}}]}`)
	require.NoError(t, err)

	got, err := doc.HTML(false)
	require.NoError(t, err)
	assert.Equal(t, `<h3 class="cdx-block ce-header">T</h3>`, got)
}

func TestDecodeErrorPath(t *testing.T) {
	_, err := DecodeString(`{"blocks":[{"type":"ok"},{"data":{}}]}`)
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "blocks[1]", e.Path)
}

// ========================================
// Walk Tests
// ========================================

func TestWalk(t *testing.T) {
	doc, err := DecodeString(`[{"type":"header","data":{"text":"T"}},{"type":"delimiter"},{"type":"paragraph","data":{"text":"p"}}]`)
	require.NoError(t, err)

	var types []string
	err = Walk(doc, func(b *Block) error {
		types = append(types, b.Type)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"header", "delimiter", "paragraph"}, types)
}

func TestWalkStopsOnError(t *testing.T) {
	doc := Document{{Type: "a"}, {Type: "b"}, {Type: "c"}}
	sentinel := errors.New("stop")

	visited := 0
	err := Walk(doc, func(b *Block) error {
		visited++
		if b.Type == "b" {
			return sentinel
		}
		return nil
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 2, visited)
}

// ========================================
// Document Rendering Tests
// ========================================

func TestDocumentHTMLConcatenation(t *testing.T) {
	doc := Document{
		{Type: "header", Data: map[string]any{"text": "T", "level": 2}},
		{Type: "paragraph", Data: map[string]any{"text": "body"}},
		{Type: "delimiter"},
	}

	// Rendering the whole document equals concatenating per-block fragments.
	var want strings.Builder
	for i := range doc {
		frag, err := doc[i].HTML(false)
		require.NoError(t, err)
		want.WriteString(frag)
	}

	got, err := doc.HTML(false)
	require.NoError(t, err)
	assert.Equal(t, want.String(), got)
}

func TestDocumentHTMLDeterministic(t *testing.T) {
	doc := Document{
		{Type: "quote", Data: map[string]any{"text": "q", "caption": "c<br>", "alignment": "left"}},
		{Type: "list", Data: map[string]any{"style": "ordered", "items": []any{"a", "b"}}},
	}

	first, err := doc.HTML(true)
	require.NoError(t, err)
	second, err := doc.HTML(true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDocumentUnknownTypeSkipped(t *testing.T) {
	doc := Document{
		{Type: "paragraph", Data: map[string]any{"text": "one"}},
		{Type: "checklist", Data: map[string]any{}},
		{Type: "paragraph", Data: map[string]any{"text": "two"}},
	}

	got, err := doc.HTML(false)
	require.NoError(t, err)
	assert.Contains(t, got, "one")
	assert.Contains(t, got, "two")
	assert.NotContains(t, got, "checklist")
}

func TestDocumentUnknownTypeStrict(t *testing.T) {
	doc := Document{
		{Type: "paragraph", Data: map[string]any{"text": "one"}},
		{Type: "checklist", Data: map[string]any{}},
	}

	_, err := doc.HTMLWithOptions(HTMLOptions{FailUnknown: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBlockType)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "[1]", e.Path)
}

func TestSingleBlockUnknownType(t *testing.T) {
	b := Block{Type: "checklist"}
	_, err := b.HTML(false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBlockType)
}

func TestDocumentMalformedFieldAborts(t *testing.T) {
	doc := Document{
		{Type: "paragraph", Data: map[string]any{"text": "fine"}},
		{Type: "header", Data: map[string]any{"text": "T", "level": 9}},
	}

	_, err := doc.HTML(false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidHeaderLevel)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "[1].data.level", e.Path)
}

func TestNilDataMaps(t *testing.T) {
	// Directly constructed blocks may carry nil maps; rendering must not panic.
	for _, typ := range []string{"paragraph", "quote", "warning", "code", "delimiter", "raw", "embed", "media", "telegramPost", "header"} {
		b := Block{Type: typ}
		_, err := b.HTML(true)
		require.NoError(t, err, "type %q", typ)
	}
}

// ========================================
// Error Formatting Tests
// ========================================

func TestErrorFormat(t *testing.T) {
	err := &Error{Op: "render", Path: "[2].data.style", Err: ErrInvalidListStyle}
	assert.Equal(t, "editorjs render at [2].data.style: invalid list style", err.Error())
	assert.ErrorIs(t, err, ErrInvalidListStyle)

	err = &Error{Op: "decode", Err: ErrUnexpectedToken}
	assert.Equal(t, "editorjs decode: unexpected JSON token", err.Error())
}
