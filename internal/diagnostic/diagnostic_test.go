package diagnostic

import (
	"bytes"
	"fmt"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_Error(t *testing.T) {
	pos := token.Position{Filename: "shapes.go", Line: 12, Column: 6}
	d := New(UnsupportedShape, pos, "Pair", "product types must declare exactly one field; %s has %d", "Pair", 2)

	assert.Equal(t, "shapes.go:12:6: product types must declare exactly one field; Pair has 2", d.Error())

	noPos := New(UnsupportedShape, token.Position{}, "Pair", "bad")
	assert.Equal(t, "bad", noPos.Error())
}

func TestFormatPosition_RelativeToWorkingDirectory(t *testing.T) {
	pos := token.Position{Filename: filepath.Join(wd, "pkg", "a.go"), Line: 3, Column: 1}
	assert.Equal(t, filepath.Join("pkg", "a.go")+":3:1", FormatPosition(pos))
	assert.Equal(t, "-:-", FormatPosition(token.Position{}))
}

func TestAs(t *testing.T) {
	d := New(MalformedAnnotation, token.Position{}, "T.A", "bad")
	wrapped := fmt.Errorf("derive: %w", d)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "UnsupportedDeclaration", UnsupportedDeclaration.String())
	assert.Equal(t, "UnsupportedShape", UnsupportedShape.String())
	assert.Equal(t, "MalformedAnnotation", MalformedAnnotation.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestPrinter_Print(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	d := New(
		MalformedAnnotation,
		token.Position{Filename: "events.go", Line: 9, Column: 1},
		"Event.Key",
		"unrecognized token %q in //fromone: directive; expected //fromone:skip",
		"skp",
	)
	require.NoError(t, p.Print(d))

	assert.Equal(
		t,
		"events.go:9:1: error[MalformedAnnotation]: Event.Key: unrecognized token \"skp\" in //fromone: directive; expected //fromone:skip\n",
		buf.String(),
	)
}
