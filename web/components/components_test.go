package components_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstyle/web/components"
)

func TestField(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, components.Field("fg", "Fore<ground>", "color", "#000000").Render(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, `<input type="color" name="fg" value="#000000"`)
	assert.Contains(t, out, "Fore&lt;ground&gt;")
	assert.Contains(t, out, "px-3 py-2")

	buf.Reset()
	require.NoError(t, components.Field("fg", "Foreground", "color", "#000000", "h-10 p-1").Render(context.Background(), &buf))
	out = buf.String()
	assert.Contains(t, out, "h-10 p-1")
	assert.NotContains(t, out, "px-3", "caller padding replaces the default")
	assert.NotContains(t, out, "py-2")
}

func TestSelect(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, components.Select("ec", "Level", components.LevelOptions, "Q").Render(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, `<select name="ec"`)
	assert.Contains(t, out, `<option value="Q" selected>Q (25%)</option>`)
	assert.Contains(t, out, `<option value="L">`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(" selected")))
}

func TestToast(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, components.Toast(components.ToastProps{
		Title:   "Saved",
		Variant: components.ParseVariant("warning"),
	}).Render(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, `data-variant="warning"`)
	assert.Contains(t, out, "bg-amber-50")
	assert.NotContains(t, out, "bg-white", "variant colors replace the neutral ones")
	assert.Contains(t, out, "text-sm", "sizes survive the merge")
	assert.NotContains(t, out, "Dismiss")
	assert.NotContains(t, out, "<p></p>")

	buf.Reset()
	require.NoError(t, components.Toast(components.ToastProps{
		Title:       "Oops",
		Description: "bad",
		Variant:     components.Variant("bogus"),
		Dismissible: true,
	}).Render(context.Background(), &buf))
	out = buf.String()
	assert.Contains(t, out, "bg-emerald-50", "unknown variants look like success")
	assert.Contains(t, out, "<p>bad</p>")
	assert.Contains(t, out, "Dismiss")
}

func TestParseVariant(t *testing.T) {
	t.Parallel()

	assert.Equal(t, components.VariantError, components.ParseVariant("destructive"))
	assert.Equal(t, components.VariantInfo, components.ParseVariant("info"))
	assert.Equal(t, components.VariantSuccess, components.ParseVariant(""))
}
