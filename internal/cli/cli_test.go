package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommand(t *testing.T) {
	t.Run("renders text flag", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewRenderCommand()
		cmd.Out = &out

		require.NoError(t, cmd.ParseFlags([]string{"-text", "go https://a.com"}))
		require.NoError(t, cmd.Run())

		assert.Equal(t,
			`go <a href="https://a.com" target="_blank" rel="noopener noreferrer" class="rich-link">https://a.com</a>`+"\n",
			out.String())
	})

	t.Run("reads stdin and keeps inner newlines", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewRenderCommand()
		cmd.In = strings.NewReader("a\nb\n")
		cmd.Out = &out

		require.NoError(t, cmd.ParseFlags(nil))
		require.NoError(t, cmd.Run())

		assert.Equal(t, "a<br>b\n", out.String())
	})

	t.Run("escape flag", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewRenderCommand()
		cmd.Out = &out

		require.NoError(t, cmd.ParseFlags([]string{"-escape", "-text", "<b>"}))
		require.NoError(t, cmd.Run())

		assert.Equal(t, "&lt;b&gt;\n", out.String())
	})

	t.Run("explicit empty text does not read stdin", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewRenderCommand()
		cmd.In = strings.NewReader("should be ignored")
		cmd.Out = &out

		require.NoError(t, cmd.ParseFlags([]string{"-text", ""}))
		require.NoError(t, cmd.Run())

		assert.Equal(t, "\n", out.String())
	})
}

func TestTruncateCommand(t *testing.T) {
	t.Run("truncates to max", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewTruncateCommand()
		cmd.Out = &out

		require.NoError(t, cmd.ParseFlags([]string{"-max", "5", "-text", "abcdefgh"}))
		require.NoError(t, cmd.Run())

		assert.Equal(t, "abcde...\n", out.String())
	})

	t.Run("defaults to 200", func(t *testing.T) {
		cmd := NewTruncateCommand()
		require.NoError(t, cmd.ParseFlags(nil))
		assert.Equal(t, 200, cmd.MaxLength)
	})

	t.Run("rejects negative max", func(t *testing.T) {
		cmd := NewTruncateCommand()
		assert.Error(t, cmd.ParseFlags([]string{"-max", "-2"}))
	})
}

func TestURLsCommand(t *testing.T) {
	t.Run("lists urls one per line", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewURLsCommand()
		cmd.In = strings.NewReader("see http://x.io and https://y.io/p?q=1\n")
		cmd.Out = &out

		require.NoError(t, cmd.ParseFlags(nil))
		require.NoError(t, cmd.Run())

		assert.Equal(t, "http://x.io\nhttps://y.io/p?q=1\n", out.String())
	})

	t.Run("check mode", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewURLsCommand()
		cmd.Out = &out

		require.NoError(t, cmd.ParseFlags([]string{"-check", "-text", "https://a.com"}))
		assert.NoError(t, cmd.Run())

		cmd = NewURLsCommand()
		cmd.Out = &out
		require.NoError(t, cmd.ParseFlags([]string{"-check", "-text", "nothing"}))
		assert.ErrorIs(t, cmd.Run(), ErrNoURLs)
		assert.Empty(t, out.String())
	})
}
