package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/manifest.md":      {Data: []byte("# Manifest\n\nThe deps.toml file.")},
		"help/option-force.txt": {Data: []byte("Force deletes the vendor directory.")},
		"help/notes.txxt":       {Data: []byte("Custom extension")},
		"help/ignore.json":      {Data: []byte("{}")},
		"other/readme.md":       {Data: []byte("not a topic")},
	}
}

func TestManagerLoad(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		want       []string
	}{
		{"default extensions", nil, []string{"manifest", "option-force"}},
		{"custom extensions", []string{".md", ".txt", ".txxt"}, []string{"manifest", "notes", "option-force"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(Options{Extensions: tt.extensions})
			require.NoError(t, m.Load(testFS(), "help"))
			assert.Equal(t, tt.want, m.List())
		})
	}
}

func TestManagerLoadMissingDir(t *testing.T) {
	m := New(Options{})
	require.NoError(t, m.Load(testFS(), "absent"))
	assert.Empty(t, m.List())
}

func TestManagerGet(t *testing.T) {
	m := New(Options{})
	require.NoError(t, m.Load(testFS(), "help"))

	tests := []struct {
		query string
		want  string
		found bool
	}{
		{"manifest", "manifest", true},
		{"MANIFEST", "manifest", true},
		{"force", "option-force", true},
		{"--force", "option-force", true},
		{"-force", "option-force", true},
		{"option-force", "option-force", true},
		{"prune", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			topic, ok := m.Get(tt.query)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, topic.Name)
			}
		})
	}
}

func TestWriteIndex(t *testing.T) {
	t.Run("with topics", func(t *testing.T) {
		m := New(Options{})
		require.NoError(t, m.Load(testFS(), "help"))

		var buf bytes.Buffer
		m.WriteIndex(&buf, "deps")
		out := buf.String()

		assert.Contains(t, out, "General topics:\n  manifest\n")
		assert.Contains(t, out, "Option topics:\n  --force\n")
		assert.Contains(t, out, "Use 'deps help <topic>'")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		New(Options{}).WriteIndex(&buf, "deps")
		assert.Equal(t, "No help topics available.\n", buf.String())
	})
}

type upperRenderer struct{}

func (upperRenderer) Render(content, ext string) string {
	return ext + ":" + strings.ToUpper(content)
}

func newTree(t *testing.T, opts Options) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "deps", Long: "root help text", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "update", Long: "update help text", Run: func(*cobra.Command, []string) {}})

	_, err := Install(root, testFS(), "help", opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	return root, &buf
}

func TestInstall(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"topic", []string{"help", "manifest"}, ".md:# MANIFEST"},
		{"option topic", []string{"help", "force"}, ".txt:FORCE DELETES"},
		{"topic index", []string{"help", "topics"}, "Available help topics:"},
		{"command help", []string{"help", "update"}, "update help text"},
		{"root help", []string{"help"}, "root help text"},
		{"unknown falls back to root", []string{"help", "nothing"}, "root help text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, buf := newTree(t, Options{Renderer: upperRenderer{}})
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestInstallReplacesHelpCommand(t *testing.T) {
	root, _ := newTree(t, Options{})
	root.InitDefaultHelpCmd()

	var helps int
	for _, c := range root.Commands() {
		if c.Name() == "help" {
			helps++
			assert.Contains(t, c.Long, "deps help topics")
		}
	}
	assert.Equal(t, 1, helps)
}

func TestRenderers(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		assert.Equal(t, "# Title", PlainRenderer{}.Render("# Title", ".md"))
	})

	t.Run("glamour leaves text topics alone", func(t *testing.T) {
		r := &GlamourRenderer{Style: "notty"}
		assert.Equal(t, "# Title", r.Render("# Title", ".txt"))
	})

	t.Run("glamour renders markdown", func(t *testing.T) {
		r := &GlamourRenderer{Style: "notty", Width: 40}
		out := r.Render("# Title\n\nSome *body* text.", ".md")
		assert.Contains(t, out, "Title")
		assert.Contains(t, out, "body")
		assert.NotEqual(t, "# Title\n\nSome *body* text.", out)
	})
}
