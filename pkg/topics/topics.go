// Package topics adds topic based help to a cobra command tree. Topics are
// text or markdown documents read from an fs.FS, usually an embedded
// directory, and are shown by "help <topic>" next to regular command help.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/spf13/cobra"
)

// optionPrefix marks topics that document a flag, e.g. option-force.md
const optionPrefix = "option-"

// Topic is a single help document
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures a Manager
type Options struct {
	// Extensions lists the file extensions loaded as topics.
	// Defaults to .txt and .md.
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// Manager holds the loaded topics
type Manager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// New returns an empty Manager
func New(opts Options) *Manager {
	m := &Manager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}
	return m
}

// Load reads every file under dir in fsys with a known extension. A missing
// dir loads nothing.
func (m *Manager) Load(fsys fs.FS, dir string) error {
	if _, err := fs.Stat(fsys, dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileSystem, "cannot read help topics in %s", dir)
	}

	return fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !m.supported(path.Ext(p)) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileSystem, "cannot read help topic %s", p)
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(data)}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get looks a topic up by name. Flag spellings ("--force", "force") also
// match option topics.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.ToLower(strings.TrimLeft(name, "-"))
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics[optionPrefix+name]
	return t, ok
}

// List returns the topic names in sorted order
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render writes the rendered topic to w
func (m *Manager) Render(w io.Writer, t *Topic) {
	fmt.Fprint(w, m.renderer.Render(t.Content, path.Ext(t.Path)))
}

// WriteIndex writes the list of topics, general topics first and option
// topics spelled as flags.
func (m *Manager) WriteIndex(w io.Writer, program string) {
	names := m.List()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, flags []string
	for _, name := range names {
		if strings.HasPrefix(name, optionPrefix) {
			flags = append(flags, strings.TrimPrefix(name, optionPrefix))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(flags) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range flags {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

// Install loads the topics under dir and replaces the help command of root
// with one that knows about them.
func Install(root *cobra.Command, fsys fs.FS, dir string, opts Options) (*Manager, error) {
	m := New(opts)
	if err := m.Load(fsys, dir); err != nil {
		return nil, err
	}

	commandHelp := root.HelpFunc()
	program := root.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: fmt.Sprintf(`Help provides help for any command or topic.
Type %[1]s help [command or topic] for full details.

To see all available help topics:
  %[1]s help topics`, program),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden && c.Name() != "help" {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.List()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				commandHelp(root, nil)
				return
			}
			if strings.EqualFold(args[0], "topics") {
				m.WriteIndex(out, program)
				return
			}
			if t, ok := m.Get(args[0]); ok {
				m.Render(out, t)
				return
			}
			target, _, err := root.Find(args)
			if err != nil || target == nil {
				target = root
			}
			commandHelp(target, nil)
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if t, ok := m.Get(args[0]); ok {
				m.Render(cmd.OutOrStdout(), t)
				return
			}
		}
		commandHelp(cmd, args)
	})

	return m, nil
}
