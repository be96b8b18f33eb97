// Package project loads Paw.toml manifests and computes the module
// search roots a compilation resolves `import a::b::c;` paths against.
// Grounded on orig:src/project.rs: the defaulting rules (sanitize_pkg_name,
// entry defaulting, search_roots = [root] ++ module_dirs) are a direct
// port; toml decoding itself follows miaomiao1992-dingo's own
// Paw.toml-shaped manifest parser in the retrieved pack.
package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded shape of Paw.toml.
type Manifest struct {
	Package struct {
		Name  string   `toml:"name"`
		Entry string   `toml:"entry"`
	} `toml:"package"`
	Module struct {
		Modules []string `toml:"modules"`
	} `toml:"module"`
}

// Project is a loaded manifest plus the root directory it was read from.
type Project struct {
	Root    string
	Name    string
	Entry   string
	Modules []string
}

// Load reads Paw.toml from root (the directory containing it) and
// applies the same defaulting rules as the original implementation.
func Load(root string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(root, "Paw.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return defaultProject(root), nil
		}
		return nil, err
	}
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, err
	}
	name := m.Package.Name
	if name == "" {
		name = filepath.Base(root)
	}
	p := &Project{
		Root:    root,
		Name:    sanitizePkgName(name),
		Entry:   m.Package.Entry,
		Modules: m.Module.Modules,
	}
	if p.Entry == "" {
		p.Entry = "main.paw"
	}
	return p, nil
}

func defaultProject(root string) *Project {
	return &Project{Root: root, Name: sanitizePkgName(filepath.Base(root)), Entry: "main.paw"}
}

// sanitizePkgName forces name into [A-Za-z0-9_]*, prefixing with `p` if
// the first character isn't a letter or underscore, and defaulting to
// "app" if the result is empty (orig:src/project.rs sanitize_pkg_name).
func sanitizePkgName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		}
	}
	out := sb.String()
	if out == "" {
		return "app"
	}
	first := out[0]
	if !(first == '_' || (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
		out = "p" + out
	}
	return out
}

// SearchRoots returns the directories import resolution walks, in
// priority order: the project root, then each declared module
// directory (orig:src/project.rs search_roots).
func (p *Project) SearchRoots() []string {
	roots := make([]string, 0, 1+len(p.Modules))
	roots = append(roots, p.Root)
	for _, m := range p.Modules {
		roots = append(roots, filepath.Join(p.Root, m))
	}
	return roots
}

// EntryPath is the absolute path to the package's entry file.
func (p *Project) EntryPath() string {
	return filepath.Join(p.Root, p.Entry)
}
