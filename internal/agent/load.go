package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Builtins returns the built-in personas in display order.
func Builtins() []Persona {
	return []Persona{Librarian(), Oracle()}
}

// LoadDir reads user-defined personas from *.toml files in dir, sorted by
// file name. A missing directory is not an error; it just yields no
// personas. A persona file must carry at least a name and a system prompt.
func LoadDir(dir string) ([]Persona, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("agent: read personas dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var personas []Persona
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("agent: read %s: %w", path, err)
		}

		var p Persona
		if err := toml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("agent: parse %s: %w", path, err)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("agent: %s: persona has no name", path)
		}
		if p.SystemPrompt == "" {
			return nil, fmt.Errorf("agent: %s: persona %q has no system_prompt", path, p.Name)
		}
		if len(p.Tools) == 0 {
			p.Tools = ReadOnlyTools
		}
		personas = append(personas, p)
	}
	return personas, nil
}

// Resolve finds a persona by name. User-defined personas shadow built-ins
// of the same name.
func Resolve(name string, custom []Persona) (Persona, bool) {
	for _, p := range custom {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range Builtins() {
		if p.Name == name {
			return p, true
		}
	}
	return Persona{}, false
}
