// Package testdata embeds recorded pointer event scripts used by the replay
// command and the end-to-end tests.
package testdata

import (
	"embed"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	json "github.com/json-iterator/go"

	"github.com/ayusman/mudra/internal/pointer"
)

//go:embed scripts/*.json
var scriptsFS embed.FS

// LoadScript loads an embedded script by name, with or without the .json
// extension.
func LoadScript(name string) ([]pointer.Event, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := scriptsFS.ReadFile(path.Join("scripts", name))
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}

	var events []pointer.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode script %s: %w", name, err)
	}
	return events, nil
}

// DecodeScript reads a script from r.
func DecodeScript(r io.Reader) ([]pointer.Event, error) {
	var events []pointer.Event
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return events, nil
}

// ScriptNames lists the embedded scripts without extension, sorted.
func ScriptNames() ([]string, error) {
	entries, err := scriptsFS.ReadDir("scripts")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
