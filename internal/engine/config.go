package engine

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed rituals.yaml aliases.yaml
var configFS embed.FS

const (
	embeddedCatalog = "rituals.yaml"
	embeddedAliases = "aliases.yaml"
)

// AliasTable maps lowercase raw labels to canonical emotions.
type AliasTable map[string]domain.Emotion

type catalogFile struct {
	Rituals []domain.RitualTemplate `yaml:"rituals"`
}

// ParseCatalog decodes a ritual catalog document. Validation happens in NewSelector.
func ParseCatalog(data []byte) ([]domain.RitualTemplate, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse ritual catalog: %w", err)
	}
	if len(f.Rituals) == 0 {
		return nil, fmt.Errorf("parse ritual catalog: no rituals defined")
	}
	return f.Rituals, nil
}

// LoadCatalog reads the ritual catalog at path, or the embedded catalog when path is empty.
func LoadCatalog(path string) ([]domain.RitualTemplate, error) {
	data, err := readConfig(path, embeddedCatalog)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseAliases decodes an alias document of the form
// "<canonical>: [raw, raw, ...]" into a flat table.
func ParseAliases(data []byte) (AliasTable, error) {
	var grouped map[string][]string
	if err := yaml.Unmarshal(data, &grouped); err != nil {
		return nil, fmt.Errorf("parse alias table: %w", err)
	}

	// Sorted keys keep conflict errors stable.
	targets := make([]string, 0, len(grouped))
	for k := range grouped {
		targets = append(targets, k)
	}
	sort.Strings(targets)

	table := make(AliasTable)
	for _, target := range targets {
		canon := normalizeLabel(target)
		if !domain.ValidEmotion(canon) {
			return nil, fmt.Errorf("parse alias table: %q is not a canonical emotion", target)
		}
		for _, raw := range grouped[target] {
			key := normalizeLabel(raw)
			if key == "" {
				return nil, fmt.Errorf("parse alias table: empty alias under %q", target)
			}
			if prev, ok := table[key]; ok && prev != domain.Emotion(canon) {
				return nil, fmt.Errorf("parse alias table: alias %q maps to both %s and %s", raw, prev, canon)
			}
			table[key] = domain.Emotion(canon)
		}
	}
	return table, nil
}

// LoadAliases reads the alias table at path, or the embedded table when path is empty.
func LoadAliases(path string) (AliasTable, error) {
	data, err := readConfig(path, embeddedAliases)
	if err != nil {
		return nil, err
	}
	return ParseAliases(data)
}

// DefaultCatalog returns the embedded ritual catalog.
func DefaultCatalog() []domain.RitualTemplate {
	c, err := LoadCatalog("")
	if err != nil {
		panic(fmt.Sprintf("embedded ritual catalog: %v", err))
	}
	return c
}

// DefaultAliases returns the embedded alias table.
func DefaultAliases() AliasTable {
	t, err := LoadAliases("")
	if err != nil {
		panic(fmt.Sprintf("embedded alias table: %v", err))
	}
	return t
}

func readConfig(path, embedded string) ([]byte, error) {
	if path == "" {
		return configFS.ReadFile(embedded)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
