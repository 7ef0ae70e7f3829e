package matrix

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the conventional file name of the peripheral matrix.
const DefaultConfigName = "gd32_peripheral_matrix.yaml"

// For mocking in tests
var osReadFile = os.ReadFile

// Config holds the loaded peripheral matrix: the board registry, the test
// groups and the opaque ci_config section. It is read-only after Load and is
// safe for concurrent readers.
type Config struct {
	boards map[string]*BoardConfig
	groups map[string]*TestGroup

	// CIConfig is carried through untouched for downstream CI tooling.
	CIConfig map[string]interface{}
}

type rawConfig struct {
	Boards     map[string]*BoardConfig `yaml:"boards"`
	TestGroups map[string]*TestGroup   `yaml:"test_groups"`
	CIConfig   map[string]interface{}  `yaml:"ci_config"`
}

// Load reads and parses the peripheral matrix YAML file. A missing or
// malformed file is a fatal configuration error surfaced to the caller; no
// partial configuration is ever returned.
func Load(path string) (*Config, error) {
	data, err := osReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read peripheral matrix %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse peripheral matrix %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a peripheral matrix document from raw YAML bytes.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cfg := &Config{
		boards:   make(map[string]*BoardConfig, len(raw.Boards)),
		groups:   make(map[string]*TestGroup, len(raw.TestGroups)),
		CIConfig: raw.CIConfig,
	}

	for name, board := range raw.Boards {
		if board == nil {
			board = &BoardConfig{}
		}
		board.Name = name
		if board.Series == "" {
			board.Series = "unknown"
		}
		if board.Arch == "" {
			board.Arch = "arm"
		}
		cfg.boards[name] = board
	}

	for name, group := range raw.TestGroups {
		if group == nil {
			group = &TestGroup{}
		}
		group.Name = name
		cfg.groups[name] = group
	}

	return cfg, nil
}

// Board returns the configuration for the named board.
func (c *Config) Board(name string) (*BoardConfig, bool) {
	board, ok := c.boards[name]
	return board, ok
}

// BoardNames returns every known board name, sorted lexicographically so that
// plan generation and reports are reproducible across runs.
func (c *Config) BoardNames() []string {
	names := make([]string, 0, len(c.boards))
	for name := range c.boards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BoardsBySeries returns the names of all boards of the given hardware
// series. The match is case-sensitive and exact.
func (c *Config) BoardsBySeries(series string) []string {
	var names []string
	for _, name := range c.BoardNames() {
		if c.boards[name].Series == series {
			names = append(names, name)
		}
	}
	return names
}

// BoardsWithPeripheral returns the names of all boards supporting the given
// peripheral.
func (c *Config) BoardsWithPeripheral(peripheral string) []string {
	var names []string
	for _, name := range c.BoardNames() {
		if c.boards[name].HasPeripheral(peripheral) {
			names = append(names, name)
		}
	}
	return names
}

// Group returns the named test group.
func (c *Config) Group(name string) (*TestGroup, bool) {
	group, ok := c.groups[name]
	return group, ok
}

// GroupNames returns every known test group name, sorted.
func (c *Config) GroupNames() []string {
	names := make([]string, 0, len(c.groups))
	for name := range c.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
