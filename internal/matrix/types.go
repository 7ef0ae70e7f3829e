package matrix

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BoardSelectorAll is the sentinel a test group uses to target every known board.
const BoardSelectorAll = "all"

// BoardConfig describes one GD32 board: its series, architecture, the
// peripherals it supports and the test suites declared for it. Boards are
// constructed once at configuration load and are not mutated afterwards.
type BoardConfig struct {
	Name        string     `yaml:"-"`
	Series      string     `yaml:"series"`
	Arch        string     `yaml:"arch"`
	Peripherals []string   `yaml:"peripherals"`
	TestSuites  TestSuites `yaml:"test_suites"`
}

// HasPeripheral reports whether the board supports the given peripheral.
func (b *BoardConfig) HasPeripheral(peripheral string) bool {
	for _, p := range b.Peripherals {
		if p == peripheral {
			return true
		}
	}
	return false
}

// SupportsAll reports whether every peripheral in the list is supported.
// An empty list is trivially supported.
func (b *BoardConfig) SupportsAll(peripherals []string) bool {
	for _, p := range peripherals {
		if !b.HasPeripheral(p) {
			return false
		}
	}
	return true
}

// TestSuite is one named category of test paths, in declared order.
type TestSuite struct {
	Category string
	Tests    []string
}

// TestSuites preserves the category declaration order of the YAML mapping.
// Plan generation iterates categories in this order, so a plain map (with its
// randomized iteration) would break report reproducibility.
type TestSuites []TestSuite

// UnmarshalYAML decodes a `category -> [test paths]` mapping node while
// keeping the key order of the source document.
func (s *TestSuites) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("test_suites must be a mapping (line %d)", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		category := node.Content[i].Value
		var tests []string
		if err := node.Content[i+1].Decode(&tests); err != nil {
			return fmt.Errorf("test_suites.%s: %w", category, err)
		}
		*s = append(*s, TestSuite{Category: category, Tests: tests})
	}
	return nil
}

// MarshalYAML renders the suites back as a mapping, preserving order.
func (s TestSuites) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, suite := range s {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: suite.Category}
		valNode := &yaml.Node{}
		if err := valNode.Encode(suite.Tests); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// BoardSelector is a test group's board selection rule: either an explicit
// list of board names, or the "all" sentinel meaning every known board.
type BoardSelector struct {
	All    bool
	Boards []string
}

// UnmarshalYAML accepts either a scalar "all" or a sequence of board names.
func (s *BoardSelector) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == BoardSelectorAll {
			s.All = true
			return nil
		}
		return fmt.Errorf("boards: expected %q or a list of board names, got %q (line %d)",
			BoardSelectorAll, node.Value, node.Line)
	case yaml.SequenceNode:
		return node.Decode(&s.Boards)
	default:
		return fmt.Errorf("boards: expected %q or a list of board names (line %d)",
			BoardSelectorAll, node.Line)
	}
}

// MarshalYAML renders the selector back in its source form.
func (s BoardSelector) MarshalYAML() (interface{}, error) {
	if s.All {
		return BoardSelectorAll, nil
	}
	return s.Boards, nil
}

// TestGroup is a named, reusable bundle of test paths with a board selector.
type TestGroup struct {
	Name        string        `yaml:"-"`
	Description string        `yaml:"description"`
	Tests       []string      `yaml:"tests"`
	Boards      BoardSelector `yaml:"boards"`
}
