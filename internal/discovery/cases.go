package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gd32test/pkg/logging"

	"gopkg.in/yaml.v3"
)

// Case is one buildable test or sample discovered in the source tree.
type Case struct {
	Name       string
	Path       string // absolute directory handed to the build tool
	Tags       []string
	Platforms  []string // declared platform_allow list, empty means "any board"
	SourceType string   // "testcase" or "sample"
}

func (c Case) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.SourceType)
}

// HasAnyTag reports whether the case carries at least one of the given tags.
func (c Case) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range c.Tags {
			if want == have {
				return true
			}
		}
	}
	return false
}

// DiscoverCases walks the tree under root looking for testcase.yaml and
// sample.yaml definitions. All test cases are returned before all samples,
// each block in lexical walk order, so repeated runs over the same tree
// discover cases in the same order. Files that fail to parse are logged and
// skipped; they never abort discovery.
func DiscoverCases(root string) ([]Case, error) {
	var testcases, samples []Case

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch d.Name() {
		case "testcase.yaml":
			parsed, perr := parseTestcaseYAML(path)
			if perr != nil {
				logging.Warn("discovery", "failed to parse %s: %v", path, perr)
				return nil
			}
			testcases = append(testcases, parsed...)
		case "sample.yaml":
			parsed, perr := parseSampleYAML(path)
			if perr != nil {
				logging.Warn("discovery", "failed to parse %s: %v", path, perr)
				return nil
			}
			samples = append(samples, parsed...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return append(testcases, samples...), nil
}

// testcaseConfig mirrors one entry of a testcase.yaml `tests:` mapping.
type testcaseConfig struct {
	Path          string   `yaml:"path"`
	Tags          []string `yaml:"tags"`
	PlatformAllow []string `yaml:"platform_allow"`
	Platforms     []string `yaml:"platforms"`
}

// parseTestcaseYAML extracts the named tests from a testcase.yaml. The tests
// mapping is decoded through yaml.Node to keep declaration order.
func parseTestcaseYAML(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Tests yaml.Node `yaml:"tests"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Tests.Kind == 0 {
		return nil, nil
	}
	if doc.Tests.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("tests section must be a mapping")
	}

	baseDir := filepath.Dir(path)

	var cases []Case
	for i := 0; i+1 < len(doc.Tests.Content); i += 2 {
		name := doc.Tests.Content[i].Value

		var cfg testcaseConfig
		if err := doc.Tests.Content[i+1].Decode(&cfg); err != nil {
			return nil, fmt.Errorf("tests.%s: %w", name, err)
		}

		testPath := baseDir
		if cfg.Path != "" {
			testPath = filepath.Clean(filepath.Join(baseDir, cfg.Path))
		}

		platforms := cfg.PlatformAllow
		if len(platforms) == 0 {
			platforms = cfg.Platforms
		}

		cases = append(cases, Case{
			Name:       name,
			Path:       testPath,
			Tags:       cfg.Tags,
			Platforms:  platforms,
			SourceType: "testcase",
		})
	}
	return cases, nil
}

// parseSampleYAML extracts the single sample described by a sample.yaml. The
// sample's directory is what gets built.
func parseSampleYAML(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Name   string `yaml:"name"`
		Common struct {
			Tags          []string `yaml:"tags"`
			PlatformAllow []string `yaml:"platform_allow"`
		} `yaml:"common"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	sampleDir := filepath.Dir(path)
	name := doc.Name
	if name == "" {
		name = filepath.Base(sampleDir)
	}

	return []Case{{
		Name:       name,
		Path:       sampleDir,
		Tags:       doc.Common.Tags,
		Platforms:  doc.Common.PlatformAllow,
		SourceType: "sample",
	}}, nil
}

// FilterByTags keeps the cases whose tag set intersects the requested tags.
// An empty tag filter keeps everything.
func FilterByTags(cases []Case, tags []string) []Case {
	if len(tags) == 0 {
		return cases
	}
	var filtered []Case
	for _, c := range cases {
		if c.HasAnyTag(tags) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// BoardsForCase resolves which boards a case should build on: the case's
// declared platforms intersected with the known boards when declared,
// otherwise all known boards, then narrowed by the user's platform filter.
func BoardsForCase(c Case, allBoards, platformFilter []string) []string {
	boards := allBoards
	if len(c.Platforms) > 0 {
		boards = intersect(c.Platforms, allBoards)
	}
	if len(platformFilter) > 0 {
		boards = intersect(boards, platformFilter)
	}
	return boards
}

func intersect(ordered, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		allowedSet[s] = struct{}{}
	}
	var out []string
	for _, s := range ordered {
		if _, ok := allowedSet[s]; ok {
			out = append(out, s)
		}
	}
	return out
}
