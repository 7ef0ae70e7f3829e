package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDiscoverBoards(t *testing.T) {
	base := t.TempDir()
	gd := filepath.Join(base, "boards", "gd")

	writeFile(t, filepath.Join(gd, "gd32f407v_start", "board.yml"), "name: gd32f407v_start\n")
	writeFile(t, filepath.Join(gd, "gd32e507z_eval", "gd32e507z_eval.dts"), "/ {};\n")
	writeFile(t, filepath.Join(gd, "gd32l233r_eval", "gd32l233r_eval_defconfig"), "CONFIG_SOC=y\n")
	// Not boards: helper script dir and a dir without any marker.
	writeFile(t, filepath.Join(gd, "scripts", "board.yml"), "x\n")
	require.NoError(t, os.MkdirAll(filepath.Join(gd, "empty_dir"), 0755))

	boards, err := DiscoverBoards(base)
	require.NoError(t, err)
	assert.Equal(t, []string{"gd32e507z_eval", "gd32f407v_start", "gd32l233r_eval"}, boards)
}

func TestDiscoverBoardsMissingTree(t *testing.T) {
	boards, err := DiscoverBoards(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, boards)
}

func TestDiscoverCasesTestcaseYAML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "kernel", "common", "testcase.yaml"), `
tests:
  kernel.common:
    tags: [kernel]
  kernel.common.misra:
    tags: [kernel, misra]
    platform_allow: [gd32f407v_start]
`)

	cases, err := DiscoverCases(root)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	// Declaration order is preserved.
	assert.Equal(t, "kernel.common", cases[0].Name)
	assert.Equal(t, filepath.Join(root, "kernel", "common"), cases[0].Path)
	assert.Equal(t, []string{"kernel"}, cases[0].Tags)
	assert.Empty(t, cases[0].Platforms)
	assert.Equal(t, "testcase", cases[0].SourceType)

	assert.Equal(t, "kernel.common.misra", cases[1].Name)
	assert.Equal(t, []string{"gd32f407v_start"}, cases[1].Platforms)
}

func TestDiscoverCasesRelativePath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "suite", "testcase.yaml"), `
tests:
  drivers.gpio:
    path: ../gpio_basic
`)

	cases, err := DiscoverCases(root)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, filepath.Join(root, "gpio_basic"), cases[0].Path)
}

func TestDiscoverCasesSampleYAML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "basic", "blinky", "sample.yaml"), `
name: blinky
common:
  tags: [gpio, basic]
  platform_allow: [gd32f407v_start, gd32e507z_eval]
`)
	writeFile(t, filepath.Join(root, "hello", "sample.yaml"), `
common:
  tags: [intro]
`)

	cases, err := DiscoverCases(root)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "blinky", cases[0].Name)
	assert.Equal(t, filepath.Join(root, "basic", "blinky"), cases[0].Path)
	assert.Equal(t, []string{"gd32f407v_start", "gd32e507z_eval"}, cases[0].Platforms)
	assert.Equal(t, "sample", cases[0].SourceType)

	// Name falls back to the sample's directory.
	assert.Equal(t, "hello", cases[1].Name)
}

func TestDiscoverCasesSkipsUnparseable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad", "testcase.yaml"), "tests: [broken: mapping\n")
	writeFile(t, filepath.Join(root, "good", "sample.yaml"), "name: ok\n")

	cases, err := DiscoverCases(root)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "ok", cases[0].Name)
}

func TestFilterByTags(t *testing.T) {
	cases := []Case{
		{Name: "a", Tags: []string{"kernel"}},
		{Name: "b", Tags: []string{"drivers", "gpio"}},
		{Name: "c"},
	}

	assert.Len(t, FilterByTags(cases, nil), 3)

	filtered := FilterByTags(cases, []string{"gpio", "net"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "b", filtered[0].Name)

	assert.Empty(t, FilterByTags(cases, []string{"bluetooth"}))
}

func TestBoardsForCase(t *testing.T) {
	all := []string{"gd32e507z_eval", "gd32f407v_start", "gd32l233r_eval"}

	// No declared platforms: every known board.
	assert.Equal(t, all, BoardsForCase(Case{}, all, nil))

	// Declared platforms are intersected with known boards.
	c := Case{Platforms: []string{"gd32f407v_start", "not_a_gd32_board"}}
	assert.Equal(t, []string{"gd32f407v_start"}, BoardsForCase(c, all, nil))

	// User filter narrows further.
	assert.Equal(t, []string{"gd32l233r_eval"},
		BoardsForCase(Case{}, all, []string{"gd32l233r_eval"}))
	assert.Empty(t, BoardsForCase(c, all, []string{"gd32l233r_eval"}))
}
