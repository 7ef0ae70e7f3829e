package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GD32BoardsSubdir is where GD32 board definitions live inside a Zephyr tree.
const GD32BoardsSubdir = "boards/gd"

// DiscoverBoards scans the Zephyr tree for GD32 board directories. A
// directory counts as a board when it carries a board.yml, a devicetree
// source or a defconfig. Helper directories such as scripts/ are ignored.
// The result is sorted.
func DiscoverBoards(zephyrBase string) ([]string, error) {
	boardsDir := filepath.Join(zephyrBase, GD32BoardsSubdir)

	dirEntries, err := os.ReadDir(boardsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan %s: %w", boardsDir, err)
	}

	var boards []string
	for _, entry := range dirEntries {
		if !entry.IsDir() || entry.Name() == "scripts" || entry.Name() == "__pycache__" {
			continue
		}
		boardDir := filepath.Join(boardsDir, entry.Name())
		if isBoardDir(boardDir) {
			boards = append(boards, entry.Name())
		}
	}

	sort.Strings(boards)
	return boards, nil
}

func isBoardDir(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "board.yml")); err == nil {
		return true
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".dts") || strings.HasSuffix(name, "_defconfig") {
			return true
		}
	}
	return false
}
