// Package discovery finds GD32 boards and buildable test definitions inside
// a Zephyr source tree.
//
// Boards are discovered by scanning boards/gd for directories carrying a
// board.yml, devicetree source or defconfig. Test cases come from the
// standard Zephyr testcase.yaml and sample.yaml files found under a
// caller-chosen root. Both discovery passes are read-only and deterministic.
package discovery
