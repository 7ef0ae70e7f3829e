// Package matrix loads and queries the GD32 peripheral matrix.
//
// The matrix is a YAML document describing every supported board, the
// peripherals it provides and the test suites declared for it, plus named
// test groups that bundle test paths with a board selection rule:
//
//	boards:
//	  gd32f407v_start:
//	    series: gd32f4xx
//	    arch: arm
//	    peripherals: [gpio, uart, i2c, spi]
//	    test_suites:
//	      basic:
//	        - samples/basic/blinky
//	        - samples/hello_world
//	      drivers:
//	        - tests/drivers/gpio
//
//	test_groups:
//	  essential:
//	    description: Minimal smoke coverage for every board
//	    tests:
//	      - samples/basic/blinky
//	    boards: all
//
//	ci_config:
//	  # opaque, passed through for downstream CI tooling
//
// The loaded Config is immutable. Lookups never mutate state, so a single
// Config may be shared freely between the plan generator and the CLI.
//
// Category order inside test_suites is significant: plan generation walks
// categories in declared order to keep generated plans reproducible, which is
// why TestSuites is an ordered slice rather than a map.
package matrix
