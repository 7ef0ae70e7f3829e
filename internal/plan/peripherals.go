package plan

import "strings"

// capabilityRule maps test-path substrings to the peripheral they imply.
type capabilityRule struct {
	peripheral string
	substrings []string
}

// capabilityRules is the ordered inference table. InferPeripherals walks it
// top to bottom, so the result order is fixed by this declaration and a
// peripheral can appear at most once regardless of how many of its substrings
// match. Changing the order or the substrings changes every generated plan;
// treat this table as part of the plan file format.
var capabilityRules = []capabilityRule{
	{peripheral: "i2c", substrings: []string{"i2c"}},
	{peripheral: "spi", substrings: []string{"spi"}},
	{peripheral: "uart", substrings: []string{"uart", "console", "shell"}},
	{peripheral: "gpio", substrings: []string{"gpio", "blinky"}},
	{peripheral: "can", substrings: []string{"can"}},
	{peripheral: "ethernet", substrings: []string{"net", "ethernet"}},
	{peripheral: "adc", substrings: []string{"adc"}},
	{peripheral: "pwm", substrings: []string{"pwm"}},
}

// InferPeripherals guesses which peripherals a test requires from substrings
// of its lower-cased path. This is a best-effort heuristic, not ground truth:
// a path matching none of the rules yields an empty requirement list, which
// every board trivially satisfies.
func InferPeripherals(testPath string) []string {
	lower := strings.ToLower(testPath)

	peripherals := make([]string, 0, 2)
	for _, rule := range capabilityRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				peripherals = append(peripherals, rule.peripheral)
				break
			}
		}
	}
	return peripherals
}
