// Package cmake computes the definition arguments for the simulator build and
// invokes the configuration tool.
package cmake

import "github.com/cachesim/simbuild/internal/options"

// Definition names understood by the simulator's CMakeLists and sources.
const (
	DefBuildType    = "CMAKE_C_BUILD_TYPE"
	DefSimTrace     = "SIM_TRACE"
	DefConsolePrint = "CONSOLE_PRINT"
)

// Define renders a definition argument of the form -D<NAME>=<value>.
func Define(name, value string) string {
	return "-D" + name + "=" + value
}

// Definitions computes the definition arguments for opts, in emission order:
// build type, trace enable, then console print.
// SIM_TRACE is always present with 0 or 1; CONSOLE_PRINT only appears when enabled.
func Definitions(opts options.BuildOptions) []string {
	defs := make([]string, 0, 3)

	if opts.IsRelease() {
		defs = append(defs, Define(DefBuildType, string(options.BuildRelease)))
	} else {
		defs = append(defs, Define(DefBuildType, string(options.BuildDebug)))
	}

	defs = append(defs, Define(DefSimTrace, boolValue(opts.SimTrace)))

	if opts.ConsolePrint {
		defs = append(defs, Define(DefConsolePrint, "1"))
	}

	return defs
}

func boolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
