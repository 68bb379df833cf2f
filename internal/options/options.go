// Package options holds the per-invocation build options derived from the
// command line.
package options

// BuildType selects the optimization/debug-info profile handed to the toolchain.
type BuildType string

const (
	BuildDebug   BuildType = "Debug"
	BuildRelease BuildType = "Release"
)

// InvalidBuildTypeMessage is printed when an unrecognized build type is requested.
const InvalidBuildTypeMessage = "Invalid build type specified, defaulting to Debug"

// ParseBuildType maps raw input onto a BuildType. Matching is exact; anything
// other than "Debug" or "Release" yields BuildDebug and ok=false.
func ParseBuildType(raw string) (bt BuildType, ok bool) {
	switch BuildType(raw) {
	case BuildRelease:
		return BuildRelease, true
	case BuildDebug:
		return BuildDebug, true
	default:
		return BuildDebug, false
	}
}

// BuildOptions is constructed fresh per invocation and discarded after use.
type BuildOptions struct {
	BuildType    BuildType
	Clean        bool
	SimTrace     bool
	ConsolePrint bool
}

// New builds BuildOptions from raw flag values. fellBack reports that the
// build type was not recognized and Debug was substituted.
func New(buildType string, clean, simTrace, consolePrint bool) (opts BuildOptions, fellBack bool) {
	bt, ok := ParseBuildType(buildType)
	return BuildOptions{
		BuildType:    bt,
		Clean:        clean,
		SimTrace:     simTrace,
		ConsolePrint: consolePrint,
	}, !ok
}

// IsRelease reports whether the Release profile was selected.
func (o BuildOptions) IsRelease() bool {
	return o.BuildType == BuildRelease
}
