package logfields

import (
	"log/slog"
	"strings"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID     = "run_id"
	KeyPath      = "path"
	KeyBuildType = "build_type"
	KeyClean     = "clean"
	KeySimTrace  = "sim_trace"
	KeyConsole   = "console_print"
	KeyTool      = "tool"
	KeyArgs      = "args"
	KeyCommand   = "command"
	KeyAction    = "action"
	KeyError     = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr { return slog.String(KeyRunID, id) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func BuildType(bt string) slog.Attr { return slog.String(KeyBuildType, bt) }
func Clean(b bool) slog.Attr { return slog.Bool(KeyClean, b) }
func SimTrace(b bool) slog.Attr { return slog.Bool(KeySimTrace, b) }
func ConsolePrint(b bool) slog.Attr { return slog.Bool(KeyConsole, b) }
func Tool(name string) slog.Attr { return slog.String(KeyTool, name) }
func Args(args []string) slog.Attr { return slog.String(KeyArgs, strings.Join(args, " ")) }
func Command(line string) slog.Attr { return slog.String(KeyCommand, line) }
func Action(a string) slog.Attr { return slog.String(KeyAction, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
