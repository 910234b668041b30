// Package ansi holds the ANSI escape codes used for terminal output.
// Styled output in cmd goes through these constants rather than inline
// escape strings.
package ansi

// SGR (Select Graphic Rendition) codes.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Yellow = "\033[33m"
	Green  = "\033[32m"
	Red    = "\033[31m"
	Cyan   = "\033[36m"
)
