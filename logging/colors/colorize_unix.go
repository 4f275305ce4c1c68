//go:build !windows
// +build !windows

package colors

import "fmt"

// EnableColor is a no-op on non-Windows systems since ANSI escape codes are supported by default.
func EnableColor() {}

// Colorize returns the string representation of s wrapped in the ANSI escape code c.
func Colorize(s any, c Color) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
