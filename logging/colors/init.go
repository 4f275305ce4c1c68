package colors

// init ensures ANSI coloring is available before any console output is written. Unix terminals support ANSI
// escape codes natively while Windows requires a kernel call to check for enablement.
func init() {
	EnableColor()
}
