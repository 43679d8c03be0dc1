// Package ui provides terminal UI components for can-tracetool.
//
// This package uses Lipgloss to render polished terminal output and Bubble
// Tea for the interactive frame browser. Apart from the browser, components
// follow a "render once and exit" pattern.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - Result: success/warning/failure boxes with details or troubleshooting
//   - RatioBar: static bar showing the share of lines that decoded
//   - BrowserModel: scrollable table of decoded frames (view command)
//
// Commands print through a Printer so output can be redirected in tests:
//
//	p := ui.NewPrinter(cmd.OutOrStdout())
//	p.PrintHeader("Trace Statistics", "can-tracetool stats",
//	    ui.Param{Key: "File", Value: path})
//	p.PrintSuccess("Trace classified",
//	    ui.Param{Key: "Valid", Value: "2"})
//
// # Logging Integration
//
// zap logging is silent unless CANTRACE_LOG_LEVEL or --log-level is set,
// and writes to stderr, so the curated output here stays clean.
package ui
