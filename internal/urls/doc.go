// Package urls holds the reference links shown in help text and
// troubleshooting tips.
//
// Usage:
//
//	import "github.com/muurk/cantrace/internal/urls"
//
//	fmt.Printf("Log format reference: %s\n", urls.CanUtils)
package urls
