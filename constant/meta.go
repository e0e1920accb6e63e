// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Zoomgrab is the canonical application identifier used for filesystem paths and CLI branding.
	Zoomgrab = "zoomgrab"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for page navigation and media requests.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// ZoomWebHost is the absolute base used to resolve relative recording paths.
	ZoomWebHost = "https://www.zoom.us"

	// ZoomReferer is sent with authenticated media and transcript requests.
	ZoomReferer = "https://zoom.us/"

	// ZoomProfileURL is the default navigation target for the interactive login flow.
	ZoomProfileURL = "https://zoom.us/profile"
)

// Build metadata, overridden at link time by the release pipeline.
var (
	Revision = "unknown"
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
)
