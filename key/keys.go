// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Scraper Timing - these keys bound the interception-driven extraction loop.
const (
	ScraperPollInterval      = "scraper.poll_interval"
	ScraperMaxWait           = "scraper.max_wait"
	ScraperNavigationTimeout = "scraper.navigation_timeout"
)

// Browser Runtime - these keys control the automated Chromium session.
const (
	BrowserHeadless = "browser.headless"
	BrowserBin      = "browser.bin"
)

// Download Behavior - these keys configure authenticated media retrieval.
const (
	DownloadTimeout = "download.timeout"
	DownloadRetries = "download.retries"
)

// History Tracking - these keys configure the persistence of completed downloads.
const (
	HistorySaveOnDownload = "history.save_on_download"
)

// Search Interaction - these keys define the UX of the recording URL prompt.
const (
	SearchShowURLSuggestions = "search.show_url_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Diagnostics - these keys govern persistent logging output.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Command Line Interface - these keys define global CLI behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
