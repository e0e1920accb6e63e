// Package util provides a collection of domain-agnostic utility functions and cross-platform helpers.
package util

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/zoomgrab-cli/zoomgrab/filesystem"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// SanitizeFilename normalizes a string into a safe, cross-platform filesystem-compliant filename.
func SanitizeFilename(filename string) string {
	// Replace invalid characters with underscore
	invalid := regexp.MustCompile(`[\\/<>:;"'|?!*{}#%&^+,~\s]`)
	filename = invalid.ReplaceAllString(filename, "_")

	// Collapse multiple underscores
	collapse := regexp.MustCompile(`__+`)
	filename = collapse.ReplaceAllString(filename, "_")

	// Trim leading/trailing separators
	trim := regexp.MustCompile(`^[_\-.]+|[_\-.]+$`)
	filename = trim.ReplaceAllString(filename, "")

	return filename
}

// SanitizeTitle normalizes recording topic or page title text into a
// filesystem-friendly output name. Path separators and colons become dashes,
// spaces become underscores.
func SanitizeTitle(raw string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		" ", "_",
	)
	return strings.TrimSpace(replacer.Replace(strings.TrimSpace(raw)))
}

// Truncate constrains a string to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// Quantify returns a pluralized string representation of a count and its associated labels.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Capitalize transforms the first rune of a string to its uppercase equivalent.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TerminalSize retrieves the current character dimensions of the terminal window.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// PrintErasable prints an ephemeral message to the terminal and returns a closure to clear it.
func PrintErasable(msg string) (eraser func()) {
	fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Ignore executes a function and explicitly discards its error return value.
func Ignore(f func() error) {
	_ = f()
}

// Max returns the maximum value among arguments.
func Max[T constraints.Ordered](items ...T) (max T) {
	if len(items) == 0 {
		return
	}
	max = items[0]
	for _, item := range items[1:] {
		if item > max {
			max = item
		}
	}
	return
}

// Min returns the minimum value among arguments.
func Min[T constraints.Ordered](items ...T) (min T) {
	if len(items) == 0 {
		return
	}
	min = items[0]
	for _, item := range items[1:] {
		if item < min {
			min = item
		}
	}
	return
}

// Delete recursively removes a file or directory using the virtualized filesystem API.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
