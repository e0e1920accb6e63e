// Package history provides the implementation for tracking and persisting
// completed recording downloads.
package history

import (
	"time"

	"github.com/metafates/gache"

	"github.com/zoomgrab-cli/zoomgrab/filesystem"
	"github.com/zoomgrab-cli/zoomgrab/scraper"
	"github.com/zoomgrab-cli/zoomgrab/where"
)

// cacher provides an abstracted, disk-backed registry of download records.
var cacher = gache.New[map[string]*SavedRecording](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of download records from the
// persistent store.
func Get() (map[string]*SavedRecording, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedRecording), nil
	}
	return cached, nil
}

// Save persists a completed download to the history registry. A repeated
// download of the same URL replaces the previous record.
func Save(url, dir string, result *scraper.MediaResult) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedRecording(url, dir, result)
	record.DownloadedAt = time.Now()

	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a specific download record from the history
// registry.
func Remove(recording *SavedRecording) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, recording.encode())
	return cacher.Set(saved)
}
