// Package session persists the authenticated Zoom browser session between
// runs. Cookies are captured after an interactive login, sealed with a
// keyring-held key and written to the cache directory, so later downloads can
// reuse the session without opening a browser.
package session

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/metafates/gache"

	"github.com/zoomgrab-cli/zoomgrab/filesystem"
	"github.com/zoomgrab-cli/zoomgrab/where"
)

// Cookie is a single browser cookie captured from the login session.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires,omitempty"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
}

// snapshot is the on-disk envelope: the cookie list serialized and sealed.
type snapshot struct {
	Sealed   string    `json:"sealed"`
	SavedAt  time.Time `json:"savedAt"`
	Hostname string    `json:"hostname,omitempty"`
}

var cacher = gache.New[*snapshot](
	&gache.Options{
		Path:       where.Cookies(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Save seals the cookie list and persists it, replacing any previous
// snapshot.
func Save(cookies []Cookie) error {
	plaintext, err := json.Marshal(cookies)
	if err != nil {
		return err
	}

	key, err := encryptionKey()
	if err != nil {
		return err
	}

	sealed, err := seal(key, plaintext)
	if err != nil {
		return err
	}

	return cacher.Set(&snapshot{
		Sealed:  sealed,
		SavedAt: time.Now(),
	})
}

// Load returns the persisted cookies. A missing, expired or undecipherable
// snapshot yields an empty list rather than an error, so callers can treat
// "no session" uniformly.
func Load() ([]Cookie, error) {
	data, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || data == nil || data.Sealed == "" {
		return nil, nil
	}

	key, err := encryptionKey()
	if err != nil {
		return nil, err
	}

	plaintext, err := open(key, data.Sealed)
	if err != nil {
		// A rotated or lost key leaves the snapshot unreadable; drop it.
		_ = Clear()
		return nil, nil
	}

	var cookies []Cookie
	if err := json.Unmarshal(plaintext, &cookies); err != nil {
		return nil, err
	}

	return cookies, nil
}

// Clear removes the persisted snapshot and the keyring entry protecting it.
func Clear() error {
	if err := cacher.Set(nil); err != nil {
		return err
	}
	return deleteEncryptionKey()
}

// IsLoggedIn reports whether the cookie list looks like an authenticated
// Zoom session: at least one httpOnly cookie scoped to a zoom domain.
func IsLoggedIn(cookies []Cookie) bool {
	for _, c := range cookies {
		if c.HTTPOnly && strings.Contains(strings.ToLower(c.Domain), "zoom") {
			return true
		}
	}
	return false
}

// Jar flattens the cookie list into a name-to-value map for attaching to
// plain HTTP requests.
func Jar(cookies []Cookie) map[string]string {
	jar := make(map[string]string, len(cookies))
	for _, c := range cookies {
		jar[c.Name] = c.Value
	}
	return jar
}
