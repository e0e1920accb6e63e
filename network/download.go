package network

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/viper"

	"github.com/zoomgrab-cli/zoomgrab/constant"
	"github.com/zoomgrab-cli/zoomgrab/filesystem"
	"github.com/zoomgrab-cli/zoomgrab/key"
	"github.com/zoomgrab-cli/zoomgrab/log"
)

// ProgressFunc receives the number of bytes written so far and the total
// expected size. Total is -1 when the server does not announce a length.
type ProgressFunc func(written, total int64)

// newMediaRequest builds a GET request carrying the browser identity and the
// authenticated session cookies. Zoom's CDN returns 403 without the Referer.
func newMediaRequest(url string, cookies map[string]string) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Referer", constant.ZoomReferer)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	return req, nil
}

func retryPolicy() backoff.BackOff {
	retries := viper.GetInt(key.DownloadRetries)
	if retries < 0 {
		retries = 0
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	return backoff.WithMaxRetries(b, uint64(retries))
}

func downloadTimeout() time.Duration {
	seconds := viper.GetInt(key.DownloadTimeout)
	if seconds <= 0 {
		seconds = 120
	}
	return time.Duration(seconds) * time.Second
}

// DownloadFile streams url into path on the active filesystem, reporting
// progress through onProgress when it is non-nil. Failed attempts are
// retried with exponential backoff; a partially written file is truncated
// on each attempt.
func DownloadFile(url, path string, cookies map[string]string, onProgress ProgressFunc) error {
	attempt := 0

	operation := func() error {
		attempt++
		if attempt > 1 {
			log.Warnf("retrying download (attempt %d): %s", attempt, url)
		}

		err := downloadOnce(url, path, cookies, onProgress)
		if err != nil {
			log.Errorf("download attempt %d failed: %v", attempt, err)
		}
		return err
	}

	return backoff.Retry(operation, retryPolicy())
}

func downloadOnce(url, path string, cookies map[string]string, onProgress ProgressFunc) error {
	req, err := newMediaRequest(url, cookies)
	if err != nil {
		return backoff.Permanent(err)
	}

	resp, err := doMedia(req, downloadTimeout())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return backoff.Permanent(fmt.Errorf("access denied (%s): the session may have expired, run login again", resp.Status))
	default:
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	file, err := filesystem.API().Create(path)
	if err != nil {
		return backoff.Permanent(err)
	}
	defer file.Close()

	total := resp.ContentLength
	var written int64

	buf := make([]byte, 256<<10)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := file.Write(buf[:n]); writeErr != nil {
				return backoff.Permanent(writeErr)
			}
			written += int64(n)
			if onProgress != nil {
				onProgress(written, total)
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	if total > 0 && written != total {
		return fmt.Errorf("incomplete body: got %d of %d bytes", written, total)
	}

	return nil
}

// FetchText retrieves url as an in-memory string, for small documents such
// as caption files. It uses the same identity and retry policy as
// DownloadFile.
func FetchText(url string, cookies map[string]string) (string, error) {
	var body string

	operation := func() error {
		req, err := newMediaRequest(url, cookies)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := doMedia(req, downloadTimeout())
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err = fmt.Errorf("unexpected status %s", resp.Status)
			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return backoff.Permanent(err)
			}
			return err
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		body = string(raw)
		return nil
	}

	if err := backoff.Retry(operation, retryPolicy()); err != nil {
		return "", err
	}

	return body, nil
}
