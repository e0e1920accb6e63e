package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/viper"

	"github.com/zoomgrab-cli/zoomgrab/browser"
	"github.com/zoomgrab-cli/zoomgrab/icon"
	"github.com/zoomgrab-cli/zoomgrab/key"
	"github.com/zoomgrab-cli/zoomgrab/scraper"
	"github.com/zoomgrab-cli/zoomgrab/session"
	"github.com/zoomgrab-cli/zoomgrab/util"
)

var errLoginFailed = errors.New("the interactive login did not produce a usable session")

// ensureLoggedIn returns a valid saved session, running the interactive
// login flow first when none exists.
func ensureLoggedIn() ([]session.Cookie, error) {
	cookies, err := session.Load()
	if err != nil {
		return nil, err
	}
	if session.IsLoggedIn(cookies) {
		return cookies, nil
	}

	fmt.Printf("%s No saved session, starting login\n", icon.Get(icon.Lock))
	if err := performLogin(); err != nil {
		return nil, err
	}

	cookies, err = session.Load()
	if err != nil {
		return nil, err
	}
	if !session.IsLoggedIn(cookies) {
		return nil, errLoginFailed
	}
	return cookies, nil
}

// extract drives a full extraction pass against the recording page at url,
// reusing the saved login session. The returned result may be partially
// filled; the caller decides what is fatal.
func extract(url string) (*scraper.MediaResult, []session.Cookie, error) {
	cookies, err := ensureLoggedIn()
	if err != nil {
		return nil, nil, err
	}

	b, err := browser.Launch(viper.GetBool(key.BrowserHeadless))
	if err != nil {
		return nil, nil, err
	}
	defer util.Ignore(b.Close)

	if err := b.SetCookies(cookies); err != nil {
		return nil, nil, err
	}

	page, err := b.NewPage()
	if err != nil {
		return nil, nil, err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	done := make(chan struct{})
	go func() {
		<-interrupt
		close(done)
	}()

	s := scraper.NewSession()
	s.PollInterval = time.Duration(viper.GetInt(key.ScraperPollInterval)) * time.Second
	s.MaxWait = time.Duration(viper.GetInt(key.ScraperMaxWait)) * time.Second
	s.NavTimeout = time.Duration(viper.GetInt(key.ScraperNavigationTimeout)) * time.Second
	s.Done = done
	s.Note = func(format string, args ...any) {
		fmt.Printf("%s %s\n", icon.Get(icon.Progress), fmt.Sprintf(format, args...))
	}
	s.Classifier.Note = s.Note

	result := s.Extract(page, url)
	return result, cookies, nil
}
