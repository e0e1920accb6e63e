// Package browser drives a Chromium instance through the DevTools protocol.
// It owns the persistent user profile, translates network events into the
// exchanges the scraper consumes, and moves cookies between the live browser
// and the saved session.
package browser

import (
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/spf13/viper"

	"github.com/zoomgrab-cli/zoomgrab/constant"
	"github.com/zoomgrab-cli/zoomgrab/key"
	"github.com/zoomgrab-cli/zoomgrab/log"
	"github.com/zoomgrab-cli/zoomgrab/scraper"
	"github.com/zoomgrab-cli/zoomgrab/session"
	"github.com/zoomgrab-cli/zoomgrab/where"
)

// Browser wraps a launched Chromium with its persistent profile.
type Browser struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// Launch starts Chromium with the zoomgrab profile directory. Headless mode
// and a custom binary come from configuration; login always needs a headed
// browser, which the caller controls via the headless argument.
func Launch(headless bool) (*Browser, error) {
	l := launcher.New().
		Headless(headless).
		UserDataDir(where.UserData()).
		Set("disable-blink-features", "AutomationControlled")

	if bin := viper.GetString(key.BrowserBin); bin != "" {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, err
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, err
	}

	return &Browser{launcher: l, browser: b}, nil
}

// NewPage opens a blank tab ready for navigation.
func (b *Browser) NewPage() (*Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, err
	}

	if err := (proto.NetworkEnable{}).Call(page); err != nil {
		return nil, err
	}

	// Headless builds advertise HeadlessChrome otherwise, which Zoom's
	// recording pages treat as a bot.
	err = (proto.NetworkSetUserAgentOverride{
		UserAgent:      constant.UserAgent,
		AcceptLanguage: "en-US",
	}).Call(page)
	if err != nil {
		return nil, err
	}

	return &Page{page: page}, nil
}

// Cookies exports all cookies from the running browser.
func (b *Browser) Cookies() ([]session.Cookie, error) {
	raw, err := b.browser.GetCookies()
	if err != nil {
		return nil, err
	}

	cookies := make([]session.Cookie, 0, len(raw))
	for _, c := range raw {
		cookies = append(cookies, session.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  float64(c.Expires),
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
		})
	}

	return cookies, nil
}

// SetCookies imports a saved session into the running browser.
func (b *Browser) SetCookies(cookies []session.Cookie) error {
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		params = append(params, &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  proto.TimeSinceEpoch(c.Expires),
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
		})
	}

	return b.browser.SetCookies(params)
}

// Close shuts the browser down and releases the launcher.
func (b *Browser) Close() error {
	err := b.browser.Close()
	b.launcher.Cleanup()
	return err
}

// Page adapts a rod page to the interface the extraction session drives.
type Page struct {
	page *rod.Page
}

// Navigate loads url and waits for the DOM to settle, bounded by timeout.
func (p *Page) Navigate(url string, timeout time.Duration) error {
	bounded := p.page.Timeout(timeout)
	if err := bounded.Navigate(url); err != nil {
		return err
	}

	// Recording pages keep streaming media after load; a short stability
	// window is enough to let the player markup appear.
	if err := bounded.WaitDOMStable(time.Second, 0); err != nil {
		log.Debugf("wait for DOM stability: %v", err)
	}

	return nil
}

// OnResponse registers fn for every network response the page observes.
// Bodies are fetched lazily through the protocol, since most responses are
// never inspected beyond their URL.
func (p *Page) OnResponse(fn func(scraper.Exchange)) {
	wait := p.page.EachEvent(func(e *proto.NetworkResponseReceived) {
		requestID := e.RequestID
		fn(scraper.Exchange{
			URL:         e.Response.URL,
			ContentType: e.Response.MIMEType,
			Body: func() (string, error) {
				result, err := proto.NetworkGetResponseBody{RequestID: requestID}.Call(p.page)
				if err != nil {
					return "", err
				}
				return result.Body, nil
			},
		})
	})
	go wait()
}

// QueryFirst returns the first element matching selector, if any.
func (p *Page) QueryFirst(selector string) (scraper.Element, bool) {
	has, el, err := p.page.Has(selector)
	if err != nil || !has {
		return nil, false
	}
	return &element{el: el}, true
}

// Title returns the current document title.
func (p *Page) Title() (string, error) {
	info, err := p.page.Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

// Close closes the tab.
func (p *Page) Close() error {
	return p.page.Close()
}

type element struct {
	el *rod.Element
}

func (e *element) Attribute(name string) (string, bool) {
	value, err := e.el.Attribute(name)
	if err != nil || value == nil {
		return "", false
	}
	return *value, true
}
