// Package browser owns the Chrome session used by one query: launch and
// teardown, fingerprint evasion, human-behavior simulation and obstacle
// recovery.
package browser

import (
	"context"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"travelinfo/internal/config"
)

// stealthJS is installed on every new document before page scripts run.
//
//go:embed stealth.js
var stealthJS string

const (
	viewportWidth  = 1920
	viewportHeight = 1080

	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	acceptLanguage = "zh-CN,zh;q=0.9,en-US;q=0.8,en;q=0.7"
)

// SessionError means the browser session could not be created or configured.
type SessionError struct {
	Op  string
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("browser session %s: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// NavigationError means a page load or reload did not complete in time.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// Session is one exclusive browser+page handle, owned by a single query and
// closed unconditionally when the query ends.
type Session struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	logger  *log.Logger
	once    sync.Once
}

// Open launches Chrome with anti-fingerprinting configuration and returns a
// ready session. The launch itself is bounded by opts.Timeout.
func Open(parent context.Context, opts config.Options, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("component", "browser")

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-accelerated-2d-canvas", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-zygote", true),
		chromedp.DisableGPU,
		chromedp.Flag("disable-web-security", true),
		chromedp.Flag("disable-features", "IsolateOrigins,site-per-process"),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.IgnoreCertErrors,
		chromedp.WindowSize(viewportWidth, viewportHeight),
		chromedp.UserAgent(desktopUserAgent),
		chromedp.Flag("lang", "zh-CN"),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:     tabCtx,
		timeout: opts.Timeout,
		logger:  logger,
		cancel: func() {
			cancelTab()
			cancelAlloc()
		},
	}

	launchCtx, cancel := context.WithTimeout(tabCtx, opts.Timeout)
	defer cancel()

	// The first Run starts the browser process; the rest configures the page
	// before any navigation so the patches precede all page scripts.
	err := chromedp.Run(launchCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetUserAgentOverride(desktopUserAgent).
				WithAcceptLanguage(acceptLanguage).
				WithPlatform("Win32").
				Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return cdpbrowser.GrantPermissions([]cdpbrowser.PermissionType{
				cdpbrowser.PermissionTypeGeolocation,
			}).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthJS).Do(ctx)
			return err
		}),
	)
	if err != nil {
		s.Close()
		return nil, &SessionError{Op: "launch", Err: err}
	}

	logger.Debug("session opened", "headless", opts.Headless)
	return s, nil
}

// Context returns the tab context used to run chromedp actions.
func (s *Session) Context() context.Context { return s.ctx }

// Close tears the session down. It is idempotent and never fails the caller;
// teardown problems are only logged.
func (s *Session) Close() {
	s.once.Do(func() {
		s.cancel()
		s.logger.Debug("session closed")
	})
}

// Navigate loads a URL and waits for the document body, bounded by the
// session timeout.
func (s *Session) Navigate(url string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		return &NavigationError{URL: url, Err: err}
	}
	return nil
}

// Reload reloads the current page, bounded by the session timeout.
func (s *Session) Reload() error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Reload(),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		return &NavigationError{URL: "(reload)", Err: err}
	}
	return nil
}

// FullScreenshot captures the entire scrollable page as PNG.
func (s *Session) FullScreenshot() ([]byte, error) {
	var png []byte
	if err := chromedp.Run(s.ctx, chromedp.FullScreenshot(&png, 100)); err != nil {
		return nil, err
	}
	return png, nil
}

// Sleep waits without blocking the tab context's event loop handling.
func (s *Session) Sleep(d time.Duration) {
	_ = chromedp.Run(s.ctx, chromedp.Sleep(d))
}
