// Package travel runs complete schedule queries: one browser session per
// query, driven through a linear navigate/behave/recover/extract/report
// pipeline.
package travel

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"travelinfo/internal/airports"
	"travelinfo/internal/browser"
	"travelinfo/internal/config"
	"travelinfo/internal/extract"
	"travelinfo/internal/report"
)

// Post-load settle delays. The listing pages keep loading results well
// after the document is ready.
const (
	flightSettle = 10 * time.Second
	trainSettle  = 8 * time.Second
)

// Result is the outcome of one schedule query.
type Result struct {
	From           string
	To             string
	Date           string
	Count          int
	ReportPath     string
	ScreenshotPath string

	// Obstruction names an obstacle that persisted through recovery, or
	// "none". Results extracted under a persisting obstruction may be
	// partial.
	Obstruction string

	// Fragments holds verbatim flight listing markup; Trains holds
	// structured train rows. Only one is populated per query.
	Fragments []string
	Trains    []extract.Train
}

// Client runs schedule queries against the booking site.
type Client struct {
	index    *airports.Index
	renderer *report.Renderer
	writer   *report.Writer
	logger   *log.Logger

	// settle overrides shorten the fixed post-load waits in tests.
	FlightSettle time.Duration
	TrainSettle  time.Duration
}

// NewClient wires a query client. The writer decides where reports land.
func NewClient(index *airports.Index, writer *report.Writer, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		index:        index,
		renderer:     report.NewRenderer(),
		writer:       writer,
		logger:       logger.With("component", "travel"),
		FlightSettle: flightSettle,
		TrainSettle:  trainSettle,
	}
}

// ResolveAirport maps a city name to its airport code. Unknown cities fall
// back to the lowercased input, which lets callers pass codes directly.
func (c *Client) ResolveAirport(city string) string {
	if code, ok := c.index.Lookup(city); ok {
		return code
	}
	return strings.ToLower(strings.TrimSpace(city))
}

// FlightURL builds the one-way flight listing URL for resolved codes.
func FlightURL(fromCode, toCode, date string) string {
	return fmt.Sprintf(
		"https://flights.ctrip.com/online/list/oneway-%s-%s?depdate=%s&cabin=y_s&adult=1&child=0&infant=0",
		fromCode, toCode, date)
}

// TrainURL builds the train listing URL. Station names go in query-escaped.
func TrainURL(from, to, date string) string {
	return fmt.Sprintf(
		"https://trains.ctrip.com/webapp/train/list?ticketType=0&dStation=%s&aStation=%s&dDate=%s&rDate=&trainsType=&hubCityName=&highSpeedOnly=0",
		url.QueryEscape(from), url.QueryEscape(to), date)
}

// FlightInfo queries one-way flights between two cities on a date and writes
// an HTML report embedding every captured listing.
func (c *Client) FlightInfo(ctx context.Context, from, to, date string, opts config.Options) (*Result, error) {
	fromCode := c.ResolveAirport(from)
	toCode := c.ResolveAirport(to)
	c.logger.Debug("flight query", "from", from, "fromCode", fromCode, "to", to, "toCode", toCode, "date", date)

	sess, err := browser.Open(ctx, opts, c.logger)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	obstruction, err := c.loadListing(sess, FlightURL(fromCode, toCode, date), c.FlightSettle,
		browser.CaptchaDetector())
	if err != nil {
		return nil, err
	}

	fragments, err := extract.Flights(sess.Context())
	if err != nil {
		return nil, fmt.Errorf("extracting flights: %w", err)
	}
	c.logger.Debug("flights extracted", "count", len(fragments))

	html, err := c.renderer.Flights(from, to, date, fragments)
	if err != nil {
		return nil, fmt.Errorf("rendering flight report: %w", err)
	}

	base := report.FlightBase(fromCode, toCode, date)
	res := &Result{
		From:        fromCode,
		To:          toCode,
		Date:        date,
		Count:       len(fragments),
		Obstruction: obstruction.String(),
		Fragments:   fragments,
	}
	if res.ReportPath, err = c.writer.WriteHTML(base, html); err != nil {
		return nil, err
	}
	res.ScreenshotPath = c.screenshot(sess, base, opts)
	return res, nil
}

// TrainInfo queries trains between two cities on a date and writes an HTML
// report with card and table views.
func (c *Client) TrainInfo(ctx context.Context, from, to, date string, opts config.Options) (*Result, error) {
	c.logger.Debug("train query", "from", from, "to", to, "date", date)

	sess, err := browser.Open(ctx, opts, c.logger)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	// Login overlays are common on the train listing, so that detector
	// runs ahead of the captcha one.
	obstruction, err := c.loadListing(sess, TrainURL(from, to, date), c.TrainSettle,
		browser.LoginDetector(), browser.CaptchaDetector())
	if err != nil {
		return nil, err
	}

	trains, err := extract.Trains(sess.Context())
	if err != nil {
		return nil, fmt.Errorf("extracting trains: %w", err)
	}
	c.logger.Debug("trains extracted", "count", len(trains))

	html, err := c.renderer.Trains(from, to, date, trains)
	if err != nil {
		return nil, fmt.Errorf("rendering train report: %w", err)
	}

	base := report.TrainBase(from, to, date)
	res := &Result{
		From:        from,
		To:          to,
		Date:        date,
		Count:       len(trains),
		Obstruction: obstruction.String(),
		Trains:      trains,
	}
	if res.ReportPath, err = c.writer.WriteHTML(base, html); err != nil {
		return nil, err
	}
	res.ScreenshotPath = c.screenshot(sess, base, opts)
	return res, nil
}

// loadListing navigates to a listing page and walks it through the shared
// pre-extraction sequence: behave, settle, recover from obstacles, scroll
// the full result set into the DOM.
func (c *Client) loadListing(sess *browser.Session, pageURL string, settle time.Duration, detectors ...browser.Detector) (browser.Obstruction, error) {
	if err := sess.Navigate(pageURL); err != nil {
		return browser.None, err
	}

	sim := browser.NewSimulator(browser.DefaultProfile(), c.logger)
	sim.Simulate(sess.Context())
	sess.Sleep(settle)

	handler := browser.NewHandler(sess, sim, c.logger, detectors...)
	obstruction := handler.Resolve(sess.Context())

	if err := browser.AutoScroll(sess.Context()); err != nil {
		c.logger.Warn("auto-scroll failed", "err", err)
	}
	return obstruction, nil
}

// screenshot captures the full page when requested. Screenshot failures
// degrade the result, they never fail the query.
func (c *Client) screenshot(sess *browser.Session, base string, opts config.Options) string {
	if !opts.SaveScreenshot {
		return ""
	}
	png, err := sess.FullScreenshot()
	if err != nil {
		c.logger.Warn("screenshot failed", "err", err)
		return ""
	}
	path, err := c.writer.WritePNG(base, png)
	if err != nil {
		c.logger.Warn("screenshot write failed", "err", err)
		return ""
	}
	return path
}
