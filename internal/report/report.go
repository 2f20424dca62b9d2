// Package report renders extracted travel listings into standalone HTML
// documents and writes them under the user's travel folder.
//
// The flight report embeds the captured listing markup verbatim; the train
// report is built from structured rows and carries its own card/table views.
package report

import (
	"html/template"
	"strings"
	"time"

	"travelinfo/internal/extract"
)

// Renderer turns extraction results into self-contained HTML pages.
// Now is replaceable so rendering is deterministic under test.
type Renderer struct {
	Now func() time.Time
}

// NewRenderer returns a renderer stamping documents with the wall clock.
func NewRenderer() *Renderer {
	return &Renderer{Now: time.Now}
}

func (r *Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

type flightPage struct {
	From      string
	To        string
	Date      string
	Count     int
	Fragments []template.HTML
	Generated string
}

type trainPage struct {
	From      string
	To        string
	Date      string
	Count     int
	Trains    []extract.Train
	Generated string
}

// fareSummary joins a train's fares into the single table cell the
// table view shows, one "class: price(availability)" entry per fare.
func fareSummary(fares []extract.Fare) string {
	parts := make([]string, 0, len(fares))
	for _, f := range fares {
		parts = append(parts, f.Class+": "+f.Price+"("+f.Availability+")")
	}
	return strings.Join(parts, ", ")
}

var trainFuncs = template.FuncMap{"fareSummary": fareSummary}

var (
	flightTmpl = template.Must(template.New("flights").Parse(flightTemplate))
	trainTmpl  = template.Must(template.New("trains").Funcs(trainFuncs).Parse(trainTemplate))
)

// Flights renders the flight report. The fragments are listing markup
// captured verbatim from the results page and are embedded untouched.
func (r *Renderer) Flights(from, to, date string, fragments []string) (string, error) {
	page := flightPage{
		From:      from,
		To:        to,
		Date:      date,
		Count:     len(fragments),
		Generated: r.now().Format("2006/1/2 15:04:05"),
	}
	page.Fragments = make([]template.HTML, len(fragments))
	for i, f := range fragments {
		page.Fragments[i] = template.HTML(f)
	}
	var b strings.Builder
	if err := flightTmpl.Execute(&b, page); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Trains renders the train report with both card and table views.
func (r *Renderer) Trains(from, to, date string, trains []extract.Train) (string, error) {
	page := trainPage{
		From:      from,
		To:        to,
		Date:      date,
		Count:     len(trains),
		Trains:    trains,
		Generated: r.now().Format("2006/1/2 15:04:05"),
	}
	var b strings.Builder
	if err := trainTmpl.Execute(&b, page); err != nil {
		return "", err
	}
	return b.String(), nil
}
