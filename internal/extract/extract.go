// Package extract pulls listing data out of a rendered results page.
//
// Both modes use a single chromedp.Evaluate round-trip: the page-side script
// gathers raw selector text and the Go side does all shaping, so one
// evaluation covers any number of listing elements.
package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/chromedp/chromedp"
)

// Train categories derived from the leading letter of the train number.
const (
	CategoryHighSpeed    = "高铁"
	CategoryEMU          = "动车"
	CategoryConventional = "普通列车"
)

// Fare is one bookable class on a train.
type Fare struct {
	Class        string `json:"class"`
	Price        string `json:"price"`
	Availability string `json:"availability"`
}

// Train is a structured train listing.
type Train struct {
	Number        string `json:"number"`
	Category      string `json:"category"`
	DepartTime    string `json:"departTime"`
	DepartStation string `json:"departStation"`
	ArriveTime    string `json:"arriveTime"`
	ArriveStation string `json:"arriveStation"`
	Duration      string `json:"duration"`
	Fares         []Fare `json:"fares"`
	Tags          string `json:"tags,omitempty"`
}

// rawTrain mirrors what the page-side script returns for one listing card
// before any shaping.
type rawTrain struct {
	Number        string   `json:"number"`
	DepartTime    string   `json:"departTime"`
	DepartStation string   `json:"departStation"`
	ArriveTime    string   `json:"arriveTime"`
	ArriveStation string   `json:"arriveStation"`
	Duration      string   `json:"duration"`
	Price         string   `json:"price"`
	SeatSummary   string   `json:"seatSummary"`
	SeatTexts     []string `json:"seatTexts"`
	Tags          string   `json:"tags"`
}

// flightJS captures the outer markup of every flight listing verbatim.
const flightJS = `
(() => {
	const items = Array.from(document.querySelectorAll('.flight-item, [class*="list-item"]'));
	return items.map(item => item.outerHTML).filter(html => html && html.length > 0);
})()`

// trainJS reads the fixed sub-selector set from every train card.
const trainJS = `
(() => {
	const items = Array.from(document.querySelectorAll('.card-white.list-item'));
	return items.map(item => {
		const text = sel => {
			const el = item.querySelector(sel);
			return el ? el.textContent.trim() : '';
		};
		const seatTexts = Array.from(item.querySelectorAll('.surplus-list li'))
			.map(li => li.textContent.trim())
			.filter(t => t);
		return {
			number: text('.checi'),
			departTime: text('.from .time'),
			departStation: text('.from .station'),
			arriveTime: text('.to .time'),
			arriveStation: text('.to .station'),
			duration: text('.mid .haoshi'),
			price: text('.rbox .price'),
			seatSummary: text('.rbox .surplus-list'),
			seatTexts: seatTexts,
			tags: text('.tag-qiang'),
		};
	});
})()`

// seatEntryRE splits per-class availability text like "二等座：12张".
var seatEntryRE = regexp.MustCompile(`(\S+)：(\S+)`)

// Flights captures flight listings verbatim, preserving the site markup.
// Zero matches is a legitimate empty result, not an error.
func Flights(ctx context.Context) ([]string, error) {
	var fragments []string
	if err := chromedp.Run(ctx, chromedp.Evaluate(flightJS, &fragments)); err != nil {
		return nil, err
	}
	return fragments, nil
}

// Trains extracts structured train listings in DOM order.
func Trains(ctx context.Context) ([]Train, error) {
	var raws []rawTrain
	if err := chromedp.Run(ctx, chromedp.Evaluate(trainJS, &raws)); err != nil {
		return nil, err
	}
	return buildTrains(raws), nil
}

// buildTrains shapes raw card data into Train records, dropping any card
// whose number or departure time is empty.
func buildTrains(raws []rawTrain) []Train {
	trains := make([]Train, 0, len(raws))
	for _, raw := range raws {
		number := trainNumber(raw.Number)
		if number == "" || raw.DepartTime == "" {
			continue
		}
		trains = append(trains, Train{
			Number:        number,
			Category:      CategoryFor(number),
			DepartTime:    raw.DepartTime,
			DepartStation: raw.DepartStation,
			ArriveTime:    raw.ArriveTime,
			ArriveStation: raw.ArriveStation,
			Duration:      raw.Duration,
			Fares:         buildFares(raw.Price, raw.SeatSummary, raw.SeatTexts),
			Tags:          raw.Tags,
		})
	}
	return trains
}

// trainNumber isolates the train number from the card text; the site appends
// extra markers after a space.
func trainNumber(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// CategoryFor derives the train category from the number's leading letter.
func CategoryFor(number string) string {
	switch {
	case number == "":
		return ""
	case strings.HasPrefix(number, "G"):
		return CategoryHighSpeed
	case strings.HasPrefix(number, "D"):
		return CategoryEMU
	default:
		return CategoryConventional
	}
}

// buildFares prefers the per-class availability breakdown; when the card has
// none, a single fare is synthesized from the scraped price.
func buildFares(price, seatSummary string, seatTexts []string) []Fare {
	var fares []Fare
	for _, text := range seatTexts {
		if strings.Contains(text, "暂无余票") {
			continue
		}
		m := seatEntryRE.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		fares = append(fares, Fare{
			Class:        m[1],
			Price:        "¥" + price,
			Availability: m[2],
		})
	}

	if len(fares) == 0 && price != "" {
		availability := seatSummary
		if availability == "" {
			availability = "查询余票"
		}
		fares = append(fares, Fare{
			Class:        "二等座",
			Price:        "¥" + price,
			Availability: availability,
		})
	}
	return fares
}
