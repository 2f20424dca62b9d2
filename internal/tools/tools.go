// Package tools is the text boundary of the module: three operations that
// accept plain parameters and always answer with a human-readable payload.
// Pipeline errors never cross this boundary, they become descriptive text.
package tools

import (
	"context"
	"fmt"
	"strings"

	"travelinfo/internal/airports"
	"travelinfo/internal/config"
	"travelinfo/internal/travel"
)

// trainPreviewRows caps the quick-reference rows in the train payload.
const trainPreviewRows = 5

// Query runs schedule queries. Satisfied by *travel.Client.
type Query interface {
	FlightInfo(ctx context.Context, from, to, date string, opts config.Options) (*travel.Result, error)
	TrainInfo(ctx context.Context, from, to, date string, opts config.Options) (*travel.Result, error)
}

// Params carries one tool invocation. Unset option pointers keep the
// configured defaults.
type Params struct {
	From string
	To   string
	Date string

	Headless       *bool
	SaveScreenshot *bool
	Verbose        *bool
}

func (p Params) options(base config.Options) config.Options {
	o := config.Overrides{
		Headless:       p.Headless,
		SaveScreenshot: p.SaveScreenshot,
		Verbose:        p.Verbose,
	}
	return o.Apply(base)
}

// Service exposes the tool operations.
type Service struct {
	query    Query
	index    *airports.Index
	defaults config.Options
}

// NewService wires the boundary. The defaults are the base every Params
// merge starts from.
func NewService(query Query, index *airports.Index, defaults config.Options) *Service {
	return &Service{query: query, index: index, defaults: defaults}
}

// GetFlightInfo runs a flight query and describes the outcome.
func (s *Service) GetFlightInfo(ctx context.Context, p Params) string {
	res, err := s.query.FlightInfo(ctx, p.From, p.To, p.Date, p.options(s.defaults))
	if err != nil {
		return fmt.Sprintf("获取航班信息失败: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "已为 %s(%s) 到 %s(%s) 于 %s 的航班生成HTML时刻表。\n", p.From, res.From, p.To, res.To, p.Date)
	fmt.Fprintf(&b, "找到 %d 个航班。\n", res.Count)
	fmt.Fprintf(&b, "HTML文件已保存至: %s\n", res.ReportPath)
	b.WriteString(screenshotLine(res.ScreenshotPath))
	fmt.Fprintf(&b, "\n找到 %d 个航班，详细信息请查看生成的HTML文件\n", res.Count)
	b.WriteString("\n完整信息请查看HTML文件。")
	return b.String()
}

// GetTrainInfo runs a train query and describes the outcome, including a
// short preview of the first listed trains.
func (s *Service) GetTrainInfo(ctx context.Context, p Params) string {
	res, err := s.query.TrainInfo(ctx, p.From, p.To, p.Date, p.options(s.defaults))
	if err != nil {
		return fmt.Sprintf("获取火车信息失败: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "已为 %s 到 %s 于 %s 的火车生成HTML时刻表。\n", p.From, p.To, p.Date)
	fmt.Fprintf(&b, "找到 %d 个车次。\n", res.Count)
	fmt.Fprintf(&b, "HTML文件已保存至: %s\n", res.ReportPath)
	b.WriteString(screenshotLine(res.ScreenshotPath))
	b.WriteString("\n车次预览:\n")
	b.WriteString(trainPreview(res))
	b.WriteString("\n\n完整信息请查看HTML文件。")
	return b.String()
}

// LookupAirportCode answers a city-to-code lookup. A miss is an answer,
// not an error.
func (s *Service) LookupAirportCode(city string) string {
	if code, ok := s.index.Lookup(city); ok {
		return fmt.Sprintf("%s 的机场代码是: %s", city, code)
	}
	return fmt.Sprintf("未在本地找到 %s 的机场代码，可以让AI想办法找到", city)
}

func screenshotLine(path string) string {
	if path == "" {
		return "未保存截图\n"
	}
	return fmt.Sprintf("截图备份已保存至: %s\n", path)
}

func trainPreview(res *travel.Result) string {
	trains := res.Trains
	if len(trains) > trainPreviewRows {
		trains = trains[:trainPreviewRows]
	}
	rows := make([]string, 0, len(trains))
	for _, tr := range trains {
		row := fmt.Sprintf("%s: %s(%s)→%s(%s), 历时:%s",
			tr.Number, tr.DepartTime, tr.DepartStation, tr.ArriveTime, tr.ArriveStation, tr.Duration)
		if len(tr.Fares) > 0 {
			row += fmt.Sprintf(", 价格%s", tr.Fares[0].Price)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}
