package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelinfo/internal/airports"
	"travelinfo/internal/config"
	"travelinfo/internal/extract"
	"travelinfo/internal/travel"
)

// fakeQuery records the options each call received and returns canned
// results, so the boundary is exercised without a browser.
type fakeQuery struct {
	flightRes *travel.Result
	trainRes  *travel.Result
	err       error

	gotOpts config.Options
}

func (f *fakeQuery) FlightInfo(_ context.Context, _, _, _ string, opts config.Options) (*travel.Result, error) {
	f.gotOpts = opts
	return f.flightRes, f.err
}

func (f *fakeQuery) TrainInfo(_ context.Context, _, _, _ string, opts config.Options) (*travel.Result, error) {
	f.gotOpts = opts
	return f.trainRes, f.err
}

func testIndex(t *testing.T) *airports.Index {
	t.Helper()
	dir := t.TempDir()
	codes := map[string]map[string][]string{
		"中国": {"北京": {"PEK"}, "上海": {"SHA"}},
	}
	data, err := json.Marshal(codes)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, airports.DomesticFile), data, 0644))
	return airports.NewIndex(dir, log.Default())
}

func boolPtr(b bool) *bool { return &b }

func TestGetFlightInfoPayload(t *testing.T) {
	fq := &fakeQuery{flightRes: &travel.Result{
		From:           "PEK",
		To:             "SHA",
		Date:           "2026-04-01",
		Count:          12,
		ReportPath:     "/tmp/out/flights-PEK-SHA-2026-04-01.html",
		ScreenshotPath: "/tmp/out/flights-PEK-SHA-2026-04-01.png",
	}}
	s := NewService(fq, testIndex(t), config.Default())

	got := s.GetFlightInfo(context.Background(), Params{From: "北京", To: "上海", Date: "2026-04-01"})

	assert.Contains(t, got, "已为 北京(PEK) 到 上海(SHA) 于 2026-04-01 的航班生成HTML时刻表。")
	assert.Contains(t, got, "找到 12 个航班。")
	assert.Contains(t, got, "HTML文件已保存至: /tmp/out/flights-PEK-SHA-2026-04-01.html")
	assert.Contains(t, got, "截图备份已保存至: /tmp/out/flights-PEK-SHA-2026-04-01.png")
	assert.Contains(t, got, "完整信息请查看HTML文件。")
}

func TestGetFlightInfoNoScreenshot(t *testing.T) {
	fq := &fakeQuery{flightRes: &travel.Result{From: "PEK", To: "SHA"}}
	s := NewService(fq, testIndex(t), config.Default())

	got := s.GetFlightInfo(context.Background(), Params{From: "北京", To: "上海", Date: "2026-04-01"})

	assert.Contains(t, got, "未保存截图")
	assert.NotContains(t, got, "截图备份已保存至")
}

func TestGetFlightInfoErrorBecomesText(t *testing.T) {
	fq := &fakeQuery{err: errors.New("navigate https://flights.ctrip.com: context deadline exceeded")}
	s := NewService(fq, testIndex(t), config.Default())

	got := s.GetFlightInfo(context.Background(), Params{From: "北京", To: "上海", Date: "2026-04-01"})

	assert.True(t, strings.HasPrefix(got, "获取航班信息失败: "), "payload %q", got)
	assert.Contains(t, got, "deadline exceeded")
}

func TestGetTrainInfoPayloadAndPreview(t *testing.T) {
	trains := make([]extract.Train, 7)
	for i := range trains {
		trains[i] = extract.Train{
			Number:        fmt.Sprintf("G%d", 100+i),
			Category:      extract.CategoryHighSpeed,
			DepartTime:    "08:00",
			DepartStation: "北京南",
			ArriveTime:    "13:00",
			ArriveStation: "上海虹桥",
			Duration:      "5时0分",
			Fares:         []extract.Fare{{Class: "二等座", Price: "¥576", Availability: "有票"}},
		}
	}
	fq := &fakeQuery{trainRes: &travel.Result{
		From:       "北京",
		To:         "上海",
		Date:       "2026-04-01",
		Count:      7,
		ReportPath: "/tmp/out/trains.html",
		Trains:     trains,
	}}
	s := NewService(fq, testIndex(t), config.Default())

	got := s.GetTrainInfo(context.Background(), Params{From: "北京", To: "上海", Date: "2026-04-01"})

	assert.Contains(t, got, "已为 北京 到 上海 于 2026-04-01 的火车生成HTML时刻表。")
	assert.Contains(t, got, "找到 7 个车次。")
	assert.Contains(t, got, "G100: 08:00(北京南)→13:00(上海虹桥), 历时:5时0分, 价格¥576")
	assert.Contains(t, got, "G104")
	// the preview is capped at five rows
	assert.NotContains(t, got, "G105")
	assert.NotContains(t, got, "G106")
}

func TestGetTrainInfoErrorBecomesText(t *testing.T) {
	fq := &fakeQuery{err: errors.New("session closed")}
	s := NewService(fq, testIndex(t), config.Default())

	got := s.GetTrainInfo(context.Background(), Params{From: "北京", To: "上海", Date: "2026-04-01"})

	assert.Equal(t, "获取火车信息失败: session closed", got)
}

func TestParamsOverrideDefaults(t *testing.T) {
	fq := &fakeQuery{flightRes: &travel.Result{}}
	s := NewService(fq, testIndex(t), config.Default())

	s.GetFlightInfo(context.Background(), Params{
		From: "北京", To: "上海", Date: "2026-04-01",
		Headless:       boolPtr(true),
		SaveScreenshot: boolPtr(false),
	})

	assert.True(t, fq.gotOpts.Headless)
	assert.False(t, fq.gotOpts.SaveScreenshot)
	// untouched fields keep the configured defaults
	assert.Equal(t, config.Default().Timeout, fq.gotOpts.Timeout)
	assert.False(t, fq.gotOpts.Verbose)
}

func TestLookupAirportCode(t *testing.T) {
	s := NewService(&fakeQuery{}, testIndex(t), config.Default())

	assert.Equal(t, "北京 的机场代码是: PEK", s.LookupAirportCode("北京"))
	assert.Equal(t, "未在本地找到 火星 的机场代码，可以让AI想办法找到", s.LookupAirportCode("火星"))
}
