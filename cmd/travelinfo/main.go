// Command travelinfo queries flight and train schedules from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"

	"travelinfo/internal/airports"
	"travelinfo/internal/config"
	"travelinfo/internal/report"
	"travelinfo/internal/tools"
	"travelinfo/internal/travel"
)

type queryFlags struct {
	From string `arg:"" help:"出发地城市名"`
	To   string `arg:"" help:"目的地城市名"`
	Date string `arg:"" help:"出行日期，格式为YYYY-MM-DD"`

	Headless       *bool `help:"Run the browser headless."`
	SaveScreenshot *bool `help:"Save a full-page screenshot next to the report." name:"save-screenshot"`
	Verbose        *bool `help:"Log the pipeline steps." short:"v"`
}

func (f queryFlags) params() tools.Params {
	return tools.Params{
		From:           f.From,
		To:             f.To,
		Date:           f.Date,
		Headless:       f.Headless,
		SaveScreenshot: f.SaveScreenshot,
		Verbose:        f.Verbose,
	}
}

type flightCmd struct{ queryFlags }

type trainCmd struct{ queryFlags }

type airportCodeCmd struct {
	City string `arg:"" help:"城市名称（中文或英文）"`
}

type cli struct {
	Config string `help:"Path to configuration file" default:"config.yaml"`

	Flight      flightCmd      `cmd:"" help:"查询两地之间的航班并生成HTML时刻表"`
	Train       trainCmd       `cmd:"" help:"查询两地之间的火车并生成HTML时刻表"`
	AirportCode airportCodeCmd `cmd:"" name:"airport-code" help:"查询城市的机场三字码"`
}

type app struct {
	service *tools.Service
	verbose bool
}

func (c *flightCmd) Run(a *app) error {
	payload := a.runWithSpinner("正在查询航班信息...", func() string {
		return a.service.GetFlightInfo(context.Background(), c.params())
	})
	fmt.Println(payload)
	return nil
}

func (c *trainCmd) Run(a *app) error {
	payload := a.runWithSpinner("正在查询火车信息...", func() string {
		return a.service.GetTrainInfo(context.Background(), c.params())
	})
	fmt.Println(payload)
	return nil
}

func (c *airportCodeCmd) Run(a *app) error {
	fmt.Println(a.service.LookupAirportCode(c.City))
	return nil
}

// runWithSpinner shows progress while the pipeline runs. Verbose mode logs
// the steps instead, so the spinner stays off.
func (a *app) runWithSpinner(message string, fn func() string) string {
	if a.verbose {
		return fn()
	}
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	defer s.Stop()
	return fn()
}

func main() {
	var flags cli
	ctx := kong.Parse(&flags,
		kong.Name("travelinfo"),
		kong.Description("Browser-driven flight and train schedule lookups."))

	file, err := config.LoadFile(flags.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	defaults := file.Defaults.Apply(config.Default())

	verbose := defaults.Verbose
	switch ctx.Command() {
	case "flight <from> <to> <date>":
		if flags.Flight.Verbose != nil {
			verbose = *flags.Flight.Verbose
		}
	case "train <from> <to> <date>":
		if flags.Train.Verbose != nil {
			verbose = *flags.Train.Verbose
		}
	}

	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	dataDir := file.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	index := airports.NewIndex(dataDir, logger)

	writer, err := report.NewWriter(file.OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	client := travel.NewClient(index, writer, logger)
	service := tools.NewService(client, index, defaults)

	err = ctx.Run(&app{service: service, verbose: verbose})
	ctx.FatalIfErrorf(err)
}
