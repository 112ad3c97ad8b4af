package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"

	"prepay-sim/config"
	"prepay-sim/domain"
	"prepay-sim/report"
	"prepay-sim/repository"
	"prepay-sim/service"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("prepaysim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "YAML scenario file")
		pdfPath    = fs.String("pdf", "", "write the sweep report as PDF to this path")
		schedule   = fs.Bool("schedule", false, "print the month-by-month schedule for one prepay month instead of the sweep")
		prepay     = fs.Int("prepay", -1, "prepay month for -schedule (default: prepay_month from the scenario file)")
		workers    = fs.Int("workers", runtime.NumCPU(), "concurrent simulations")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: prepaysim -config scenario.yaml [-pdf out.pdf] [-schedule [-prepay N]]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *configPath == "" {
		fs.Usage()
		return 2
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	input, err := config.LoadScenario(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load scenario: %v\n", err)
		return 1
	}

	if *prepay >= 0 {
		input.PrepayMonth = *prepay
	}
	if *schedule {
		return printSchedule(input, stdout, stderr)
	}

	sweeps := service.NewSweepService(
		repository.NewMockCache(),
		repository.NewSweepRepositoryMemory(1),
		service.NewAdvisorService(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_API_URL"), logger),
		*workers,
		logger,
	)
	result, err := sweeps.Sweep(context.Background(), input.ScenarioParams)
	if err != nil {
		fmt.Fprintf(stderr, "sweep: %v\n", err)
		return 1
	}

	if err := report.WriteTable(stdout, result); err != nil {
		fmt.Fprintf(stderr, "write table: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout)
	if err := report.WriteSummary(stdout, result); err != nil {
		fmt.Fprintf(stderr, "write summary: %v\n", err)
		return 1
	}

	if *pdfPath != "" {
		if err := writePDF(*pdfPath, result); err != nil {
			fmt.Fprintf(stderr, "write pdf: %v\n", err)
			return 1
		}
		logger.WithField("path", *pdfPath).Info("pdf written")
	}
	return 0
}

func printSchedule(input domain.ScenarioInput, stdout, stderr io.Writer) int {
	months, result, err := service.Schedule(input)
	if err != nil {
		fmt.Fprintf(stderr, "simulate: %v\n", err)
		return 1
	}
	if err := report.WriteSchedule(stdout, months); err != nil {
		fmt.Fprintf(stderr, "write schedule: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "\nEMI %s, loan %s, net worth %s\n",
		report.FormatIndian(result.EMI), result.LoanClosedMonth, report.FormatIndian(result.NetWorth))
	return 0
}

func writePDF(path string, result domain.SweepReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WritePDF(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
