// snowbalance evaluates the daily snow mass balance terms (snowfall, melt,
// sublimation) for every row of a CSV file of daily weather records.
//
// Each row is evaluated on its own. The previous day's snow cover is an
// input column; carrying it forward is up to whoever produces the file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/snowbalance/internal/dailymet"
	"github.com/chrissnell/snowbalance/internal/log"
	"github.com/chrissnell/snowbalance/pkg/config"
	"github.com/chrissnell/snowbalance/pkg/snowpack"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain runs the command and returns its exit code. Deferred cleanup
// runs before the process exits.
func realMain(args []string) int {
	fs := flag.NewFlagSet("snowbalance", flag.ContinueOnError)
	var (
		inFile     = fs.String("in", "-", "Daily records CSV (date,tmin,tmax,precipitation,snowcover_previous); - for stdin")
		outFile    = fs.String("out", "-", "Output CSV of daily terms; - for stdout")
		configFile = fs.String("config", "", "Optional YAML parameter file")
		debug      = fs.Bool("debug", false, "Enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	in, err := openInput(*inFile)
	if err != nil {
		log.Errorf("Error opening input: %v", err)
		return 1
	}
	defer in.Close()

	provider := config.NewProvider(*configFile)
	err = writeOutput(*outFile, func(w io.Writer) error {
		return run(in, w, provider)
	})
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}
	return 0
}

func run(in io.Reader, out io.Writer, provider config.ParamsProvider) error {
	params, err := provider.LoadParams()
	if err != nil {
		return fmt.Errorf("error loading parameters: %w", err)
	}
	log.Debugw("parameters loaded",
		"threshold_upper", params.Accumulation.ThresholdUpper,
		"threshold_lower", params.Accumulation.ThresholdLower,
		"threshold_min", params.Melt.ThresholdMin,
		"threshold_max", params.Melt.ThresholdMax,
		"melt_rate", params.Melt.MeltRate,
		"threshold_snowcover", params.Sublimation.ThresholdSnowCover,
	)

	calc, err := snowpack.NewCalculator(*params, log.GetSugaredLogger())
	if err != nil {
		return err
	}

	records, err := dailymet.ReadCSV(in)
	if err != nil {
		return fmt.Errorf("error reading records: %w", err)
	}

	terms, err := calc.Series(dailymet.Columns(records))
	if err != nil {
		return fmt.Errorf("error evaluating records: %w", err)
	}

	if err := dailymet.WriteCSV(out, records, terms); err != nil {
		return fmt.Errorf("error writing terms: %w", err)
	}

	logSummary(records, terms)
	return nil
}

func logSummary(records []dailymet.Record, terms snowpack.SeriesTerms) {
	if len(records) == 0 {
		log.Infof("No records to evaluate")
		return
	}

	log.Infow("evaluated daily records",
		"days", len(records),
		"first", records[0].Date.Format(dailymet.DateLayout),
		"last", records[len(records)-1].Date.Format(dailymet.DateLayout),
		"snowfall_total", floats.Sum(terms.Snowfall),
		"melt_total", floats.Sum(terms.Melt),
		"melt_mean", stat.Mean(terms.Melt, nil),
		"sublimation_total", floats.Sum(terms.Sublimation),
	)
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

// writeOutput calls write with the named output, - being stdout. A file
// is removed again if write or Close fails, so no partial output is left.
func writeOutput(name string, write func(io.Writer) error) error {
	if name == "-" {
		return write(os.Stdout)
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("error creating output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("error closing output: %w", err)
	}
	return nil
}
