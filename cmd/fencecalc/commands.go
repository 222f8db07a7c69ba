package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/fencecalc/internal/export"
	"github.com/piwi3910/fencecalc/internal/importer"
	"github.com/piwi3910/fencecalc/internal/model"
	"github.com/piwi3910/fencecalc/internal/project"
	"go.uber.org/zap"
)

const recentJobsLimit = 10

// stdinImport is the -import value that reads CSV from standard input.
const stdinImport = "-"

// app carries what every command needs.
type app struct {
	log        *zap.Logger
	configPath string
	config     model.AppConfig
	in         io.Reader
	out        io.Writer
}

// jobsPath keeps the jobs store next to whichever config file is in use.
func (a *app) jobsPath() string {
	return filepath.Join(filepath.Dir(a.configPath), filepath.Base(project.DefaultJobsPath()))
}

type estimateOptions struct {
	runs        string
	importArg   string
	dxfScale    float64
	skipBadRows bool
	height      string
	fenceType   string
	ends        int
	corners     int
	strict      bool
	name        string
	customer    string
	save        bool
	output      outputOptions
}

// outputOptions are shared by estimate and jobs -show.
type outputOptions struct {
	pdfPath  string
	xlsxPath string
	asJSON   bool
}

func (o *outputOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&o.pdfPath, "pdf", "", "Write a PDF quote to this path")
	fs.StringVar(&o.xlsxPath, "xlsx", "", "Write an Excel bill of quantities to this path")
	fs.BoolVar(&o.asJSON, "json", false, "Print the takeoff as JSON")
}

func (a *app) estimateFlags(opts *estimateOptions) *flag.FlagSet {
	fs := flag.NewFlagSet("estimate", flag.ContinueOnError)
	fs.StringVar(&opts.runs, "runs", "", "Comma-separated run lengths in feet, e.g. 60,40")
	fs.StringVar(&opts.importArg, "import", "", "Import runs from a CSV, Excel or DXF file (- reads CSV from stdin)")
	fs.Float64Var(&opts.dxfScale, "dxf-scale", 1, "DXF drawing units per foot (12 for inches)")
	fs.BoolVar(&opts.skipBadRows, "skip-bad-rows", false, "Estimate from the readable rows when some imported rows are invalid")
	fs.StringVar(&opts.height, "height", a.config.DefaultFenceHeight, "Fence height in feet")
	fs.StringVar(&opts.fenceType, "type", string(a.config.DefaultFenceType), "Fence type (residential, commercial)")
	fs.IntVar(&opts.ends, "ends", a.config.DefaultEnds, "Number of end posts")
	fs.IntVar(&opts.corners, "corners", a.config.DefaultCorners, "Number of corner posts")
	fs.BoolVar(&opts.strict, "strict", a.config.StrictValidation, "Reject invalid input instead of computing")
	fs.StringVar(&opts.name, "name", "Estimate", "Job name")
	fs.StringVar(&opts.customer, "customer", "", "Customer name")
	fs.BoolVar(&opts.save, "save", false, "Save the job to the jobs store")
	opts.output.register(fs)
	return fs
}

func (a *app) estimate(args []string) error {
	var opts estimateOptions
	fs := a.estimateFlags(&opts)
	if err := fs.Parse(args); err != nil {
		return err
	}

	runs, skipped, err := a.collectRuns(opts)
	if err != nil {
		return err
	}

	in := model.EstimationInput{Runs: runs}
	a.config.ApplyToInput(&in)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "height":
			in.FenceHeight = opts.height
		case "type":
			fenceType, ok := model.ParseFenceType(opts.fenceType)
			if !ok {
				a.log.Warn("Unknown fence type, pricing pipe as commercial", zap.String("type", opts.fenceType))
			}
			in.FenceType = fenceType
		case "ends":
			in.Ends = opts.ends
		case "corners":
			in.Corners = opts.corners
		}
	})
	job := model.NewFenceJob(opts.name, opts.customer, in)

	var result model.EstimationResult
	if opts.strict {
		result, err = model.ComputeValidated(job.Input)
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				a.log.Error("Invalid input", zap.String("kind", string(verr.Kind)), zap.String("field", verr.Field))
			}
			return err
		}
	} else {
		result = job.Estimate()
	}

	a.log.Debug("Takeoff computed",
		zap.Int("runs", len(runs)),
		zap.Float64("footage", result.FabricFootage),
		zap.Int("terminal_posts", result.TerminalPosts()),
	)

	if err := a.report(job, result, skipped, opts.output); err != nil {
		return err
	}
	if opts.save {
		return a.saveJob(job)
	}
	return nil
}

// collectRuns reads runs from -runs or -import. Neither yields an empty run
// list, which is a valid input. Import row errors fail the estimate unless
// -skip-bad-rows is set, in which case they are returned for the report.
func (a *app) collectRuns(opts estimateOptions) ([]model.FenceRun, []string, error) {
	if opts.runs != "" && opts.importArg != "" {
		return nil, nil, fmt.Errorf("use either -runs or -import, not both")
	}
	if opts.importArg == "" {
		runs, err := parseRuns(opts.runs)
		return runs, nil, err
	}

	res, err := a.importRuns(opts.importArg, opts.dxfScale)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range res.Warnings {
		a.log.Debug("Import warning", zap.String("file", opts.importArg), zap.String("warning", w))
	}
	if len(res.Errors) > 0 {
		if !opts.skipBadRows || len(res.Runs) == 0 {
			return nil, nil, fmt.Errorf("%d problem(s) importing %s: %s",
				len(res.Errors), opts.importArg, strings.Join(res.Errors, "; "))
		}
		for _, e := range res.Errors {
			a.log.Warn("Skipping imported row", zap.String("file", opts.importArg), zap.String("error", e))
		}
	}
	a.log.Info("Runs imported",
		zap.String("file", opts.importArg),
		zap.Int("runs", len(res.Runs)),
		zap.Float64("total_ft", res.TotalLength()),
	)
	return res.Runs, res.Errors, nil
}

func (a *app) importRuns(arg string, dxfScale float64) (importer.ImportResult, error) {
	if arg != stdinImport {
		return importer.Import(arg, dxfScale), nil
	}
	data, err := io.ReadAll(a.in)
	if err != nil {
		return importer.ImportResult{}, fmt.Errorf("read stdin: %w", err)
	}
	return importer.ImportCSVFromReader(bytes.NewReader(data), importer.DetectCSVDelimiter(data)), nil
}

// parseRuns turns "60, 40ft,25" into labelled runs.
func parseRuns(s string) ([]model.FenceRun, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []model.FenceRun{}, nil
	}
	parts := strings.Split(s, ",")
	runs := make([]model.FenceRun, 0, len(parts))
	for i, p := range parts {
		length, err := importer.ParseFeet(p)
		if err != nil {
			return nil, fmt.Errorf("run %d: invalid length %q", i+1, strings.TrimSpace(p))
		}
		runs = append(runs, model.NewFenceRun(fmt.Sprintf("Run %d", i+1), length))
	}
	return runs, nil
}

// report prints a takeoff and writes the requested documents.
func (a *app) report(job model.FenceJob, result model.EstimationResult, skipped []string, o outputOptions) error {
	pricing := a.config.Pricing
	if o.asJSON {
		if err := writeJSON(a.out, takeoffReport{
			Job:         job,
			Result:      result,
			LineItems:   model.LineItems(result, pricing),
			Total:       export.FormatMoney("", model.ComputeCost(result, pricing)),
			SkippedRows: skipped,
		}); err != nil {
			return err
		}
	} else {
		printTakeoff(a.out, job, result, pricing, a.config.CurrencySymbol)
		printSkipped(a.out, skipped)
	}

	if o.pdfPath != "" {
		if err := export.ExportPDF(o.pdfPath, job, result, pricing, a.config.CurrencySymbol); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		a.log.Info("Quote written", zap.String("path", o.pdfPath))
	}
	if o.xlsxPath != "" {
		if err := export.ExportXLSX(o.xlsxPath, job, result, pricing); err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
		a.log.Info("Bill of quantities written", zap.String("path", o.xlsxPath))
	}
	return nil
}

func (a *app) saveJob(job model.FenceJob) error {
	store, err := project.LoadJobs(a.jobsPath())
	if err != nil {
		return fmt.Errorf("load jobs: %w", err)
	}
	store.Add(job)
	if err := a.storeJobs(store); err != nil {
		return err
	}
	if err := a.touchRecent(job.ID); err != nil {
		return err
	}
	a.log.Info("Job saved", zap.String("id", job.ID), zap.String("name", job.Name))
	return nil
}

func (a *app) storeJobs(store model.JobStore) error {
	if err := project.SaveJobs(a.jobsPath(), store); err != nil {
		return fmt.Errorf("save jobs: %w", err)
	}
	return nil
}

// touchRecent moves a job to the front of the recent list and persists the config.
func (a *app) touchRecent(id string) error {
	a.config.AddRecentJob(id, recentJobsLimit)
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// takeoffReport is the -json output of estimate and jobs -show. The total is
// rounded to cents as text so a non-finite amount still encodes.
type takeoffReport struct {
	Job         model.FenceJob         `json:"job"`
	Result      model.EstimationResult `json:"result"`
	LineItems   []model.LineItem       `json:"line_items"`
	Total       string                 `json:"total"`
	SkippedRows []string               `json:"skipped_rows,omitempty"`
}

func printTakeoff(w io.Writer, job model.FenceJob, result model.EstimationResult, pricing model.PricingConfig, currency string) {
	fmt.Fprintf(w, "%s: %d runs, %.1f ft, %s ft %s (%s)\n\n",
		job.Name, len(job.Input.Runs), result.FabricFootage,
		job.Input.FenceHeight, job.Input.FenceType, result.PipeWeight)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Material\tQty\tUnit\tUnit Price\tExtended\t")
	for _, item := range model.LineItems(result, pricing) {
		qty := fmt.Sprintf("%.0f", item.Quantity)
		if item.Kind == model.MaterialFabric {
			qty = fmt.Sprintf("%.1f", item.Quantity)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", item.Label, qty, item.Unit,
			export.FormatMoney(currency, item.UnitPrice), export.FormatMoney(currency, item.Extended))
	}
	fmt.Fprintf(tw, "Total\t\t\t\t%s\t\n", export.FormatMoney(currency, model.ComputeCost(result, pricing)))
	tw.Flush()
}

func printSkipped(w io.Writer, skipped []string) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(w, "\nSkipped %d imported row(s), not included above:\n", len(skipped))
	for _, s := range skipped {
		fmt.Fprintf(w, "  %s\n", s)
	}
}

func (a *app) showConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	initConfig := fs.Bool("init", false, "Write the default configuration to the config path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *initConfig {
		a.config = model.DefaultAppConfig()
		if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		a.log.Info("Default configuration written", zap.String("path", a.configPath))
	}
	return writeJSON(a.out, a.config)
}

func (a *app) backup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	out := fs.String("out", "", "Backup file to write")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("backup requires -out")
	}

	store, err := project.LoadJobs(a.jobsPath())
	if err != nil {
		return fmt.Errorf("load jobs: %w", err)
	}
	if err := project.ExportAllData(*out, a.config, store); err != nil {
		return err
	}
	a.log.Info("Backup written", zap.String("path", *out), zap.Int("jobs", len(store.Jobs)))
	return nil
}

func (a *app) restore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	in := fs.String("in", "", "Backup file to read")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("restore requires -in")
	}

	data, err := project.ImportAllData(*in)
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(a.configPath, data.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := a.storeJobs(data.Jobs); err != nil {
		return err
	}
	a.config = data.Config
	a.log.Info("Backup restored",
		zap.String("path", *in),
		zap.String("version", data.Version),
		zap.Int("jobs", len(data.Jobs.Jobs)),
	)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
