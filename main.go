package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/flavioribeiro/nalscan/internal/app"
	"github.com/flavioribeiro/nalscan/internal/controllers"
	"github.com/flavioribeiro/nalscan/internal/controllers/transcoder"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type flags struct {
	filePath  string
	transcode bool
	scanWidth int
	asJSON    bool
	list      bool
	debug     bool
}

func main() {
	var f flags

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags] --file-path <file>\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.StringVarP(&f.filePath, "file-path", "f", "", "H.264 Annex B stream, or any media file with --transcode")
	pflag.BoolVar(&f.transcode, "transcode", false, "extract the video into an .h264 elementary stream with ffmpeg first")
	pflag.IntVar(&f.scanWidth, "scan-width", 0, "bytes compared per start code scan step, overrides NALSCAN_SCANWIDTH")
	pflag.BoolVar(&f.asJSON, "json", false, "print the report as JSON")
	pflag.BoolVar(&f.list, "list", false, "list every NAL unit")
	pflag.BoolVar(&f.debug, "debug", false, "development logging")
	pflag.Parse()

	if f.filePath == "" && pflag.NArg() == 1 {
		f.filePath = pflag.Arg(0)
	}
	if f.filePath == "" {
		pflag.Usage()
		os.Exit(2)
	}

	var runErr error
	fxApp := fx.New(
		app.Dependencies(app.Options{ScanWidth: f.scanWidth, Debug: f.debug}),
		fx.NopLogger,
		fx.Invoke(func(
			l *zap.SugaredLogger,
			h *controllers.H264Controller,
			t *transcoder.FFmpegTranscoder,
		) {
			defer l.Sync()
			runErr = run(context.Background(), f, h, t)
		}),
	)
	if err := fxApp.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags, h *controllers.H264Controller, t *transcoder.FFmpegTranscoder) error {
	path := f.filePath
	if f.transcode {
		var err error
		if path, err = t.Transcode(ctx, path); err != nil {
			return err
		}
	}

	report, err := h.AnalyzeFile(path)
	if report == nil {
		return err
	}

	if f.asJSON {
		if !f.list {
			report.Units = nil
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			return encErr
		}
		return err
	}

	printReport(os.Stdout, report, f.list)
	return err
}

func printReport(out io.Writer, r *entities.StreamReport, list bool) {
	fmt.Fprintf(out, "%s: %s, scan width %d\n", r.Source, humanize.Bytes(uint64(r.SizeBytes)), r.ScanWidth)
	fmt.Fprintf(out, "%s in %s of NAL units\n",
		humanize.Comma(int64(len(r.Units))), humanize.Bytes(uint64(r.PayloadBytes)))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if list {
		fmt.Fprintln(w, "\nINDEX\tOFFSET\tLENGTH\tREF\tTYPE\tKIND\tPREVIEW")
		for _, u := range r.Units {
			fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%s\t%s\n",
				u.Index, u.Offset, u.Length, u.RefIDC, u.UnitType, u.Kind, u.Preview)
		}
	}

	fmt.Fprintln(w, "\nKIND\tCOUNT\tSIZE")
	for _, k := range r.Kinds {
		fmt.Fprintf(w, "%s\t%s\t%s\n", k.Kind, humanize.Comma(int64(k.Count)), humanize.Bytes(uint64(k.Bytes)))
	}
	w.Flush()

	if r.Error != "" {
		fmt.Fprintf(out, "\nstopped early: %s\n", r.Error)
	}
}
