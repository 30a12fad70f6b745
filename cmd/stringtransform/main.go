// Command stringtransform applies a configured string-cleaning pipeline to
// the string columns of a tabular dataset.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/LFKoning/stringtransform/pkg/frame"
	"github.com/LFKoning/stringtransform/pkg/io/csvio"
	"github.com/LFKoning/stringtransform/pkg/io/jsonlio"
	"github.com/LFKoning/stringtransform/pkg/io/parquetio"
	"github.com/LFKoning/stringtransform/pkg/profile"
)

var version = "0.1.0-dev"

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to cleaning config (json|yaml|toml)")
	listSteps := flag.Bool("list-steps", false, "Print the configured pipeline and exit")
	profileTopK := flag.Int("profile", 0, "Print string-column profiles before and after, with top-K values")
	flag.Parse()

	if *showVersion {
		fmt.Println("stringtransform", version)
		return
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "no config provided; nothing to do. try --config <file> or --version")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	tfm, err := buildTransformer(cfg)
	if err != nil {
		fatal(err)
	}

	if *listSteps {
		for _, s := range tfm.Steps() {
			fmt.Println(s)
		}
		return
	}

	f, err := readInput(cfg)
	if err != nil {
		fatal(err)
	}
	if *profileTopK > 0 {
		fmt.Println("Before:")
		fmt.Print(profile.Collect(f, *profileTopK))
	}

	out, err := tfm.Transform(f)
	if err != nil {
		fatal(err)
	}
	if *profileTopK > 0 {
		fmt.Println("After:")
		fmt.Print(profile.Collect(out, *profileTopK))
	}

	if err := writeOutput(cfg, out); err != nil {
		fatal(err)
	}
}

func readInput(cfg *Config) (*frame.Frame, error) {
	switch cfg.Input.Type {
	case "", "csv":
		delim := rune(0)
		if cfg.Input.Delimiter != "" {
			delim = rune(cfg.Input.Delimiter[0])
		}
		rdr, file, err := csvio.Open(cfg.Input.Path, csvio.ReaderOptions{
			HasHeader: cfg.Input.HasHeader,
			Delimiter: delim,
		})
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()
		schema, _, err := rdr.InferSchema()
		if err != nil {
			return nil, err
		}
		return rdr.ReadAll(schema)
	case "jsonl":
		rdr, file, err := jsonlio.Open(cfg.Input.Path, jsonlio.ReaderOptions{})
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()
		schema, err := rdr.InferSchema()
		if err != nil {
			return nil, err
		}
		return rdr.ReadAll(schema)
	case "parquet":
		rdr, err := parquetio.OpenReader(cfg.Input.Path, 0)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rdr.Close() }()
		return rdr.ReadAll()
	default:
		return nil, fmt.Errorf("unsupported input type %q", cfg.Input.Type)
	}
}

func writeOutput(cfg *Config, f *frame.Frame) error {
	switch cfg.Output.Type {
	case "", "csv":
		delim := rune(0)
		if cfg.Output.Delimiter != "" {
			delim = rune(cfg.Output.Delimiter[0])
		}
		return csvio.WriteAll(cfg.Output.Path, f, csvio.WriterOptions{Delimiter: delim})
	case "jsonl":
		return jsonlio.WriteAll(cfg.Output.Path, f)
	case "parquet":
		return parquetio.WriteAll(cfg.Output.Path, f)
	default:
		return fmt.Errorf("unsupported output type %q", cfg.Output.Type)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
