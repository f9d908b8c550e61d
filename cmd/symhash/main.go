// Package main provides the symhash command. It pseudonymizes a Breakpad
// symbol file by replacing file and function names with keyed hashes and
// prints the token-to-name table needed to reverse them.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/isseis/go-symbol-hasher/internal/cmdcommon"
	"github.com/isseis/go-symbol-hasher/internal/config"
	"github.com/isseis/go-symbol-hasher/internal/logging"
	"github.com/isseis/go-symbol-hasher/internal/mapping"
	"github.com/isseis/go-symbol-hasher/internal/safefileio"
	"github.com/isseis/go-symbol-hasher/internal/symfile"
)

const (
	destFilePermissions    = 0o644
	mappingFilePermissions = 0o600
	positionalArgCount     = 4
)

var errWrongArgCount = errors.New("expected exactly 4 arguments: sourcefile destfile hashphrase prefix")

type symhashConfig struct {
	sourceFile string
	destFile   string
	hashPhrase string // raw argument, possibly "-" or "env:"
	prefix     string

	stripLineNumbers bool
	sortMapping      bool
	mappingFormat    mapping.Format
	mappingFile      string
	logLevel         logging.LogLevel
	logFormat        logging.LogFormat
}

// flagValues holds what the user typed; resolve merges it with the config file.
type flagValues struct {
	configPath       string
	stripLineNumbers bool
	sortMapping      bool
	mappingFormat    string
	mappingFile      string
	logLevel         string
	logFormat        string
	set              map[string]bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags, positional, fs, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		printUsage(fs, stderr)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := resolve(flags, positional)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	phrase, err := cmdcommon.ResolveHashPhrase(cfg.hashPhrase, stdin, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	runID := logging.GenerateRunID()
	logger, err := logging.NewLogger(logging.LoggerConfig{
		Level:   cfg.logLevel,
		Format:  cfg.logFormat,
		Writer:  stderr,
		RunID:   runID,
		Secrets: []string{string(phrase)},
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
		return 1
	}

	if err := process(cfg, phrase, logger, stdout); err != nil {
		logger.Debug("Symbol file pseudonymization failed",
			"source", cfg.sourceFile,
			"dest", cfg.destFile,
			"error", err)
		msg := err.Error()
		if len(phrase) > 0 {
			msg = strings.ReplaceAll(msg, string(phrase), logging.RedactedValue)
		}
		_, _ = fmt.Fprintf(stderr, "Error: %s\n", msg)
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (*flagValues, []string, *flag.FlagSet, error) {
	values := &flagValues{set: make(map[string]bool)}

	fs := flag.NewFlagSet("symhash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(fs, stderr) }
	fs.BoolVar(&values.stripLineNumbers, "strip-line-numbers", false, "Remove all line number records from the output")
	fs.BoolVar(&values.stripLineNumbers, "s", false, "Short alias for -strip-line-numbers")
	fs.StringVar(&values.configPath, "config", "", "Path to a TOML config file (default: $"+cmdcommon.ConfigPathEnvVar+" or "+cmdcommon.DefaultConfigPath+")")
	fs.StringVar(&values.mappingFormat, "mapping-format", "", "Mapping table format: csv|tsv|json (default: csv)")
	fs.StringVar(&values.mappingFile, "mapping-file", "", "Write the mapping table to this file instead of stdout")
	fs.BoolVar(&values.sortMapping, "sort-mapping", false, "Sort the mapping table by token")
	fs.StringVar(&values.logLevel, "log-level", "", "Log level: debug|info|warn|error (default: info)")
	fs.StringVar(&values.logFormat, "log-format", "", "Log format: text|json (default: text)")

	// Flags may follow positional arguments, so parse until nothing is left.
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, nil, fs, err
		}
		remaining := fs.Args()
		consumed := len(rest) - len(remaining)
		if consumed > 0 && rest[consumed-1] == "--" {
			positional = append(positional, remaining...)
			break
		}
		if len(remaining) == 0 {
			break
		}
		positional = append(positional, remaining[0])
		rest = remaining[1:]
	}

	if len(positional) != positionalArgCount {
		return nil, nil, fs, fmt.Errorf("%w (got %d)", errWrongArgCount, len(positional))
	}

	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if name == "s" {
			name = "strip-line-numbers"
		}
		values.set[name] = true
	})
	return values, positional, fs, nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	if fs == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "Usage: %s [flags] <sourcefile> <destfile> <hashphrase> <prefix>\n", filepath.Base(os.Args[0]))
	_, _ = fmt.Fprintf(w, "  <hashphrase> may be %q to read it from stdin or %q to read $%s\n",
		cmdcommon.HashPhraseFromStdin, cmdcommon.HashPhraseFromEnv, cmdcommon.HashPhraseEnvVar)
	fs.PrintDefaults()
}

// resolve merges flags over the config file over built-in defaults.
func resolve(flags *flagValues, positional []string) (*symhashConfig, error) {
	path, explicit := cmdcommon.ConfigPath(flags.configPath)
	var (
		fileCfg *config.Config
		err     error
	)
	if explicit {
		fileCfg, err = config.Load(path)
	} else {
		fileCfg, err = config.LoadOptional(path)
	}
	if err != nil {
		return nil, err
	}

	cfg := &symhashConfig{
		sourceFile: positional[0],
		destFile:   positional[1],
		hashPhrase: positional[2],
		prefix:     positional[3],
	}

	cfg.stripLineNumbers = pickBool(flags.set["strip-line-numbers"], flags.stripLineNumbers, fileCfg.StripLineNumbers)
	cfg.sortMapping = pickBool(flags.set["sort-mapping"], flags.sortMapping, fileCfg.SortMapping)
	cfg.mappingFile = pickString(flags.mappingFile, fileCfg.MappingFile)

	if cfg.mappingFormat, err = mapping.ParseFormat(pickString(flags.mappingFormat, fileCfg.MappingFormat)); err != nil {
		return nil, err
	}
	if err := cfg.logLevel.UnmarshalText([]byte(pickString(flags.logLevel, fileCfg.LogLevel))); err != nil {
		return nil, err
	}
	if err := cfg.logFormat.UnmarshalText([]byte(pickString(flags.logFormat, fileCfg.LogFormat))); err != nil {
		return nil, err
	}
	return cfg, nil
}

func pickBool(flagSet, flagValue bool, fileValue *bool) bool {
	if flagSet {
		return flagValue
	}
	if fileValue != nil {
		return *fileValue
	}
	return false
}

func pickString(flagValue, fileValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return fileValue
}

// process runs the transform. The destination is only published once the
// whole source has been transformed and the mapping written. On any error it
// is left untouched.
func process(cfg *symhashConfig, phrase []byte, logger *slog.Logger, stdout io.Writer) (err error) {
	hasher, err := symfile.NewHasher(phrase, cfg.prefix)
	if err != nil {
		return err
	}
	transformer := symfile.NewTransformer(hasher, symfile.Options{StripLineNumbers: cfg.stripLineNumbers})

	src, err := safefileio.SafeOpenFile(cfg.sourceFile)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer func() { _ = src.Close() }()

	dest, err := safefileio.CreateAtomic(cfg.destFile, destFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if err != nil {
			if abortErr := dest.Abort(); abortErr != nil {
				logger.Warn("Failed to discard partial destination file", "dest", cfg.destFile, "error", abortErr)
			}
		}
	}()

	logger.Debug("Transforming symbol file",
		"source", cfg.sourceFile,
		"dest", dest.Name(),
		"prefix", cfg.prefix,
		"strip_line_numbers", cfg.stripLineNumbers)

	report, err := transformer.Transform(src, dest)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.sourceFile, err)
	}

	entries := report.Names.Entries()
	if cfg.sortMapping {
		entries = report.Names.Sorted()
	}
	var table bytes.Buffer
	if err := mapping.Write(&table, cfg.mappingFormat, entries); err != nil {
		return err
	}

	// The mapping goes out before the destination is renamed into place so a
	// published destination always has its reverse table.
	if err := publishMapping(cfg.mappingFile, table.Bytes(), stdout); err != nil {
		return err
	}
	if err := dest.Commit(); err != nil {
		return err
	}

	logger.Info("Symbol file pseudonymized",
		"source", cfg.sourceFile,
		"dest", dest.Name(),
		"lines_read", report.Stats.LinesRead,
		"lines_emitted", report.Stats.LinesEmitted,
		"lines_dropped", report.Stats.LinesDropped,
		"names_hashed", report.Stats.NamesHashed,
		"distinct_names", report.Names.Len())
	return nil
}

func publishMapping(path string, table []byte, stdout io.Writer) error {
	if path == "" {
		if _, err := stdout.Write(table); err != nil {
			return fmt.Errorf("failed to write mapping: %w", err)
		}
		return nil
	}
	if err := safefileio.SafeWriteFile(path, table, mappingFilePermissions); err != nil {
		return fmt.Errorf("failed to write mapping file: %w", err)
	}
	return nil
}
