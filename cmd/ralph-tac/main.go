package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/raymyers/ralph-tac/pkg/config"
	"github.com/raymyers/ralph-tac/pkg/expr"
	"github.com/raymyers/ralph-tac/pkg/lexer"
	"github.com/raymyers/ralph-tac/pkg/stmt"
	"github.com/raymyers/ralph-tac/pkg/tac"
	"github.com/raymyers/ralph-tac/pkg/tacgen"
)

var version = "0.1.0"

// Debug flags for dumping intermediate forms
var (
	dTokens  bool
	dPostfix bool
	dParse   bool
)

// Output options
var (
	outputPath  string
	showSummary bool
	showSymbols bool
	indent      bool
	verbose     bool
)

// Translation options; when set they override the config file
var (
	configPath    string
	lenient       bool
	commentMarker string
	tempPrefix    string
	labelPrefix   string
)

// sampleProgram is translated when no input file is given.
const sampleProgram = `x = 5
y = 10
z = x + y * 2
result = (x + y) * (z - 3)
`

// ErrTranslation indicates at least one statement could not be translated
var ErrTranslation = errors.New("translation failed")

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Accept compiler-style single-dash debug flags
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists the debug flags that also accept single-dash style
var debugFlagNames = []string{"dtokens", "dpostfix", "dparse"}

// normalizeFlags converts single-dash flags like -dtokens to --dtokens
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ralph-tac [file]",
		Short: "ralph-tac translates statements into three-address code",
		Long: `ralph-tac reads assignments, if/else, while and for statements
and prints the equivalent three-address code, one instruction per
line. Use "-" to read from stdin; with no file a sample program
is translated.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				fmt.Fprintf(errOut, "ralph-tac: %v\n", err)
				return err
			}
			name, src, err := readInput(cmd, args)
			if err != nil {
				fmt.Fprintf(errOut, "ralph-tac: %v\n", err)
				return err
			}

			if dParse {
				return doParse(name, src, cfg, out, errOut)
			}
			return doTranslate(name, src, cfg, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Add debug flags
	rootCmd.Flags().BoolVarP(&dTokens, "dtokens", "", false, "Dump the tokens of each expression")
	rootCmd.Flags().BoolVarP(&dPostfix, "dpostfix", "", false, "Dump the postfix order of each expression")
	rootCmd.Flags().BoolVarP(&dParse, "dparse", "", false, "Dump statements after parsing")

	// Add output flags
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Also write the instructions to this file")
	rootCmd.Flags().BoolVar(&showSummary, "summary", false, "Print the input, the instructions and their count")
	rootCmd.Flags().BoolVar(&showSymbols, "symbols", false, "Print the variables seen")
	rootCmd.Flags().BoolVar(&indent, "indent", false, "Indent instructions under their labels")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log translation steps to stderr")

	// Add translation flags
	rootCmd.Flags().StringVar(&configPath, "config", "", "Read settings from a YAML file")
	rootCmd.Flags().BoolVar(&lenient, "lenient", false, "Skip unknown characters and unmatched parentheses")
	rootCmd.Flags().StringVar(&commentMarker, "comment", stmt.DefaultCommentMarker, "Line comment marker (empty disables comments)")
	rootCmd.Flags().StringVar(&tempPrefix, "temp-prefix", "t", "Prefix of temporary names")
	rootCmd.Flags().StringVar(&labelPrefix, "label-prefix", "L", "Prefix of label names")

	return rootCmd
}

// loadConfig reads the config file, if any, and applies the flags that were
// set on the command line on top of it.
func loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "lenient":
			cfg.Lenient = lenient
		case "comment":
			cfg.CommentMarker = commentMarker
		case "temp-prefix":
			cfg.TempPrefix = tempPrefix
		case "label-prefix":
			cfg.LabelPrefix = labelPrefix
		case "summary":
			cfg.Summary = showSummary
		}
	})
	return cfg, cfg.Validate()
}

// readInput returns a display name and the program text
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 {
		return "<sample>", sampleProgram, nil
	}
	if args[0] == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "<stdin>", string(content), nil
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(content), nil
}

func newLogger(errOut io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
}

// doParse prints each statement in normalized form (-dparse flag)
func doParse(name, src string, cfg config.Config, out, errOut io.Writer) error {
	parser := stmt.Parser{CommentMarker: cfg.CommentMarker}
	printer := stmt.NewPrinter(out)
	failed := false
	for _, s := range stmt.Split(src, cfg.CommentMarker) {
		parsed, err := parser.Parse(s.Text)
		if err != nil {
			fmt.Fprintf(errOut, "ralph-tac: %s:%d: %s: %v\n", name, s.Line, tacgen.ErrorKind(err), err)
			failed = true
			continue
		}
		printer.PrintStmt(parsed)
	}
	if failed {
		return ErrTranslation
	}
	return nil
}

// doTranslate translates the program and prints the instructions
func doTranslate(name, src string, cfg config.Config, out, errOut io.Writer) error {
	opts := cfg.Options()
	opts.Logger = newLogger(errOut)
	if dTokens || dPostfix {
		opts.ExprHook = func(exprSrc string, tokens []lexer.Token, postfix []expr.Item) {
			if dTokens {
				fmt.Fprintf(out, "# tokens: %s\n", formatTokens(tokens))
			}
			if dPostfix {
				fmt.Fprintf(out, "# postfix: %s\n", expr.Format(postfix))
			}
		}
	}

	tr := tacgen.New(opts)
	errs := tr.TranslateSource(src)
	for _, err := range errs {
		var se *tacgen.StmtError
		if errors.As(err, &se) {
			fmt.Fprintf(errOut, "ralph-tac: %s:%d: %s: %v\n", name, se.Line, se.Kind(), se.Err)
		} else {
			fmt.Fprintf(errOut, "ralph-tac: %s: %v\n", name, err)
		}
	}

	printer := tac.NewPrinter(out)
	printer.Indent = indent
	if cfg.Summary {
		printer.PrintSummary(sourceLines(src, cfg.CommentMarker), tr.Program())
	} else {
		printer.PrintProgram(tr.Program())
	}
	if showSymbols {
		fmt.Fprintf(out, "# symbols: %s\n", strings.Join(tr.Symbols().Names(), ", "))
	}

	if outputPath != "" {
		if err := writeProgram(outputPath, tr.Program()); err != nil {
			fmt.Fprintf(errOut, "ralph-tac: error writing %s: %v\n", outputPath, err)
			return err
		}
	}

	if len(errs) > 0 {
		return ErrTranslation
	}
	return nil
}

func writeProgram(path string, prog *tac.Program) error {
	outFile, err := os.Create(path)
	if err != nil {
		return err
	}
	tac.NewPrinter(outFile).PrintProgram(prog)
	return outFile.Close()
}

// sourceLines returns the non-blank, non-comment input lines for the summary
func sourceLines(src, commentMarker string) []string {
	var lines []string
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || (commentMarker != "" && strings.HasPrefix(trimmed, commentMarker)) {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}

func formatTokens(tokens []lexer.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		if tok.IsOperand() {
			parts[i] = fmt.Sprintf("%s(%s)", tok.Type, tok.Literal)
		} else {
			parts[i] = tok.Type.String()
		}
	}
	return strings.Join(parts, " ")
}
