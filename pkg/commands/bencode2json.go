// Package commands implements the bencode2json command line program.
package commands

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/gkbrk/bencode2json/internal/version"
	"github.com/gkbrk/bencode2json/pkg/b2j"
	"github.com/gkbrk/bencode2json/pkg/transcode"
)

// ExecuteB2JCmd executes the bencode2json command line program.
func ExecuteB2JCmd() {
	if err := NewB2JCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewB2JCommand returns the root cobra.Command for bencode2json.
func NewB2JCommand() *cobra.Command {
	var flags b2j.Flags

	var rootCmd = &cobra.Command{
		Use:   "bencode2json [flags] [file]",
		Short: "convert bencoded data to JSON",
		Long: `bencode2json reads a single bencoded value and prints its JSON equivalent.

With no file argument (or with "-"), the value is read from stdin.
Exactly one value is converted per invocation; by default the JSON is
streamed out as the value is read.

$B2J_FORMATTER can be set to terminal, terminal16m, json, tokens, html.
$B2J_STYLE can be set to any of the following themes:
https://xyproto.github.io/splash/docs/
`,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCmdFunc(cmd, args, flags)
		},
	}

	rootCmd.Flags().BoolVar(&flags.Debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVarP(&flags.Pretty, "pretty-output", "p", false, "pretty-printed output")
	rootCmd.Flags().BoolVarP(&flags.Color, "color-output", "C", true, "colorize the output")
	rootCmd.Flags().BoolVarP(&flags.Monochrome, "monochrome-output", "M", false, "monochrome (don't colorize the output)")
	rootCmd.Flags().BoolVarP(&flags.Strict, "strict", "s", false, "require dictionary keys to be bencode strings")
	rootCmd.Flags().IntVar(&flags.MaxLengthDigits, "max-length-digits", transcode.DefaultMaxLengthDigits, "maximum digits accepted in a string length prefix")
	rootCmd.Flags().BoolVarP(&flags.PrintVersion, "version", "v", false, "Print the version and exit.")

	_ = rootCmd.Flags().MarkHidden("debug")
	return rootCmd
}

func runCmdFunc(cmd *cobra.Command, args []string, flags b2j.Flags) error {
	if flags.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if flags.PrintVersion {
		fmt.Print(version.UsageVersion())
		return nil
	}

	if len(args) > 1 {
		return fmt.Errorf("expected at most one file, got %d arguments", len(args))
	}

	outputFile := os.Stdout

	// If monochrome is true, disable color, as it takes higher precedence
	// then --color-output.
	// If we're running in Windows, disable color, since it usually doesn't
	// handle colors correctly.
	// If the output isn't a TTY, and color hasn't been explicitly set via
	// the flag, disable color.
	// otherwise, use the flags values to determine if color is enabled.
	if flags.Monochrome || runtime.GOOS == "windows" || !terminal.IsTerminal(int(outputFile.Fd())) && !cmd.Flags().Changed("color-output") {
		flags.Color = false
	} else {
		flags.Color = flags.Color && !flags.Monochrome
	}

	var file b2j.File
	if len(args) == 0 || args[0] == "-" {
		if terminal.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("no input provided")
		}
		file = b2j.NewFile("/dev/stdin", os.Stdin)
	} else {
		var err error
		file, err = b2j.OpenFile(args[0])
		if err != nil {
			return err
		}
	}
	defer file.Close()

	return b2j.Run(outputFile, file, flags)
}
