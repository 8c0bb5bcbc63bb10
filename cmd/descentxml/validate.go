package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	descentxml "github.com/shapestone/descent-xml/pkg/xml"
)

var elementOnly bool

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check one or more files for XML well-formedness",
	Long: `validate reads each given file and reports whether its content is a
well-formed XML document. By default a file must contain exactly one root
element with no prolog constraints violated; with --element, only element
nesting is checked (no prolog, no single-root constraint).`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !validateAll(os.Stdout, args, elementOnly) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&elementOnly, "element", false, "validate a single element subtree instead of a whole document")
}

// readErr distinguishes a file-read failure from a well-formedness
// failure so validateAll can report each with its own message.
type readErr struct{ err error }

func (e readErr) Error() string { return e.err.Error() }
func (e readErr) Unwrap() error { return e.err }

// validateFile reads path and checks it for well-formedness. A read
// failure is wrapped with the path for context, matching this codebase's
// file-handling error convention.
func validateFile(path string, elementOnly bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return readErr{fmt.Errorf("reading %s: %w", path, err)}
	}

	check := descentxml.Validate
	if elementOnly {
		check = descentxml.ValidateElement
	}
	return check(string(data))
}

// validateAll runs validateFile over paths, reporting one pass/fail line
// per file to out, and reports whether every file validated.
func validateAll(out io.Writer, paths []string, elementOnly bool) bool {
	ok := true
	for _, path := range paths {
		err := validateFile(path, elementOnly)
		var re readErr
		switch {
		case err == nil:
			fmt.Fprintf(out, "%s: well-formed\n", path)
		case errors.As(err, &re):
			fmt.Fprintf(out, "%s: %v\n", path, err)
			ok = false
		default:
			fmt.Fprintf(out, "%s: not well-formed: %v\n", path, err)
			ok = false
		}
	}
	return ok
}
