package cmd

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/mustafa-guler/packed-dna/dna"
)

// revcompCmd is for printing the reverse complement of DNA sequences.
var revcompCmd = &cobra.Command{
	Use:                        "revcomp [sequence] ... [sequenceN]",
	Short:                      "Print the reverse complement of DNA sequences",
	Run:                        runRevcomp,
	SuggestionsMinimumDistance: 2,
	Example:                    "  packed-dna revcomp GGATC",
	Aliases:                    []string{"rc"},
	Long: `Print the reverse complement of each DNA sequence to stdout, one per line.

The complement is the literal base pairing (A with T, C with G) applied
to the sequence read back to front.`,
}

// set flags
func init() {
	RootCmd.AddCommand(revcompCmd)
}

func runRevcomp(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		cmd.Help()
		stderr.Fatalln("\nno sequence passed.")
	}

	var errs error
	for _, in := range args {
		seq, err := dna.Parse(in)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", in, err))
			continue
		}
		fmt.Println(seq.ReverseComplement())
	}

	if errs != nil {
		stderr.Fatalln(errs)
	}
}
