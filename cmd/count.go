package cmd

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/mustafa-guler/packed-dna/dna"
)

// countCmd is for counting the bases in DNA sequences.
var countCmd = &cobra.Command{
	Use:                        "count [sequence] ... [sequenceN]",
	Short:                      "Count the occurrences of each nucleotide in DNA sequences",
	Run:                        runCount,
	SuggestionsMinimumDistance: 2,
	Example:                    "  packed-dna count ACGTTT",
	Long: `Count the number of occurrences of each nucleotide in DNA sequences.

Sequences are case insensitive but may only hold the nucleotides A, C, G
and T. Counts for each sequence are written to stdout. Invalid sequences
are reported together on stderr after the valid ones are counted.`,
}

// set flags
func init() {
	countCmd.Flags().String("dna", "", "DNA sequence to count, an alternative to the positional arguments")

	RootCmd.AddCommand(countCmd)
}

// runCount counts each input sequence. Failures accumulate so one bad
// sequence does not hide the counts of the others.
func runCount(cmd *cobra.Command, args []string) {
	inputs := args
	if flagDna, _ := cmd.Flags().GetString("dna"); flagDna != "" {
		inputs = append(inputs, flagDna)
	}
	if len(inputs) == 0 {
		cmd.Help()
		stderr.Fatalln("\nno sequence passed.")
	}

	var errs error
	printed := 0
	for _, in := range inputs {
		seq, err := dna.Parse(in)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", in, err))
			continue
		}

		if printed > 0 {
			fmt.Println()
		}
		fmt.Print(countReport(in, seq))
		printed++
	}

	if errs != nil {
		stderr.Fatalln(errs)
	}
}

// countReport formats the per-base counts of one input:
//
//	Input: ACGTTT
//
//	A: 1
//	C: 1
//	G: 1
//	T: 3
func countReport(input string, seq *dna.PackedDna) string {
	counts := seq.Counts()

	out := fmt.Sprintf("Input: %s\n\n", input)
	for _, nuc := range dna.Nucleotides() {
		out += fmt.Sprintf("%s: %d\n", nuc, counts[nuc])
	}
	return out
}
