package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mustafa-guler/packed-dna/internal/seqdb"
)

// findCmd is for reading sequences out of the database by name.
var findCmd = &cobra.Command{
	Use:                        "find [name]",
	Short:                      "Find sequences in the database",
	Run:                        runFind,
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"ls", "list"},
	Example:                    "  packed-dna find \"t7 promoter\"",
	Long: `Find a sequence in the database by its name and write it to stdout.

'packed-dna find' without any arguments lists every stored sequence with
its length in base pairs`,
}

// set flags
func init() {
	findCmd.Flags().StringP("out", "o", "", "Output file name for the found sequences <JSON>")

	RootCmd.AddCommand(findCmd)
}

// findOutput is the JSON written when --out is passed.
type findOutput struct {
	Time      string      `json:"time"`
	Sequences []findEntry `json:"sequences"`
}

// findEntry is one named sequence within findOutput.
type findEntry struct {
	Name string `json:"name"`
	Bp   int    `json:"bp"`
	Seq  string `json:"seq"`
}

func runFind(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")

	db, ctx := openDB(cmd)
	defer db.Close()

	// without a name, list everything
	if len(args) < 1 {
		entries, err := db.List(ctx)
		if err != nil {
			stderr.Fatalln(err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
		fmt.Fprintf(w, "name\tbp\n")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\n", e.Name, e.Length)
		}
		w.Flush()

		if out != "" {
			found := []findEntry{}
			for _, e := range entries {
				seq, err := db.Get(ctx, e.Name)
				if err != nil {
					stderr.Fatalln(err)
				}
				found = append(found, findEntry{Name: e.Name, Bp: seq.Len(), Seq: seq.String()})
			}
			writeFindOutput(out, found)
		}
		return
	}

	name := args[0]
	if len(args) > 1 {
		name = strings.Join(args, " ")
	}

	seq, err := db.Get(ctx, name)
	if err != nil {
		if errors.Is(err, seqdb.ErrNotFound) {
			stderr.Fatalf("failed to find %s in the sequence database\n", name)
		}
		stderr.Fatalln(err)
	}
	fmt.Printf("%s\t%s\n", name, seq)

	if out != "" {
		writeFindOutput(out, []findEntry{{Name: name, Bp: seq.Len(), Seq: seq.String()}})
	}
}

// writeFindOutput writes the found sequences to a JSON file.
func writeFindOutput(path string, found []findEntry) {
	output := findOutput{
		Time:      time.Now().Format(time.RFC3339),
		Sequences: found,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		stderr.Fatalf("failed to serialize the found sequences: %v", err)
	}
	if err := ioutil.WriteFile(path, data, 0666); err != nil {
		stderr.Fatalf("failed to write %s: %v", path, err)
	}
}
