package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mustafa-guler/packed-dna/dna"
)

// setCmd is for creating or updating a named sequence in the database.
var setCmd = &cobra.Command{
	Use:                        "set [name] [sequence]",
	Short:                      "Add or update a sequence in the database",
	Run:                        runSet,
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"add", "update"},
	Example:                    "  packed-dna set \"t7 promoter\" TAATACGACTCACTATAG",
	Long: `
Create/update a sequence in the database with its name. The sequence is
validated and stored packed, two bits per base. Stored sequences can be
read back with 'packed-dna find' and removed with 'packed-dna delete'`,
}

// set flags
func init() {
	RootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) {
	if len(args) < 2 {
		stderr.Fatalf("expecting two args: a name and a sequence. %d passed\n", len(args))
	}
	name, bases := nameAndSeq(args)

	seq, err := dna.Parse(bases)
	if err != nil {
		stderr.Fatalln(err)
	}

	db, ctx := openDB(cmd)
	defer db.Close()

	if err := db.Put(ctx, name, seq); err != nil {
		stderr.Fatalln(err)
	}
	fmt.Printf("set %s (%d bp) in the sequence database\n", name, seq.Len())
}

// nameAndSeq splits command args into a sequence name and the sequence
// itself. Multi-word names can stand unquoted: everything up to the last
// argument is the name.
func nameAndSeq(args []string) (name, seq string) {
	name = args[0]
	seq = args[len(args)-1]
	if len(args) > 2 {
		name = strings.Join(args[:len(args)-1], " ")
	}
	return
}
