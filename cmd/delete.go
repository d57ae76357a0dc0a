package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// deleteCmd is for removing sequences from the database by name.
var deleteCmd = &cobra.Command{
	Use:                        "delete [name]",
	Short:                      "Delete a sequence from the database",
	Run:                        runDelete,
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"rm", "remove"},
	Example:                    "  packed-dna delete \"t7 promoter\"",
	Long: `Delete a sequence from the database by its name.
If no such sequence name exists in the database, an error is logged to stderr.`,
}

// set flags
func init() {
	RootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		stderr.Fatalf("expecting one arg: the name of a sequence. %d passed\n", len(args))
	}
	name := args[0]
	if len(args) > 1 {
		name = strings.Join(args, " ")
	}

	db, ctx := openDB(cmd)
	defer db.Close()

	deleted, err := db.Delete(ctx, name)
	if err != nil {
		stderr.Fatalln(err)
	}

	if deleted {
		fmt.Printf("deleted %s from the sequence database\n", name)
	} else {
		stderr.Fatalf("failed to find %s in the sequence database\n", name)
	}
}
