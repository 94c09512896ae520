package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over todos",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		todos, err := store.Search(strings.Join(args, " "))
		if err != nil {
			return err
		}

		if len(todos) == 0 {
			fmt.Println("No matches.")
			return nil
		}

		printTodos(todos)
		return nil
	},
}
