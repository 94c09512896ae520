package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thatguyinabeanie/todo-mcp/internal/todo"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := resolveID(store, args[0])
		if err != nil {
			return err
		}

		t, err := store.Complete(id)
		if err != nil {
			return err
		}

		printSuccess("done: %s", t.Content)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := resolveID(store, args[0])
		if err != nil {
			return err
		}

		if err := store.Delete(id); err != nil {
			return err
		}

		printSuccess("deleted %s", shortID(id))
		return nil
	},
}

// resolveID accepts a full id or a unique prefix, the way list prints
// them.
func resolveID(store *todo.Store, prefix string) (string, error) {
	todos, err := store.GetAll(todo.Filter{})
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range todos {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no todo matching %q", prefix)
	default:
		return "", fmt.Errorf("ambiguous id %q matches %d todos", prefix, len(matches))
	}
}
