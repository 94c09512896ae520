package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thatguyinabeanie/todo-mcp/internal/todo"
)

var (
	addPriority string
	addTags     []string
)

var addCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority (low|medium|high); inferred from keywords when omitted")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "Tags (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	content := strings.Join(args, " ")

	priority := todo.Priority(addPriority)
	if priority == "" {
		priority = todo.InferPriority(content)
	}

	t, err := store.Add(content, priority, addTags, "", 0)
	if err != nil {
		return err
	}

	printSuccess("added %s (%s)", shortID(t.ID), t.Priority)
	return nil
}
