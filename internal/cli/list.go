package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thatguyinabeanie/todo-mcp/internal/todo"
)

var (
	listStatus   string
	listPriority string
	listTag      string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos",
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status (pending|done)")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Filter by priority (low|medium|high)")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Filter by tag")
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	todos, err := store.GetAll(todo.Filter{
		Status:   todo.Status(listStatus),
		Priority: todo.Priority(listPriority),
		Tag:      listTag,
	})
	if err != nil {
		return err
	}

	if len(todos) == 0 {
		fmt.Println("No todos found.")
		return nil
	}

	printTodos(todos)
	return nil
}

func printTodos(todos []*todo.Todo) {
	for _, t := range todos {
		marker := " "
		if t.Status == todo.StatusDone {
			marker = "x"
		}

		line := fmt.Sprintf("[%s] %-8s  %s  %s", marker, shortID(t.ID), priorityLabel(t.Priority), t.Content)
		if t.Status == todo.StatusDone {
			color.New(color.FgHiBlack).Println(line)
		} else {
			fmt.Println(line)
		}

		if t.FilePath != "" {
			color.New(color.FgHiBlack).Printf("    %s:%d\n", t.FilePath, t.Line)
		}
	}
}

func priorityLabel(p todo.Priority) string {
	switch p {
	case todo.PriorityHigh:
		return color.RedString("high  ")
	case todo.PriorityLow:
		return color.CyanString("low   ")
	default:
		return color.YellowString("medium")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
