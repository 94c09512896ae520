package todo

import "github.com/thatguyinabeanie/todo-mcp/internal/scan"

// ImportScanned stores scan results as todos. Items already present at
// the same (file, line, content) are skipped; returns the number actually
// inserted.
func ImportScanned(store *Store, items []scan.Item) (int, error) {
	imported := 0

	for _, item := range items {
		existing, err := store.FindAtLocation(item.FilePath, item.Line, item.Text)
		if err != nil {
			return imported, err
		}
		if existing != nil {
			continue
		}

		priority := InferPriority(item.Marker + " " + item.Text)

		_, err = store.Add(item.Text, priority, []string{markerTag(item.Marker)}, item.FilePath, item.Line)
		if err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func markerTag(marker string) string {
	switch marker {
	case "FIXME", "BUG":
		return "bug"
	case "HACK", "XXX":
		return "tech-debt"
	case "NOTE":
		return "note"
	default:
		return "todo"
	}
}
