package todo

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Todo is one tracked item. FilePath and Line are zero for items added by
// hand rather than scanned out of source code.
type Todo struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Priority    Priority   `json:"priority"`
	Tags        []string   `json:"tags"`
	FilePath    string     `json:"file_path,omitempty"`
	Line        int        `json:"line,omitempty"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Filter narrows GetAll. Zero values match everything.
type Filter struct {
	Status   Status
	Priority Priority
	Tag      string
}

// Fields carries partial updates; nil pointers leave the column untouched.
type Fields struct {
	Content  *string
	Priority *Priority
	Tags     *[]string
	FilePath *string
	Line     *int
	Status   *Status
}

type Stats struct {
	Total      int            `json:"total"`
	Pending    int            `json:"pending"`
	Done       int            `json:"done"`
	ByPriority map[string]int `json:"by_priority"`
}
