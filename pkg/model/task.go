package model

// Priority is the symbolic task priority exposed to callers.
type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts the symbolic names. An empty string means none.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case "", PriorityNone:
		return PriorityNone, true
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return PriorityNone, false
}

// Status is the symbolic task status.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// TimeContext describes one instant for a reader: canonical ISO form, a relative
// phrase and a display string in the user's timezone.
type TimeContext struct {
	ISO       string `json:"iso"`
	Relative  string `json:"relative"`
	UserLocal string `json:"userLocal"`
	Timestamp int64  `json:"timestamp"`
}

type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnrichedTask is the agent-facing view of a raw task.
type EnrichedTask struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content,omitempty"`
	Project     ProjectRef   `json:"project"`
	DueDate     *TimeContext `json:"dueDate,omitempty"`
	StartDate   *TimeContext `json:"startDate,omitempty"`
	IsOverdue   bool         `json:"isOverdue"`
	IsDueToday  bool         `json:"isDueToday"`
	IsDueSoon   bool         `json:"isDueSoon"` // within 48h
	Priority    Priority     `json:"priority"`
	Status      Status       `json:"status"`
	Context     string       `json:"context,omitempty"`
	HasSubtasks bool         `json:"hasSubtasks"`
	IsSubtask   bool         `json:"isSubtask"`
	RepeatInfo  string       `json:"repeatInfo,omitempty"`
}

// DueTimestamp returns the due instant in milliseconds, or 0 when the task floats.
func (t EnrichedTask) DueTimestamp() int64 {
	if t.DueDate == nil {
		return 0
	}
	return t.DueDate.Timestamp
}

type TaskSuggestion struct {
	Task             EnrichedTask `json:"task"`
	Reason           string       `json:"reason"`
	EstimatedMinutes int          `json:"estimatedMinutes,omitempty"`
}

// TimeWindow is the caller's hint for SuggestNext. Context and Location are
// accepted for the agent's benefit but do not affect ranking.
type TimeWindow struct {
	AvailableMinutes int    `json:"availableMinutes"`
	Context          string `json:"context,omitempty"`
	Location         string `json:"location,omitempty"`
}

// Summary counts are computed independently and need not add up to Total.
type Summary struct {
	Overdue  int `json:"overdue"`
	DueToday int `json:"dueToday"`
	DueSoon  int `json:"dueSoon"`
	Floating int `json:"floating"`
	Total    int `json:"total"`
}
