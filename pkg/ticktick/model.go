package ticktick

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/tickctx/pkg/model"
	"github.com/harrisonrobin/tickctx/pkg/timectx"
)

type CustomTime struct {
	time.Time
}

const ticktickTimeLayout = "2006-01-02T15:04:05.000-0700" // TickTick open API, e.g. 2019-11-13T03:00:00.000+0000

// UnmarshalJSON implements the json.Unmarshaler interface for CustomTime.
// Timezone-naive values are read as UTC.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		ct.Time = time.Time{}
		return nil
	}

	t, err := timectx.ParseTimestamp(s, time.UTC)
	if err != nil {
		return fmt.Errorf("failed to parse TickTick time string '%s': %w", s, err)
	}
	ct.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface for CustomTime.
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ct.Time.UTC().Format(ticktickTimeLayout) + `"`), nil
}

// Ptr returns the instant or nil when unset.
func (ct *CustomTime) Ptr() *time.Time {
	if ct == nil || ct.Time.IsZero() {
		return nil
	}
	t := ct.Time
	return &t
}

// Wire encodings of priority and status. Nothing outside this file compares
// against these numbers.
const (
	wirePriorityNone   = 0
	wirePriorityLow    = 1
	wirePriorityMedium = 3
	wirePriorityHigh   = 5

	wireStatusActive = 0
)

// PriorityFromWire maps TickTick's numeric priority. Unknown values are none.
func PriorityFromWire(n int) model.Priority {
	switch n {
	case wirePriorityLow:
		return model.PriorityLow
	case wirePriorityMedium:
		return model.PriorityMedium
	case wirePriorityHigh:
		return model.PriorityHigh
	}
	return model.PriorityNone
}

func PriorityToWire(p model.Priority) int {
	switch p {
	case model.PriorityLow:
		return wirePriorityLow
	case model.PriorityMedium:
		return wirePriorityMedium
	case model.PriorityHigh:
		return wirePriorityHigh
	}
	return wirePriorityNone
}

// StatusFromWire maps 0 to active and anything else to completed.
func StatusFromWire(n int) model.Status {
	if n == wireStatusActive {
		return model.StatusActive
	}
	return model.StatusCompleted
}

type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	SortOrder int64  `json:"sortOrder"`
	ViewMode  string `json:"viewMode,omitempty"`
	Kind      string `json:"kind,omitempty"`
}

type Task struct {
	ID         string         `json:"id"`
	ProjectID  string         `json:"projectId"`
	Title      string         `json:"title"`
	Content    string         `json:"content,omitempty"`
	Desc       string         `json:"desc,omitempty"`
	StartDate  *CustomTime    `json:"startDate,omitempty"`
	DueDate    *CustomTime    `json:"dueDate,omitempty"`
	TimeZone   string         `json:"timeZone,omitempty"`
	IsAllDay   bool           `json:"isAllDay,omitempty"`
	Priority   model.Priority `json:"-"`
	Status     model.Status   `json:"-"`
	RepeatFlag string         `json:"repeatFlag,omitempty"`
	ParentID   string         `json:"parentId,omitempty"`
	ChildIDs   []string       `json:"childIds,omitempty"`
	SortOrder  int64          `json:"sortOrder"`
	Etag       string         `json:"etag,omitempty"`
	Kind       string         `json:"kind,omitempty"`
}

// taskAlias drops Task's methods so the wire struct can embed it.
type taskAlias Task

type wireTask struct {
	taskAlias
	Priority int `json:"priority"`
	Status   int `json:"status"`
}

// UnmarshalJSON translates the numeric priority and status into their
// symbolic forms.
func (t *Task) UnmarshalJSON(b []byte) error {
	var w wireTask
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = Task(w.taskAlias)
	t.Priority = PriorityFromWire(w.Priority)
	t.Status = StatusFromWire(w.Status)
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	status := wireStatusActive
	if t.Status == model.StatusCompleted {
		status = 2
	}
	return json.Marshal(wireTask{
		taskAlias: taskAlias(t),
		Priority:  PriorityToWire(t.Priority),
		Status:    status,
	})
}

// ProjectData is the payload of /project/{id}/data.
type ProjectData struct {
	Project Project           `json:"project"`
	Tasks   []Task            `json:"tasks"`
	Columns []json.RawMessage `json:"columns,omitempty"`
}

// NewTask holds the fields accepted when creating a task.
type NewTask struct {
	Title     string
	ProjectID string
	Content   string
	Priority  model.Priority
	DueDate   *time.Time
}

func (n NewTask) MarshalJSON() ([]byte, error) {
	body := struct {
		Title     string      `json:"title"`
		ProjectID string      `json:"projectId"`
		Content   string      `json:"content,omitempty"`
		Priority  int         `json:"priority"`
		DueDate   *CustomTime `json:"dueDate,omitempty"`
	}{
		Title:     n.Title,
		ProjectID: n.ProjectID,
		Content:   n.Content,
		Priority:  PriorityToWire(n.Priority),
	}
	if n.DueDate != nil {
		body.DueDate = &CustomTime{Time: *n.DueDate}
	}
	return json.Marshal(body)
}
