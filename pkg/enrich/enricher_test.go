package enrich

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/tickctx/pkg/model"
	"github.com/harrisonrobin/tickctx/pkg/ticktick"
)

var testNow = time.Date(2026, 10, 18, 6, 30, 0, 0, time.UTC) // 12:00 in Kolkata

func fixedClock() time.Time { return testNow }

func stamp(t time.Time) *ticktick.CustomTime { return &ticktick.CustomTime{Time: t} }

func newTestEnricher(t *testing.T) *Enricher {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}
	return NewEnricher(loc, fixedClock)
}

func sampleGroups() []ticktick.ProjectData {
	return []ticktick.ProjectData{
		{
			Project: ticktick.Project{ID: "p1", Name: "Work"},
			Tasks: []ticktick.Task{
				{ID: "parent", ProjectID: "p1", Title: "Quarterly report", ChildIDs: []string{"child"}, Priority: model.PriorityHigh},
				{ID: "child", ProjectID: "p1", Title: "Collect numbers", ParentID: "parent", DueDate: stamp(testNow.Add(-2 * time.Hour))},
			},
		},
	}
}

func TestEnrichTask(t *testing.T) {
	e := newTestEnricher(t)
	e.LoadData(sampleGroups())

	task := ticktick.Task{
		ID:         "child",
		ProjectID:  "p1",
		Title:      "Collect numbers",
		Content:    "from finance",
		ParentID:   "parent",
		DueDate:    stamp(testNow.Add(-2 * time.Hour)),
		StartDate:  stamp(testNow.Add(-3 * 24 * time.Hour)),
		Priority:   model.PriorityMedium,
		Status:     model.StatusActive,
		RepeatFlag: "RRULE:FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE",
	}

	et, err := e.EnrichTask(task)
	if err != nil {
		t.Fatalf("EnrichTask failed: %v", err)
	}

	if et.Project.Name != "Work" {
		t.Errorf("Expected project Work, got %q", et.Project.Name)
	}
	if !et.IsOverdue || !et.IsDueToday || et.IsDueSoon {
		t.Errorf("Expected overdue and due today but not soon, got overdue=%v today=%v soon=%v", et.IsOverdue, et.IsDueToday, et.IsDueSoon)
	}
	if et.DueDate == nil || et.DueDate.Relative != "2 hours ago" {
		t.Fatalf("Expected due relative '2 hours ago', got %+v", et.DueDate)
	}
	if et.DueDate.UserLocal != "Today, 10:00 AM" {
		t.Errorf("Expected due userLocal 'Today, 10:00 AM', got %q", et.DueDate.UserLocal)
	}
	if et.StartDate == nil || et.StartDate.Relative != "3 days ago" {
		t.Errorf("Expected start relative '3 days ago', got %+v", et.StartDate)
	}
	if et.Context != "Subtask of: Quarterly report" {
		t.Errorf("Expected parent context, got %q", et.Context)
	}
	if !et.IsSubtask || et.HasSubtasks {
		t.Errorf("Expected subtask without children, got isSubtask=%v hasSubtasks=%v", et.IsSubtask, et.HasSubtasks)
	}
	if et.RepeatInfo != "Every 2 weeks on MO,WE" {
		t.Errorf("Expected repeat info, got %q", et.RepeatInfo)
	}
	if et.Priority != model.PriorityMedium || et.Status != model.StatusActive {
		t.Errorf("Unexpected priority/status %s/%s", et.Priority, et.Status)
	}
}

func TestEnrichTaskMissingProject(t *testing.T) {
	e := newTestEnricher(t)
	e.LoadData(sampleGroups())

	_, err := e.EnrichTask(ticktick.Task{ID: "orphan", ProjectID: "nowhere", Title: "Lost"})
	if !errors.Is(err, model.ErrDataIntegrity) {
		t.Fatalf("Expected ErrDataIntegrity, got %v", err)
	}
	if !strings.Contains(err.Error(), "orphan") {
		t.Errorf("Expected error to name the task id, got %q", err.Error())
	}
}

func TestEnrichTaskMissingParentIsSoft(t *testing.T) {
	e := newTestEnricher(t)
	e.LoadData(sampleGroups())

	et, err := e.EnrichTask(ticktick.Task{ID: "x", ProjectID: "p1", Title: "Stray", ParentID: "gone"})
	if err != nil {
		t.Fatalf("EnrichTask failed: %v", err)
	}
	if et.Context != "" || !et.IsSubtask {
		t.Errorf("Expected subtask without context, got context=%q isSubtask=%v", et.Context, et.IsSubtask)
	}
	if et.DueDate != nil || et.IsOverdue || et.IsDueToday || et.IsDueSoon {
		t.Error("Expected floating task with no due flags")
	}
	if et.Priority != model.PriorityNone || et.Status != model.StatusActive {
		t.Errorf("Expected defaults none/active, got %s/%s", et.Priority, et.Status)
	}
}

func TestEnrichTasksPreservesOrderAndFailsWhole(t *testing.T) {
	e := newTestEnricher(t)
	groups := sampleGroups()
	e.LoadData(groups)

	enriched, err := e.EnrichTasks(groups[0].Tasks)
	if err != nil {
		t.Fatalf("EnrichTasks failed: %v", err)
	}
	if len(enriched) != 2 || enriched[0].ID != "parent" || enriched[1].ID != "child" {
		t.Errorf("Expected order parent, child, got %+v", enriched)
	}
	if !enriched[0].HasSubtasks {
		t.Error("Expected parent to have subtasks")
	}

	bad := append(groups[0].Tasks, ticktick.Task{ID: "orphan", ProjectID: "nowhere"})
	if _, err := e.EnrichTasks(bad); !errors.Is(err, model.ErrDataIntegrity) {
		t.Errorf("Expected batch to fail with ErrDataIntegrity, got %v", err)
	}
}

func TestLoadDataReplacesIndex(t *testing.T) {
	e := newTestEnricher(t)
	e.LoadData(sampleGroups())

	fresh := e.LoadData([]ticktick.ProjectData{{Project: ticktick.Project{ID: "p2", Name: "Home"}}})
	if _, ok := fresh.Project("p2"); !ok {
		t.Error("Expected returned index to hold the new project")
	}
	if _, ok := fresh.Task("child"); ok {
		t.Error("Expected returned index to drop old tasks")
	}

	if _, err := e.EnrichTask(ticktick.Task{ID: "child", ProjectID: "p1"}); !errors.Is(err, model.ErrDataIntegrity) {
		t.Errorf("Expected old project to be gone after reload, got %v", err)
	}
	if _, err := e.EnrichTask(ticktick.Task{ID: "y", ProjectID: "p2"}); err != nil {
		t.Errorf("Expected new project to resolve, got %v", err)
	}
}
