package tools

import (
	"context"
	"errors"
	"time"

	"github.com/harrisonrobin/tickctx/pkg/model"
	"github.com/harrisonrobin/tickctx/pkg/ticktick"
)

type fakeSource struct {
	groups []ticktick.ProjectData
	err    error

	created   []ticktick.NewTask
	updated   []ticktick.Task
	completed [][2]string
	deleted   [][2]string
}

func (f *fakeSource) GetAllTasks(ctx context.Context) ([]ticktick.ProjectData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.groups, nil
}

func (f *fakeSource) CreateTask(ctx context.Context, task ticktick.NewTask) (*ticktick.Task, error) {
	f.created = append(f.created, task)
	created := &ticktick.Task{
		ID:        "created-1",
		ProjectID: task.ProjectID,
		Title:     task.Title,
		Content:   task.Content,
		Priority:  task.Priority,
		Status:    model.StatusActive,
	}
	if task.DueDate != nil {
		created.DueDate = &ticktick.CustomTime{Time: *task.DueDate}
	}
	return created, nil
}

func (f *fakeSource) UpdateTask(ctx context.Context, task ticktick.Task) (*ticktick.Task, error) {
	f.updated = append(f.updated, task)
	return &task, nil
}

func (f *fakeSource) CompleteTask(ctx context.Context, taskID, projectID string) error {
	f.completed = append(f.completed, [2]string{taskID, projectID})
	return nil
}

func (f *fakeSource) DeleteTask(ctx context.Context, taskID, projectID string) error {
	f.deleted = append(f.deleted, [2]string{taskID, projectID})
	return nil
}

var errBackendDown = errors.New("backend down")

// testNow is 12:00 in Kolkata.
var testNow = time.Date(2026, 10, 18, 6, 30, 0, 0, time.UTC)

func due(d time.Duration) *ticktick.CustomTime {
	return &ticktick.CustomTime{Time: testNow.Add(d)}
}

// sampleGroups has known membership:
// overdue: o2, o1; due today: o2, today; due soon: today, soon;
// floating: f1, f2; total active: 7.
func sampleGroups() []ticktick.ProjectData {
	return []ticktick.ProjectData{
		{
			Project: ticktick.Project{ID: "p1", Name: "Work"},
			Tasks: []ticktick.Task{
				{ID: "o2", ProjectID: "p1", Title: "Reply to auditor", DueDate: due(-3 * time.Hour)},
				{ID: "o1", ProjectID: "p1", Title: "File expense report", DueDate: due(-48 * time.Hour)},
				{ID: "today", ProjectID: "p1", Title: "Standup notes", Content: "include the REPORT numbers", DueDate: due(4 * time.Hour)},
			},
		},
		{
			Project: ticktick.Project{ID: "p2", Name: "Home"},
			Tasks: []ticktick.Task{
				{ID: "soon", ProjectID: "p2", Title: "Pay rent", DueDate: due(30 * time.Hour)},
				{ID: "later", ProjectID: "p2", Title: "Book dentist", DueDate: due(5 * 24 * time.Hour)},
				{ID: "f1", ProjectID: "p2", Title: "Fix the shelf", Priority: model.PriorityHigh},
				{ID: "f2", ProjectID: "p2", Title: "Plan garden", ChildIDs: []string{"g1"}},
				{ID: "done", ProjectID: "p2", Title: "Old chore", DueDate: due(time.Hour), Status: model.StatusCompleted},
			},
		},
	}
}
