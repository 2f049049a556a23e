// Package tools answers the agent's questions about tasks: what is due, what is
// late, what matches, and what to do next. Every call works on a fresh
// snapshot from the Source.
package tools

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/harrisonrobin/tickctx/pkg/enrich"
	"github.com/harrisonrobin/tickctx/pkg/model"
	"github.com/harrisonrobin/tickctx/pkg/ticktick"
	"github.com/harrisonrobin/tickctx/pkg/timectx"
)

// DefaultUpcomingDays is the look-ahead used when UpcomingTasks gets no window.
const DefaultUpcomingDays = 7

// Source is the task backend. *ticktick.Client implements it.
type Source interface {
	GetAllTasks(ctx context.Context) ([]ticktick.ProjectData, error)
	CreateTask(ctx context.Context, task ticktick.NewTask) (*ticktick.Task, error)
	UpdateTask(ctx context.Context, task ticktick.Task) (*ticktick.Task, error)
	CompleteTask(ctx context.Context, taskID, projectID string) error
	DeleteTask(ctx context.Context, taskID, projectID string) error
}

type Tools struct {
	source   Source
	enricher *enrich.Enricher
}

func New(source Source, enricher *enrich.Enricher) *Tools {
	return &Tools{source: source, enricher: enricher}
}

// snapshot is one refresh: the raw groups, their index and the instant the
// operation treats as now.
type snapshot struct {
	groups []ticktick.ProjectData
	index  *enrich.Index
	now    time.Time
}

func (t *Tools) refresh(ctx context.Context) (*snapshot, error) {
	groups, err := t.source.GetAllTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh tasks: %w", err)
	}
	return &snapshot{
		groups: groups,
		index:  t.enricher.LoadData(groups),
		now:    t.enricher.Now(),
	}, nil
}

func (t *Tools) activeTasks(ctx context.Context) ([]model.EnrichedTask, *snapshot, error) {
	snap, err := t.refresh(ctx)
	if err != nil {
		return nil, nil, err
	}

	var active []ticktick.Task
	for _, g := range snap.groups {
		for _, task := range g.Tasks {
			if task.Status != model.StatusCompleted {
				active = append(active, task)
			}
		}
	}

	enriched, err := t.enricher.EnrichSnapshot(snap.index, snap.now, active)
	if err != nil {
		return nil, nil, err
	}
	return enriched, snap, nil
}

func filter(tasks []model.EnrichedTask, keep func(model.EnrichedTask) bool) []model.EnrichedTask {
	out := []model.EnrichedTask{}
	for _, task := range tasks {
		if keep(task) {
			out = append(out, task)
		}
	}
	return out
}

func sortByDue(tasks []model.EnrichedTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueTimestamp() < tasks[j].DueTimestamp()
	})
}

func isOverdue(t model.EnrichedTask) bool  { return t.IsOverdue }
func isDueToday(t model.EnrichedTask) bool { return t.IsDueToday }
func isDueSoon(t model.EnrichedTask) bool  { return t.IsDueSoon }
func isFloating(t model.EnrichedTask) bool { return t.DueDate == nil }

func (t *Tools) TasksDueToday(ctx context.Context) ([]model.EnrichedTask, error) {
	tasks, _, err := t.activeTasks(ctx)
	if err != nil {
		return nil, err
	}
	return filter(tasks, isDueToday), nil
}

// OverdueTasks returns overdue tasks, most overdue first.
func (t *Tools) OverdueTasks(ctx context.Context) ([]model.EnrichedTask, error) {
	tasks, _, err := t.activeTasks(ctx)
	if err != nil {
		return nil, err
	}
	overdue := filter(tasks, isOverdue)
	sortByDue(overdue)
	return overdue, nil
}

func (t *Tools) FloatingTasks(ctx context.Context) ([]model.EnrichedTask, error) {
	tasks, _, err := t.activeTasks(ctx)
	if err != nil {
		return nil, err
	}
	return filter(tasks, isFloating), nil
}

func (t *Tools) TasksByProject(ctx context.Context, projectName string) ([]model.EnrichedTask, error) {
	if strings.TrimSpace(projectName) == "" {
		return nil, fmt.Errorf("%w: projectName is required", model.ErrInvalidArgs)
	}
	tasks, _, err := t.activeTasks(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(projectName)
	return filter(tasks, func(task model.EnrichedTask) bool {
		return strings.Contains(strings.ToLower(task.Project.Name), query)
	}), nil
}

func (t *Tools) SearchTasks(ctx context.Context, keyword string) ([]model.EnrichedTask, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("%w: keyword is required", model.ErrInvalidArgs)
	}
	tasks, _, err := t.activeTasks(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(keyword)
	return filter(tasks, func(task model.EnrichedTask) bool {
		return strings.Contains(strings.ToLower(task.Title), query) ||
			strings.Contains(strings.ToLower(task.Content), query)
	}), nil
}

// UpcomingTasks returns tasks due after now and no later than days from now,
// soonest first. Fractional days are allowed; days <= 0 means the default.
func (t *Tools) UpcomingTasks(ctx context.Context, days float64) ([]model.EnrichedTask, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	tasks, snap, err := t.activeTasks(ctx)
	if err != nil {
		return nil, err
	}

	nowMs := snap.now.UnixMilli()
	maxMs := nowMs + int64(days*float64(timectx.Day.Milliseconds()))
	upcoming := filter(tasks, func(task model.EnrichedTask) bool {
		if task.DueDate == nil {
			return false
		}
		return task.DueDate.Timestamp > nowMs && task.DueDate.Timestamp <= maxMs
	})
	sortByDue(upcoming)
	return upcoming, nil
}

func (t *Tools) Summary(ctx context.Context) (model.Summary, error) {
	tasks, _, err := t.activeTasks(ctx)
	if err != nil {
		return model.Summary{}, err
	}
	return model.Summary{
		Overdue:  len(filter(tasks, isOverdue)),
		DueToday: len(filter(tasks, isDueToday)),
		DueSoon:  len(filter(tasks, isDueSoon)),
		Floating: len(filter(tasks, isFloating)),
		Total:    len(tasks),
	}, nil
}

// SuggestNext picks one task: the first overdue, else due today, else due
// soon, else floating high priority, else (given a time window) the first task
// without subtasks. It returns nil when nothing qualifies.
func (t *Tools) SuggestNext(ctx context.Context, window *model.TimeWindow) (*model.TaskSuggestion, error) {
	tasks, _, err := t.activeTasks(ctx)
	if err != nil {
		return nil, err
	}
	return Suggest(tasks, window), nil
}

// Suggest applies the SuggestNext cascade to already enriched tasks.
func Suggest(tasks []model.EnrichedTask, window *model.TimeWindow) *model.TaskSuggestion {
	if overdue := filter(tasks, isOverdue); len(overdue) > 0 {
		return &model.TaskSuggestion{Task: overdue[0], Reason: "Overdue by " + relative(overdue[0])}
	}
	if today := filter(tasks, isDueToday); len(today) > 0 {
		return &model.TaskSuggestion{Task: today[0], Reason: "Due today"}
	}
	if soon := filter(tasks, isDueSoon); len(soon) > 0 {
		return &model.TaskSuggestion{Task: soon[0], Reason: "Due " + relative(soon[0])}
	}

	high := filter(tasks, func(task model.EnrichedTask) bool {
		return task.DueDate == nil && task.Priority == model.PriorityHigh
	})
	if len(high) > 0 {
		return &model.TaskSuggestion{Task: high[0], Reason: "High priority task with no deadline"}
	}

	if window != nil && window.AvailableMinutes > 0 {
		simple := filter(tasks, func(task model.EnrichedTask) bool { return !task.HasSubtasks })
		if len(simple) > 0 {
			return &model.TaskSuggestion{
				Task:             simple[0],
				Reason:           fmt.Sprintf("Fits your %d minute window", window.AvailableMinutes),
				EstimatedMinutes: window.AvailableMinutes,
			}
		}
	}
	return nil
}

func relative(t model.EnrichedTask) string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Relative
}

// CreateParams are the caller-facing fields of a new task.
type CreateParams struct {
	Title    string
	Project  string
	DueDate  string
	Content  string
	Priority string
}

// CreateTask creates a task in the first project whose name contains
// params.Project, falling back to the first project.
func (t *Tools) CreateTask(ctx context.Context, params CreateParams) (model.EnrichedTask, error) {
	if strings.TrimSpace(params.Title) == "" {
		return model.EnrichedTask{}, fmt.Errorf("%w: title is required", model.ErrInvalidArgs)
	}
	priority, ok := model.ParsePriority(params.Priority)
	if !ok {
		return model.EnrichedTask{}, fmt.Errorf("%w: unknown priority: %s", model.ErrInvalidArgs, params.Priority)
	}

	snap, err := t.refresh(ctx)
	if err != nil {
		return model.EnrichedTask{}, err
	}
	projectID, err := pickProject(snap.groups, params.Project)
	if err != nil {
		return model.EnrichedTask{}, err
	}

	newTask := ticktick.NewTask{
		Title:     params.Title,
		ProjectID: projectID,
		Content:   params.Content,
		Priority:  priority,
	}
	if params.DueDate != "" {
		due, err := timectx.ResolveFlexibleDate(params.DueDate, snap.now, t.enricher.Location())
		if err != nil {
			return model.EnrichedTask{}, err
		}
		newTask.DueDate = &due
	}

	created, err := t.source.CreateTask(ctx, newTask)
	if err != nil {
		return model.EnrichedTask{}, fmt.Errorf("failed to create task: %w", err)
	}
	log.Printf("Created task %s in project %s", created.ID, projectID)

	enriched, err := t.enricher.EnrichSnapshot(snap.index, t.enricher.Now(), []ticktick.Task{*created})
	if err != nil {
		return model.EnrichedTask{}, err
	}
	return enriched[0], nil
}

func pickProject(groups []ticktick.ProjectData, name string) (string, error) {
	if len(groups) == 0 {
		return "", fmt.Errorf("%w: no projects found", model.ErrNotFound)
	}
	if name != "" {
		query := strings.ToLower(name)
		for _, g := range groups {
			if strings.Contains(strings.ToLower(g.Project.Name), query) {
				return g.Project.ID, nil
			}
		}
	}
	return groups[0].Project.ID, nil
}

// RescheduleTask moves a task's due date, accepting the same expressions as
// CreateTask.
func (t *Tools) RescheduleTask(ctx context.Context, taskID, dueDate string) (model.EnrichedTask, error) {
	if taskID == "" {
		return model.EnrichedTask{}, fmt.Errorf("%w: taskId is required", model.ErrInvalidArgs)
	}
	if dueDate == "" {
		return model.EnrichedTask{}, fmt.Errorf("%w: dueDate is required", model.ErrInvalidArgs)
	}

	snap, err := t.refresh(ctx)
	if err != nil {
		return model.EnrichedTask{}, err
	}
	task, ok := snap.index.Task(taskID)
	if !ok {
		return model.EnrichedTask{}, fmt.Errorf("%w: task not found: %s", model.ErrNotFound, taskID)
	}
	due, err := timectx.ResolveFlexibleDate(dueDate, snap.now, t.enricher.Location())
	if err != nil {
		return model.EnrichedTask{}, err
	}
	task.DueDate = &ticktick.CustomTime{Time: due}

	updated, err := t.source.UpdateTask(ctx, task)
	if err != nil {
		return model.EnrichedTask{}, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}

	enriched, err := t.enricher.EnrichSnapshot(snap.index, t.enricher.Now(), []ticktick.Task{*updated})
	if err != nil {
		return model.EnrichedTask{}, err
	}
	return enriched[0], nil
}

func (t *Tools) CompleteTask(ctx context.Context, taskID string) error {
	task, err := t.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := t.source.CompleteTask(ctx, task.ID, task.ProjectID); err != nil {
		return fmt.Errorf("failed to complete task %s: %w", taskID, err)
	}
	return nil
}

func (t *Tools) DeleteTask(ctx context.Context, taskID string) error {
	task, err := t.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := t.source.DeleteTask(ctx, task.ID, task.ProjectID); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}
	return nil
}

func (t *Tools) findTask(ctx context.Context, taskID string) (ticktick.Task, error) {
	if taskID == "" {
		return ticktick.Task{}, fmt.Errorf("%w: taskId is required", model.ErrInvalidArgs)
	}
	snap, err := t.refresh(ctx)
	if err != nil {
		return ticktick.Task{}, err
	}
	task, ok := snap.index.Task(taskID)
	if !ok {
		return ticktick.Task{}, fmt.Errorf("%w: task not found: %s", model.ErrNotFound, taskID)
	}
	return task, nil
}
