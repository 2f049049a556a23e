// Package enrich joins raw TickTick tasks with their project and parent task
// and annotates them with time context and due-state flags.
package enrich

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/harrisonrobin/tickctx/pkg/model"
	"github.com/harrisonrobin/tickctx/pkg/ticktick"
	"github.com/harrisonrobin/tickctx/pkg/timectx"
)

// Enricher holds the user's timezone, a clock and the current snapshot index.
// Loading swaps the whole index in one step; readers never see a mix.
type Enricher struct {
	loc   *time.Location
	clock func() time.Time
	index atomic.Pointer[Index]
}

// NewEnricher creates an enricher with an empty index. A nil clock means time.Now.
func NewEnricher(loc *time.Location, clock func() time.Time) *Enricher {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	e := &Enricher{loc: loc, clock: clock}
	e.index.Store(NewIndex(nil))
	return e
}

func (e *Enricher) Location() *time.Location { return e.loc }

func (e *Enricher) Now() time.Time { return e.clock() }

// LoadData replaces the current index with one built from groups and returns
// it, so a caller can keep enriching against exactly this snapshot.
func (e *Enricher) LoadData(groups []ticktick.ProjectData) *Index {
	idx := NewIndex(groups)
	e.index.Store(idx)
	return idx
}

// EnrichTask enriches one task against the most recently loaded snapshot.
func (e *Enricher) EnrichTask(task ticktick.Task) (model.EnrichedTask, error) {
	return e.enrich(e.index.Load(), e.clock(), task)
}

// EnrichTasks enriches tasks in order against the most recently loaded snapshot.
// The first failure aborts the batch.
func (e *Enricher) EnrichTasks(tasks []ticktick.Task) ([]model.EnrichedTask, error) {
	return e.EnrichSnapshot(e.index.Load(), e.clock(), tasks)
}

// EnrichSnapshot enriches tasks against idx as of now.
func (e *Enricher) EnrichSnapshot(idx *Index, now time.Time, tasks []ticktick.Task) ([]model.EnrichedTask, error) {
	enriched := make([]model.EnrichedTask, 0, len(tasks))
	for _, task := range tasks {
		et, err := e.enrich(idx, now, task)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, et)
	}
	return enriched, nil
}

func (e *Enricher) enrich(idx *Index, now time.Time, task ticktick.Task) (model.EnrichedTask, error) {
	project, ok := idx.Project(task.ProjectID)
	if !ok {
		return model.EnrichedTask{}, fmt.Errorf("%w: project not found for task: %s", model.ErrDataIntegrity, task.ID)
	}

	due := task.DueDate.Ptr()
	priority := task.Priority
	if priority == "" {
		priority = model.PriorityNone
	}
	status := task.Status
	if status == "" {
		status = model.StatusActive
	}

	et := model.EnrichedTask{
		ID:          task.ID,
		Title:       task.Title,
		Content:     task.Content,
		Project:     model.ProjectRef{ID: project.ID, Name: project.Name},
		IsOverdue:   timectx.IsOverdue(due, now),
		IsDueToday:  timectx.IsDueToday(due, now, e.loc),
		IsDueSoon:   timectx.IsDueSoon(due, now),
		Priority:    priority,
		Status:      status,
		HasSubtasks: len(task.ChildIDs) > 0,
		IsSubtask:   task.ParentID != "",
	}

	if due != nil {
		tc := timectx.New(*due, e.loc, now)
		et.DueDate = &tc
	}
	if start := task.StartDate.Ptr(); start != nil {
		tc := timectx.New(*start, e.loc, now)
		et.StartDate = &tc
	}

	if task.ParentID != "" {
		if parent, ok := idx.Task(task.ParentID); ok {
			et.Context = "Subtask of: " + parent.Title
		}
	}

	if task.RepeatFlag != "" {
		et.RepeatInfo = DescribeRepeat(task.RepeatFlag)
	}

	return et, nil
}
