package enrich

import "github.com/harrisonrobin/tickctx/pkg/ticktick"

// Index maps project and task ids of one snapshot. It is never modified after
// NewIndex returns, so it can be shared freely; a refresh builds a new one.
type Index struct {
	projects map[string]ticktick.Project
	tasks    map[string]ticktick.Task
}

func NewIndex(groups []ticktick.ProjectData) *Index {
	idx := &Index{
		projects: make(map[string]ticktick.Project, len(groups)),
		tasks:    make(map[string]ticktick.Task),
	}
	for _, g := range groups {
		idx.projects[g.Project.ID] = g.Project
		for _, t := range g.Tasks {
			idx.tasks[t.ID] = t
		}
	}
	return idx
}

func (idx *Index) Project(id string) (ticktick.Project, bool) {
	p, ok := idx.projects[id]
	return p, ok
}

func (idx *Index) Task(id string) (ticktick.Task, bool) {
	t, ok := idx.tasks[id]
	return t, ok
}
