// Package mcpserver exposes the task tools over the Model Context Protocol.
package mcpserver

import (
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/harrisonrobin/tickctx/pkg/model"
	"github.com/harrisonrobin/tickctx/pkg/tools"
)

const Name = "tickctx"

// Version is set at build time via ldflags.
var Version = "dev"

const instructions = `Task tools for a TickTick account. Every task carries time context:
dueDate.iso (UTC), dueDate.relative ("in 2 hours", "3 days ago") and
dueDate.userLocal in the user's timezone. Use the isOverdue, isDueToday and
isDueSoon flags instead of doing date math. Tasks without a dueDate are floating.
Dates given to create_task and reschedule_task accept ISO strings, "today",
"tomorrow" and "next week".`

type handler struct {
	tools *tools.Tools
}

// New builds the MCP server with every task tool registered.
func New(t *tools.Tools) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	h := &handler{tools: t}
	for _, tool := range h.definitions() {
		s.AddTool(tool.Tool, tool.Handler)
	}
	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(t *tools.Tools) error {
	log.Printf("Starting %s MCP server %s on stdio", Name, Version)
	return server.ServeStdio(New(t))
}

func (h *handler) definitions() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_tasks_today",
				mcp.WithDescription("Get active tasks due today in the user's timezone, including overdue ones from earlier today."),
			),
			Handler: h.tasksToday,
		},
		{
			Tool: mcp.NewTool("get_overdue_tasks",
				mcp.WithDescription("Get active tasks whose due date has passed, most overdue first."),
			),
			Handler: h.overdueTasks,
		},
		{
			Tool: mcp.NewTool("get_floating_tasks",
				mcp.WithDescription("Get active tasks with no due date."),
			),
			Handler: h.floatingTasks,
		},
		{
			Tool: mcp.NewTool("get_upcoming_tasks",
				mcp.WithDescription("Get active tasks due within the next N days, soonest first."),
				mcp.WithNumber("days",
					mcp.Description("Look-ahead window in days"),
					mcp.DefaultNumber(tools.DefaultUpcomingDays),
				),
			),
			Handler: h.upcomingTasks,
		},
		{
			Tool: mcp.NewTool("get_tasks_by_project",
				mcp.WithDescription("Get active tasks in projects whose name contains the given text (case-insensitive)."),
				mcp.WithString("projectName",
					mcp.Required(),
					mcp.Description("Part of the project name"),
				),
			),
			Handler: h.tasksByProject,
		},
		{
			Tool: mcp.NewTool("search_tasks",
				mcp.WithDescription("Search active tasks by keyword in title or content (case-insensitive)."),
				mcp.WithString("keyword",
					mcp.Required(),
					mcp.Description("Text to look for"),
				),
			),
			Handler: h.searchTasks,
		},
		{
			Tool: mcp.NewTool("suggest_next_task",
				mcp.WithDescription("Suggest the single best task to work on next, with the reason it was picked."),
				mcp.WithNumber("availableMinutes",
					mcp.Description("Minutes the user has available"),
				),
				mcp.WithString("context",
					mcp.Description("Free-form note about the user's situation"),
				),
			),
			Handler: h.suggestNext,
		},
		{
			Tool: mcp.NewTool("get_task_summary",
				mcp.WithDescription("Count overdue, due today, due soon and floating tasks. The counts overlap."),
			),
			Handler: h.summary,
		},
		{
			Tool: mcp.NewTool("create_task",
				mcp.WithDescription("Create a task. The project is matched by name, falling back to the first project."),
				mcp.WithString("title",
					mcp.Required(),
					mcp.Description("Task title"),
				),
				mcp.WithString("project",
					mcp.Description("Part of the project name"),
				),
				mcp.WithString("dueDate",
					mcp.Description(`ISO date or "today", "tomorrow", "next week"`),
				),
				mcp.WithString("content",
					mcp.Description("Task notes"),
				),
				mcp.WithString("priority",
					mcp.Description("Task priority"),
					mcp.Enum(string(model.PriorityNone), string(model.PriorityLow), string(model.PriorityMedium), string(model.PriorityHigh)),
				),
			),
			Handler: h.createTask,
		},
		{
			Tool: mcp.NewTool("reschedule_task",
				mcp.WithDescription("Move a task to a new due date."),
				mcp.WithString("taskId",
					mcp.Required(),
					mcp.Description("Task id"),
				),
				mcp.WithString("dueDate",
					mcp.Required(),
					mcp.Description(`ISO date or "today", "tomorrow", "next week"`),
				),
			),
			Handler: h.rescheduleTask,
		},
		{
			Tool: mcp.NewTool("complete_task",
				mcp.WithDescription("Mark a task as completed."),
				mcp.WithString("taskId",
					mcp.Required(),
					mcp.Description("Task id"),
				),
			),
			Handler: h.completeTask,
		},
		{
			Tool: mcp.NewTool("delete_task",
				mcp.WithDescription("Delete a task permanently."),
				mcp.WithString("taskId",
					mcp.Required(),
					mcp.Description("Task id"),
				),
			),
			Handler: h.deleteTask,
		},
	}
}
