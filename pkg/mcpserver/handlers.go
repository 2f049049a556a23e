package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harrisonrobin/tickctx/pkg/model"
	"github.com/harrisonrobin/tickctx/pkg/tools"
)

// jsonResult renders v as indented JSON text. A failed call becomes an error
// result carrying {"error": msg} so the agent can read what went wrong.
func jsonResult(name string, v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		log.Printf("Tool %s failed: %v", name, err)
		body, _ := json.Marshal(map[string]string{"error": err.Error()})
		return mcp.NewToolResultError(string(body)), nil
	}
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s result: %w", name, err)
	}
	return mcp.NewToolResultText(string(body)), nil
}

var success = map[string]bool{"success": true}

func (h *handler) tasksToday(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := h.tools.TasksDueToday(ctx)
	return jsonResult(req.Params.Name, tasks, err)
}

func (h *handler) overdueTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := h.tools.OverdueTasks(ctx)
	return jsonResult(req.Params.Name, tasks, err)
}

func (h *handler) floatingTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := h.tools.FloatingTasks(ctx)
	return jsonResult(req.Params.Name, tasks, err)
}

func (h *handler) upcomingTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := h.tools.UpcomingTasks(ctx, req.GetFloat("days", tools.DefaultUpcomingDays))
	return jsonResult(req.Params.Name, tasks, err)
}

func (h *handler) tasksByProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := h.tools.TasksByProject(ctx, req.GetString("projectName", ""))
	return jsonResult(req.Params.Name, tasks, err)
}

func (h *handler) searchTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := h.tools.SearchTasks(ctx, req.GetString("keyword", ""))
	return jsonResult(req.Params.Name, tasks, err)
}

func (h *handler) suggestNext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var window *model.TimeWindow
	minutes := int(req.GetFloat("availableMinutes", 0))
	note := req.GetString("context", "")
	if minutes > 0 || note != "" {
		window = &model.TimeWindow{AvailableMinutes: minutes, Context: note}
	}
	suggestion, err := h.tools.SuggestNext(ctx, window)
	return jsonResult(req.Params.Name, suggestion, err)
}

func (h *handler) summary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := h.tools.Summary(ctx)
	return jsonResult(req.Params.Name, s, err)
}

func (h *handler) createTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := h.tools.CreateTask(ctx, tools.CreateParams{
		Title:    req.GetString("title", ""),
		Project:  req.GetString("project", ""),
		DueDate:  req.GetString("dueDate", ""),
		Content:  req.GetString("content", ""),
		Priority: req.GetString("priority", ""),
	})
	return jsonResult(req.Params.Name, task, err)
}

func (h *handler) rescheduleTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := h.tools.RescheduleTask(ctx, req.GetString("taskId", ""), req.GetString("dueDate", ""))
	return jsonResult(req.Params.Name, task, err)
}

func (h *handler) completeTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	err := h.tools.CompleteTask(ctx, req.GetString("taskId", ""))
	return jsonResult(req.Params.Name, success, err)
}

func (h *handler) deleteTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	err := h.tools.DeleteTask(ctx, req.GetString("taskId", ""))
	return jsonResult(req.Params.Name, success, err)
}
