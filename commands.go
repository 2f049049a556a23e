package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrisonrobin/tickctx/pkg/auth"
	"github.com/harrisonrobin/tickctx/pkg/config"
	"github.com/harrisonrobin/tickctx/pkg/mcpserver"
	"github.com/harrisonrobin/tickctx/pkg/model"
	"github.com/harrisonrobin/tickctx/pkg/tools"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// query builds a command that prints whatever run returns as JSON.
func query(use, short string, args cobra.PositionalArgs, run func(context.Context, *tools.Tools, []string) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newTools(cmd.Context())
			if err != nil {
				return err
			}
			out, err := run(cmd.Context(), t, args)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newTools(cmd.Context())
			if err != nil {
				return err
			}
			return mcpserver.Serve(t)
		},
	}
}

func todayCmd() *cobra.Command {
	return query("today", "Tasks due today", cobra.NoArgs,
		func(ctx context.Context, t *tools.Tools, _ []string) (any, error) { return t.TasksDueToday(ctx) })
}

func overdueCmd() *cobra.Command {
	return query("overdue", "Overdue tasks, most overdue first", cobra.NoArgs,
		func(ctx context.Context, t *tools.Tools, _ []string) (any, error) { return t.OverdueTasks(ctx) })
}

func floatingCmd() *cobra.Command {
	return query("floating", "Tasks without a due date", cobra.NoArgs,
		func(ctx context.Context, t *tools.Tools, _ []string) (any, error) { return t.FloatingTasks(ctx) })
}

func upcomingCmd() *cobra.Command {
	var days float64
	cmd := query("upcoming", "Tasks due within the next days", cobra.NoArgs,
		func(ctx context.Context, t *tools.Tools, _ []string) (any, error) { return t.UpcomingTasks(ctx, days) })
	cmd.Flags().Float64VarP(&days, "days", "d", tools.DefaultUpcomingDays, "look-ahead window in days")
	return cmd
}

func projectCmd() *cobra.Command {
	return query("project <name>", "Tasks in projects matching name", cobra.ExactArgs(1),
		func(ctx context.Context, t *tools.Tools, args []string) (any, error) { return t.TasksByProject(ctx, args[0]) })
}

func searchCmd() *cobra.Command {
	return query("search <keyword>", "Search task titles and content", cobra.ExactArgs(1),
		func(ctx context.Context, t *tools.Tools, args []string) (any, error) { return t.SearchTasks(ctx, args[0]) })
}

func summaryCmd() *cobra.Command {
	return query("summary", "Count overdue, due today, due soon and floating tasks", cobra.NoArgs,
		func(ctx context.Context, t *tools.Tools, _ []string) (any, error) { return t.Summary(ctx) })
}

func nextCmd() *cobra.Command {
	var window model.TimeWindow
	cmd := query("next", "Suggest what to work on next", cobra.NoArgs,
		func(ctx context.Context, t *tools.Tools, _ []string) (any, error) {
			if window.AvailableMinutes <= 0 && window.Context == "" {
				return t.SuggestNext(ctx, nil)
			}
			return t.SuggestNext(ctx, &window)
		})
	cmd.Flags().IntVarP(&window.AvailableMinutes, "minutes", "m", 0, "minutes available")
	cmd.Flags().StringVar(&window.Context, "context", "", "what you are up to")
	return cmd
}

func addCmd() *cobra.Command {
	var params tools.CreateParams
	cmd := query("add <title>", "Create a task", cobra.ExactArgs(1),
		func(ctx context.Context, t *tools.Tools, args []string) (any, error) {
			params.Title = args[0]
			return t.CreateTask(ctx, params)
		})
	cmd.Flags().StringVarP(&params.Project, "project", "p", "", "project name (substring match)")
	cmd.Flags().StringVar(&params.DueDate, "due", "", `due date: ISO, "today", "tomorrow" or "next week"`)
	cmd.Flags().StringVar(&params.Content, "content", "", "task notes")
	cmd.Flags().StringVar(&params.Priority, "priority", "", "none, low, medium or high")
	return cmd
}

func rescheduleCmd() *cobra.Command {
	return query("reschedule <id> <due>", "Move a task to a new due date", cobra.ExactArgs(2),
		func(ctx context.Context, t *tools.Tools, args []string) (any, error) {
			return t.RescheduleTask(ctx, args[0], args[1])
		})
}

func doneCmd() *cobra.Command {
	return query("done <id>", "Complete a task", cobra.ExactArgs(1),
		func(ctx context.Context, t *tools.Tools, args []string) (any, error) {
			if err := t.CompleteTask(ctx, args[0]); err != nil {
				return nil, err
			}
			return map[string]bool{"success": true}, nil
		})
}

func rmCmd() *cobra.Command {
	return query("rm <id>", "Delete a task", cobra.ExactArgs(1),
		func(ctx context.Context, t *tools.Tools, args []string) (any, error) {
			if err := t.DeleteTask(ctx, args[0]); err != nil {
				return nil, err
			}
			return map[string]bool{"success": true}, nil
		})
}

func configCmd() *cobra.Command {
	var timezone, baseURL string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update the saved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if timezone == "" && baseURL == "" {
				return yaml.NewEncoder(os.Stdout).Encode(cfg)
			}
			if timezone != "" {
				cfg.Timezone = timezone
				if _, err := cfg.Location(); err != nil {
					return err
				}
			}
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if err := config.Save(cfg, configPath); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}
			fmt.Printf("Config saved (timezone %s, base URL %s)\n", cfg.Timezone, cfg.BaseURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone, e.g. Asia/Kolkata")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "TickTick API base URL")
	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <access-token>",
		Short: "Save a TickTick access token to the config directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := auth.SaveToken(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Token saved to %s\n", path)
			return nil
		},
	}
}
