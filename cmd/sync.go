package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"adsync/internal/config"
	"adsync/internal/core/domain"
	"adsync/internal/core/port"
)

func syncCommand(cfg *config.Config) *cobra.Command {
	var req port.SyncRequest
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync for an owner and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(*cfg)
			a, err := newApp(cmd.Context(), *cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			_, err = a.sync.Sync(cmd.Context(), req, logEvent(logger))
			return err
		},
	}
	cmd.Flags().StringVar(&req.Owner, "owner", "", "owner whose programs are synced")
	cmd.Flags().StringVar(&req.Status, "status", "", "only fetch programs with this upstream status")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

// logEvent renders sync events as log lines.
func logEvent(logger *slog.Logger) port.EmitFunc {
	return func(ev domain.SyncEvent) {
		attrs := []any{slog.String("run_id", ev.RunID), slog.String("owner", ev.Owner)}
		switch ev.Type {
		case domain.EventInfo:
			logger.Info("sync info", append(attrs,
				slog.Int("total", ev.Info.Total),
				slog.Int("pages", ev.Info.Pages),
				slog.Int("local", ev.Info.Local))...)
		case domain.EventProgress:
			logger.Info("sync progress", append(attrs,
				slog.String("phase", string(ev.Progress.Phase)),
				slog.Int("completed", ev.Progress.Completed),
				slog.Int("total", ev.Progress.Total),
				slog.Float64("percentage", ev.Progress.Percentage))...)
		case domain.EventComplete:
			r := ev.Report
			logger.Info("sync complete", append(attrs,
				slog.Int64("added", r.Added),
				slog.Int64("updated", r.Updated),
				slog.Int64("deleted", r.Deleted),
				slog.Int("pages_failed", r.PagesFailed),
				slog.Int("programs_skipped", r.ProgramsSkipped),
				slog.Int("businesses_failed", r.BusinessesFailed),
				slog.Int64("total_ms", r.Timings.TotalMS))...)
		case domain.EventError:
			logger.Error("sync error", append(attrs, slog.String("message", ev.Message))...)
		default:
			logger.Info("sync "+string(ev.Type), attrs...)
		}
	}
}
