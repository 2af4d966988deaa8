package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	reportwriter "github.com/insightloop/insightloop/internal/adapter/report"
	"github.com/insightloop/insightloop/internal/adapter/repository"
	"github.com/insightloop/insightloop/internal/domain/repositories"
	"github.com/insightloop/insightloop/internal/infrastructure/cache"
	"github.com/insightloop/insightloop/internal/infrastructure/database"
	"github.com/insightloop/insightloop/internal/infrastructure/external/zoom"
	"github.com/insightloop/insightloop/internal/infrastructure/storage"
	"github.com/insightloop/insightloop/internal/usecase/monitor"
)

var (
	zoomCreateTopic    string
	zoomCreateStart    string
	zoomCreateDuration int
	zoomMonitorOutput  string
)

var zoomCmd = &cobra.Command{
	Use:   "zoom",
	Short: "Work with Zoom meetings and cloud recordings",
}

var zoomListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled Zoom meetings",
	RunE:  runZoomList,
}

var zoomCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Schedule a Zoom meeting with cloud recording enabled",
	RunE:  runZoomCreate,
}

var zoomMonitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Poll Zoom cloud recordings and analyze new ones",
	Long: `Monitor polls the Zoom account's cloud recordings and runs the full
analysis pipeline over every new audio recording. Processed recordings
are remembered in Redis (or in memory when Redis is disabled), so a
restart does not reprocess old recordings.`,
	RunE: runZoomMonitor,
}

func init() {
	zoomCreateCmd.Flags().StringVarP(&zoomCreateTopic, "topic", "t", "", "meeting topic (required)")
	zoomCreateCmd.Flags().StringVarP(&zoomCreateStart, "start", "s", "", "start time, RFC3339 (default: instant meeting)")
	zoomCreateCmd.Flags().IntVarP(&zoomCreateDuration, "duration", "d", 60, "duration in minutes")
	_ = zoomCreateCmd.MarkFlagRequired("topic")

	zoomMonitorCmd.Flags().StringVarP(&zoomMonitorOutput, "output-dir", "o", ".", "directory for generated reports")

	zoomCmd.AddCommand(zoomListCmd)
	zoomCmd.AddCommand(zoomCreateCmd)
	zoomCmd.AddCommand(zoomMonitorCmd)
}

func runZoomList(cmd *cobra.Command, args []string) error {
	client := zoom.NewClient(&cfg.Zoom, logger)

	meetings, err := client.ListMeetings(cmd.Context())
	if err != nil {
		return err
	}

	if len(meetings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scheduled meetings.")
		return nil
	}
	for _, m := range meetings {
		fmt.Fprintf(cmd.OutOrStdout(), "%d  %-40s  %s  (%d min)\n", m.ID, m.Topic, m.StartTime, m.Duration)
	}
	return nil
}

func runZoomCreate(cmd *cobra.Command, args []string) error {
	client := zoom.NewClient(&cfg.Zoom, logger)

	req := &zoom.CreateMeetingRequest{
		Topic:    zoomCreateTopic,
		Type:     2, // scheduled
		Duration: zoomCreateDuration,
	}
	if zoomCreateStart != "" {
		req.StartTime = zoomCreateStart
	} else {
		req.Type = 1 // instant
	}
	req.Settings.AutoRecording = "cloud"

	meeting, err := client.CreateMeeting(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created meeting %d: %s\nJoin URL: %s\n", meeting.ID, meeting.Topic, meeting.JoinURL)
	return nil
}

func runZoomMonitor(cmd *cobra.Command, args []string) error {
	service, err := buildPipeline()
	if err != nil {
		return err
	}

	client := zoom.NewClient(&cfg.Zoom, logger)

	// Processed-recording store: Redis when enabled, in-memory otherwise.
	var processed monitor.ProcessedStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisStore.Close()
		processed = redisStore
	} else {
		processed = cache.NewMemoryStore()
	}

	var repo repositories.ReportRepository
	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.CloseDB(db)
		repo = repository.NewReportRepository(db)
	}

	var archive monitor.Archiver
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		archive = minioClient
	}

	svc := monitor.NewService(
		client,
		service,
		processed,
		reportwriter.NewWriter(),
		repo,
		archive,
		cfg.Zoom.PollInterval,
		zoomMonitorOutput,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
