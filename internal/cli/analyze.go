package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	reportwriter "github.com/insightloop/insightloop/internal/adapter/report"
	"github.com/insightloop/insightloop/internal/domain/entities"
)

var (
	analyzeTitle        string
	analyzeLanguage     string
	analyzeParticipants []string
	analyzeOutput       string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <audio-file>",
	Short: "Analyze one meeting recording and write a report",
	Long: `Analyze runs the full pipeline over a local audio file: transcription,
speaker attribution, summary and action-item extraction. The report is
written as a JSON document and a short digest is printed.

Examples:
  insightloop analyze meeting.wav
  insightloop analyze standup.m4a --title "Daily Standup" --language en
  insightloop analyze review.mp3 --participants "Alice,Bob" -o review_report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeTitle, "title", "t", "Meeting", "meeting title for the report")
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "auto", "audio language code, or auto")
	analyzeCmd.Flags().StringSliceVarP(&analyzeParticipants, "participants", "p", nil, "known participant names")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "report file path (default meeting_report_<timestamp>.json)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	service, err := buildPipeline()
	if err != nil {
		return err
	}

	generated, err := service.GenerateReport(cmd.Context(), args[0], analyzeTitle, analyzeLanguage, analyzeParticipants)
	if err != nil {
		return err
	}

	writer := reportwriter.NewWriter()
	path, err := writer.Write(generated, analyzeOutput)
	if err != nil {
		return err
	}

	printDigest(cmd.OutOrStdout(), generated, path)
	return nil
}

// printDigest renders the human-readable run summary.
func printDigest(w io.Writer, r *entities.MeetingReport, path string) {
	fmt.Fprintf(w, "\n📊 %s\n", r.MeetingInfo.Title)
	fmt.Fprintf(w, "   Date:     %s\n", r.MeetingInfo.Date)
	fmt.Fprintf(w, "   Duration: %.1f minutes\n", r.MeetingInfo.DurationMinutes)
	fmt.Fprintf(w, "   Language: %s\n", r.MeetingInfo.Language)
	if len(r.MeetingInfo.Participants) > 0 {
		fmt.Fprintf(w, "   Participants: %v\n", r.MeetingInfo.Participants)
	}

	fmt.Fprintf(w, "\n📝 Summary (%s):\n   %s\n", r.SummarySource, r.Summary.ExecutiveSummary)

	fmt.Fprintf(w, "\n✅ Action items (%s): %d total, %d high priority\n",
		r.ActionItemsSource, r.Stats.TotalActionItems, r.Stats.HighPriorityItems)
	for i, item := range r.ActionItems {
		if i == 3 {
			fmt.Fprintf(w, "   ... and %d more in the report file\n", len(r.ActionItems)-3)
			break
		}
		fmt.Fprintf(w, "   %d. [%s] %s (%s, due %s)\n",
			item.ID, item.Priority, item.Title, item.Assignee, item.DueDate)
	}

	fmt.Fprintf(w, "\n💾 Report written to %s\n", path)
}
