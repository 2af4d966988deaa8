package zoom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/insightloop/insightloop/pkg/config"
)

// Client wraps the Zoom REST API behind server-to-server OAuth. Tokens are
// fetched lazily and reused until shortly before expiry.
type Client struct {
	baseURL     string
	downloadDir string
	tokens      oauth2.TokenSource
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a Zoom API client from the provided config.
func NewClient(cfg *config.ZoomConfig, logger *zap.Logger) *Client {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	source := &accountTokenSource{
		ctx:          context.Background(),
		oauthURL:     cfg.OAuthURL,
		accountID:    cfg.AccountID,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		client:       httpClient,
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		downloadDir: cfg.DownloadDir,
		tokens:      oauth2.ReuseTokenSource(nil, source),
		client:      httpClient,
		logger:      logger,
	}
}

// Meeting is a scheduled Zoom meeting.
type Meeting struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid"`
	Topic     string `json:"topic"`
	Type      int    `json:"type"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Timezone  string `json:"timezone"`
	JoinURL   string `json:"join_url"`
}

// CreateMeetingRequest is the payload for scheduling a meeting.
type CreateMeetingRequest struct {
	Topic     string `json:"topic"`
	Type      int    `json:"type"`
	StartTime string `json:"start_time,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
	Agenda    string `json:"agenda,omitempty"`
	Settings  struct {
		AutoRecording string `json:"auto_recording,omitempty"`
	} `json:"settings,omitempty"`
}

// RecordingFile is one file of a cloud recording.
type RecordingFile struct {
	ID            string `json:"id"`
	FileType      string `json:"file_type"`
	FileExtension string `json:"file_extension"`
	FileSize      int64  `json:"file_size"`
	RecordingType string `json:"recording_type"`
	Status        string `json:"status"`
	DownloadURL   string `json:"download_url"`
}

// RecordingMeeting is one meeting's cloud recording set.
type RecordingMeeting struct {
	UUID           string          `json:"uuid"`
	ID             int64           `json:"id"`
	Topic          string          `json:"topic"`
	StartTime      string          `json:"start_time"`
	Duration       int             `json:"duration"`
	RecordingFiles []RecordingFile `json:"recording_files"`
}

type meetingsPage struct {
	Meetings []Meeting `json:"meetings"`
}

type recordingsPage struct {
	From     string             `json:"from"`
	To       string             `json:"to"`
	Meetings []RecordingMeeting `json:"meetings"`
}

// ListMeetings returns the authenticated user's scheduled meetings.
func (c *Client) ListMeetings(ctx context.Context) ([]Meeting, error) {
	var page meetingsPage
	if err := c.doJSON(ctx, http.MethodGet, "/users/me/meetings", nil, &page); err != nil {
		return nil, err
	}
	return page.Meetings, nil
}

// CreateMeeting schedules a meeting for the authenticated user.
func (c *Client) CreateMeeting(ctx context.Context, req *CreateMeetingRequest) (*Meeting, error) {
	var meeting Meeting
	if err := c.doJSON(ctx, http.MethodPost, "/users/me/meetings", req, &meeting); err != nil {
		return nil, err
	}
	if c.logger != nil {
		c.logger.Info("✅ Zoom meeting created",
			zap.Int64("meeting_id", meeting.ID),
			zap.String("topic", meeting.Topic),
		)
	}
	return &meeting, nil
}

// ListRecordings returns cloud recordings completed between from and to
// (inclusive, dates in YYYY-MM-DD).
func (c *Client) ListRecordings(ctx context.Context, from, to time.Time) ([]RecordingMeeting, error) {
	query := url.Values{}
	query.Set("from", from.Format("2006-01-02"))
	query.Set("to", to.Format("2006-01-02"))

	var page recordingsPage
	if err := c.doJSON(ctx, http.MethodGet, "/users/me/recordings?"+query.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return page.Meetings, nil
}

// DownloadRecording fetches one recording file into the download directory
// and returns the local path. Transient failures are retried.
func (c *Client) DownloadRecording(ctx context.Context, meeting *RecordingMeeting, file *RecordingFile) (string, error) {
	ext := file.FileExtension
	if ext == "" {
		ext = file.FileType
	}
	localPath := filepath.Join(c.downloadDir, fmt.Sprintf("zoom_%d_%s.%s", meeting.ID, file.ID, ext))

	downloadFn := func() error {
		token, err := c.tokens.Token()
		if err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.DownloadURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		token.SetAuthHeader(req)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("zoom download returned status %d", resp.StatusCode)
		}

		out, err := os.Create(localPath)
		if err != nil {
			return backoff.Permanent(err)
		}
		defer out.Close()

		if _, err := io.Copy(out, resp.Body); err != nil {
			return err
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(downloadFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("failed to download recording: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("📥 Recording downloaded",
			zap.String("path", localPath),
			zap.String("file_type", file.FileType),
		)
	}

	return localPath, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("failed to get zoom token: %w", err)
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	token.SetAuthHeader(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("zoom request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("zoom returned status %d: %s", resp.StatusCode, string(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode zoom response: %w", err)
		}
	}
	return nil
}
