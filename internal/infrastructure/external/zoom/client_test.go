package zoom

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/insightloop/insightloop/pkg/config"
)

func newTestServer(t *testing.T, tokenCalls *int, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		*tokenCalls++
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			t.Fatalf("unexpected basic auth %q/%q", user, pass)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.Form.Get("grant_type") != "account_credentials" {
			t.Fatalf("unexpected grant_type %q", r.Form.Get("grant_type"))
		}
		if r.Form.Get("account_id") != "acct-1" {
			t.Fatalf("unexpected account_id %q", r.Form.Get("account_id"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "zoom-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/", handler)
	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	return NewClient(&config.ZoomConfig{
		AccountID:    "acct-1",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		BaseURL:      ts.URL,
		OAuthURL:     ts.URL + "/oauth/token",
		DownloadDir:  t.TempDir(),
	}, nil)
}

func TestListMeetings_ReusesToken(t *testing.T) {
	tokenCalls := 0
	apiCalls := 0
	ts := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		apiCalls++
		if r.URL.Path != "/users/me/meetings" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer zoom-token" {
			t.Fatalf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"meetings": []map[string]interface{}{
				{"id": 101, "topic": "Standup", "duration": 15},
			},
		})
	})
	defer ts.Close()

	client := newTestClient(t, ts)

	for i := 0; i < 3; i++ {
		meetings, err := client.ListMeetings(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(meetings) != 1 || meetings[0].Topic != "Standup" {
			t.Fatalf("unexpected meetings %+v", meetings)
		}
	}

	if apiCalls != 3 {
		t.Fatalf("expected 3 api calls got %d", apiCalls)
	}
	if tokenCalls != 1 {
		t.Fatalf("expected token fetched once got %d", tokenCalls)
	}
}

func TestCreateMeeting(t *testing.T) {
	tokenCalls := 0
	ts := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/me/meetings" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req CreateMeetingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Topic != "Planning" || req.Type != 2 {
			t.Fatalf("unexpected payload %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 202, "topic": "Planning", "join_url": "https://zoom.us/j/202",
		})
	})
	defer ts.Close()

	client := newTestClient(t, ts)

	meeting, err := client.CreateMeeting(context.Background(), &CreateMeetingRequest{Topic: "Planning", Type: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meeting.ID != 202 || meeting.JoinURL == "" {
		t.Fatalf("unexpected meeting %+v", meeting)
	}
}

func TestListRecordings(t *testing.T) {
	tokenCalls := 0
	ts := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me/recordings" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("from") != "2026-08-01" || r.URL.Query().Get("to") != "2026-08-02" {
			t.Fatalf("unexpected window %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"meetings": []map[string]interface{}{
				{
					"uuid": "abc==", "id": 303, "topic": "Retro",
					"recording_files": []map[string]interface{}{
						{"id": "f1", "file_type": "M4A", "file_extension": "m4a", "download_url": "http://example.com/f1"},
					},
				},
			},
		})
	})
	defer ts.Close()

	client := newTestClient(t, ts)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	recordings, err := client.ListRecordings(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recordings) != 1 || len(recordings[0].RecordingFiles) != 1 {
		t.Fatalf("unexpected recordings %+v", recordings)
	}
}

func TestDownloadRecording(t *testing.T) {
	tokenCalls := 0
	ts := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download/f1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer zoom-token" {
			t.Fatalf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte("audio-bytes"))
	})
	defer ts.Close()

	client := newTestClient(t, ts)

	meeting := &RecordingMeeting{ID: 303, Topic: "Retro"}
	file := &RecordingFile{ID: "f1", FileType: "M4A", FileExtension: "m4a", DownloadURL: ts.URL + "/download/f1"}

	path, err := client.DownloadRecording(context.Background(), meeting, file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected downloaded file: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Fatalf("unexpected contents %q", data)
	}
}
