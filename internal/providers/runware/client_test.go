package runware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGenerateImageImmediateResult(t *testing.T) {
	var gotAuth string
	var gotTask taskRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var tasks []taskRequest
		if err := json.NewDecoder(r.Body).Decode(&tasks); err != nil || len(tasks) != 1 {
			t.Errorf("bad task payload: %v", err)
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		gotTask = tasks[0]
		_ = json.NewEncoder(w).Encode(tasksResponse{
			Data: []taskResult{{TaskUUID: tasks[0].TaskUUID, ImageURL: "http://" + r.Host + "/image.jpg"}},
		})
	})
	mux.HandleFunc("/image.jpg", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg-bytes"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL})
	asset, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "a red barn"})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if string(asset.Data) != "jpeg-bytes" {
		t.Fatalf("asset data = %q", asset.Data)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotTask.TaskType != "imageInference" {
		t.Fatalf("taskType = %q", gotTask.TaskType)
	}
	if gotTask.Width != 1024 || gotTask.Height != 1024 {
		t.Fatalf("dimensions = %dx%d, want 1024x1024", gotTask.Width, gotTask.Height)
	}
	if gotTask.NegativePrompt == "" {
		t.Fatal("negative prompt not defaulted")
	}
	if gotTask.Steps != 35 || gotTask.CFGScale != 7.0 {
		t.Fatalf("steps/cfg = %d/%v", gotTask.Steps, gotTask.CFGScale)
	}
}

func TestGenerateImagePollsUntilCompleted(t *testing.T) {
	var polls int

	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		var tasks []taskRequest
		_ = json.NewDecoder(r.Body).Decode(&tasks)
		_ = json.NewEncoder(w).Encode(tasksResponse{
			Data: []taskResult{{TaskUUID: tasks[0].TaskUUID, Status: "processing"}},
		})
	})
	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		polls++
		result := taskResult{Status: "processing"}
		if polls >= 2 {
			result = taskResult{Status: "completed", ImageURL: "http://" + r.Host + "/done.jpg"}
		}
		_ = json.NewEncoder(w).Encode(taskStatusResponse{Data: result})
	})
	mux.HandleFunc("/done.jpg", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("finished"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(Options{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		PollInterval: time.Millisecond,
		MaxPolls:     10,
	})
	asset, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "slow render"})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if string(asset.Data) != "finished" {
		t.Fatalf("asset data = %q", asset.Data)
	}
	if polls < 2 {
		t.Fatalf("polls = %d, want at least 2", polls)
	}
}

func TestGenerateImageTaskFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		var tasks []taskRequest
		_ = json.NewDecoder(r.Body).Decode(&tasks)
		_ = json.NewEncoder(w).Encode(tasksResponse{
			Data: []taskResult{{TaskUUID: tasks[0].TaskUUID, Status: "processing"}},
		})
	})
	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(taskStatusResponse{
			Data: taskResult{Status: "failed", Error: "nsfw content detected"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(Options{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		PollInterval: time.Millisecond,
	})
	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "bad prompt"})
	if err == nil || !strings.Contains(err.Error(), "nsfw content detected") {
		t.Fatalf("err = %v, want task failure message", err)
	}
}

func TestGenerateImageAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"code":"invalidModel","message":"unknown model id"}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL})
	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "anything"})
	if err == nil || !strings.Contains(err.Error(), "invalidModel") {
		t.Fatalf("err = %v, want invalidModel", err)
	}
}

func TestGenerateImageMissingAPIKey(t *testing.T) {
	client := NewClient(Options{})
	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "anything"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
	if client.HasCredentials() {
		t.Fatal("HasCredentials() = true without key")
	}
}

func TestGenerateImageEmptyPrompt(t *testing.T) {
	client := NewClient(Options{APIKey: "test-key"})
	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "   "})
	if err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestClientDefaults(t *testing.T) {
	client := NewClient(Options{APIKey: "k"})
	if client.Model() != defaultModel {
		t.Fatalf("Model() = %q, want %q", client.Model(), defaultModel)
	}
	if client.baseURL != defaultBaseURL {
		t.Fatalf("baseURL = %q, want %q", client.baseURL, defaultBaseURL)
	}
	custom := NewClient(Options{APIKey: "k", BaseURL: "http://example.com/v1/", Model: "my:model@1"})
	if custom.baseURL != "http://example.com/v1" {
		t.Fatalf("baseURL = %q, want trailing slash trimmed", custom.baseURL)
	}
	if custom.Model() != "my:model@1" {
		t.Fatalf("Model() = %q", custom.Model())
	}
}
