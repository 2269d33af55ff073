package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hanja-api/wallpaper-preview/internal/model"
)

// fakeGetter serves canned bodies keyed by URL
type fakeGetter struct {
	mu       sync.Mutex
	bodies   map[string]string
	failures map[string]int
	calls    map[string]int
	block    chan struct{}
}

func newFakeGetter() *fakeGetter {
	return &fakeGetter{
		bodies:   make(map[string]string),
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}
}

func (g *fakeGetter) Get(ctx context.Context, url string) (*http.Response, error) {
	g.mu.Lock()
	g.calls[url]++
	if g.failures[url] > 0 {
		g.failures[url]--
		g.mu.Unlock()
		return nil, fmt.Errorf("unexpected status 500 Internal Server Error from %s", url)
	}
	body, ok := g.bodies[url]
	block := g.block
	g.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !ok {
		return nil, fmt.Errorf("unexpected status 404 Not Found from %s", url)
	}

	return &http.Response{
		StatusCode:    http.StatusOK,
		ContentLength: int64(len(body)),
		Body:          io.NopCloser(strings.NewReader(body)),
	}, nil
}

func waitForStatus(t *testing.T, s *Service, id string, want model.TaskStatus) *model.DownloadTask {
	t.Helper()
	for attempt := 0; attempt < 100; attempt++ {
		s.tasksMutex.RLock()
		task := s.tasks[id]
		status := task.Status
		s.tasksMutex.RUnlock()
		if status == want {
			return task
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("task %s never reached status %s", id, want)
	return nil
}

func TestNewService(t *testing.T) {
	service := NewService(newFakeGetter(), "/tmp", 2)

	if service.downloadDir != "/tmp" {
		t.Errorf("Expected downloadDir to be '/tmp', got '%s'", service.downloadDir)
	}

	if service.maxParallel != 2 {
		t.Errorf("Expected maxParallel to be 2, got %d", service.maxParallel)
	}

	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}

	if NewService(nil, "/tmp", 0).maxParallel != MinParallelDownloads {
		t.Error("maxParallel should be clamped to the minimum")
	}
	if NewService(nil, "/tmp", 50).maxParallel != MaxParallelDownloads {
		t.Error("maxParallel should be clamped to the maximum")
	}
}

func TestEnqueue_SavesFile(t *testing.T) {
	dir := t.TempDir()
	getter := newFakeGetter()
	getter.bodies["/hanja-api/wallpaper?output_type=png"] = "PNGDATA"

	service := NewService(getter, dir, 1)
	task, err := service.Enqueue("/hanja-api/wallpaper?output_type=png", "wallpaper_hsk_7.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	done := waitForStatus(t, service, task.ID, model.TaskStatusCompleted)

	expected := filepath.Join(dir, "wallpaper_hsk_7.png")
	if done.OutputPath != expected {
		t.Errorf("Expected OutputPath %s, got %s", expected, done.OutputPath)
	}
	data, err := os.ReadFile(expected)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if string(data) != "PNGDATA" {
		t.Errorf("Unexpected file content %q", data)
	}
	if done.Percent != 100 || done.BytesDone != int64(len("PNGDATA")) {
		t.Errorf("Unexpected progress: percent=%d bytes=%d", done.Percent, done.BytesDone)
	}

	// no partial files left behind
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), PartialFileSuffix) {
			t.Errorf("Partial file left behind: %s", e.Name())
		}
	}
}

func TestEnqueue_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "wallpaper_hanja_random.png")
	if err := os.WriteFile(existing, []byte("OLD"), 0644); err != nil {
		t.Fatal(err)
	}

	getter := newFakeGetter()
	getter.bodies["u1"] = "NEW"
	service := NewService(getter, dir, 1)

	task, err := service.Enqueue("u1", "wallpaper_hanja_random.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	done := waitForStatus(t, service, task.ID, model.TaskStatusCompleted)

	if filepath.Base(done.OutputPath) != "wallpaper_hanja_random (1).png" {
		t.Errorf("Unexpected output path %s", done.OutputPath)
	}
	old, _ := os.ReadFile(existing)
	if string(old) != "OLD" {
		t.Error("Existing file was overwritten")
	}
}

func TestEnqueue_DuplicateActiveURL(t *testing.T) {
	getter := newFakeGetter()
	getter.block = make(chan struct{})
	getter.bodies["u1"] = "x"
	// u1 stays blocked for the whole test
	service := NewService(getter, t.TempDir(), 1)

	if _, err := service.Enqueue("u1", "a.png"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := service.Enqueue("u1", "a.png"); !errors.Is(err, ErrAlreadyQueued) {
		t.Errorf("Expected ErrAlreadyQueued for duplicate URL, got %v", err)
	}

	if _, err := service.Enqueue("u2", "b.png"); err != nil {
		t.Errorf("Expected no error for different URL, got %v", err)
	}
}

func TestEnqueue_InvalidFilename(t *testing.T) {
	service := NewService(newFakeGetter(), t.TempDir(), 1)
	if _, err := service.Enqueue("u1", ".."); err == nil {
		t.Error("Expected error for invalid file name")
	}
}

func TestRetryThenError(t *testing.T) {
	getter := newFakeGetter()
	getter.failures["u1"] = 5
	service := NewService(getter, t.TempDir(), 1)
	service.retryDelay = time.Millisecond

	task, err := service.Enqueue("u1", "a.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	failed := waitForStatus(t, service, task.ID, model.TaskStatusError)
	if !strings.Contains(failed.LastError, "500") {
		t.Errorf("Expected LastError to mention status, got %q", failed.LastError)
	}

	getter.mu.Lock()
	calls := getter.calls["u1"]
	getter.mu.Unlock()
	if calls != MaxRetries+1 {
		t.Errorf("Expected %d attempts, got %d", MaxRetries+1, calls)
	}
}

func TestRetryRecovers(t *testing.T) {
	getter := newFakeGetter()
	getter.failures["u1"] = 1
	getter.bodies["u1"] = "ok"
	service := NewService(getter, t.TempDir(), 1)
	service.retryDelay = time.Millisecond

	task, err := service.Enqueue("u1", "a.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitForStatus(t, service, task.ID, model.TaskStatusCompleted)
}

func TestStopAndRestartTask(t *testing.T) {
	getter := newFakeGetter()
	getter.block = make(chan struct{})
	getter.bodies["u1"] = "data"
	service := NewService(getter, t.TempDir(), 1)

	task, err := service.Enqueue("u1", "a.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitForStatus(t, service, task.ID, model.TaskStatusStarting)

	if err := service.StopTask(task.ID); err != nil {
		t.Fatalf("StopTask failed: %v", err)
	}
	waitForStatus(t, service, task.ID, model.TaskStatusStopped)

	if err := service.StopTask(task.ID); err == nil {
		t.Error("Expected error stopping a finished task")
	}

	getter.mu.Lock()
	getter.block = nil
	getter.mu.Unlock()

	if err := service.RestartTask(task.ID); err != nil {
		t.Fatalf("RestartTask failed: %v", err)
	}
	waitForStatus(t, service, task.ID, model.TaskStatusCompleted)

	if err := service.RestartTask(task.ID); err == nil {
		t.Error("Expected error restarting a completed task")
	}
}

func TestEnqueue_MarksTaskStartingBeforeWorkerRuns(t *testing.T) {
	getter := newFakeGetter()
	getter.block = make(chan struct{})
	getter.bodies["u1"] = "data"
	dir := t.TempDir()
	service := NewService(getter, dir, 2)

	task, err := service.Enqueue("u1", "a.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Status != model.TaskStatusStarting {
		t.Errorf("Expected Starting, got %s", task.Status)
	}

	// A free slot must not pick the same task up again
	service.startNextPendingTask()
	close(getter.block)
	waitForStatus(t, service, task.ID, model.TaskStatusCompleted)

	getter.mu.Lock()
	calls := getter.calls["u1"]
	getter.mu.Unlock()
	if calls != 1 {
		t.Errorf("Expected one download, got %d", calls)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected one file, got %d", len(entries))
	}

	service.tasksMutex.RLock()
	active := service.activeCount
	service.tasksMutex.RUnlock()
	if active != 0 {
		t.Errorf("Expected no active downloads, got %d", active)
	}
}

func TestStopTask_BeforeWorkerRuns(t *testing.T) {
	getter := newFakeGetter()
	getter.bodies["u1"] = "data"
	getter.bodies["u2"] = "more"
	dir := t.TempDir()
	service := NewService(getter, dir, 1)

	// Enqueue's bookkeeping for a task whose worker has not run yet
	task := &model.DownloadTask{ID: "task-x", URL: "u1", Filename: "a.png", Status: model.TaskStatusStarting, BytesTotal: -1}
	service.tasksMutex.Lock()
	service.tasks[task.ID] = task
	service.order = append(service.order, task.ID)
	service.activeCount++
	service.tasksMutex.Unlock()

	if err := service.StopTask(task.ID); err != nil {
		t.Fatalf("StopTask failed: %v", err)
	}
	service.startTask(task)
	waitForStatus(t, service, task.ID, model.TaskStatusStopped)

	getter.mu.Lock()
	calls := getter.calls["u1"]
	getter.mu.Unlock()
	if calls != 0 {
		t.Errorf("Expected no download for a stopped task, got %d", calls)
	}

	// The slot is released for the next download
	next, err := service.Enqueue("u2", "b.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitForStatus(t, service, next.ID, model.TaskStatusCompleted)

	if _, err := os.Stat(filepath.Join(dir, "a.png")); !os.IsNotExist(err) {
		t.Errorf("Expected stopped task to leave no file, got %v", err)
	}
}

func TestParallelLimit(t *testing.T) {
	getter := newFakeGetter()
	getter.block = make(chan struct{})
	getter.bodies["u1"] = "1"
	getter.bodies["u2"] = "2"
	service := NewService(getter, t.TempDir(), 1)

	t1, _ := service.Enqueue("u1", "a.png")
	t2, _ := service.Enqueue("u2", "b.png")

	waitForStatus(t, service, t1.ID, model.TaskStatusStarting)
	if got, _ := service.GetTask(t2.ID); got.Status != model.TaskStatusPending {
		t.Errorf("Expected second task to wait, got %s", got.Status)
	}

	close(getter.block)
	waitForStatus(t, service, t1.ID, model.TaskStatusCompleted)
	waitForStatus(t, service, t2.ID, model.TaskStatusCompleted)
}

func TestGetTaskAndRemove(t *testing.T) {
	getter := newFakeGetter()
	getter.bodies["u1"] = "x"
	service := NewService(getter, t.TempDir(), 1)

	task, err := service.Enqueue("u1", "a.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitForStatus(t, service, task.ID, model.TaskStatusCompleted)

	retrievedTask, exists := service.GetTask(task.ID)
	if !exists {
		t.Error("Expected task to exist")
	}
	if retrievedTask.ID != task.ID {
		t.Errorf("Expected task ID to be '%s', got '%s'", task.ID, retrievedTask.ID)
	}

	if _, exists = service.GetTask("non-existing-id"); exists {
		t.Error("Expected task to not exist")
	}

	if all := service.GetAllTasks(); len(all) != 1 || all[0].ID != task.ID {
		t.Errorf("Unexpected GetAllTasks result: %v", all)
	}

	if err := service.RemoveTask(task.ID); err != nil {
		t.Fatalf("RemoveTask failed: %v", err)
	}
	if len(service.GetAllTasks()) != 0 {
		t.Error("Expected no tasks after removal")
	}
	if err := service.RemoveTask(task.ID); err == nil {
		t.Error("Expected error removing unknown task")
	}
}

func TestUpdateCallback(t *testing.T) {
	service := NewService(newFakeGetter(), "/tmp", 1)

	updateCalled := false
	var updatedTask *model.DownloadTask

	service.SetUpdateCallback(func(task *model.DownloadTask) {
		updateCalled = true
		updatedTask = task
	})

	task := &model.DownloadTask{
		ID:     "test-id",
		URL:    "/hanja-api/wallpaper?output_type=png",
		Status: model.TaskStatusDownloading,
	}

	service.notifyUpdate(task)

	if !updateCalled {
		t.Error("Expected update callback to be called")
	}

	if updatedTask == task {
		t.Error("Expected callback to receive a copy of the task")
	}
	if updatedTask.ID != task.ID || updatedTask.Status != task.Status {
		t.Errorf("Expected copy of %+v, got %+v", task, updatedTask)
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}

	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("Expected ID to start with 'task-', got: %s", id1)
	}

	// Check UUID format (task- + 36 chars for UUID)
	if len(id1) != len(TaskIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(TaskIDPrefix)+36, len(id1), id1)
	}
}
