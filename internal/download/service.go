package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hanja-api/wallpaper-preview/internal/model"
	"github.com/hanja-api/wallpaper-preview/internal/platform"
)

// Download tuning
const (
	DefaultRetryDelay    = 2 * time.Second
	MaxRetries           = 1
	ProgressNotifyEvery  = 200 * time.Millisecond
	PartialFileSuffix    = ".part"
	TaskIDPrefix         = "task-"
	MinParallelDownloads = 1
	MaxParallelDownloads = 10
)

// ErrAlreadyQueued is returned by Enqueue when an unfinished task already
// downloads the same URL
var ErrAlreadyQueued = errors.New("task already queued")

// Service handles download operations
type Service struct {
	tasks       map[string]*model.DownloadTask
	order       []string
	cancels     map[string]context.CancelFunc
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	downloadDir string
	getter      Getter
	retryDelay  time.Duration
	onUpdate    func(*model.DownloadTask) // callback for UI updates
}

// NewService creates a new download service
func NewService(getter Getter, downloadDir string, maxParallel int) *Service {
	return &Service{
		tasks:       make(map[string]*model.DownloadTask),
		cancels:     make(map[string]context.CancelFunc),
		maxParallel: clampParallel(maxParallel),
		downloadDir: downloadDir,
		getter:      getter,
		retryDelay:  DefaultRetryDelay,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Service) SetMaxParallelDownloads(max int) {
	s.tasksMutex.Lock()
	s.maxParallel = clampParallel(max)
	s.tasksMutex.Unlock()

	s.startNextPendingTask()
}

// SetDownloadDirectory sets the directory new downloads are saved to
func (s *Service) SetDownloadDirectory(dir string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.downloadDir = dir
}

// Enqueue adds a new download task for url, saved under filename
func (s *Service) Enqueue(url, filename string) (*model.DownloadTask, error) {
	name, err := platform.SanitizeFilename(filename)
	if err != nil {
		return nil, err
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// Check for duplicate URLs
	for _, task := range s.tasks {
		if task.URL == url && !task.Status.IsFinished() {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyQueued, url)
		}
	}

	task := &model.DownloadTask{
		ID:         generateTaskID(),
		URL:        url,
		Filename:   name,
		Status:     model.TaskStatusPending,
		BytesTotal: -1,
		StartedAt:  time.Now(),
	}

	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)

	// Try to start task if we have capacity
	if s.activeCount < s.maxParallel {
		s.activeCount++
		task.Status = model.TaskStatusStarting
		go s.startTask(task)
	}

	return snapshot(task), nil
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	return snapshot(task), true
}

// GetAllTasks returns all tasks in the order they were added
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, snapshot(s.tasks[id]))
	}
	return tasks
}

// StopTask stops a running task
func (s *Service) StopTask(id string) error {
	s.tasksMutex.Lock()

	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}

	if task.Status == model.TaskStatusPending {
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
		return nil
	}

	if !task.Status.IsActive() {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task is not active: %s", task.Status)
	}

	// Set stopping status; the task goroutine finishes the transition
	task.Status = model.TaskStatusStopping
	if cancel, ok := s.cancels[id]; ok {
		cancel()
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	return nil
}

// RestartTask queues a stopped or failed task again
func (s *Service) RestartTask(id string) error {
	s.tasksMutex.Lock()

	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}
	if !task.Status.CanRetry() {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task cannot be restarted in status: %s", task.Status)
	}

	task.Status = model.TaskStatusPending
	task.Progress = 0
	task.Percent = 0
	task.BytesDone = 0
	task.BytesTotal = -1
	task.LastError = ""
	task.FinishedAt = time.Time{}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	s.startNextPendingTask()
	return nil
}

// RemoveTask stops the task if needed and forgets it
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	if _, exists := s.tasks[id]; !exists {
		return fmt.Errorf("task not found: %s", id)
	}
	if cancel, ok := s.cancels[id]; ok {
		cancel()
	}

	delete(s.tasks, id)
	for i, tid := range s.order {
		if tid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// startTask downloads a task. The caller has already counted it as active
// and moved it to Starting.
func (s *Service) startTask(task *model.DownloadTask) {
	ctx, cancel := context.WithCancel(context.Background())

	s.tasksMutex.Lock()
	if _, ok := s.tasks[task.ID]; !ok || task.Status != model.TaskStatusStarting {
		// Stopped or removed before this goroutine ran
		s.activeCount--
		stopped := ok && task.Status == model.TaskStatusStopping
		if stopped {
			task.Status = model.TaskStatusStopped
			task.FinishedAt = time.Now()
		}
		s.tasksMutex.Unlock()
		cancel()

		if stopped {
			s.notifyUpdate(task)
		}
		s.startNextPendingTask()
		return
	}
	s.cancels[task.ID] = cancel
	dir := s.downloadDir
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)

	defer func() {
		cancel()
		s.tasksMutex.Lock()
		delete(s.cancels, task.ID)
		s.activeCount--
		s.tasksMutex.Unlock()

		// Try to start next pending task
		s.startNextPendingTask()
	}()

	outputPath, err := s.downloadWithRetry(ctx, dir, task)

	// Update final status
	s.tasksMutex.Lock()
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			task.Status = model.TaskStatusStopped
		} else {
			task.Status = model.TaskStatusError
			task.LastError = err.Error()
		}
	} else {
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
		task.OutputPath = outputPath
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	log.Printf("Download %s finished: status=%s output=%s", task.ID, task.Status, outputPath)
	s.notifyUpdate(task)
}

// downloadWithRetry attempts download with retry logic
func (s *Service) downloadWithRetry(ctx context.Context, dir string, task *model.DownloadTask) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			// Backoff delay
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}

			log.Printf("Retrying download for task %s, attempt %d", task.ID, attempt+1)
		}

		path, err := s.fetchToFile(ctx, dir, task)
		if err == nil {
			return path, nil
		}

		lastErr = err
		log.Printf("Download attempt %d failed for task %s: %v", attempt+1, task.ID, err)

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", lastErr
}

// fetchToFile streams the response into a .part file and renames it into place
func (s *Service) fetchToFile(ctx context.Context, dir string, task *model.DownloadTask) (string, error) {
	resp, err := s.getter.Get(ctx, task.URL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusDownloading
	task.BytesDone = 0
	task.BytesTotal = resp.ContentLength
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	tmp, err := os.CreateTemp(dir, "."+task.Filename+"-*"+PartialFileSuffix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	pw := &progressWriter{service: s, task: task}
	if _, err := io.Copy(io.MultiWriter(tmp, pw), resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", task.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", task.Filename, err)
	}

	finalPath, err := platform.UniqueFilePath(filepath.Join(dir, task.Filename))
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}

	return finalPath, nil
}

// progressWriter counts bytes and throttles progress notifications
type progressWriter struct {
	service    *Service
	task       *model.DownloadTask
	lastNotify time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	s := pw.service
	s.tasksMutex.Lock()
	pw.task.BytesDone += int64(len(p))
	if pw.task.BytesTotal > 0 {
		percent := float64(pw.task.BytesDone) / float64(pw.task.BytesTotal) * 100
		pw.task.Percent = int(percent)
		pw.task.Progress = percent / 100.0
	}
	s.tasksMutex.Unlock()

	if time.Since(pw.lastNotify) >= ProgressNotifyEvery {
		pw.lastNotify = time.Now()
		s.notifyUpdate(pw.task)
	}
	return len(p), nil
}

// startNextPendingTask starts pending tasks while we have capacity
func (s *Service) startNextPendingTask() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, id := range s.order {
		if s.activeCount >= s.maxParallel {
			return
		}
		task := s.tasks[id]
		if task.Status == model.TaskStatusPending {
			s.activeCount++
			task.Status = model.TaskStatusStarting
			go s.startTask(task)
		}
	}
}

// notifyUpdate calls the update callback, if set, with a copy of the task
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	onUpdate := s.onUpdate
	copied := snapshot(task)
	s.tasksMutex.RUnlock()

	if onUpdate != nil {
		onUpdate(copied)
	}
}

// snapshot copies a task so callers never share the service's pointer.
// Callers hold tasksMutex.
func snapshot(task *model.DownloadTask) *model.DownloadTask {
	c := *task
	return &c
}

func clampParallel(n int) int {
	if n < MinParallelDownloads {
		return MinParallelDownloads
	}
	if n > MaxParallelDownloads {
		return MaxParallelDownloads
	}
	return n
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return TaskIDPrefix + uuid.New().String()
}
