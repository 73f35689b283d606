package batch

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/menta2k/photo-framer/pkg/framer"
)

// writePhoto saves a solid-color PNG fixture.
func writePhoto(t *testing.T, path string, width, height int) {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{200, 120, 60, 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("failed to write photo fixture: %v", err)
	}
}

// testEngine builds an engine over a temp frame, input and output directory.
func testEngine(t *testing.T) (*framer.Engine, framer.Config) {
	t.Helper()

	dir := t.TempDir()
	framePath := filepath.Join(dir, "frame.png")
	writePhoto(t, framePath, 1000, 800)

	inputDir := filepath.Join(dir, "input")
	if err := os.MkdirAll(inputDir, 0755); err != nil {
		t.Fatal(err)
	}

	cfg := framer.DefaultConfig()
	cfg.FramePath = framePath
	cfg.InputDir = inputDir
	cfg.OutputDir = filepath.Join(dir, "output")

	engine, err := framer.NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine, cfg
}

// writeInputs creates n valid photos in the input dir and returns their paths.
func writeInputs(t *testing.T, cfg framer.Config, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(cfg.InputDir, name)
		writePhoto(t, path, 600, 900)
		paths = append(paths, path)
	}
	return paths
}

func TestRunPreservesInputOrder(t *testing.T) {
	engine, cfg := testEngine(t)
	files := writeInputs(t, cfg, "c.png", "a.png", "b.png")

	runner := NewRunner(engine)
	results, err := runner.Run(files, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.InputPath != files[i] {
			t.Errorf("Result %d is %s, expected %s", i, r.InputPath, files[i])
		}
	}
}

func TestRunCreatesOutputDirectory(t *testing.T) {
	engine, cfg := testEngine(t)
	files := writeInputs(t, cfg, "a.png")

	runner := NewRunner(engine)
	if _, err := runner.Run(files, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	info, err := os.Stat(cfg.OutputDir)
	if err != nil || !info.IsDir() {
		t.Error("Run should create the output directory")
	}
}

func TestRunEmptyInput(t *testing.T) {
	engine, _ := testEngine(t)

	runner := NewRunner(engine)
	results, err := runner.Run(nil, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty result list, got %d", len(results))
	}
}

func TestRunPerFileFailureContinues(t *testing.T) {
	engine, cfg := testEngine(t)

	good1 := filepath.Join(cfg.InputDir, "a.png")
	writePhoto(t, good1, 600, 900)
	corrupt := filepath.Join(cfg.InputDir, "b.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	good2 := filepath.Join(cfg.InputDir, "c.png")
	writePhoto(t, good2, 1600, 900)

	runner := NewRunner(engine)
	results, err := runner.Run([]string{good1, corrupt, good2}, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	flags := [3]bool{results[0].Success, results[1].Success, results[2].Success}
	if flags != [3]bool{true, false, true} {
		t.Errorf("Expected success flags [true false true], got %v", flags)
	}
	if results[1].Message == "" {
		t.Error("Failed result should carry a message")
	}
}

func TestRunProgressReporting(t *testing.T) {
	engine, cfg := testEngine(t)
	files := writeInputs(t, cfg, "a.png", "b.png", "c.png")

	type call struct {
		completed, total int
		filename         string
	}
	var calls []call

	runner := NewRunner(engine)
	_, err := runner.Run(files, func(completed, total int, filename string) {
		calls = append(calls, call{completed, total, filename})
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(calls) != 3 {
		t.Fatalf("Expected 3 progress calls, got %d", len(calls))
	}
	for i, c := range calls {
		if c.completed != i+1 || c.total != 3 {
			t.Errorf("Call %d was (%d, %d), expected (%d, 3)", i, c.completed, c.total, i+1)
		}
	}
	if calls[0].filename != "a.png" {
		t.Errorf("Expected first progress for a.png, got %s", calls[0].filename)
	}
}

func TestRunCancellation(t *testing.T) {
	engine, cfg := testEngine(t)
	files := writeInputs(t, cfg, "a.png", "b.png", "c.png", "d.png")

	runner := NewRunner(engine)
	results, err := runner.Run(files, func(completed, total int, filename string) {
		if completed == 2 {
			runner.Cancel()
		}
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Cancellation after the 2nd file completes yields exactly 2 results.
	if len(results) != 2 {
		t.Fatalf("Expected 2 results after cancellation, got %d", len(results))
	}
	for _, r := range results {
		if !r.Success {
			t.Errorf("Completed results should be valid: %s", r.Message)
		}
	}
	if !runner.Cancelled() {
		t.Error("Cancelled() should report true")
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	engine, cfg := testEngine(t)
	files := writeInputs(t, cfg, "a.png")

	runner := NewRunner(engine)
	runner.Cancel()
	results, err := runner.Run(files, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results when cancelled up front, got %d", len(results))
	}
}

func TestRunFrameLoadErrorAbortsBeforeFiles(t *testing.T) {
	engine, cfg := testEngine(t)
	files := writeInputs(t, cfg, "a.png")

	// Corrupt the frame after validation has passed.
	if err := os.WriteFile(cfg.FramePath, []byte("broken"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(engine)
	_, err := runner.Run(files, func(completed, total int, filename string) {
		t.Error("No progress should be reported when the frame cannot load")
	})
	if !errors.Is(err, framer.ErrFrameLoad) {
		t.Errorf("Expected ErrFrameLoad, got %v", err)
	}

	// No output was produced.
	entries, _ := os.ReadDir(cfg.OutputDir)
	if len(entries) != 0 {
		t.Errorf("Expected no output files, found %d", len(entries))
	}
}

func TestRunAsync(t *testing.T) {
	engine, cfg := testEngine(t)
	files := writeInputs(t, cfg, "a.png", "b.png")

	runner := NewRunner(engine)
	done := runner.RunAsync(files, nil)

	select {
	case outcome := <-done:
		if outcome.Err != nil {
			t.Fatalf("RunAsync failed: %v", outcome.Err)
		}
		if len(outcome.Results) != 2 {
			t.Errorf("Expected 2 results, got %d", len(outcome.Results))
		}
	case <-time.After(30 * time.Second):
		t.Fatal("RunAsync did not complete")
	}
}

func TestRunAsyncCancelFromAnotherGoroutine(t *testing.T) {
	engine, cfg := testEngine(t)
	files := writeInputs(t, cfg, "a.png", "b.png", "c.png", "d.png", "e.png")

	runner := NewRunner(engine)
	started := make(chan struct{})
	proceed := make(chan struct{})
	var once sync.Once
	done := runner.RunAsync(files, func(completed, total int, filename string) {
		// Hold the worker after the first file so the cancel from the
		// control goroutine lands before the next one starts.
		once.Do(func() {
			close(started)
			<-proceed
		})
	})

	<-started
	runner.Cancel()
	close(proceed)

	select {
	case outcome := <-done:
		if outcome.Err != nil {
			t.Fatalf("RunAsync failed: %v", outcome.Err)
		}
		if len(outcome.Results) != 1 {
			t.Errorf("Expected exactly the first result after cancellation, got %d", len(outcome.Results))
		}
	case <-time.After(30 * time.Second):
		t.Fatal("RunAsync did not complete")
	}
}
