package batch

import (
	"context"
	"image"
	"image/color"
	_ "image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"restitch/internal/history"
	"restitch/internal/logging"
	"restitch/internal/testsupport"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodeOutput(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestProcessAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	writeSource(t, cfg.Paths.InputDir, "a.txt",
		`["`+testsupport.PNGStrip(t, 6, 4, red)+`","`+testsupport.PNGStrip(t, 6, 4, blue)+`"]`)
	writeSource(t, cfg.Paths.InputDir, "b.txt",
		testsupport.DataURLStrip(t, 5, 3, red)+"\n\n"+testsupport.DataURLStrip(t, 5, 2, blue)+"\n")
	writeSource(t, cfg.Paths.InputDir, "c.txt", "garbage\nmore garbage")

	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var hooked []FileResult
	driver := New(cfg, logging.NewNop(),
		WithHistory(store),
		WithFileHook(func(r FileResult) { hooked = append(hooked, r) }))

	summary, err := driver.ProcessAll(context.Background(), cfg.Paths.InputDir, cfg.Paths.OutputDir, "*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Found != 3 || summary.Processed != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %+v, want found=3 processed=2 failed=1", summary)
	}
	if summary.RunID == "" {
		t.Fatal("summary should carry a run ID")
	}
	if len(hooked) != 3 {
		t.Fatalf("file hook fired %d times, want 3", len(hooked))
	}

	out := decodeOutput(t, filepath.Join(cfg.Paths.OutputDir, "a.jpg"))
	if out.Bounds().Dx() != 6 || out.Bounds().Dy() != 8 {
		t.Fatalf("a.jpg size %v, want 6x8", out.Bounds())
	}
	out = decodeOutput(t, filepath.Join(cfg.Paths.OutputDir, "b.jpg"))
	if out.Bounds().Dx() != 5 || out.Bounds().Dy() != 5 {
		t.Fatalf("b.jpg size %v, want 5x5", out.Bounds())
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "c.jpg")); !os.IsNotExist(err) {
		t.Fatal("c.jpg should not exist for a failed file")
	}

	records, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("history holds %d records, want 3", len(records))
	}
	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats[history.StatusCompleted] != 2 || stats[history.StatusFailed] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestProcessAllIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHistoryDisabled())
	writeSource(t, cfg.Paths.InputDir, "a.txt",
		`["`+testsupport.PNGStrip(t, 4, 4, color.RGBA{G: 255, A: 255})+`"]`)

	driver := New(cfg, logging.NewNop())
	ctx := context.Background()

	if _, err := driver.ProcessAll(ctx, cfg.Paths.InputDir, cfg.Paths.OutputDir, "*.txt"); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, "a.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := driver.ProcessAll(ctx, cfg.Paths.InputDir, cfg.Paths.OutputDir, "*.txt"); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, "a.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("rerunning an unchanged batch should produce identical output")
	}
}

func TestProcessAllNoMatches(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	driver := New(cfg, logging.NewNop())

	summary, err := driver.ProcessAll(context.Background(), cfg.Paths.InputDir, cfg.Paths.OutputDir, "*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Found != 0 || summary.Processed != 0 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want all zero", summary)
	}
}

func TestProcessAllMalformedJSONCountsAsFailed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg.Paths.InputDir, "broken.txt", `["unterminated`)

	driver := New(cfg, logging.NewNop())
	summary, err := driver.ProcessAll(context.Background(), cfg.Paths.InputDir, cfg.Paths.OutputDir, "*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 1 || summary.Processed != 0 {
		t.Fatalf("summary = %+v, want one failure", summary)
	}
}

func TestProcessAllLockContention(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	holder := flock.New(filepath.Join(cfg.Paths.OutputDir, lockFileName))
	locked, err := holder.TryLock()
	if err != nil || !locked {
		t.Fatalf("failed to hold test lock: locked=%v err=%v", locked, err)
	}
	defer holder.Unlock()

	driver := New(cfg, logging.NewNop())
	if _, err := driver.ProcessAll(context.Background(), cfg.Paths.InputDir, cfg.Paths.OutputDir, "*.txt"); err == nil {
		t.Fatal("expected error while output lock is held")
	}
}

func TestProcessOne(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := writeSource(t, cfg.Paths.InputDir, "page.txt",
		testsupport.PNGStrip(t, 3, 2, color.RGBA{R: 255, A: 255})+"\n"+
			testsupport.PNGStrip(t, 3, 2, color.RGBA{B: 255, A: 255}))

	driver := New(cfg, logging.NewNop())
	result, err := driver.ProcessOne(context.Background(), source, cfg.Paths.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if result.Failed() {
		t.Fatalf("unexpected failure: %v", result.Err)
	}
	want := filepath.Join(cfg.Paths.OutputDir, "combined_page.jpg")
	if result.Output != want {
		t.Fatalf("output = %q, want %q", result.Output, want)
	}
	out := decodeOutput(t, want)
	if out.Bounds().Dx() != 3 || out.Bounds().Dy() != 4 {
		t.Fatalf("combined size %v, want 3x4", out.Bounds())
	}
}

func TestProcessOneNothingDecodes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := writeSource(t, cfg.Paths.InputDir, "junk.txt", "not\nan image")

	driver := New(cfg, logging.NewNop())
	result, err := driver.ProcessOne(context.Background(), source, cfg.Paths.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Failed() {
		t.Fatal("expected failure when nothing decodes")
	}
	if result.Output != "" {
		t.Fatalf("no output path expected, got %q", result.Output)
	}
}

func TestSortPathsNumericAware(t *testing.T) {
	paths := []string{"/in/part10.txt", "/in/part2.txt", "/in/part1.txt"}
	sortPaths(paths)
	want := []string{"/in/part1.txt", "/in/part2.txt", "/in/part10.txt"}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("got %v, want %v", paths, want)
		}
	}
}
