package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/bubblenav/internal/bubble"
	"github.com/san-kum/bubblenav/internal/sim"
)

func testResult() *sim.Result {
	vp := bubble.Viewport{Width: 800, Height: 600}
	return &sim.Result{
		Frames: []sim.Frame{
			{Tick: 0, Viewport: vp, Bodies: []bubble.Body{
				{Label: "info", X: 100, Y: 500, VX: 1.5, VY: -3},
				{Label: "resume", X: 300, Y: 520, VX: -2, VY: -2.5},
			}},
			{Tick: 10, Viewport: vp, Bodies: []bubble.Body{
				{Label: "info", X: 115, Y: 48, VX: 1.5, VY: -3, Stopped: true},
				{Label: "resume", X: 280, Y: 495, VX: -2, VY: -2.5},
			}},
		},
		Metrics:    map[string]float64{"frozen": 0.5},
		TicksTaken: 10,
		SettledAt:  -1,
		Collisions: 2,
		Labels:     []string{"info", "resume"},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	info := RunInfo{Preset: "site", Seed: 42, Viewport: bubble.Viewport{Width: 800, Height: 600}, Ticks: 10, SampleEvery: 10}
	runID, err := st.Save(info, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "site_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 || meta.Preset != "site" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Metrics["frozen"] != 0.5 {
		t.Errorf("expected frozen 0.5, got %f", meta.Metrics["frozen"])
	}
	if meta.SettledAt != -1 || meta.Frames != 2 || len(meta.Labels) != 2 {
		t.Errorf("unexpected run summary: %+v", meta)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[1].Tick != 10 || len(frames[1].Bodies) != 2 {
		t.Errorf("unexpected frame: %+v", frames[1])
	}
	got := frames[1].Bodies[0]
	if got.Label != "info" || !got.Stopped || got.X != 115 || got.VY != -3 {
		t.Errorf("unexpected body: %+v", got)
	}
	if frames[0].Viewport.Width != 800 {
		t.Errorf("expected viewport width 800, got %f", frames[0].Viewport.Width)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(RunInfo{Preset: "site"}, testResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("expected newest run first")
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save(RunInfo{}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "run_") {
		t.Errorf("expected default run prefix, got %q", runID)
	}

	for _, name := range []string{"metadata.json", "frames.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestLoadFramesMalformed(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	runDir := filepath.Join(dir, "bad")
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatal(err)
	}
	body := strings.Join(framesHeader, ",") + "\nx,0,800,600,a,1,2,3,4,false\n"
	if err := os.WriteFile(filepath.Join(runDir, "frames.csv"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := st.LoadFrames("bad"); !errors.Is(err, ErrBadFrames) {
		t.Errorf("expected ErrBadFrames, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	res := testResult()
	var buf bytes.Buffer
	if err := ExportJSON(&buf, Metadata(RunInfo{Preset: "site"}, res), res.Frames); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Preset != "site" || len(data.FrameData) != 2 {
		t.Errorf("unexpected export: %+v", data)
	}
	if b := data.FrameData[1].Bubbles[0]; b.Label != "info" || !b.Stopped {
		t.Errorf("unexpected bubble: %+v", b)
	}
}

func TestWriteFrames(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrames(&buf, testResult().Frames); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 rows, got %d lines", len(lines))
	}
	if lines[0] != "tick,epoch,width,height,label,x,y,vx,vy,stopped" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasSuffix(lines[3], ",true") {
		t.Errorf("expected stopped row, got %q", lines[3])
	}
}
