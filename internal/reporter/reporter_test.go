package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hanpf2391/clear-ai-sub001/internal/cluster"
	"github.com/hanpf2391/clear-ai-sub001/internal/scanner"
)

func fakeResult(t *testing.T) *scanner.Result {
	t.Helper()

	reg := cluster.NewRegistry()
	now := time.Now()

	png := reg.GetOrCreate(cluster.Derive("a.png", "/tmp/x", now, now))
	reg.AddFile(png, cluster.FileEntry{Path: "/tmp/x/a.png", Name: "a.png", ParentPath: "/tmp/x", Size: 10240, ModTime: now})
	reg.AddFile(png, cluster.FileEntry{Path: "/tmp/x/b.png", Name: "b.png", ParentPath: "/tmp/x", Size: 20480, ModTime: now})

	old := now.Add(-40 * 24 * time.Hour)
	txt := reg.GetOrCreate(cluster.Derive("c.txt", "/tmp/x", old, now))
	reg.AddFile(txt, cluster.FileEntry{Path: "/tmp/x/c.txt", Name: "c.txt", ParentPath: "/tmp/x", Size: 5120, ModTime: old})

	return &scanner.Result{
		ID:         "scan-test",
		Root:       "/tmp/x",
		Clusters:   reg.Clusters(),
		TotalFiles: 3,
		TotalSize:  35840,
		Duration:   2 * time.Second,
	}
}

func TestReportSummary(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatSummary)

	if err := r.Report(fakeResult(t)); err != nil {
		t.Fatalf("Report: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"/tmp/x", "Files: 3", "Clusters: 2", "png", "txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestReportTableSortedBySize(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatTable)

	if err := r.Report(fakeResult(t)); err != nil {
		t.Fatalf("Report: %v", err)
	}

	out := buf.String()
	pngIdx := strings.Index(out, "png")
	txtIdx := strings.Index(out, "txt")
	if pngIdx == -1 || txtIdx == -1 {
		t.Fatalf("table missing clusters:\n%s", out)
	}
	if pngIdx > txtIdx {
		t.Errorf("larger cluster should be listed first:\n%s", out)
	}
}

func TestReportJSON(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatJSON)

	if err := r.Report(fakeResult(t)); err != nil {
		t.Fatalf("Report: %v", err)
	}

	var views []struct {
		ID         string `json:"id"`
		Root       string `json:"root"`
		TotalFiles int64  `json:"total_files"`
		Clusters   []struct {
			Extension string `json:"extension"`
			FileCount int    `json:"file_count"`
			TotalSize int64  `json:"total_size_bytes"`
		} `json:"clusters"`
	}
	if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if len(views) != 1 || views[0].Root != "/tmp/x" || views[0].TotalFiles != 3 {
		t.Fatalf("unexpected view: %+v", views)
	}
	if len(views[0].Clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(views[0].Clusters))
	}
	// Largest first.
	if views[0].Clusters[0].Extension != "png" || views[0].Clusters[0].TotalSize != 30720 {
		t.Errorf("first cluster = %+v, want png/30720", views[0].Clusters[0])
	}
}

func TestReportSummaryMultiRootTotal(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatSummary)

	a := fakeResult(t)
	b := fakeResult(t)
	b.Root = "/tmp/y"
	b.Errors = []string{"walk /tmp/y/z: boom"}

	if err := r.Report(a, b); err != nil {
		t.Fatalf("Report: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Total: 6 files") {
		t.Errorf("summary missing merged file total:\n%s", out)
	}
	if !strings.Contains(out, "across 2 roots") {
		t.Errorf("summary missing root count:\n%s", out)
	}
	if !strings.Contains(out, "1 errors") {
		t.Errorf("summary missing merged error count:\n%s", out)
	}
}

func TestReportJSONOmitsEntriesByDefault(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatJSON)

	if err := r.Report(fakeResult(t)); err != nil {
		t.Fatalf("Report: %v", err)
	}
	if strings.Contains(buf.String(), `"entries"`) {
		t.Errorf("non-verbose JSON should omit entries:\n%s", buf.String())
	}
}

func TestReportJSONVerboseIncludesEntries(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatJSON)
	r.SetVerbose(true)

	if err := r.Report(fakeResult(t)); err != nil {
		t.Fatalf("Report: %v", err)
	}

	var views []struct {
		Clusters []struct {
			Extension string `json:"extension"`
			Entries   []struct {
				Path string `json:"path"`
				Size int64  `json:"size_bytes"`
			} `json:"entries"`
		} `json:"clusters"`
	}
	if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(views) != 1 || len(views[0].Clusters) != 2 {
		t.Fatalf("unexpected view shape: %+v", views)
	}

	png := views[0].Clusters[0]
	if png.Extension != "png" || len(png.Entries) != 2 {
		t.Fatalf("png cluster entries = %+v, want 2", png)
	}
	paths := map[string]int64{}
	for _, e := range png.Entries {
		paths[e.Path] = e.Size
	}
	if paths["/tmp/x/a.png"] != 10240 || paths["/tmp/x/b.png"] != 20480 {
		t.Errorf("unexpected entry paths/sizes: %v", paths)
	}
}

func TestReportUnsupportedFormat(t *testing.T) {
	r := New(&bytes.Buffer{}, OutputFormat("csv"))
	if err := r.Report(fakeResult(t)); err == nil {
		t.Error("expected error for unsupported format")
	}
}
