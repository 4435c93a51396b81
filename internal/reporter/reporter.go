// Package reporter renders scan results for the CLI and for downstream
// tooling that wants a machine-readable cluster list.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/hanpf2391/clear-ai-sub001/internal/cluster"
	"github.com/hanpf2391/clear-ai-sub001/internal/progress"
	"github.com/hanpf2391/clear-ai-sub001/internal/scanner"
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatSummary OutputFormat = "summary"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
)

// Reporter handles report generation.
type Reporter struct {
	writer  io.Writer
	format  OutputFormat
	verbose bool
}

// New creates a new Reporter.
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// SetVerbose controls whether JSON/YAML output carries the raw file entries
// of each cluster in addition to the aggregates.
func (r *Reporter) SetVerbose(verbose bool) {
	r.verbose = verbose
}

// resultView is the stable serializable shape for JSON/YAML output.
type resultView struct {
	ID         string        `json:"id" yaml:"id"`
	Root       string        `json:"root" yaml:"root"`
	TotalFiles int64         `json:"total_files" yaml:"total_files"`
	TotalSize  int64         `json:"total_size_bytes" yaml:"total_size_bytes"`
	Duration   string        `json:"duration" yaml:"duration"`
	Clusters   []clusterView `json:"clusters" yaml:"clusters"`
	Errors     []string      `json:"errors,omitempty" yaml:"errors,omitempty"`
}

type clusterView struct {
	ID            string      `json:"id" yaml:"id"`
	PathSignature string      `json:"path_signature" yaml:"path_signature"`
	Extension     string      `json:"extension" yaml:"extension"`
	TimeBucket    string      `json:"time_bucket" yaml:"time_bucket"`
	FileCount     int         `json:"file_count" yaml:"file_count"`
	TotalSize     int64       `json:"total_size_bytes" yaml:"total_size_bytes"`
	Entries       []entryView `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// entryView is emitted per file only in verbose mode.
type entryView struct {
	Path    string    `json:"path" yaml:"path"`
	Size    int64     `json:"size_bytes" yaml:"size_bytes"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
}

// Report generates a report from one or more scan results.
func (r *Reporter) Report(results ...*scanner.Result) error {
	switch r.format {
	case FormatSummary:
		return r.reportSummary(results)
	case FormatTable:
		return r.reportTable(results)
	case FormatJSON:
		return r.reportJSON(results)
	case FormatYAML:
		return r.reportYAML(results)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary prints per-root cluster counts plus a grand total.
func (r *Reporter) reportSummary(results []*scanner.Result) error {
	header := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()

	for _, res := range results {
		fmt.Fprintf(r.writer, "%s\n", header(fmt.Sprintf("=== %s ===", res.Root)))
		fmt.Fprintf(r.writer, "Files: %d  Size: %s  Clusters: %d  %s\n",
			res.TotalFiles,
			humanize.IBytes(uint64(res.TotalSize)),
			len(res.Clusters),
			dim(fmt.Sprintf("(%s, scan %s)", progress.FormatDuration(res.Duration), res.ID)))

		for _, c := range sortBySize(res.Clusters) {
			key := c.Key()
			fmt.Fprintf(r.writer, "  %-36s %5d files  %10s  %s/*.%s (%s)\n",
				c.ID(),
				c.FileCount(),
				humanize.IBytes(uint64(c.TotalSize())),
				key.PathSignature,
				key.Extension,
				key.Bucket)
		}

		if len(res.Errors) > 0 {
			fmt.Fprintf(r.writer, "  %s\n", warn(fmt.Sprintf("%d errors:", len(res.Errors))))
			for _, e := range res.Errors {
				fmt.Fprintf(r.writer, "    %s\n", e)
			}
		}

		fmt.Fprintln(r.writer)
	}

	if len(results) > 1 {
		total := &scanner.Result{}
		for _, res := range results {
			total.Merge(res)
		}
		fmt.Fprintf(r.writer, "Total: %d files, %s across %d roots",
			total.TotalFiles, humanize.IBytes(uint64(total.TotalSize)), len(results))
		if len(total.Errors) > 0 {
			fmt.Fprintf(r.writer, ", %d errors", len(total.Errors))
		}
		fmt.Fprintln(r.writer)
	}

	return nil
}

// reportTable prints one row per cluster across all results.
func (r *Reporter) reportTable(results []*scanner.Result) error {
	fmt.Fprintf(r.writer, "%-36s | %-8s | %-10s | %-8s | %s\n",
		"Cluster", "Files", "Size", "Bucket", "Directory")

	for _, res := range results {
		for _, c := range sortBySize(res.Clusters) {
			key := c.Key()
			fmt.Fprintf(r.writer, "%-36s | %-8d | %-10s | %-8s | %s\n",
				c.ID(),
				c.FileCount(),
				humanize.IBytes(uint64(c.TotalSize())),
				key.Bucket,
				key.PathSignature)
		}
	}
	return nil
}

func (r *Reporter) reportJSON(results []*scanner.Result) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(r.views(results))
}

func (r *Reporter) reportYAML(results []*scanner.Result) error {
	return yaml.NewEncoder(r.writer).Encode(r.views(results))
}

func (r *Reporter) views(results []*scanner.Result) []resultView {
	out := make([]resultView, 0, len(results))
	for _, res := range results {
		v := resultView{
			ID:         res.ID,
			Root:       res.Root,
			TotalFiles: res.TotalFiles,
			TotalSize:  res.TotalSize,
			Duration:   res.Duration.String(),
			Errors:     res.Errors,
			Clusters:   make([]clusterView, 0, len(res.Clusters)),
		}
		for _, c := range sortBySize(res.Clusters) {
			key := c.Key()
			cv := clusterView{
				ID:            c.ID(),
				PathSignature: key.PathSignature,
				Extension:     key.Extension,
				TimeBucket:    string(key.Bucket),
				FileCount:     c.FileCount(),
				TotalSize:     c.TotalSize(),
			}
			if r.verbose {
				for _, e := range c.Entries() {
					cv.Entries = append(cv.Entries, entryView{
						Path:    e.Path,
						Size:    e.Size,
						ModTime: e.ModTime,
					})
				}
			}
			v.Clusters = append(v.Clusters, cv)
		}
		out = append(out, v)
	}
	return out
}

// sortBySize orders clusters largest first, id as tiebreaker so output is
// stable.
func sortBySize(clusters []*cluster.FileCluster) []*cluster.FileCluster {
	out := make([]*cluster.FileCluster, len(clusters))
	copy(out, clusters)
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].TotalSize(), out[j].TotalSize()
		if si != sj {
			return si > sj
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}
