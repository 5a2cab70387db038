package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/aretw0/treeoracle/internal/presentation/graph"
	"github.com/aretw0/treeoracle/internal/presentation/report"
	"github.com/aretw0/treeoracle/pkg/domain"
)

// Output formats accepted by WriteSamples.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatJSONL    = "jsonl"
	FormatMermaid  = "mermaid"
	FormatMarkdown = "markdown"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatJSONL, FormatMermaid, FormatMarkdown}

// CheckFormat reports an error unless format is one of Formats.
func CheckFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("unknown format %q (want one of %v)", format, Formats)
	}
	return nil
}

// WriteSamples renders samples to w in the given format.
//
//	text      one "score<TAB>tree" line per sample
//	json      a single indented array
//	jsonl     one JSON object per line, for streaming into a training pipeline
//	mermaid   one flowchart per sample, separated by blank lines
//	markdown  a report per sample (render with glamour for terminals)
func WriteSamples(w io.Writer, samples []*domain.Sample, format string) error {
	switch format {
	case FormatText, "":
		for _, s := range samples {
			if _, err := fmt.Fprintf(w, "%g\t%s\n", s.Score, s.Tree); err != nil {
				return err
			}
		}
		return nil

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(samples)

	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, s := range samples {
			if err := enc.Encode(s); err != nil {
				return err
			}
		}
		return nil

	case FormatMermaid:
		for i, s := range samples {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, graph.TreeMermaid(s.Tree, nil)); err != nil {
				return err
			}
		}
		return nil

	case FormatMarkdown:
		for _, s := range samples {
			if _, err := io.WriteString(w, report.Sample(s)+"\n"); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown format %q (want one of %v)", format, Formats)
	}
}
