package clean

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/mgpai22/subclean/internal/fileio"
	"github.com/mgpai22/subclean/internal/filter"
	"github.com/mgpai22/subclean/internal/logging"
	"github.com/mgpai22/subclean/internal/subtitle"
)

// parameters of a single cleaning run, resolved by the caller
type RunConfig struct {
	InputPath         string
	OutputPath        string
	Blacklist         filter.Blacklist
	DeleteSourceAfter bool
	// transcode input that is not valid UTF-8
	DetectCharset bool
}

// summary of a finished run
type Report struct {
	InputPath     string
	OutputPath    string
	Format        subtitle.Format
	Charset       string
	Language      string
	Nodes         int
	Matches       []filter.Match
	SourceDeleted bool
}

// Clean decodes raw, blanks blacklisted nodes and encodes the result in the
// format the document was read as.
func Clean(
	raw string,
	hint string,
	blacklist filter.Blacklist,
) (string, filter.Result, error) {
	doc, err := subtitle.Decode(raw, hint)
	if err != nil {
		return "", filter.Result{}, err
	}

	result := filter.Apply(doc, blacklist)

	out, err := subtitle.Encode(result.Document, string(doc.Format))
	if err != nil {
		return "", result, err
	}
	return out, result, nil
}

// Run executes one pass: read, clean, write the output atomically and, when
// configured, delete the source once the output is on disk.
func Run(cfg RunConfig, logger *logging.Logger) (*Report, error) {
	report := &Report{
		InputPath:  cfg.InputPath,
		OutputPath: cfg.OutputPath,
	}

	raw, charsetName, err := fileio.ReadText(cfg.InputPath, cfg.DetectCharset)
	if err != nil {
		return nil, err
	}
	report.Charset = charsetName
	logger.Debugw("Read input file",
		"input", cfg.InputPath,
		"bytes", len(raw),
		"charset", charsetName,
	)

	out, result, err := Clean(raw, filepath.Ext(cfg.InputPath), cfg.Blacklist)
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", cfg.InputPath, err)
	}

	doc := result.Document
	report.Format = doc.Format
	report.Nodes = doc.Len()
	report.Matches = result.Matches
	report.Language = detectLanguage(doc)

	for _, m := range result.Matches {
		logger.Infow(m.String(),
			"node", m.NodeIndex,
			"entry", m.Entry,
		)
	}

	logger.Debugw("Cleaned subtitle document",
		"format", doc.Format,
		"nodes", report.Nodes,
		"matches", len(result.Matches),
		"language", report.Language,
	)

	if err := fileio.WriteFileAtomic(cfg.OutputPath, []byte(out), 0644); err != nil {
		return nil, err
	}

	if cfg.DeleteSourceAfter && !samePath(cfg.InputPath, cfg.OutputPath) {
		if err := fileio.Remove(cfg.InputPath); err != nil {
			return nil, err
		}
		report.SourceDeleted = true
		logger.Debugw("Removed source file", "input", cfg.InputPath)
	}

	return report, nil
}

// best effort language of the remaining text, empty when unsure
func detectLanguage(doc *subtitle.Document) string {
	var sb strings.Builder
	for _, node := range doc.Nodes {
		if node.Text == "" {
			continue
		}
		sb.WriteString(node.Text)
		sb.WriteString("\n")
	}
	if sb.Len() == 0 {
		return ""
	}

	info := whatlanggo.Detect(sb.String())
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
