// Package summary locates and parses per-team fuzz summary files.
//
// A summary file is named summary_<team>.txt and lives in the
// summaries directory of a checked-out report branch. Each relevant
// line carries a status glyph followed by a trace identifier:
//
//	🟢 100
//	🔴 20_3
//
// Lines that do not match this shape are ignored.
package summary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Status is the recorded outcome of one trace for one team.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Glyphs used in summary files and in rendered tables.
const (
	GlyphPass    = "🟢"
	GlyphFail    = "🔴"
	GlyphUnknown = "⚪"
)

// Glyph returns the rendering glyph for s.
func (s Status) Glyph() string {
	if s == StatusFail {
		return GlyphFail
	}
	return GlyphPass
}

// File naming convention for summary files.
const (
	FilePrefix = "summary_"
	FileSuffix = ".txt"
)

// entryRe matches one status glyph, whitespace, then a trace
// identifier. Identifiers are digit runs joined by single interior
// underscores (compound traces like 20_3); a trailing underscore is
// not part of the identifier.
var entryRe = regexp.MustCompile(`(🟢|🔴)\s+([0-9]+(?:_[0-9]+)*)`)

// Entry is one parsed (team, trace, status) fact.
type Entry struct {
	Team   string
	Trace  string
	Status Status
}

// File is a located summary file and the team it reports for.
type File struct {
	Team string
	Path string
}

// Locate lists the summary files directly inside dir, sorted by team
// name. A missing directory is not an error: the branch simply has no
// summaries and contributes nothing.
func Locate(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing summaries in %s: %w", dir, err)
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, FileSuffix) {
			continue
		}
		team := strings.TrimSuffix(strings.TrimPrefix(name, FilePrefix), FileSuffix)
		if team == "" {
			continue
		}
		files = append(files, File{Team: team, Path: filepath.Join(dir, name)})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Team < files[j].Team })
	return files, nil
}

// Parse scans r line by line and emits one entry per line whose first
// glyph/identifier pair matches. Non-matching lines are skipped.
func Parse(r io.Reader, team string) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if m := entryRe.FindStringSubmatch(scanner.Text()); m != nil {
			status := StatusPass
			if m[1] == GlyphFail {
				status = StatusFail
			}
			entries = append(entries, Entry{Team: team, Trace: m[2], Status: status})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning summary for %s: %w", team, err)
	}
	return entries, nil
}

// ParseString parses summary content from a string.
func ParseString(s, team string) ([]Entry, error) {
	return Parse(strings.NewReader(s), team)
}

// ParseFile reads and parses a located summary file.
func ParseFile(f File) ([]Entry, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Path, err)
	}
	defer fh.Close()
	return Parse(fh, f.Team)
}
