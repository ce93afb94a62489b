package workflow

import (
	"errors"

	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/githubnext/runner-guard/pkg/sliceutil"
)

var scanLog = logger.New("workflow:scan")

// FileTags records the runner tags one workflow file declared.
type FileTags struct {
	Path string   `json:"path" console:"header:File"`
	Tags []string `json:"tags" console:"header:Runner tags"`
}

// ScanResult is the accumulated outcome of scanning a set of workflow files.
type ScanResult struct {
	// Tags holds every tag in file order then job order, duplicates included.
	Tags []string
	// Files holds the per-file tags of every file that parsed.
	Files []FileTags
	// Skipped holds the files that could not be read or parsed.
	Skipped []*FileError
}

// UniqueTags returns Tags without duplicates, in first-seen order.
func (r *ScanResult) UniqueTags() []string {
	return sliceutil.Deduplicate(r.Tags)
}

// Sources returns, for each unique tag, the files declaring it in scan order.
func (r *ScanResult) Sources() map[string][]string {
	sources := make(map[string][]string)
	for _, file := range r.Files {
		for _, tag := range sliceutil.Deduplicate(file.Tags) {
			sources[tag] = append(sources[tag], file.Path)
		}
	}
	return sources
}

// with returns a copy of r with one more parsed file folded in.
func (r ScanResult) with(path string, tags []string) ScanResult {
	r.Tags = append(r.Tags[:len(r.Tags):len(r.Tags)], tags...)
	r.Files = append(r.Files[:len(r.Files):len(r.Files)], FileTags{Path: path, Tags: tags})
	return r
}

// Scan parses each file in order and folds its runner tags into the result.
// A file that cannot be read or parsed is recorded in Skipped, reported to
// onError when it is non-nil, and otherwise ignored.
func Scan(files []string, onError func(*FileError)) *ScanResult {
	scanLog.Printf("Scanning %d workflow files", len(files))

	collector := NewErrorCollector()
	result := ScanResult{Tags: []string{}, Files: []FileTags{}}

	for _, path := range files {
		doc, err := ParseFile(path)
		if err != nil {
			collector.Add(path, err)
			if onError != nil {
				var fileErr *FileError
				if errors.As(err, &fileErr) {
					onError(fileErr)
				}
			}
			continue
		}
		result = result.with(path, ExtractRunnerTags(doc))
	}

	result.Skipped = collector.Errors()
	scanLog.Printf("Scan complete: tags=%d, files=%d, skipped=%d", len(result.Tags), len(result.Files), collector.Count())
	return &result
}
