package lint

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FileSystem lists and reads the files a check inspects.
type FileSystem interface {
	IsDirectory(path string) bool
	ListFiles(root string) ([]string, error)
	ListFilesWithin(root string, patternBase string) ([]string, error)
	ReadFile(path string) ([]byte, error)
}

// referenceMatcher reports whether content references candidate.
type referenceMatcher func(candidate string, content string) bool

// candidateSet holds the declarations not yet referenced by any scanned file.
type candidateSet struct {
	mutex   sync.Mutex
	members map[string]struct{}
}

func newCandidateSet() *candidateSet {
	return &candidateSet{members: make(map[string]struct{})}
}

func (set *candidateSet) add(candidate string) {
	set.mutex.Lock()
	defer set.mutex.Unlock()
	set.members[candidate] = struct{}{}
}

func (set *candidateSet) remove(candidates []string) {
	set.mutex.Lock()
	defer set.mutex.Unlock()
	for _, candidate := range candidates {
		delete(set.members, candidate)
	}
}

func (set *candidateSet) size() int {
	set.mutex.Lock()
	defer set.mutex.Unlock()
	return len(set.members)
}

// sorted returns the remaining candidates in lexical order.
func (set *candidateSet) sorted() []string {
	set.mutex.Lock()
	defer set.mutex.Unlock()
	remaining := make([]string, 0, len(set.members))
	for candidate := range set.members {
		remaining = append(remaining, candidate)
	}
	sort.Strings(remaining)
	return remaining
}

// referenceScanner reads every file and removes the candidates each file references.
type referenceScanner struct {
	fileSystem  FileSystem
	matcher     referenceMatcher
	concurrency int
}

// scan consumes files and prunes candidates. Every file is read even after the set empties,
// so an unreadable file always fails the check. The first read error aborts the scan.
func (scanner referenceScanner) scan(executionContext context.Context, files []string, candidates *candidateSet) error {
	if scanner.concurrency < 2 {
		for _, path := range files {
			if contextError := executionContext.Err(); contextError != nil {
				return contextError
			}
			if scanError := scanner.scanFile(path, candidates); scanError != nil {
				return scanError
			}
		}
		return nil
	}

	group, groupContext := errgroup.WithContext(executionContext)
	group.SetLimit(scanner.concurrency)
	for _, path := range files {
		path := path
		group.Go(func() error {
			if contextError := groupContext.Err(); contextError != nil {
				return contextError
			}
			return scanner.scanFile(path, candidates)
		})
	}
	return group.Wait()
}

func (scanner referenceScanner) scanFile(path string, candidates *candidateSet) error {
	content, readError := scanner.fileSystem.ReadFile(path)
	if readError != nil {
		return readError
	}

	text := string(content)
	var referenced []string
	for _, candidate := range candidates.sorted() {
		if scanner.matcher(candidate, text) {
			referenced = append(referenced, candidate)
		}
	}
	candidates.remove(referenced)
	return nil
}
