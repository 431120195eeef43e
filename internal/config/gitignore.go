package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ignoredPatterns keeps generated files inside a project .carbonplan
// directory out of version control. config.yaml stays tracked.
var ignoredPatterns = []string{"cache/", "*.log", "roadmap.txt"} //nolint:gochecknoglobals // Fixed list.

const gitignoreHeader = "# carbonplan project-local data (auto-generated)\n"

// EnsureGitignore makes dir/.gitignore ignore the generated files. It
// creates the file, or appends only the missing patterns to an existing
// one, and reports whether it wrote anything.
func EnsureGitignore(dir string) (bool, error) {
	path := filepath.Join(dir, ".gitignore")

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	missing := missingPatterns(existing)
	if len(missing) == 0 {
		return false, nil
	}

	var buf bytes.Buffer
	buf.Write(existing)
	if len(existing) > 0 && !bytes.HasSuffix(existing, []byte("\n")) {
		buf.WriteByte('\n')
	}
	if len(existing) == 0 {
		buf.WriteString(gitignoreHeader)
	}
	for _, p := range missing {
		buf.WriteString(p + "\n")
	}

	if err = os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating %s: %w", dir, err)
	}
	//nolint:gosec // .gitignore is meant to be world-readable.
	if err = os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

func missingPatterns(existing []byte) []string {
	present := map[string]bool{}
	sc := bufio.NewScanner(bytes.NewReader(existing))
	for sc.Scan() {
		present[strings.TrimSpace(sc.Text())] = true
	}

	var missing []string
	for _, p := range ignoredPatterns {
		if !present[p] {
			missing = append(missing, p)
		}
	}
	return missing
}
