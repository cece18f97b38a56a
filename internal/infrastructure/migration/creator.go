package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const upStub = `-- %s
-- %s
-- created %s

-- up

`

const downStub = `-- %s
-- reverts %s
-- created %s

-- down

`

// FilePair is a freshly created up/down migration pair
type FilePair struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// Create writes a timestamped up/down migration pair into dir. The name is
// slugified into the file name; the description goes into the SQL header.
func Create(dir, name, description string) (*FilePair, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("migrations directory %s: %w", dir, err)
	}

	now := time.Now()
	// version prefix sorts lexically in apply order
	version := now.Format("20060102150405")
	slug := slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q produces an empty file name", name)
	}
	if description == "" {
		description = name
	}

	pair := &FilePair{
		Version:  version,
		Name:     name,
		UpPath:   filepath.Join(dir, version+"_"+slug+".up.sql"),
		DownPath: filepath.Join(dir, version+"_"+slug+".down.sql"),
	}
	created := now.Format(time.RFC3339)

	up := fmt.Sprintf(upStub, name, description, created)
	if err := os.WriteFile(pair.UpPath, []byte(up), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", pair.UpPath, err)
	}
	down := fmt.Sprintf(downStub, name, description, created)
	if err := os.WriteFile(pair.DownPath, []byte(down), 0644); err != nil {
		_ = os.Remove(pair.UpPath)
		return nil, fmt.Errorf("write %s: %w", pair.DownPath, err)
	}
	return pair, nil
}

// slugify lowercases a migration name and joins its words with underscores,
// dropping anything that is not alphanumeric
func slugify(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return ' '
		}
		return -1
	}, name)
	return strings.Join(strings.Fields(cleaned), "_")
}

// List returns the base names of the migration pairs in dir, in version order
func List(dir string) ([]string, error) {
	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("scan migrations in %s: %w", dir, err)
	}
	names := make([]string, 0, len(ups))
	for _, path := range ups {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(filepath.Base(path), ".up.sql"))
	}
	return names, nil
}
