package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"PharmaNewsAgent/internal/domain"
	"PharmaNewsAgent/internal/ports"
)

// CSVArchiver appends rendered posts to a timestamped CSV file per cycle, so
// generated content survives even when publishing is disabled.
type CSVArchiver struct {
	dataDir string
	now     func() time.Time
}

var _ ports.PostArchiver = (*CSVArchiver)(nil)

// NewCSVArchiver writes under dataDir, creating it on first use.
func NewCSVArchiver(dataDir string) *CSVArchiver {
	return &CSVArchiver{dataDir: dataDir, now: time.Now}
}

// Archive writes one row per post. A nil or empty slice is a no-op.
func (a *CSVArchiver) Archive(posts []domain.PlatformPost) error {
	if len(posts) == 0 {
		return nil
	}
	if err := os.MkdirAll(a.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	name := fmt.Sprintf("social_posts_%s.csv", a.now().Format("20060102_150405"))
	path := filepath.Join(a.dataDir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"article_link", "platform", "text", "hashtags", "truncated"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, post := range posts {
		row := []string{
			post.ArticleLink,
			string(post.Platform),
			post.Text,
			strings.Join(post.Hashtags, " "),
			strconv.FormatBool(post.Truncated),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
