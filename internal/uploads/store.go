package uploads

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Store manages job-scoped working storage: the uploaded source file and
// the page images rendered from it. Everything under a job's directories
// is transient and removed by Release once the pipeline finishes.
type Store struct {
	baseDir string
	logger  *slog.Logger
}

// NewStore creates a store rooted at baseDir
func NewStore(baseDir string, logger *slog.Logger) *Store {
	return &Store{
		baseDir: baseDir,
		logger:  logger,
	}
}

// SourceDir returns the directory holding the uploaded file for a job
func (s *Store) SourceDir(jobID string) string {
	return filepath.Join(s.baseDir, jobID)
}

// PagesDir returns the directory holding the rendered page images for a job
func (s *Store) PagesDir(jobID string) string {
	return filepath.Join(s.baseDir, "images", jobID)
}

// PagePath returns the path of one rendered page. Pages are 1-indexed so
// ordering is reconstructible from the filename.
func (s *Store) PagePath(jobID string, page int) string {
	return filepath.Join(s.PagesDir(jobID), fmt.Sprintf("image-%d.png", page))
}

// SaveSource writes the uploaded file under the job's source directory and
// returns the stored path
func (s *Store) SaveSource(jobID, filename string, r io.Reader) (string, error) {
	dir := s.SourceDir(jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload file: %w", err)
	}

	return path, nil
}

// Release removes the job's source file and page images. Individual
// deletion failures are logged and swallowed so a failed cleanup never
// masks the pipeline's recorded outcome.
func (s *Store) Release(jobID string) {
	for _, dir := range []string{s.SourceDir(jobID), s.PagesDir(jobID)} {
		if err := os.RemoveAll(dir); err != nil {
			s.logger.Warn("Failed to remove working storage",
				slog.String("job_id", jobID),
				slog.String("dir", dir),
				slog.Any("error", err),
			)
		}
	}

	s.logger.Debug("Working storage released",
		slog.String("job_id", jobID),
	)
}
