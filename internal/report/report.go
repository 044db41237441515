// Package report collects the step annotations and diagnostic artifacts of one
// test and stores the artifacts under the results directory.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"
	"go.uber.org/zap"

	"contact-list-e2e/internal/models"
)

// AttachmentStore records where an artifact was written.
type AttachmentStore interface {
	AddAttachment(a *models.Attachment) error
}

// Recorder is the report context of a single test.
type Recorder struct {
	dir    string
	runID  string
	test   string
	store  AttachmentStore
	logger *zap.Logger

	mu          sync.Mutex
	steps       []string
	attachments []models.Attachment
}

// New returns a recorder writing screenshots to <dir>/screenshots. store may be nil.
func New(dir, runID, test string, store AttachmentStore, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		dir:    dir,
		runID:  runID,
		test:   test,
		store:  store,
		logger: logger.With(zap.String("test", test)),
	}
}

func (r *Recorder) Step(title string) {
	r.mu.Lock()
	r.steps = append(r.steps, title)
	r.mu.Unlock()
	r.logger.Info("step", zap.String("title", title))
}

// Steps returns the annotations recorded so far, in order.
func (r *Recorder) Steps() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.steps...)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// fileSafe keeps s inside a single path element. Labels carry selectors and
// form values, so quotes, brackets and separators all have to go.
func fileSafe(s string) string {
	return strings.Trim(unsafeChars.ReplaceAllString(s, "_"), "_")
}

// Attach writes png under a name derived from the test and label and returns its path.
func (r *Recorder) Attach(label string, png []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Join(r.dir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s_%d.png",
		fileSafe(r.test), fileSafe(strcase.ToSnake(label)), len(r.attachments)+1)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}

	a := models.Attachment{RunID: r.runID, Test: r.test, Label: label, Path: path}
	if r.store != nil {
		if err := r.store.AddAttachment(&a); err != nil {
			return "", fmt.Errorf("record attachment: %w", err)
		}
	}
	r.attachments = append(r.attachments, a)
	r.logger.Info("attachment", zap.String("label", label), zap.String("path", path))
	return path, nil
}

// Attachments returns the artifacts attached so far.
func (r *Recorder) Attachments() []models.Attachment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Attachment(nil), r.attachments...)
}
