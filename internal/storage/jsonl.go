package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"unstakepool/internal/model"
)

// JSONLSink writes step results as JSON lines, either to a file path or to
// an already open writer.
type JSONLSink struct {
	path string
	out  io.Writer
	mu   sync.Mutex
}

// NewJSONLSink appends results to the file at path.
func NewJSONLSink(path string) *JSONLSink {
	return &JSONLSink{path: path}
}

// NewJSONLWriterSink writes results to w.
func NewJSONLWriterSink(w io.Writer) *JSONLSink {
	return &JSONLSink{out: w}
}

// Truncate empties the output file so a run starts from a clean file.
func (s *JSONLSink) Truncate() error {
	if s.path == "" {
		return nil
	}
	if err := ensureDir(s.path); err != nil {
		return err
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("truncate output file: %w", err)
	}
	return file.Close()
}

// PutResultBatch appends a batch of results as JSON lines.
func (s *JSONLSink) PutResultBatch(results []model.StepResult) error {
	if len(results) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out != nil {
		return writeResults(s.out, results)
	}

	if err := ensureDir(s.path); err != nil {
		return err
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	return writeResults(file, results)
}

func writeResults(w io.Writer, results []model.StepResult) error {
	writer := bufio.NewWriter(w)
	for _, result := range results {
		line, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshal step result: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write step result: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return nil
}
