// Package output renders predicted labels as a single space-separated line.
package output

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-sod/medknn/internal/logging"
	"github.com/go-sod/medknn/internal/util"
)

// Format joins labels with single spaces. There is no trailing whitespace or
// newline.
func Format(labels []int) string {
	buffer := util.GetBytesBuffer()
	defer util.PutBytesBuffer(buffer)
	writeLabels(buffer, labels)
	return buffer.String()
}

func Write(w io.Writer, labels []int) error {
	buffer := util.GetBytesBuffer()
	defer util.PutBytesBuffer(buffer)
	writeLabels(buffer, labels)
	if _, err := w.Write(buffer.Bytes()); err != nil {
		return fmt.Errorf("write labels: %w", err)
	}
	return nil
}

type byteWriter interface {
	WriteString(s string) (int, error)
	WriteByte(c byte) error
}

func writeLabels(w byteWriter, labels []int) {
	for i, label := range labels {
		if i > 0 {
			_ = w.WriteByte(' ')
		}
		_, _ = w.WriteString(strconv.Itoa(label))
	}
}

// WriteFile writes labels to a temporary file next to path and renames it
// into place. On error no file is left at path.
func WriteFile(ctx context.Context, path string, labels []int) (err error) {
	logger := logging.FromContext(ctx)

	tmp, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, labels); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}

	logger.Infof("wrote %d labels to %s", len(labels), path)
	return nil
}
