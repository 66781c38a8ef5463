package codebase

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// ScanDir walks root for every *.compact file and adds it to o, keyed by
// its path relative to root. It returns the number of files added.
func (o *Open) ScanDir(ctx context.Context, root string) (int, error) {
	fs := afs.New()
	count := 0
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if !strings.HasSuffix(info.Name(), ".compact") {
			return true, nil
		}
		fileURL := url.Join(baseURL, parent, info.Name())
		data, err := fs.DownloadWithURL(ctx, fileURL)
		if err != nil {
			return false, err
		}
		relPath := fileURL
		if rel, err := filepath.Rel(root, fileURL); err == nil {
			relPath = rel
		}
		if _, err := o.AddFile(relPath, data); err != nil {
			return false, err
		}
		count++
		return true, nil
	}
	if err := fs.Walk(ctx, root, visitor); err != nil {
		return count, err
	}
	return count, nil
}
