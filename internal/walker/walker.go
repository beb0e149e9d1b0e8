package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies a file found in the public directory.
type Kind int

const (
	// KindAsset is copied to the output verbatim.
	KindAsset Kind = iota
	// KindPage is an HTML page run through the render pipeline.
	KindPage
	// KindMarkdown is a markdown page converted to HTML before rendering.
	KindMarkdown
)

func (k Kind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindMarkdown:
		return "markdown"
	default:
		return "asset"
	}
}

// FileInfo holds metadata about a single file discovered during traversal.
type FileInfo struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash-separated path relative to the public directory.
	Size    int64
	Kind    Kind
}

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	RootDir string   // Public directory to walk.
	Include []string // Glob patterns selecting pages.
	Exclude []string // Glob patterns removing files from the page set.
	SkipDir string   // Directory never descended into (usually the build output).
}

// Walk traverses the public directory and classifies every regular file.
// Files matching Include and not Exclude are pages; everything else is an
// asset. Unpublished files and directories are skipped.
func Walk(config WalkerConfig) ([]FileInfo, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}

	skip := ""
	if config.SkipDir != "" {
		if skip, err = filepath.Abs(config.SkipDir); err != nil {
			return nil, fmt.Errorf("walker: resolve skip dir: %w", err)
		}
	}

	var files []FileInfo

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		name := d.Name()

		if d.IsDir() {
			if path != root && (Unpublished(name) || path == skip) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || Unpublished(name) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		info, err := d.Info()
		if err != nil {
			return nil
		}

		files = append(files, FileInfo{
			Path:    path,
			RelPath: relPath,
			Size:    info.Size(),
			Kind:    classify(relPath, PageFilter{Include: config.Include, Exclude: config.Exclude}),
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	return files, nil
}

// classify decides how a file is built.
func classify(relPath string, filter PageFilter) Kind {
	if !filter.Selects(relPath) {
		return KindAsset
	}
	switch strings.ToLower(filepath.Ext(relPath)) {
	case ".html", ".htm":
		return KindPage
	case ".md", ".markdown":
		return KindMarkdown
	default:
		return KindAsset
	}
}

// HashFile computes the SHA-256 digest of the given file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
