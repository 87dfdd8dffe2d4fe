package site

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Export writes a self-contained copy of the page to outDir: index.html,
// pages.json and the asset directory. The exported page turns locally and
// never opens a socket. Returns the number of files written.
func (s *Site) Export(outDir string) (int, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	static := *s
	static.cfg.Static = true
	page, err := static.Render()
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(outDir, "index.html"), page, 0o644); err != nil {
		return 0, fmt.Errorf("writing index.html: %w", err)
	}
	count := 1

	summaries := make([]PageSummary, 0, s.stack.Len())
	for i, sec := range s.stack.Sections {
		summaries = append(summaries, PageSummary{Index: i, ID: sec.ID, Title: sec.Title, Kind: sec.Kind})
	}
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return count, err
	}
	if err := os.WriteFile(filepath.Join(outDir, "pages.json"), data, 0o644); err != nil {
		return count, fmt.Errorf("writing pages.json: %w", err)
	}
	count++

	if s.cfg.AssetsDir != "" {
		if info, err := os.Stat(s.cfg.AssetsDir); err == nil && info.IsDir() {
			n, err := copyDir(s.cfg.AssetsDir, filepath.Join(outDir, "assets"))
			count += n
			if err != nil {
				return count, fmt.Errorf("copying assets: %w", err)
			}
		}
	}
	return count, nil
}

// copyDir recursively copies a directory and returns the number of files
// copied.
func copyDir(src, dst string) (int, error) {
	n := 0
	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dst, rel)

		if info.IsDir() {
			return os.MkdirAll(destPath, 0o755)
		}

		if err := copyFile(path, destPath); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

// copyFile copies a single file.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
