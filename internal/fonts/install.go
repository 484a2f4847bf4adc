package fonts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ErrDownload indicates a font download failed.
var ErrDownload = errors.New("font download failed")

// Download names a font file and where to fetch it.
type Download struct {
	Name string
	URL  string
}

// NotoCJK are the Simplified Chinese Noto faces (about 60MB in total).
var NotoCJK = []Download{
	{"NotoSansCJKsc-Regular.otf", "https://github.com/notofonts/noto-cjk/raw/main/Sans/OTF/SimplifiedChinese/NotoSansCJKsc-Regular.otf"},
	{"NotoSansCJKsc-Bold.otf", "https://github.com/notofonts/noto-cjk/raw/main/Sans/OTF/SimplifiedChinese/NotoSansCJKsc-Bold.otf"},
	{"NotoSerifCJKsc-Regular.otf", "https://github.com/notofonts/noto-cjk/raw/main/Serif/OTF/SimplifiedChinese/NotoSerifCJKsc-Regular.otf"},
	{"NotoSerifCJKsc-Bold.otf", "https://github.com/notofonts/noto-cjk/raw/main/Serif/OTF/SimplifiedChinese/NotoSerifCJKsc-Bold.otf"},
}

// Progress is called while a file downloads. total is -1 when unknown.
type Progress func(name string, downloaded, total int64)

// Installer downloads fonts into a directory.
type Installer struct {
	Client    *http.Client
	Downloads []Download
}

// Result reports what Install did per file.
type Result struct {
	Installed []string
	Skipped   []string
}

// Install downloads the Noto CJK faces into dir with http.DefaultClient.
func Install(ctx context.Context, dir string, progress Progress) (Result, error) {
	return (&Installer{Client: http.DefaultClient, Downloads: NotoCJK}).Install(ctx, dir, progress)
}

// Install downloads every missing file into dir. Files already present are
// skipped. Each download streams to <name>.part and is renamed when complete.
func (in *Installer) Install(ctx context.Context, dir string, progress Progress) (Result, error) {
	var res Result
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("creating font directory: %w", err)
	}

	client := in.Client
	if client == nil {
		client = http.DefaultClient
	}

	for _, d := range in.Downloads {
		target := filepath.Join(dir, d.Name)
		if info, err := os.Stat(target); err == nil && !info.IsDir() {
			res.Skipped = append(res.Skipped, d.Name)
			continue
		}
		if err := download(ctx, client, d, target, progress); err != nil {
			return res, err
		}
		res.Installed = append(res.Installed, d.Name)
	}
	return res, nil
}

func download(ctx context.Context, client *http.Client, d Download, target string, progress Progress) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDownload, d.Name, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDownload, d.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: server returned %s", ErrDownload, d.Name, resp.Status)
	}

	part := target + ".part"
	out, err := os.Create(part) // #nosec G304 -- target is dir + fixed name
	if err != nil {
		return fmt.Errorf("creating %s: %w", part, err)
	}

	w := &progressWriter{w: out, name: d.Name, total: resp.ContentLength, progress: progress}
	if _, err := io.Copy(w, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(part)
		return fmt.Errorf("%w: %s: %v", ErrDownload, d.Name, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(part)
		return fmt.Errorf("writing %s: %w", part, err)
	}
	if err := os.Rename(part, target); err != nil {
		_ = os.Remove(part)
		return fmt.Errorf("finalizing %s: %w", d.Name, err)
	}
	return nil
}

type progressWriter struct {
	w          io.Writer
	name       string
	total      int64
	downloaded int64
	progress   Progress
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.downloaded += int64(n)
	if p.progress != nil {
		p.progress(p.name, p.downloaded, p.total)
	}
	return n, err
}
