// Package update tells users when a newer release is available.
// Every failure is silent: an update check never fails a command.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/mod/semver"
)

const (
	// OptOutEnv disables the check when set to "1".
	OptOutEnv = "MD2TYPST_NO_UPDATE_CHECK"

	// LatestReleaseURL is the GitHub API endpoint for the newest release.
	LatestReleaseURL = "https://api.github.com/repos/alnah/go-md2typst/releases/latest"

	// CacheTTL is how long a fetched version is trusted.
	CacheTTL = 24 * time.Hour

	// FetchTimeout bounds the HTTP request.
	FetchTimeout = 2 * time.Second

	cacheFile = "update-check.json"
)

var errBadStatus = errors.New("unexpected status")

type cacheEntry struct {
	Latest    string `json:"latest"`
	CheckedAt int64  `json:"checked_at"`
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// Checker resolves the latest released version, caching the answer on disk.
type Checker struct {
	Client    *http.Client
	URL       string
	CachePath string // empty disables caching
	Now       func() time.Time
}

// NewChecker returns a Checker with the default endpoint and cache location.
func NewChecker() *Checker {
	c := &Checker{
		Client: &http.Client{Timeout: FetchTimeout},
		URL:    LatestReleaseURL,
		Now:    time.Now,
	}
	if dir, err := os.UserCacheDir(); err == nil {
		c.CachePath = filepath.Join(dir, "go-md2typst", cacheFile)
	}
	return c
}

// Latest returns the latest version, from the cache when it is fresh.
func (c *Checker) Latest(ctx context.Context) (string, error) {
	now := c.now()
	if latest, ok := c.readCache(now); ok {
		return latest, nil
	}

	latest, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}
	c.writeCache(latest, now)
	return latest, nil
}

func (c *Checker) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Checker) fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", errBadStatus, resp.Status)
	}

	var rel releaseResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&rel); err != nil {
		return "", fmt.Errorf("decoding release: %w", err)
	}
	if rel.TagName == "" {
		return "", errors.New("release has no tag")
	}
	return rel.TagName, nil
}

func (c *Checker) readCache(now time.Time) (string, bool) {
	if c.CachePath == "" {
		return "", false
	}
	data, err := os.ReadFile(c.CachePath)
	if err != nil {
		return "", false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Latest == "" {
		return "", false
	}
	if now.Sub(time.Unix(entry.CheckedAt, 0)) > CacheTTL {
		return "", false
	}
	return entry.Latest, true
}

func (c *Checker) writeCache(latest string, now time.Time) {
	if c.CachePath == "" {
		return
	}
	data, err := json.Marshal(cacheEntry{Latest: latest, CheckedAt: now.Unix()})
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.CachePath), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(c.CachePath, data, 0o644)
}

// canonical adds the "v" prefix semver expects.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// IsNewer reports whether latest is a higher semantic version than current.
// Unparseable versions (including "(devel)") never compare as newer.
func IsNewer(current, latest string) bool {
	cur, lat := canonical(current), canonical(latest)
	if !semver.IsValid(cur) || !semver.IsValid(lat) {
		return false
	}
	return semver.Compare(lat, cur) > 0
}

// Channel is how the running binary was installed.
type Channel int

const (
	ChannelUnknown Channel = iota
	ChannelGo
	ChannelBrew
)

// DetectChannel guesses the install channel from the executable path.
func DetectChannel(exePath string) Channel {
	p := strings.ToLower(filepath.ToSlash(exePath))
	switch {
	case strings.Contains(p, "homebrew") || strings.Contains(p, "cellar") || strings.Contains(p, "linuxbrew"):
		return ChannelBrew
	case strings.Contains(p, "/go/bin/"):
		return ChannelGo
	}
	return ChannelUnknown
}

// Notice formats the update message wrapped to width columns.
func Notice(current, latest string, channel Channel, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new version of md2typst is available: %s -> %s\n", canonical(current), canonical(latest))

	const goInstall = "go install github.com/alnah/go-md2typst/cmd/md2typst@latest"
	switch channel {
	case ChannelBrew:
		b.WriteString("  Update: brew upgrade md2typst\n")
	case ChannelGo:
		b.WriteString("  Update: " + goInstall + "\n")
	default:
		b.WriteString("  Update: " + goInstall + " (or download from the releases page; set " + OptOutEnv + "=1 to silence this notice)\n")
	}

	if width <= 0 {
		return b.String()
	}
	return wordwrap.String(b.String(), width)
}

// Check prints a notice to w when a newer release exists. It honours the
// opt-out variable and swallows every error.
func Check(ctx context.Context, c *Checker, current string, w io.Writer, width int) {
	if os.Getenv(OptOutEnv) == "1" {
		return
	}
	if !semver.IsValid(canonical(current)) {
		return
	}
	latest, err := c.Latest(ctx)
	if err != nil || !IsNewer(current, latest) {
		return
	}
	exe, _ := os.Executable()
	fmt.Fprint(w, Notice(current, latest, DetectChannel(exe), width))
}
