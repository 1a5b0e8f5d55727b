package atoms

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/korora-tech/dhd/errs"
)

// HttpDownload fetches URL to Dest, optionally verifying a sha256 checksum.
// Grounded on the teacher's HTTP client pattern (inet/http_client.go's
// DoHTTP): a plain net/http.Client with an explicit timeout; the response
// body is streamed in full to a temp file beside Dest and renamed into
// place. check() reports true when Dest exists and, if Checksum is set,
// matches it.
type HttpDownload struct {
	base
	URL      string
	Dest     string
	Checksum string
	Mode     os.FileMode
	Timeout  time.Duration
}

func NewHttpDownload(module, url, dest, checksum string, mode os.FileMode, timeout time.Duration) *HttpDownload {
	return &HttpDownload{
		base:     newBase(module, "download "+url+" -> "+dest, nil),
		URL:      url,
		Dest:     dest,
		Checksum: checksum,
		Mode:     mode,
		Timeout:  timeout,
	}
}

func (a *HttpDownload) Check(ctx context.Context) (bool, error) {
	if _, err := os.Stat(a.Dest); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errs.Wrap(errs.ErrIO, "stat "+a.Dest, err)
	}
	if a.Checksum == "" {
		return true, nil
	}
	sum, err := sha256File(a.Dest)
	if err != nil {
		return false, err
	}
	return sum == a.Checksum, nil
}

func (a *HttpDownload) Execute(ctx context.Context) error {
	timeout := a.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL, nil)
	if err != nil {
		return errs.Wrap(errs.ErrValidation, "building request for "+a.URL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return errs.Wrap(errs.ErrIO, "fetching "+a.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errs.Wrap(errs.ErrIO, "fetching "+a.URL+": unexpected status "+resp.Status, nil)
	}

	if err := os.MkdirAll(filepath.Dir(a.Dest), 0o755); err != nil {
		return errs.Wrap(errs.ErrIO, "creating parent directory for "+a.Dest, err)
	}
	mode := a.Mode
	if mode == 0 {
		mode = 0o644
	}
	tmp := filepath.Join(filepath.Dir(a.Dest), "."+uuid.NewString()+".dhd-download")
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return errs.Wrap(errs.ErrIO, "creating "+tmp, err)
	}
	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, hasher), resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return errs.Wrap(errs.ErrIO, "writing "+tmp, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return errs.Wrap(errs.ErrIO, "closing "+tmp, err)
	}
	if a.Checksum != "" {
		sum := hex.EncodeToString(hasher.Sum(nil))
		if sum != a.Checksum {
			os.Remove(tmp)
			return errs.Wrap(errs.ErrValidation, "checksum mismatch for "+a.URL+": got "+sum+", want "+a.Checksum, nil)
		}
	}
	if err := os.Rename(tmp, a.Dest); err != nil {
		os.Remove(tmp)
		return errs.Wrap(errs.ErrIO, "renaming "+tmp+" -> "+a.Dest, err)
	}
	return nil
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errs.Wrap(errs.ErrIO, "opening "+path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errs.Wrap(errs.ErrIO, "hashing "+path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
