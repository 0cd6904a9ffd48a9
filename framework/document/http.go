package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/km-arc/go-depmanager/framework/container"
)

// HTTP loads elements by fetching their path. Relative paths are resolved
// against Origin.
type HTTP struct {
	Client *http.Client
	Origin string
	Logger *slog.Logger
}

// NewHTTP creates an HTTP document with a per-request timeout.
func NewHTTP(origin string, timeout time.Duration) *HTTP {
	return &HTTP{
		Client: &http.Client{Timeout: timeout},
		Origin: origin,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Append starts fetching el in the background.
func (d *HTTP) Append(ctx context.Context, el *container.Element) error {
	target, err := d.url(el.Path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("document: building request for %s: %w", el.Name, err)
	}
	req.Header.Set("Accept", accept(el.Kind))

	go func() {
		started := time.Now()
		resp, err := d.Client.Do(req)
		if err != nil {
			el.Failed(err)
			return
		}
		defer resp.Body.Close()
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			el.Failed(fmt.Errorf("reading %s: %w", target, err))
			return
		}
		if resp.StatusCode >= http.StatusBadRequest {
			el.Failed(fmt.Errorf("GET %s: %s", target, resp.Status))
			return
		}
		d.Logger.Debug("element fetched", "name", el.Name, "url", target, "took", time.Since(started))
		el.Loaded()
	}()
	return nil
}

func (d *HTTP) url(path string) (string, error) {
	if strings.HasPrefix(path, "http") {
		return path, nil
	}
	u, err := url.JoinPath(d.Origin, path)
	if err != nil {
		return "", fmt.Errorf("document: joining %q onto origin %q: %w", path, d.Origin, err)
	}
	return u, nil
}

func accept(kind container.ResourceKind) string {
	if kind == container.Style {
		return "text/css,*/*;q=0.1"
	}
	return "application/javascript,*/*;q=0.1"
}
