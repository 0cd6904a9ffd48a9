package document_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-depmanager/framework/container"
	"github.com/km-arc/go-depmanager/framework/document"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/Files/V1/lib/app.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte("console.log('app')"))
	})
	mux.HandleFunc("/Files/V1/site.css", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept"), "text/css")
		_, _ = w.Write([]byte("body{}"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func waitElement(t *testing.T, el *container.Element) error {
	t.Helper()
	select {
	case err := <-el.Done():
		return err
	case <-time.After(5 * time.Second):
		t.Fatalf("element %s never settled", el.Name)
		return nil
	}
}

func TestHTTP_RelativePathLoads(t *testing.T) {
	srv := newServer(t)
	doc := document.NewHTTP(srv.URL, time.Second)

	el := container.NewElement("app", container.Script, "Files/V1/lib/app.js")
	require.NoError(t, doc.Append(context.Background(), el))
	assert.NoError(t, waitElement(t, el))
}

func TestHTTP_StyleSendsCSSAccept(t *testing.T) {
	srv := newServer(t)
	doc := document.NewHTTP(srv.URL, time.Second)

	el := container.NewElement("site", container.Style, "Files/V1/site.css")
	require.NoError(t, doc.Append(context.Background(), el))
	assert.NoError(t, waitElement(t, el))
}

func TestHTTP_AbsoluteURLIgnoresOrigin(t *testing.T) {
	srv := newServer(t)
	doc := document.NewHTTP("http://origin.invalid", time.Second)

	el := container.NewElement("app", container.Script, srv.URL+"/Files/V1/lib/app.js")
	require.NoError(t, doc.Append(context.Background(), el))
	assert.NoError(t, waitElement(t, el))
}

func TestHTTP_NotFoundFails(t *testing.T) {
	srv := newServer(t)
	doc := document.NewHTTP(srv.URL, time.Second)

	el := container.NewElement("missing", container.Script, "Files/V1/missing.js")
	require.NoError(t, doc.Append(context.Background(), el))
	err := waitElement(t, el)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
