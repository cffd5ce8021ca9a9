package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"
)

type clientFunc func(ctx context.Context, count int) ([]string, error)

func (f clientFunc) Generate(ctx context.Context, count int) ([]string, error) {
	return f(ctx, count)
}

func namesClientOf(names ...string) clientFunc {
	return func(context.Context, int) ([]string, error) {
		return names, nil
	}
}

type fakeClipboard struct {
	unsupported bool
	err         error
	written     []string
}

func (c *fakeClipboard) Available() bool {
	return !c.unsupported
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.written = append(c.written, text)
	return nil
}

type recordingPrompter struct {
	titles []string
	texts  []string
}

func (p *recordingPrompter) Prompt(title, text string) {
	p.titles = append(p.titles, title)
	p.texts = append(p.texts, text)
}

// newTestBackend serves handler and counts the requests it receives.
func newTestBackend(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func jsonReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// runCmd executes cmd and any batched commands, returning the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// newLiveClient talks to a real backend, for local debugging only.
func newLiveClient(t *testing.T) Client {
	RegisterTestingT(t)
	if os.Getenv("GITHUB_RUN_ID") != "" {
		t.Skipf("Not intended to run on CI")
	}
	if os.Getenv("NAMEGEN_API_BASE") == "" {
		t.Skipf("NAMEGEN_API_BASE is not set")
	}

	c, err := NewClientFromConfig(Config{
		ApiBase: os.Getenv("NAMEGEN_API_BASE"),
		Timeout: "60s",
	})
	Expect(err).To(BeNil())
	return c
}
