package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"
)

func newTestModel(t *testing.T, ctx context.Context, handler http.HandlerFunc, cb Clipboard) (*PanelModel, func() int32) {
	srv, hits := newTestBackend(t, handler)
	m, err := NewPanelModel(ctx, Config{ApiBase: srv.URL, Count: "2"}, WithClipboard(cb), WithPanelLogger(quietLogger()))
	Expect(err).To(BeNil())
	return m, hits.Load
}

func feed(m *PanelModel, msgs []tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestPanelModelGenerate(t *testing.T) {
	RegisterTestingT(t)

	m, hits := newTestModel(t, context.Background(), jsonReply(http.StatusOK, `{"names":["Ada","Lin"]}`), &fakeClipboard{})
	Expect(m.View()).To(ContainSubstring("Generate"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	Expect(cmd).NotTo(BeNil())
	Expect(m.Panel().State().Busy).To(BeTrue())
	Expect(m.View()).To(ContainSubstring("Generating…"))

	// a second trigger while busy is ignored
	_, again := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	Expect(again).To(BeNil())

	feed(m, runCmd(cmd))

	Expect(hits()).To(BeEquivalentTo(1))
	view := m.View()
	Expect(view).To(ContainSubstring("1. Ada"))
	Expect(view).To(ContainSubstring("2. Lin"))
	Expect(view).To(ContainSubstring("2 generated"))
	Expect(m.Panel().State().Busy).To(BeFalse())
}

func TestPanelModelValidationError(t *testing.T) {
	RegisterTestingT(t)

	m, hits := newTestModel(t, context.Background(), jsonReply(http.StatusOK, `{"names":["Ada"]}`), &fakeClipboard{})
	m.input.SetValue("abc")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	Expect(cmd).To(BeNil())
	Expect(m.View()).To(ContainSubstring("Please enter a whole number."))
	Expect(hits()).To(BeEquivalentTo(0))
}

func TestPanelModelRequestFailed(t *testing.T) {
	RegisterTestingT(t)

	m, _ := newTestModel(t, context.Background(), jsonReply(http.StatusBadRequest, `{"error":"count must be an integer between 1 and 10"}`), &fakeClipboard{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	feed(m, runCmd(cmd))

	Expect(m.View()).To(ContainSubstring("count must be an integer between 1 and 10"))
	Expect(m.Panel().State().Busy).To(BeFalse())
}

func TestPanelModelCopy(t *testing.T) {
	RegisterTestingT(t)

	cb := &fakeClipboard{}
	m, _ := newTestModel(t, context.Background(), jsonReply(http.StatusOK, `{"names":["Ada","Lin"]}`), cb)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	feed(m, runCmd(cmd))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})

	Expect(cb.written).To(Equal([]string{"1. Ada\n2. Lin"}))
}

func TestPanelModelCopyPrompt(t *testing.T) {
	RegisterTestingT(t)

	m, _ := newTestModel(t, context.Background(), jsonReply(http.StatusOK, `{"names":["Ada","Lin"]}`), &fakeClipboard{unsupported: true})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	feed(m, runCmd(cmd))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})

	view := m.View()
	Expect(view).To(ContainSubstring("Copy the names:"))
	Expect(view).To(ContainSubstring("1. Ada"))

	// any key closes the prompt without reaching the input
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("7")})
	Expect(m.View()).NotTo(ContainSubstring("Copy the names:"))
	Expect(m.input.Value()).To(Equal("2"))
}

func TestPanelModelQuitsWhenContextDone(t *testing.T) {
	RegisterTestingT(t)

	ctx, cancel := context.WithCancel(context.Background())
	m, _ := newTestModel(t, ctx, jsonReply(http.StatusOK, `{"names":[]}`), &fakeClipboard{})
	cancel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	Expect(cmd).NotTo(BeNil())
	Expect(cmd()).To(Equal(tea.QuitMsg{}))
}

func TestPanelModelResize(t *testing.T) {
	RegisterTestingT(t)

	m, _ := newTestModel(t, context.Background(), jsonReply(http.StatusOK, `{"names":[]}`), &fakeClipboard{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	Expect(m.list.Width).To(Equal(100))
	Expect(m.list.Height).To(Equal(30))

	m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	Expect(m.list.Height).To(Equal(3))
}

func TestPanelModelSpaceDoesNotScrollList(t *testing.T) {
	RegisterTestingT(t)

	names := make([]string, 40)
	for i := range names {
		names[i] = fmt.Sprintf("Name%d", i)
	}
	body, err := json.Marshal(map[string][]string{"names": names})
	Expect(err).To(BeNil())

	m, _ := newTestModel(t, context.Background(), jsonReply(http.StatusOK, string(body)), &fakeClipboard{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 15})
	m.input.SetValue("40")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	feed(m, runCmd(cmd))
	Expect(m.list.YOffset).To(Equal(0))

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	Expect(m.list.YOffset).To(Equal(0))

	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	Expect(m.list.YOffset).To(BeNumerically(">", 0))
}
