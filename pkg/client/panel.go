package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/integrail/namegen-client/pkg/logging"
)

const (
	generateLabel   = "Generate"
	generatingLabel = "Generating…"
)

// PanelState is everything a view needs to draw the panel.
type PanelState struct {
	Names         []string // last successful result, the source for copying
	Items         []string // rendered list
	Error         string
	Meta          string
	Busy          bool
	GenerateLabel string
	CopyEnabled   bool
}

// Panel holds the generator state and runs its operations. It is safe for concurrent use:
// the view reads snapshots while requests complete on other goroutines.
type Panel struct {
	mu        sync.Mutex
	client    Client
	clipboard Clipboard
	prompter  Prompter
	log       logrus.FieldLogger
	state     PanelState
	latest    uint64
}

type PanelOption func(p *Panel)

func WithClipboard(cb Clipboard) PanelOption {
	return func(p *Panel) {
		p.clipboard = cb
	}
}

func WithPrompter(prompter Prompter) PanelOption {
	return func(p *Panel) {
		p.prompter = prompter
	}
}

func WithPanelLogger(log logrus.FieldLogger) PanelOption {
	return func(p *Panel) {
		p.log = log
	}
}

func NewPanel(client Client, opts ...PanelOption) *Panel {
	p := &Panel{
		client:    client,
		clipboard: SystemClipboard{},
		log:       logging.GetLogger(),
		state:     PanelState{GenerateLabel: generateLabel},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Render(nil)
	return p
}

// State returns a copy of the current state.
func (p *Panel) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.state
	s.Names = append([]string(nil), p.state.Names...)
	s.Items = append([]string(nil), p.state.Items...)
	return s
}

// Render replaces the displayed list with names, in order.
func (p *Panel) Render(names []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.render(names)
}

func (p *Panel) render(names []string) {
	p.state.Items = append(make([]string, 0, len(names)), names...)
}

// Request is a validated generate call that has already put the panel into the busy state.
type Request struct {
	panel *Panel
	token uint64
	count int
}

func (r *Request) Count() int {
	return r.count
}

// Prepare clears the previous error and meta text, validates raw and, when valid, marks the
// panel busy. On a validation error the panel shows the message and no request exists.
func (p *Panel) Prepare(raw string) (*Request, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Error = ""
	p.state.Meta = ""

	count, err := ValidateCount(raw)
	if err != nil {
		p.log.WithField("input", raw).Debugf("rejected count: %v", err)
		p.state.Error = UserMessage(err)
		return nil, err
	}

	p.latest++
	p.state.Busy = true
	p.state.GenerateLabel = generatingLabel
	p.state.CopyEnabled = false
	return &Request{panel: p, token: p.latest, count: count}, nil
}

// Do fetches the names and applies the outcome. Results of a request that was superseded by a
// newer Prepare are dropped. The panel leaves the busy state once the newest request finishes,
// whatever the outcome.
func (r *Request) Do(ctx context.Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = r.panel.complete(r.token, nil, errors.Errorf("generate panicked: %v", rec))
		}
	}()
	names, err := r.panel.client.Generate(ctx, r.count)
	return r.panel.complete(r.token, names, err)
}

func (p *Panel) complete(token uint64, names []string, err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if token != p.latest {
		p.log.WithFields(logrus.Fields{"token": token, "latest": p.latest}).Debug("dropping stale generate result")
		return err
	}
	defer func() {
		p.state.Busy = false
		p.state.GenerateLabel = generateLabel
	}()

	if err != nil {
		p.log.WithError(err).Error("failed to generate names")
		p.state.Error = UserMessage(err)
		return err
	}

	p.state.Names = append(make([]string, 0, len(names)), names...)
	p.render(names)
	p.state.Meta = fmt.Sprintf("%d generated", len(names))
	p.state.CopyEnabled = len(names) > 0
	p.log.WithField("count", len(names)).Info("generated names")
	return nil
}

// Generate is the full generate flow: Prepare followed by Do.
func (p *Panel) Generate(ctx context.Context, raw string) error {
	req, err := p.Prepare(raw)
	if err != nil {
		return err
	}
	return req.Do(ctx)
}

// Copy copies the last result. It does nothing while copying is disabled.
func (p *Panel) Copy() error {
	p.mu.Lock()
	names := append([]string(nil), p.state.Names...)
	enabled := p.state.CopyEnabled
	p.mu.Unlock()

	if !enabled {
		return nil
	}

	// prompter may block or call back into the view, so the lock is not held here
	err := CopyAll(p.clipboard, p.prompter, names)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.log.WithError(err).Error("failed to copy names")
		p.state.Error = UserMessage(err)
		return err
	}
	p.state.Error = ""
	return nil
}
