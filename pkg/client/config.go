package client

import (
	"time"

	"github.com/pkg/errors"

	"github.com/integrail/namegen-client/pkg/util"
)

// Config is what the CLI collects from flags, env and config file.
type Config struct {
	ApiBase string   `json:"apiBase" yaml:"apiBase"`
	Timeout string   `json:"timeout" yaml:"timeout"` // duration string in go duration format (e.g.: 10s), empty for none
	Headers []string `json:"headers" yaml:"headers"` // extra request headers as Name=Value
	Count   string   `json:"count" yaml:"count"`     // initial value of the count input
}

func (c Config) timeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid timeout %q", c.Timeout)
	}
	if d < 0 {
		return 0, errors.Errorf("timeout must not be negative: %q", c.Timeout)
	}
	return d, nil
}

// NewClientFromConfig builds a Client from cfg, failing on a malformed timeout.
func NewClientFromConfig(cfg Config, opts ...Option) (Client, error) {
	timeout, err := cfg.timeout()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg.ApiBase, append([]Option{
		WithTimeout(timeout),
		WithHeaders(util.SliceToMap(cfg.Headers)),
	}, opts...)...), nil
}
