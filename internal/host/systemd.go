package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/netip"
	"os/exec"
	"strings"
	"time"
)

// maxIPResponseSize caps how much of the lookup response is read.
const maxIPResponseSize = 256

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// exitCoder is implemented by errors from commands that ran and exited non-zero.
type exitCoder interface {
	ExitCode() int
}

// Options configures a Systemd controller.
type Options struct {
	Service     string
	UseSudo     bool
	IPLookupURL string
	Timeout     time.Duration
	Runner      Runner
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// Systemd controls a systemd unit via systemctl and looks up the public
// address over HTTP.
type Systemd struct {
	service     string
	useSudo     bool
	ipLookupURL string
	timeout     time.Duration
	run         Runner
	client      *http.Client
	logger      *slog.Logger
}

var _ Controller = (*Systemd)(nil)

// NewSystemd creates a controller for opts.Service. Nil Runner, HTTPClient
// and Logger fall back to ExecRunner, http.DefaultClient and slog.Default.
func NewSystemd(opts Options) *Systemd {
	s := &Systemd{
		service:     opts.Service,
		useSudo:     opts.UseSudo,
		ipLookupURL: opts.IPLookupURL,
		timeout:     opts.Timeout,
		run:         opts.Runner,
		client:      opts.HTTPClient,
		logger:      opts.Logger,
	}
	if s.run == nil {
		s.run = ExecRunner
	}
	if s.client == nil {
		s.client = http.DefaultClient
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "host", "service", s.service)
	return s
}

func (s *Systemd) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// QueryServiceActive runs `systemctl is-active <unit>`. The command exits
// non-zero for anything but an active unit, so only a failure to run it at
// all is an error.
func (s *Systemd) QueryServiceActive(ctx context.Context) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.run(ctx, "systemctl", "is-active", s.service)
	state := strings.TrimSpace(string(out))
	if err != nil {
		var exitErr exitCoder
		if !errors.As(err, &exitErr) || state == "" {
			return "", &OpError{Op: "query service state", Output: string(out), Err: err}
		}
	}

	s.logger.DebugContext(ctx, "Queried service state", "state", state)
	return state, nil
}

// QueryUptime runs `uptime -p`.
func (s *Systemd) QueryUptime(ctx context.Context) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.run(ctx, "uptime", "-p")
	if err != nil {
		return "", &OpError{Op: "query uptime", Output: string(out), Err: err}
	}
	return strings.TrimSpace(string(out)), nil
}

// RestartService runs `systemctl restart <unit>`, through non-interactive
// sudo when configured so a missing privilege fails instead of prompting.
func (s *Systemd) RestartService(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	name, args := "systemctl", []string{"restart", s.service}
	if s.useSudo {
		name, args = "sudo", append([]string{"-n", name}, args...)
	}

	s.logger.InfoContext(ctx, "Restarting service", "command", name+" "+strings.Join(args, " "))
	out, err := s.run(ctx, name, args...)
	if err != nil {
		s.logger.ErrorContext(ctx, "Service restart failed", "error", err, "output", strings.TrimSpace(string(out)))
		return &OpError{Op: "restart " + s.service, Output: string(out), Err: err}
	}

	s.logger.InfoContext(ctx, "Service restarted")
	return nil
}

// QueryPublicIP fetches the host's external address from the lookup
// endpoint, which must answer with the bare address as plain text.
func (s *Systemd) QueryPublicIP(ctx context.Context) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ipLookupURL, nil)
	if err != nil {
		return "", &OpError{Op: "query public ip", Err: err}
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &OpError{Op: "query public ip", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIPResponseSize))
	if err != nil {
		return "", &OpError{Op: "query public ip", Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &OpError{Op: "query public ip", Output: string(body), Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	text := strings.TrimSpace(string(body))
	addr, err := netip.ParseAddr(text)
	if err != nil {
		return "", &OpError{Op: "query public ip", Output: text, Err: errors.New("invalid address in response")}
	}

	ip := addr.String()
	s.logger.DebugContext(ctx, "Queried public IP", "ip", ip)
	return ip, nil
}
