package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"netinventory/pkg/logging"
)

const defaultSSHPort = 22

// SSHConfig configures the native SSH executor.
type SSHConfig struct {
	User           string
	Password       string
	KeyPath        string
	Passphrase     string
	KnownHostsPath string
	StrictHostKey  bool
	DisableAgent   bool
	ConnTimeout    time.Duration
	CommandTimeout time.Duration // 0 disables
}

// StaticResolver treats the instance name as the host name.
type StaticResolver struct {
	Port int
}

// ResolveAddress appends the configured port unless instance already has one.
func (r StaticResolver) ResolveAddress(_ context.Context, instance string) (string, error) {
	if _, _, err := net.SplitHostPort(instance); err == nil {
		return instance, nil
	}
	port := r.Port
	if port == 0 {
		port = defaultSSHPort
	}
	return net.JoinHostPort(instance, strconv.Itoa(port)), nil
}

// SSHExecutor runs commands over golang.org/x/crypto/ssh. One client is kept
// per instance so the per-interface queries reuse the same connection.
type SSHExecutor struct {
	config    SSHConfig
	resolver  AddressResolver
	logger    logging.Logger
	clientCfg *ssh.ClientConfig
	agentConn io.Closer
	clients   map[string]*ssh.Client
}

// NewSSHExecutor validates the authentication and host key settings and
// returns an executor. No connection is made until the first Run.
func NewSSHExecutor(config SSHConfig, resolver AddressResolver, logger logging.Logger) (*SSHExecutor, error) {
	auths, agentConn, err := authMethods(config)
	if err != nil {
		return nil, err
	}
	hostKeyCB, err := hostKeyCallback(config)
	if err != nil {
		if agentConn != nil {
			_ = agentConn.Close()
		}
		return nil, err
	}
	if resolver == nil {
		resolver = StaticResolver{}
	}

	return &SSHExecutor{
		config:   config,
		resolver: resolver,
		logger:   logger,
		clientCfg: &ssh.ClientConfig{
			User:            config.User,
			Auth:            auths,
			HostKeyCallback: hostKeyCB,
			Timeout:         config.ConnTimeout,
		},
		agentConn: agentConn,
		clients:   make(map[string]*ssh.Client),
	}, nil
}

// Run executes command on instance and returns its standard output.
func (e *SSHExecutor) Run(ctx context.Context, instance, command string) (string, error) {
	client, err := e.client(ctx, instance)
	if err != nil {
		var remoteErr *RemoteExecError
		if errors.As(err, &remoteErr) {
			remoteErr.Command = command
			return "", remoteErr
		}
		return "", NewRemoteExecError(ErrTransport, instance, command, -1, "", err)
	}

	e.logger.Debug("Running %q on %s", command, instance)
	stdout, stderr, runErr := e.runSession(ctx, client, command)
	if runErr == nil {
		return stdout, nil
	}

	errOut := strings.TrimSpace(stderr)
	var exitErr *ssh.ExitError
	switch {
	case errors.As(runErr, &exitErr):
		return "", NewRemoteExecError(ErrExitStatus, instance, command, exitErr.ExitStatus(), errOut, runErr)
	case errors.Is(runErr, context.DeadlineExceeded):
		e.drop(instance)
		return "", NewRemoteExecError(ErrTimeout, instance, command, -1, errOut, runErr)
	default:
		e.drop(instance)
		return "", NewRemoteExecError(ErrTransport, instance, command, -1, errOut, runErr)
	}
}

// Close closes every cached client and the agent connection.
func (e *SSHExecutor) Close() error {
	var errs []error
	for instance, c := range e.clients {
		if err := c.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("closing ssh client for %s: %w", instance, err))
		}
		delete(e.clients, instance)
	}
	if e.agentConn != nil {
		_ = e.agentConn.Close()
		e.agentConn = nil
	}
	return errors.Join(errs...)
}

func (e *SSHExecutor) client(ctx context.Context, instance string) (*ssh.Client, error) {
	if c, ok := e.clients[instance]; ok {
		return c, nil
	}

	addr, err := e.resolver.ResolveAddress(ctx, instance)
	if err != nil {
		return nil, NewRemoteExecError(ErrResolve, instance, "", -1, "", err)
	}

	e.logger.Debug("Dialing %s at %s", instance, addr)
	d := net.Dialer{Timeout: e.config.ConnTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, e.clientCfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	client := ssh.NewClient(c, chans, reqs)
	e.clients[instance] = client
	return client, nil
}

func (e *SSHExecutor) drop(instance string) {
	if c, ok := e.clients[instance]; ok {
		_ = c.Close()
		delete(e.clients, instance)
	}
}

func (e *SSHExecutor) runSession(ctx context.Context, client *ssh.Client, command string) (string, string, error) {
	type result struct {
		stdout, stderr string
		err            error
	}

	sess, err := client.NewSession()
	if err != nil {
		return "", "", err
	}
	defer func() { _ = sess.Close() }()

	var stdout, stderr bytes.Buffer
	sess.Stdout = &stdout
	sess.Stderr = &stderr

	if e.config.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.CommandTimeout)
		defer cancel()
	}

	ch := make(chan result, 1)
	go func() {
		err := sess.Run(command)
		ch <- result{stdout.String(), stderr.String(), err}
	}()

	select {
	case r := <-ch:
		return r.stdout, r.stderr, r.err
	case <-ctx.Done():
		// closing the session unblocks Run; its result is discarded
		_ = sess.Close()
		return "", "", ctx.Err()
	}
}
