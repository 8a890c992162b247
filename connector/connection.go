package connector

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"github.com/mensylisir/xmupgrade/logger"
)

// Connection is an open SSH session to a remote host.
type Connection interface {
	// Exec runs cmd remotely, streaming its output. A non-zero exit status
	// is returned as an error together with the status.
	Exec(ctx context.Context, cmd string, stdout, stderr io.Writer) (exitCode int, err error)
	// Exists reports whether remotePath exists on the remote host.
	Exists(ctx context.Context, remotePath string) (bool, error)
	Close() error
}

// DialFunc opens a Connection.
type DialFunc func(ctx context.Context, cfg Config) (Connection, error)

var _ Connection = (*connection)(nil)

type connection struct {
	mu         sync.Mutex
	sftpclient *sftp.Client
	sshclient  *ssh.Client
	config     Config

	agentSocketConn net.Conn
}

// Dial connects to the host described by cfg and opens an SFTP channel on
// the same connection.
func Dial(ctx context.Context, cfg Config) (Connection, error) {
	var err error
	cfg, err = validateConfig(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate ssh connection parameters")
	}

	conn := &connection{config: cfg}
	authMethods, err := conn.authMethods()
	if err != nil {
		return nil, err
	}

	sshClientConfig := &ssh.ClientConfig{
		User:            cfg.User,
		Timeout:         cfg.Timeout,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	endpoint := net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.Port))
	dialer := &net.Dialer{Timeout: cfg.Timeout}
	netConn, err := dialer.DialContext(ctx, "tcp", endpoint)
	if err != nil {
		conn.cleanupAgentSocket()
		return nil, errors.Wrapf(err, "could not establish connection to %s", endpoint)
	}

	ncc, chans, reqs, err := ssh.NewClientConn(netConn, endpoint, sshClientConfig)
	if err != nil {
		_ = netConn.Close()
		conn.cleanupAgentSocket()
		return nil, errors.Wrapf(err, "ssh handshake with %s failed", endpoint)
	}
	client := ssh.NewClient(ncc, chans, reqs)

	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		_ = client.Close()
		conn.cleanupAgentSocket()
		return nil, errors.Wrap(err, "failed to create SFTP client")
	}

	conn.sshclient = client
	conn.sftpclient = sftpClient
	return conn, nil
}

func (c *connection) authMethods() ([]ssh.AuthMethod, error) {
	cfg := c.config
	methods := make([]ssh.AuthMethod, 0, 3)

	if len(cfg.Password) > 0 {
		methods = append(methods, ssh.Password(cfg.Password))
	}

	if len(cfg.PrivateKey) > 0 {
		signer, err := ssh.ParsePrivateKey([]byte(cfg.PrivateKey))
		if err != nil {
			return nil, errors.Wrap(err, "the given SSH key could not be parsed")
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}

	if len(cfg.AgentSocket) > 0 {
		addr := cfg.AgentSocket
		if strings.HasPrefix(addr, socketEnvPrefix) {
			envName := strings.TrimPrefix(addr, socketEnvPrefix)
			envAddr := os.Getenv(envName)
			if envAddr == "" {
				if len(methods) == 0 {
					return nil, errors.Errorf("SSH agent environment variable %s is not set", envName)
				}
				logger.Log.Warnf("SSH agent environment variable %s not set, skipping agent authentication", envName)
				return methods, nil
			}
			addr = envAddr
		}

		var err error
		c.agentSocketConn, err = net.Dial("unix", addr)
		if err != nil {
			return nil, errors.Wrapf(err, "could not open SSH agent socket %q", addr)
		}
		methods = append(methods, ssh.PublicKeysCallback(agent.NewClient(c.agentSocketConn).Signers))
	}
	return methods, nil
}

func (c *connection) cleanupAgentSocket() {
	if c.agentSocketConn != nil {
		_ = c.agentSocketConn.Close()
		c.agentSocketConn = nil
	}
}

func (c *connection) Exec(ctx context.Context, cmd string, stdout, stderr io.Writer) (int, error) {
	c.mu.Lock()
	client := c.sshclient
	c.mu.Unlock()
	if client == nil {
		return -1, errors.New("ssh connection is closed or not initialized")
	}

	sess, err := client.NewSession()
	if err != nil {
		return -1, errors.Wrap(err, "failed to create ssh session")
	}
	defer sess.Close()

	sess.Stdout = orDiscard(stdout)
	sess.Stderr = orDiscard(stderr)
	if err := sess.Start(strings.TrimSpace(cmd)); err != nil {
		return -1, errors.Wrapf(err, "failed to start remote command '%s'", cmd)
	}

	waitDone := make(chan error, 1)
	go func() {
		waitDone <- sess.Wait()
	}()

	select {
	case <-ctx.Done():
		_ = sess.Signal(ssh.SIGINT)
		_ = sess.Close()
		return -1, errors.Wrap(ctx.Err(), "remote command cancelled")
	case err := <-waitDone:
		if err == nil {
			return 0, nil
		}
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitStatus()
			return code, fmt.Errorf("remote command '%s' failed with exit code %d", cmd, code)
		}
		return -1, errors.Wrapf(err, "remote command '%s' failed", cmd)
	}
}

func (c *connection) Exists(ctx context.Context, remotePath string) (bool, error) {
	c.mu.Lock()
	sftpClient := c.sftpclient
	c.mu.Unlock()
	if sftpClient == nil {
		return false, errors.New("sftp client is not initialized or connection is closed")
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if _, err := sftpClient.Stat(remotePath); err != nil {
		if os.IsNotExist(err) || strings.Contains(strings.ToLower(err.Error()), "no such file") {
			return false, nil
		}
		return false, errors.Wrapf(err, "sftp: failed to stat remote path %s", remotePath)
	}
	return true, nil
}

func (c *connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []string
	if c.sftpclient != nil {
		if err := c.sftpclient.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("sftp close error: %v", err))
		}
		c.sftpclient = nil
	}
	if c.sshclient != nil {
		if err := c.sshclient.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("ssh close error: %v", err))
		}
		c.sshclient = nil
	}
	if c.agentSocketConn != nil {
		if err := c.agentSocketConn.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("agent socket close error: %v", err))
		}
		c.agentSocketConn = nil
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
