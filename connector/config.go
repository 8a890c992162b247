package connector

import (
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/mensylisir/xmupgrade/common"
	"github.com/mensylisir/xmupgrade/util"
)

// DefaultTimeout bounds the TCP connect and SSH handshake.
const DefaultTimeout = 30 * time.Second

// Config describes how to reach one remote host.
type Config struct {
	User       string
	Password   string
	Address    string
	Port       int
	PrivateKey string
	KeyFile    string
	// AgentSocket is a unix socket path, or "env:NAME" to read the path from
	// the environment variable NAME.
	AgentSocket string
	Timeout     time.Duration
}

const socketEnvPrefix = "env:"

// AgentFromEnv is the AgentSocket value for the running ssh-agent.
const AgentFromEnv = socketEnvPrefix + "SSH_AUTH_SOCK"

func validateConfig(cfg Config) (Config, error) {
	if len(cfg.User) == 0 {
		return cfg, errors.New("no username specified for SSH connection")
	}
	if len(cfg.Address) == 0 {
		return cfg, errors.New("no address specified for SSH connection")
	}
	if len(cfg.Password) == 0 && len(cfg.PrivateKey) == 0 && len(cfg.KeyFile) == 0 && len(cfg.AgentSocket) == 0 {
		return cfg, errors.New("must specify at least one of password, private key, keyfile or agent socket")
	}

	if len(cfg.PrivateKey) == 0 && len(cfg.KeyFile) > 0 {
		home, _ := util.Home()
		keyFile := util.ExpandHome(cfg.KeyFile, home)
		content, err := os.ReadFile(keyFile)
		if err != nil {
			return cfg, errors.Wrapf(err, "failed to read keyfile %q", keyFile)
		}
		cfg.PrivateKey = string(content)
	}

	if cfg.Port <= 0 {
		cfg.Port = common.DefaultSSHPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}
