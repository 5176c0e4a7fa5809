package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/bnema/entitlements-cli/internal/domain"
	"github.com/bnema/entitlements-cli/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

var notFoundMarkers = []string{
	"is not in the password store",
	"not in the password store",
}

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps secrets in the pass password store, under an optional
// namespace prefix.
type Store struct {
	prefix string
	run    runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(prefix string) *Store {
	return &Store{prefix: strings.Trim(prefix, "/"), run: runPassCommand}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := s.entry(key)
	_, stderr, err := s.run(ctx, value+"\n", "insert", "-m", "-f", name)
	if err != nil {
		return formatError("put", name, err, stderr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := s.entry(key)
	stdout, stderr, err := s.run(ctx, "", "show", name)
	if err != nil {
		if isNotFound(stderr) {
			return "", fmt.Errorf("pass entry %q: %w", name, domain.ErrSecretNotFound)
		}
		return "", formatError("get", name, err, stderr)
	}

	stdout = strings.TrimSuffix(stdout, "\n")
	stdout = strings.TrimSuffix(stdout, "\r")

	return stdout, nil
}

// Delete treats a missing entry as already deleted.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := s.entry(key)
	_, stderr, err := s.run(ctx, "", "rm", "-f", name)
	if err != nil && !isNotFound(stderr) {
		return formatError("delete", name, err, stderr)
	}

	return nil
}

func (s *Store) entry(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

func isNotFound(stderr string) bool {
	for _, marker := range notFoundMarkers {
		if strings.Contains(stderr, marker) {
			return true
		}
	}
	return false
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	bin, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(op string, name string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, name, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, name, err, stderr)
}
