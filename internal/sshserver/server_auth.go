// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"crypto/subtle"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

// authOptions enables password authentication when a password is
// configured. Without any handler the server accepts every client.
func (s *Server) authOptions() []ssh.Option {
	if s.cfg.Password == "" {
		return nil
	}
	return []ssh.Option{wish.WithPasswordAuth(s.passwordHandler)}
}

// passwordHandler compares password with the configured one in constant time.
func (s *Server) passwordHandler(ctx ssh.Context, password string) bool {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) != 1 {
		s.logger.Warn("rejected password authentication", "user", ctx.User(), "remote", ctx.RemoteAddr().String())
		return false
	}
	return true
}
