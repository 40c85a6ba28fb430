// Package vpn reads the Hysteria server configuration and derives the
// client connection details from it.
package vpn

import (
	"fmt"
	"net"
	"regexp"
	"strconv"

	"github.com/spf13/afero"
)

// PasswordNotFound is reported in place of the password when the config
// file has no quoted password line.
const PasswordNotFound = "Not found"

var passwordPattern = regexp.MustCompile(`password:\s*"([^"]+)"`)

// ConnectionInfo is what a client needs to connect to the server.
type ConnectionInfo struct {
	Server   string
	Password string
	Port     int
	URI      string
}

// ExtractPassword returns the value of the first `password: "<value>"`
// line in content, or PasswordNotFound.
func ExtractPassword(content []byte) string {
	match := passwordPattern.FindSubmatch(content)
	if match == nil {
		return PasswordNotFound
	}
	return string(match[1])
}

// ConnectionURI builds the hy2:// share link. IPv6 hosts are bracketed.
func ConnectionURI(password, ip, sni string, port int) string {
	return fmt.Sprintf("hy2://%s@%s?sni=%s&insecure=1&alpn=h3",
		password, net.JoinHostPort(ip, strconv.Itoa(port)), sni)
}

// NewConnectionInfo assembles the connection details for server ip.
func NewConnectionInfo(password, ip, sni string, port int) ConnectionInfo {
	return ConnectionInfo{
		Server:   ip,
		Password: password,
		Port:     port,
		URI:      ConnectionURI(password, ip, sni, port),
	}
}

// Reader reads the server config file on every call; nothing is cached.
type Reader struct {
	fs   afero.Fs
	path string
}

// NewReader returns a Reader for the config file at path on fs.
func NewReader(fs afero.Fs, path string) *Reader {
	return &Reader{fs: fs, path: path}
}

// ReadPassword reads the config file and extracts the password. A missing
// password line is not an error.
func (r *Reader) ReadPassword() (string, error) {
	content, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		return "", fmt.Errorf("failed to read hysteria config: %w", err)
	}
	return ExtractPassword(content), nil
}
