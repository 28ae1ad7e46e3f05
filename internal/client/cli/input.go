package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/tokenvote/internal/common"
	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

var errNoSecret = errors.New("admin secret required: use --secret, VOTE_ADMIN_SECRET or run from a terminal")

// GetSecret prompts on w and reads the admin secret from the terminal
// without echo.
func GetSecret(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return "", errNoSecret
	}
	if _, err := fmt.Fprint(w, "Admin secret: "); err != nil {
		return "", err
	}
	secret, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(secret)
	s := strings.TrimSpace(string(secret))
	if s == "" {
		return "", errNoSecret
	}
	return s, nil
}
