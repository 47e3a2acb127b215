// Package prompt implements the single human-in-the-loop checkpoint of the
// setup pipeline. Nothing after a confirmed prompt is reversible without
// manual cleanup, so the gate runs before any download or filesystem write.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bctrainers/webmin/internal/models"
)

// Gate asks the operator to confirm repository setup
type Gate struct {
	In  io.Reader
	Out io.Writer
}

// Confirm presents the run summary and waits for an answer. Only exactly
// "y" or "Y" proceeds; any other input, including none at all, is a
// decline. When force is set the prompt is skipped entirely.
func (g *Gate) Confirm(profile models.RepositoryProfile, ch models.Channel, force bool) (bool, error) {
	if ch != models.ChannelStable {
		fmt.Fprintf(g.Out, "Warning: the %s channel may contain builds that are not production ready\n", ch)
	}

	if force {
		return true, nil
	}

	fmt.Fprintf(g.Out, "Setup %s repository %s? (y/N) ", lowerFirstWord(profile.Description), profile.Name)

	reader := bufio.NewReader(g.In)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y", nil
}

// lowerFirstWord lowercases the first word of s, preserving the rest, so a
// description like "Webmin Releases" reads naturally mid-sentence.
func lowerFirstWord(s string) string {
	first, rest, ok := strings.Cut(s, " ")
	if !ok {
		return strings.ToLower(s)
	}
	return strings.ToLower(first) + " " + rest
}
