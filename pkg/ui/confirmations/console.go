// Package confirmations asks the user how to resolve conflicts on the console.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/rebatch/pkg/logging"
	"github.com/arthur-debert/rebatch/pkg/registry"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// maxListed bounds how many conflicting names are printed before "and N more"
const maxListed = 10

// maxAttempts is how many unrecognised answers are tolerated before aborting
const maxAttempts = 3

var shortcuts = map[string]types.Policy{
	"o": types.PolicyOverwrite,
	"c": types.PolicyCreateCopy,
	"s": types.PolicySkip,
	"a": types.PolicyAbort,
}

// ConsoleResolver prompts once per batch for the conflict policy. It
// implements transfer.Resolver.
type ConsoleResolver struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleResolver creates a resolver reading from stdin and writing to stderr
func NewConsoleResolver() *ConsoleResolver {
	return NewResolver(os.Stdin, os.Stderr)
}

// NewResolver creates a resolver on the given streams
func NewResolver(in io.Reader, out io.Writer) *ConsoleResolver {
	return &ConsoleResolver{in: bufio.NewReader(in), out: out}
}

// Resolve lists the conflicts and asks for one policy covering all of them.
// An empty answer or end of input aborts.
func (d *ConsoleResolver) Resolve(conflicts []types.FileConflict) (types.Policy, error) {
	logger := logging.GetLogger("ui.confirmations")
	if len(conflicts) == 0 {
		return types.PolicyNone, nil
	}

	_, _ = fmt.Fprintf(d.out, "\n%d files already exist at the destination:\n", len(conflicts))
	for i, c := range conflicts {
		if i == maxListed {
			_, _ = fmt.Fprintf(d.out, "  ... and %d more\n", len(conflicts)-maxListed)
			break
		}
		_, _ = fmt.Fprintf(d.out, "  %s\n", c.DisplayName)
	}
	_, _ = fmt.Fprintln(d.out)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		_, _ = fmt.Fprint(d.out, "[o]verwrite, [c]opy alongside, [s]kip, [a]bort? [a]: ")

		response, err := d.in.ReadString('\n')
		if err == io.EOF && response == "" {
			return types.PolicyAbort, nil
		}
		if err != nil && err != io.EOF {
			return types.PolicyAbort, fmt.Errorf("failed to read user input: %w", err)
		}
		response = strings.TrimSpace(response)

		policy, ok := parseAnswer(response)
		if ok {
			logger.Debug().Str("policy", string(policy)).Msg("Conflict policy chosen")
			return policy, nil
		}
		_, _ = fmt.Fprintf(d.out, "Unrecognised answer %q\n", response)
	}
	return types.PolicyAbort, nil
}

// parseAnswer accepts the single-letter shortcuts and every policy name or
// alias known to the registry
func parseAnswer(response string) (types.Policy, bool) {
	response = strings.ToLower(strings.TrimSpace(response))
	if response == "" {
		return types.PolicyAbort, true
	}
	if p, ok := shortcuts[response]; ok {
		return p, true
	}
	if response == "abort" {
		return types.PolicyAbort, true
	}
	p, err := registry.LookupPolicy(response)
	if err != nil || !p.IsResolving() {
		return types.PolicyNone, false
	}
	return p, true
}
