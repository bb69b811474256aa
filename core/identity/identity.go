// Package identity canonicalizes mission references. Two historical naming
// conventions are in circulation: a structured code ("PRJ002") and a
// free-text label ("Project-002"). Both must resolve to the same canonical
// key everywhere mission identity is compared or stored. Additional label
// pairs come from configuration, not code.
package identity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/skyopshq/skyops/core/model"
)

var (
	codeForm  = regexp.MustCompile(`^PRJ(\d+)$`)
	labelForm = regexp.MustCompile(`^PROJECT[-_ ](\d+)$`)
)

// Normalizer resolves mission references to canonical project codes.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer builds a normalizer. The alias map keys are free-text
// labels and the values canonical codes; keys are matched
// case-insensitively.
func NewNormalizer(aliases map[string]string) *Normalizer {
	m := make(map[string]string, len(aliases))
	for label, code := range aliases {
		m[strings.ToUpper(strings.TrimSpace(label))] = strings.ToUpper(strings.TrimSpace(code))
	}
	return &Normalizer{aliases: m}
}

// Normalize returns the canonical project code for ref. References that
// match neither convention nor a configured alias fail with
// model.ErrAmbiguousIdentity.
func (n *Normalizer) Normalize(ref string) (string, error) {
	key := strings.ToUpper(strings.TrimSpace(ref))
	if key == "" {
		return "", fmt.Errorf("%w: empty mission reference", model.ErrAmbiguousIdentity)
	}
	if m := codeForm.FindStringSubmatch(key); m != nil {
		return canonical(m[1]), nil
	}
	if m := labelForm.FindStringSubmatch(key); m != nil {
		return canonical(m[1]), nil
	}
	if code, ok := n.aliases[key]; ok {
		return code, nil
	}
	return "", fmt.Errorf("%w: %q matches no known naming convention", model.ErrAmbiguousIdentity, ref)
}

// canonical zero-pads the numeric part to three digits so "PRJ2" and
// "Project-002" resolve to the same key.
func canonical(digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "PRJ" + digits
	}
	return fmt.Sprintf("PRJ%03d", n)
}

// Equal reports whether two references resolve to the same mission.
func (n *Normalizer) Equal(a, b string) bool {
	ca, errA := n.Normalize(a)
	cb, errB := n.Normalize(b)
	return errA == nil && errB == nil && ca == cb
}
