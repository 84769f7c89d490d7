// Package sketchio turns a PRISM-like sketch program and a properties
// file into the inputs the synthesis core consumes: a rewritten program
// with every hole declaration folded to a plain constant, the
// corresponding design space, and a parsed spec.Specification. The
// actual program/semantics compilation stays out of scope, modeled by
// quotient.Builder; this package only does the text-level
// preprocessing a PRISM/properties parser would otherwise be handed
// already done.
package sketchio

import (
	"fmt"
	"regexp"
	"strings"
)

// parseConstantMap parses a "k1=v1,k2=v2" constant-definition string
// into a name->value map.
func parseConstantMap(constantStr string) (map[string]string, error) {
	constantStr = strings.ReplaceAll(constantStr, " ", "")
	values := map[string]string{}
	if constantStr == "" {
 return values, nil
	}
	for _, def := range strings.Split(constantStr, ",") {
 kv := strings.SplitN(def, "=", 2)
 if len(kv) != 2 || kv[0] == "" {
 return nil, fmt.Errorf("sketchio: expected key=value pair, got %q", def)
 }
 values[kv[0]] = kv[1]
	}
	return values, nil
}

func wordBoundaryRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

// substituteWords replaces every whole-word occurrence of each key in
// values with its mapped value.
func substituteWords(text string, values map[string]string) string {
	for name, value := range values {
 text = wordBoundaryRe(name).ReplaceAllString(text, value)
	}
	return text
}
