package sketchio

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dsynth/quotientsynth/pkg/family"
)

var holeLineRe = regexp.MustCompile(`^(\s*)hole\s+(\S+)\s+(\S+)\s+in\s*\{(.*?)\}\s*;\s*$`)

// HoleDefinition records one hole declaration as it appeared in the
// sketch: its declared type, name, and option catalogue in source
// order. Single-option holes are folded directly into a constant by
// RewriteHoles and never become a family.Hole, but still appear here
// for diagnostics.
type HoleDefinition struct {
	Type string
	Name string
	Options []string
}

// RewriteHoles rewrites every `hole <type> <name> in {opt1, opt2,...};`
// declaration in sketch to `const <type> <name>;`, or, when a hole has
// only one option, directly to `const <type> <name> = opt;`, folding it
// away instead of carrying a degenerate hole forward. Constants
// supplied via SubstituteConstants must already be applied to sketch
// before this call.
func RewriteHoles(sketch string) (rewritten string, space family.DesignSpace, definitions []HoleDefinition) {
	lines := strings.Split(sketch, "\n")
	var holes []family.Hole
	for i, line := range lines {
 match := holeLineRe.FindStringSubmatch(line)
 if match == nil {
 continue
 }
 indent, typ, name, optionsRaw := match[1], match[2], match[3], match[4]
 options := splitOptions(optionsRaw)
 definitions = append(definitions, HoleDefinition{Type: typ, Name: name, Options: options})

 if len(options) == 1 {
 lines[i] = fmt.Sprintf("%sconst %s %s = %s;", indent, typ, name, options[0])
 continue
 }
 lines[i] = fmt.Sprintf("%sconst %s %s;", indent, typ, name)
 holes = append(holes, family.NewHole(name, options))
	}
	return strings.Join(lines, "\n"), family.NewDesignSpace(holes), definitions
}

func splitOptions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
 p = strings.TrimSpace(p)
 if p != "" {
 out = append(out, p)
 }
	}
	return out
}

func undefinedConstRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^(\s*const\s+\S+\s+` + regexp.QuoteMeta(name) + `)\s*;\s*$`)
}

// SubstituteConstants rewrites every undefined `const <type> <name>;`
// declaration named in constantStr ("k1=v1,k2=v2") to
// `const <type> <name> = <value>;`. Call this before RewriteHoles.
func SubstituteConstants(sketch, constantStr string) (string, error) {
	values, err := parseConstantMap(constantStr)
	if err != nil {
 return "", err
	}
	for name, value := range values {
 re := undefinedConstRe(name)
 if !re.MatchString(sketch) {
 return "", fmt.Errorf("sketchio: undefined constant %q not declared in sketch", name)
 }
 sketch = re.ReplaceAllString(sketch, "${1} = "+value+";")
	}
	return sketch, nil
}
