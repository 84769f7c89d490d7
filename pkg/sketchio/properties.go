package sketchio

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dsynth/quotientsynth/pkg/spec"
)

var (
	epsilonRe = regexp.MustCompile(`^(.*)\{(.*?)\}(=\?.*)$`)
	boundedRe = regexp.MustCompile(`^(P|R)\s*(<=|>=)\s*([0-9]*\.?[0-9]+)\s*(\[.*\])$`)
	optimalityRe = regexp.MustCompile(`^(P|R)\s*(min|max)\s*=\?\s*(\[.*\])$`)
)

// ParseProperties parses a properties file's contents into a
// spec.Specification: each non-blank, non-"//"-comment line is one
// property. A bounded property ("P>=0.8 [F goal];" or
// "R<=10 [F goal];") becomes a constraint; an unbounded one
// ("Pmax=? [F goal];" or "Rmin{0.01}=? [F goal];") becomes the
// specification's single optimality objective, with the optional
// "{eps}" just before "=?" giving its relative-error tolerance. At most one
// optimality property may appear.
func ParseProperties(content string) (*spec.Specification, error) {
	specification := &spec.Specification{}
	for n, raw := range strings.Split(content, "\n") {
 line := strings.TrimSpace(raw)
 if line == "" || strings.HasPrefix(line, "//") {
 continue
 }
 line = strings.TrimSuffix(strings.TrimSpace(line), ";")

 epsilon := 0.0
 if m := epsilonRe.FindStringSubmatch(line); m != nil {
 eps, err := strconv.ParseFloat(m[2], 64)
 if err != nil {
 return nil, fmt.Errorf("sketchio: properties line %d: invalid relative error %q: %w", n+1, m[2], err)
 }
 epsilon = eps
 line = m[1] + m[3]
 }

 if m := optimalityRe.FindStringSubmatch(line); m != nil {
 if specification.Optimality != nil {
 return nil, fmt.Errorf("sketchio: properties line %d: two optimality formulae specified", n+1)
 }
 reward := m[1] == "R"
 minimizing := m[2] == "min"
 formula := m[1] + " " + m[3]
 specification.Optimality = spec.NewOptimality(formula, reward, minimizing, epsilon)
 continue
 }

 if m := boundedRe.FindStringSubmatch(line); m != nil {
 comparator := spec.LessOrEqual
 if m[2] == ">=" {
 comparator = spec.GreaterOrEqual
 }
 threshold, err := strconv.ParseFloat(m[3], 64)
 if err != nil {
 return nil, fmt.Errorf("sketchio: properties line %d: invalid threshold %q: %w", n+1, m[3], err)
 }
 specification.Constraints = append(specification.Constraints, spec.Constraint{
 Formula: m[1] + " " + m[4],
 Reward: m[1] == "R",
 Comparator: comparator,
 Threshold: threshold,
 })
 continue
 }

 return nil, fmt.Errorf("sketchio: properties line %d: unrecognized property %q", n+1, line)
	}
	return specification, nil
}

// SubstituteFormulaConstants replaces whole-word occurrences of each
// name in constantStr ("k1=v1,k2=v2") with its value, inside every
// already-parsed constraint and optimality formula.
func SubstituteFormulaConstants(specification *spec.Specification, constantStr string) error {
	values, err := parseConstantMap(constantStr)
	if err != nil {
 return err
	}
	for i := range specification.Constraints {
 specification.Constraints[i].Formula = substituteWords(specification.Constraints[i].Formula, values)
	}
	if specification.Optimality != nil {
 specification.Optimality.Formula = substituteWords(specification.Optimality.Formula, values)
	}
	return nil
}
