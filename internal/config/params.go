package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/pendulum/internal/dynamo"
)

// ApplyParams sets each "name=value" assignment on c, in order.
func ApplyParams(c dynamo.Configurable, assignments []string) error {
	for _, a := range assignments {
		name, raw, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return fmt.Errorf("param %q: want name=value: %w", a, dynamo.ErrParameterBounds)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("param %s: %w", name, err)
		}
		if err := c.SetParam(strings.TrimSpace(name), value); err != nil {
			return err
		}
	}
	return nil
}

// FormatParams lists the current parameters of c as "name=value" pairs
// sorted by name.
func FormatParams(c dynamo.Configurable) string {
	params := c.GetParams()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = fmt.Sprintf("%s=%g", name, params[name])
	}
	return strings.Join(pairs, " ")
}
