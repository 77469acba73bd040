// Package raid maps storcli objects (controllers, virtual drives, drives,
// enclosures and cache vaults) onto the exporter's types.
package raid

import (
	"errors"
	"fmt"
	"strings"

	"storcli-exporter/pkg/storcli"
)

// Commander runs storcli commands. *storcli.StorCLI implements it.
type Commander interface {
	Run(args []string, opts ...storcli.RunOption) (*storcli.Result, error)
}

// Ensure StorCLI implements Commander
var _ Commander = (*storcli.StorCLI)(nil)

// MissingError is returned when the `show` probe for an object fails.
type MissingError struct {
	Kind string
	Name string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Kind, e.Name)
}

// IsMissing reports whether err says the object does not exist.
func IsMissing(err error) bool {
	var missing *MissingError
	return errors.As(err, &missing)
}

// probe runs `<name> show` and translates a command failure into a
// *MissingError. Process level failures are returned unchanged.
func probe(cli Commander, kind, name string, opts ...storcli.RunOption) error {
	_, err := cli.Run([]string{name, "show"}, opts...)
	if err == nil {
		return nil
	}

	var cmdErr *storcli.CmdError
	var codeErr *storcli.CmdErrorCode
	if errors.As(err, &cmdErr) || errors.As(err, &codeErr) {
		return &MissingError{Kind: kind, Name: name}
	}
	return err
}

// responseData runs args and returns the first controller's response data.
func responseData(cli Commander, args []string, opts ...storcli.RunOption) (storcli.Value, error) {
	res, err := cli.Run(args, opts...)
	if err != nil {
		return storcli.Value{}, err
	}
	data, err := res.Data()
	if err != nil {
		return storcli.Value{}, fmt.Errorf("%s: %w", strings.Join(args, " "), err)
	}
	return data, nil
}

// text returns v[key] as trimmed text, or "" when absent.
func text(v storcli.Value, key string) string {
	s, err := storcli.Field(v, key, storcli.Strip)
	if err != nil {
		return ""
	}
	return s
}

// integer returns v[key] as an integer, or 0 when absent or not numeric.
func integer(v storcli.Value, key string) int64 {
	field, err := v.Get(key)
	if err != nil {
		return 0
	}
	n, err := field.Int()
	if err != nil {
		return 0
	}
	return n
}

// properties converts a [{"Property": k, "Value": v}, ...] list into an
// ordered lookup, keeping the first value for repeated properties.
func properties(v storcli.Value) map[string]string {
	out := make(map[string]string)
	rows, err := v.Array()
	if err != nil {
		return out
	}
	for _, row := range rows {
		key := text(row, "Property")
		if key == "" {
			continue
		}
		if _, seen := out[key]; !seen {
			out[key] = text(row, "Value")
		}
	}
	return out
}
