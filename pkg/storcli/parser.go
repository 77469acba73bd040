package storcli

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const (
	StatusSuccess = "Success"
	StatusFailure = "Failure"
)

// bannerPattern matches the free text storcli prints instead of JSON on
// some fatal errors; the captured prefix is the explanation.
var bannerPattern = regexp.MustCompile(`(?ms)(^.*)Storage.*Command.*$`)

var errNoControllers = errors.New(`missing "Controllers" key`)

// Response is a structured storcli JSON document.
type Response struct {
	Root        Value
	Controllers []ControllerResult
}

// ControllerResult is one element of the "Controllers" array.
type ControllerResult struct {
	Status CommandStatus
	// Data is the "Response Data" payload, null when storcli sent none.
	Data Value
	Raw  Value
}

// CommandStatus is the "Command Status" block of a controller result.
type CommandStatus struct {
	Status         string
	Description    string
	HasDescription bool
	Details        []StatusDetail
	HasDetails     bool
	Raw            Value
}

// StatusDetail is one entry of "Detailed Status".
type StatusDetail struct {
	Code    int
	HasCode bool
	// Message is the first of "ErrMsg" or "Value" present in the entry.
	Message string
	Raw     Value
}

// Parsed is the outcome of parsing storcli stdout: exactly one of Response
// and Fallback is set.
type Parsed struct {
	Response *Response
	Fallback map[string]string
}

// ParseOutput parses raw storcli stdout. It tries strict JSON first, then
// the fatal-error banner, then "key = value" lines containing a Status key.
func ParseOutput(stdout string) (*Parsed, error) {
	resp, jsonErr := parseJSON(stdout)
	if jsonErr == nil {
		return &Parsed{Response: resp}, nil
	}

	if m := bannerPattern.FindStringSubmatch(stdout); m != nil {
		return nil, &MalformedOutputError{Message: strings.TrimSpace(m[1])}
	}

	if fallback := parseKeyValues(stdout); fallback != nil {
		if _, ok := fallback["Status"]; ok {
			return &Parsed{Fallback: fallback}, nil
		}
	}

	return nil, &MalformedOutputError{Message: jsonErr.Error(), Err: jsonErr}
}

func parseJSON(stdout string) (*Response, error) {
	root, err := ParseValue([]byte(stdout))
	if err != nil {
		return nil, err
	}
	ctrls, err := root.Get("Controllers")
	if err != nil {
		return nil, errNoControllers
	}
	list, err := ctrls.Array()
	if err != nil {
		return nil, err
	}

	resp := &Response{Root: root, Controllers: make([]ControllerResult, 0, len(list))}
	for _, ctrl := range list {
		resp.Controllers = append(resp.Controllers, parseControllerResult(ctrl))
	}
	return resp, nil
}

func parseControllerResult(ctrl Value) ControllerResult {
	result := ControllerResult{Raw: ctrl}
	if data, err := ctrl.Get("Response Data"); err == nil {
		result.Data = data
	}
	if status, err := ctrl.Get("Command Status"); err == nil {
		result.Status = parseCommandStatus(status)
	}
	return result
}

func parseCommandStatus(status Value) CommandStatus {
	cs := CommandStatus{Raw: status}
	if s, err := status.Get("Status"); err == nil {
		cs.Status = s.Text()
	}
	if d, err := status.Get("Description"); err == nil {
		cs.Description = d.Text()
		cs.HasDescription = true
	}
	if details, err := status.Get("Detailed Status"); err == nil {
		cs.HasDetails = true
		entries, err := details.Array()
		if err != nil {
			entries = []Value{details}
		}
		for _, entry := range entries {
			cs.Details = append(cs.Details, parseStatusDetail(entry))
		}
	}
	return cs
}

func parseStatusDetail(entry Value) StatusDetail {
	detail := StatusDetail{Raw: entry}
	if code, err := entry.Get("ErrCd"); err == nil {
		if n, err := code.Int(); err == nil {
			detail.Code = int(n)
			detail.HasCode = true
		}
	}
	if msg, err := entry.FirstOf("ErrMsg", "Value"); err == nil {
		detail.Message = msg.Text()
	}
	return detail
}

// parseKeyValues collects "key = value" lines. It returns nil when no line
// contains '='.
func parseKeyValues(stdout string) map[string]string {
	var parsed map[string]string
	for _, line := range strings.Split(stdout, "\n") {
		key, value, found := strings.Cut(strings.TrimRight(line, "\r"), "=")
		if !found {
			continue
		}
		if parsed == nil {
			parsed = make(map[string]string)
		}
		parsed[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return parsed
}

// First returns the first controller result.
func (r *Response) First() (ControllerResult, error) {
	if len(r.Controllers) == 0 {
		return ControllerResult{}, &KeyError{Path: []string{"Controllers", "[0]"}}
	}
	return r.Controllers[0], nil
}

// Text renders the status block for error messages.
func (cs CommandStatus) Text() string {
	if cs.Raw.IsNull() {
		return cs.Status
	}
	return cs.Raw.Text()
}

// DetailsText renders the "Detailed Status" array for error messages.
func (cs CommandStatus) DetailsText() string {
	parts := make([]string, 0, len(cs.Details))
	for _, d := range cs.Details {
		parts = append(parts, d.Raw.Text())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (d StatusDetail) String() string {
	if d.HasCode {
		return strconv.Itoa(d.Code) + ": " + d.Message
	}
	return d.Message
}
