package syllabus

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// envelope is the uniform wrapper every endpoint responds with: succeeded
// reports whether the operation took effect, data carries the payload, and
// message explains the outcome.
type envelope struct {
	Succeeded bool            `json:"succeeded"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

// unwrap parses body and decides whether the call succeeded: the HTTP
// status must be one of okStatuses and the envelope must report succeeded.
// A false envelope on a 200 is still a failure; it is how the server
// signals rejected operations. The returned error carries the most
// specific reason available.
func unwrap(status int, statusText string, body []byte, okStatuses ...int) (envelope, error) {
	statusOK := false
	for _, s := range okStatuses {
		if status == s {
			statusOK = true
			break
		}
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if !statusOK {
			return env, fmt.Errorf("server returned %s", statusText)
		}
		return env, fmt.Errorf("invalid response body: %v", err)
	}
	if !statusOK || !env.Succeeded {
		return env, errors.New(env.reason(statusText))
	}
	return env, nil
}

// reason picks the most informative failure text the response offers.
func (e envelope) reason(statusText string) string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return "server returned " + statusText
}

// hasData reports whether the envelope carries a payload. List endpoints
// treat an absent payload as an empty result, record endpoints as an error.
func (e envelope) hasData() bool {
	trimmed := strings.TrimSpace(string(e.Data))
	return trimmed != "" && trimmed != "null"
}

// decodeData unmarshals the payload into out.
func (e envelope) decodeData(out any) error {
	if !e.hasData() {
		return errors.New("response carried no data")
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("malformed data payload: %v", err)
	}
	return nil
}
