package formula

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/expr-lang/expr"
)

// externalRefClient is grounded on ExternalRefFunction.go: a formula can
// call external_ref(url) to pull a numeric or textual result from another
// service exposing the teacher's {"value": "...", "result": "..."} cell
// shape; only the "result" field is read. cmd/sheetd's own cell response
// has no "result" field, so it is not a source this function can read.
var externalRefClient = &http.Client{Timeout: 4 * time.Second}

type externalRefPayload struct {
	Result string `json:"result"`
}

func fetchExternalRef(args ...any) (any, error) {
	url, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("external_ref: expected a url string")
	}

	resp, err := externalRefClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("external_ref %s: %s", url, resp.Status)
	}

	var payload externalRefPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if f, err := strconv.ParseFloat(payload.Result, 64); err == nil {
		return f, nil
	}
	return payload.Result, nil
}

var externalRefFunctionOption = expr.Function("external_ref", fetchExternalRef)
