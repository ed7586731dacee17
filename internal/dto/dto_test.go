package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexBool(t *testing.T) {
	cases := map[string]bool{
		`{"success":true}`:    true,
		`{"success":false}`:   false,
		`{"success":"true"}`:  true,
		`{"success":"TRUE"}`:  true,
		`{"success":"false"}`: false,
		`{}`:                  false,
	}
	for body, want := range cases {
		var req StripeVerifyRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, want, bool(req.Success), body)
	}

	var req StripeVerifyRequest
	assert.Error(t, json.Unmarshal([]byte(`{"success":"maybe"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"success":1}`), &req))
}
