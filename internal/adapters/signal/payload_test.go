package signal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	req := require.New(t)

	var call callUserPayload
	req.NoError(decodePayload(json.RawMessage(`{"to":"bob"}`), &call))
	req.Equal("bob", call.To)

	req.ErrorIs(decodePayload(nil, &call), errMissingPayload)
	req.Error(decodePayload(json.RawMessage(`{"to":""}`), &callUserPayload{}))
	req.Error(decodePayload(json.RawMessage(`{"to":`), &callUserPayload{}))
	req.Error(decodePayload(json.RawMessage(`{}`), &endCallPayload{}))
}

func TestDecodePayload_KeepsBlobVerbatim(t *testing.T) {
	req := require.New(t)
	raw := `{"to":"x","offer":{"type":"offer","sdp":"v=0\r\no=- 1 2 IN IP4 127.0.0.1\r\n"}}`

	var p offerPayload
	req.NoError(decodePayload(json.RawMessage(raw), &p))
	req.Equal(`{"type":"offer","sdp":"v=0\r\no=- 1 2 IN IP4 127.0.0.1\r\n"}`, string(p.Offer))
}

func TestDecodePayload_MissingBlobTolerated(t *testing.T) {
	var p candidatePayload
	require.NoError(t, decodePayload(json.RawMessage(`{"to":"x"}`), &p))
	require.Nil(t, p.Candidate)
}
