package signal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var errMissingPayload = errors.New("missing payload")

// chatPayload relays whatever body arrives, including an empty one.
type chatPayload struct {
	Message string `json:"message"`
}

type callUserPayload struct {
	To string `json:"to" validate:"required"`
}

type acceptCallPayload struct {
	CallerID string `json:"callerId" validate:"required"`
}

type offerPayload struct {
	To    string          `json:"to" validate:"required"`
	Offer json.RawMessage `json:"offer"`
}

type answerPayload struct {
	To     string          `json:"to" validate:"required"`
	Answer json.RawMessage `json:"answer"`
}

type candidatePayload struct {
	To        string          `json:"to" validate:"required"`
	Candidate json.RawMessage `json:"candidate"`
}

type endCallPayload struct {
	To string `json:"to" validate:"required"`
}

// decodePayload unmarshals data into v and checks its validate tags.
func decodePayload(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return errMissingPayload
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validate payload: %w", err)
	}
	return nil
}
