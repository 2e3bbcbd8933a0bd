package dto

import (
	"encoding/json"
	"errors"
	"strings"
)

// Recipients accepts either a single address or a list of addresses.
type Recipients []string

// UnmarshalJSON implements json.Unmarshaler.
func (r *Recipients) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = compact([]string{single})
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("to must be a string or an array of strings")
	}
	*r = compact(many)
	return nil
}

// SendEmailRequest mirrors the body accepted by POST /send-email.
type SendEmailRequest struct {
	To      Recipients `json:"to"`
	Subject string     `json:"subject"`
	HTML    string     `json:"html"`
	From    string     `json:"from,omitempty"`
}

// SendEmailResponse is returned on successful dispatch.
type SendEmailResponse struct {
	Success  bool          `json:"success"`
	Response *EmailReceipt `json:"response,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// EmailReceipt holds the identifier assigned by the email provider.
type EmailReceipt struct {
	ID string `json:"id"`
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
