package sites

import "strings"

// Site is one tenant's configuration: where its checkout redirects land and
// what shows up on the cardholder's bank statement.
type Site struct {
	ID     string `json:"id" toml:"id"`
	Name   string `json:"name" toml:"name"`
	Domain string `json:"domain" toml:"domain"`

	// Suffix appended to the account's statement descriptor. Bank statements
	// cap the whole descriptor at 22 chars, so keep this under ~10.
	StatementDescriptorSuffix string `json:"statement_descriptor_suffix" toml:"statement_descriptor_suffix"`

	SuccessURL   string `json:"success_url" toml:"success_url"`
	CancelURL    string `json:"cancel_url" toml:"cancel_url"`
	SupportEmail string `json:"support_email,omitempty" toml:"support_email"`

	Active   bool              `json:"active" toml:"active"`
	Metadata map[string]string `json:"metadata,omitempty" toml:"metadata"`
}

// SuccessURLWithSession appends the provider's session-id placeholder so the
// success page can look the session up after redirect.
func (s *Site) SuccessURLWithSession() string {
	if strings.Contains(s.SuccessURL, "?") {
		return s.SuccessURL + "&session_id={CHECKOUT_SESSION_ID}"
	}
	return s.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}"
}
