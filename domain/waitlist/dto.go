package waitlist

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/akeren/waitlist-api/pkg/constants"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// User-facing messages. These are part of the API contract; clients match on
// them, so treat changes as breaking.
const (
	MsgCreated        = "You are on the waitlist."
	MsgHoneypot       = "Thanks for your interest."
	MsgInvalidPayload = "Please submit a valid email address."
	MsgRateLimited    = "Rate limit reached. Please try again tomorrow."
)

// Accepted field aliases, in priority order (first present wins).
var (
	useCaseAliases = []string{"useCase", "use_case", "intent", "description"}
	websiteAliases = []string{"website", "company"}
)

var (
	validate      = validator.New()
	lowercaseFold = cases.Lower(language.Und)
)

// Submission is the best-effort triple extracted from a request body before
// validation. Nil means the field was absent, non-string, or empty after
// trimming.
type Submission struct {
	Email   *string
	UseCase *string
	Website *string
}

// ValidatedSubmission passed structural validation. Email is trimmed and
// case-folded to lowercase, ready to serve as the store key.
type ValidatedSubmission struct {
	Email   string
	UseCase *string
}

// NormalizeSubmission extracts a Submission from the request body, decoded
// per content type. Malformed JSON and unsupported content types degrade to
// an empty submission; the validator turns that into the one user-facing
// rejection path.
func NormalizeSubmission(r *http.Request) Submission {
	fields := decodeBody(r)

	return Submission{
		Email:   normalizedField(fields, "email"),
		UseCase: firstPresent(fields, useCaseAliases),
		Website: firstPresent(fields, websiteAliases),
	}
}

func decodeBody(r *http.Request) map[string]any {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return map[string]any{}
	}

	switch mediaType {
	case "application/json":
		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil || fields == nil {
			return map[string]any{}
		}
		return fields

	case "application/x-www-form-urlencoded", "multipart/form-data":
		fields := make(map[string]any)
		for _, key := range append([]string{"email"}, append(useCaseAliases, websiteAliases...)...) {
			if v := r.PostFormValue(key); v != "" {
				fields[key] = v
			}
		}
		return fields

	default:
		return map[string]any{}
	}
}

// normalizedField returns the trimmed string value for key, or nil when the
// value is absent, not a string, or empty after trimming. Non-string values
// are discarded, never coerced.
func normalizedField(fields map[string]any, key string) *string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}

	s, ok := raw.(string)
	if !ok {
		return nil
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

func firstPresent(fields map[string]any, aliases []string) *string {
	for _, key := range aliases {
		if v := normalizedField(fields, key); v != nil {
			return v
		}
	}
	return nil
}

// joinPayload mirrors the submission shape for the validator; the honeypot
// field is checked separately so bot traffic short-circuits before email
// validation.
type joinPayload struct {
	Email   string `validate:"required,email,max=320"`
	UseCase string `validate:"omitempty,max=1200"`
}

// Validate enforces the structural constraints on a submission. There is no
// partial acceptance: any violation rejects the whole payload.
func (s Submission) Validate() (*ValidatedSubmission, error) {
	payload := joinPayload{}
	if s.Email != nil {
		payload.Email = *s.Email
	}
	if s.UseCase != nil {
		payload.UseCase = *s.UseCase
	}

	if err := validate.Struct(payload); err != nil {
		return nil, err
	}

	return &ValidatedSubmission{
		Email:   lowercaseFold.String(payload.Email),
		UseCase: s.UseCase,
	}, nil
}

// honeypotTripped reports whether the hidden website/company field was filled
// in. Values beyond the length ceiling are left to the validator's rejection
// path instead.
func (s Submission) honeypotTripped() bool {
	return s.Website != nil && *s.Website != "" &&
		len([]rune(*s.Website)) <= constants.MaxHoneypotLength
}

// honeypotOversized reports a website value that exceeds its ceiling, which is
// a plain validation failure rather than bot traffic to be humored.
func (s Submission) honeypotOversized() bool {
	return s.Website != nil && len([]rune(*s.Website)) > constants.MaxHoneypotLength
}
