// Package sanitizer normalizes user supplied contact data before it is
// validated and stored.
//
// All normalization functions are idempotent. Invalid input is handled
// gracefully: phone numbers that cannot be parsed are kept as typed (trimmed)
// rather than dropped, so no contact data is lost.
//
// Normalization includes:
//   - Phone numbers: E.164 (+[country][number]), national numbers read as SE or NO
//   - Emails: trimmed and lowercased
//   - Names and free text: whitespace collapsed, leading/trailing spaces trimmed
//   - URLs: scheme enforced, host lowercased, trailing slash dropped
//
// Filter criteria are never sanitized; predicates compare against stored values.
package sanitizer
