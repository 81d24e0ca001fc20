package domain

import "strings"

// GrantType is an OAuth2 authorization mechanism a client is permitted to
// use.
type GrantType string

const (
	GrantTypePassword          GrantType = "password"
	GrantTypeClientCredentials GrantType = "client_credentials"
	GrantTypeRefreshToken      GrantType = "refresh_token"
	GrantTypeImplicit          GrantType = "implicit"
	GrantTypeAuthorizationCode GrantType = "authorization_code"
)

// AllowedGrantTypes is the fixed set of grant types the registry supports,
// in the order they are reported to callers.
var AllowedGrantTypes = []GrantType{
	GrantTypePassword,
	GrantTypeClientCredentials,
	GrantTypeRefreshToken,
	GrantTypeImplicit,
	GrantTypeAuthorizationCode,
}

// ParseGrantTypes validates a whitespace-delimited grant type list against
// the supported set. Matching is case-sensitive and duplicates are kept;
// order follows the input. An empty or blank input is rejected.
func ParseGrantTypes(raw string) ([]GrantType, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, &ValidationError{msg: "You must specify the allowedGrantTypes property"}
	}

	parsed := make([]GrantType, 0, len(fields))
	for _, field := range fields {
		gt := GrantType(field)
		if !isAllowedGrantType(gt) {
			return nil, &ValidationError{
				msg: "allowedGrantTypes can only contain supported grant types as a space-delimited string. Possible supported options are: " + joinGrantTypes(AllowedGrantTypes),
			}
		}
		parsed = append(parsed, gt)
	}

	return parsed, nil
}

func isAllowedGrantType(gt GrantType) bool {
	for _, allowed := range AllowedGrantTypes {
		if gt == allowed {
			return true
		}
	}
	return false
}

func joinGrantTypes(gts []GrantType) string {
	parts := make([]string, len(gts))
	for i, gt := range gts {
		parts[i] = string(gt)
	}
	return strings.Join(parts, " ")
}

// GrantTypeStrings converts a grant type slice to plain strings, mostly for
// storage and response encoding.
func GrantTypeStrings(gts []GrantType) []string {
	out := make([]string, len(gts))
	for i, gt := range gts {
		out[i] = string(gt)
	}
	return out
}
