package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func LocaleUUID(localeCode string) uuid.UUID {
	return UUID("gurukul:locale:" + strings.ToLower(strings.TrimSpace(localeCode)))
}

func CategoryUUID(namespace, name string) uuid.UUID {
	return UUID("gurukul:category:" + strings.ToLower(strings.TrimSpace(namespace)) + ":" + strings.ToLower(strings.TrimSpace(name)))
}

// NoticeUUID returns the fixed identifier of the singleton notification popup.
func NoticeUUID() uuid.UUID {
	return UUID("gurukul:notice:singleton")
}

func ReferralLinkUUID(code string) uuid.UUID {
	return UUID("gurukul:referral_link:" + strings.ToLower(strings.TrimSpace(code)))
}

func PostUUID(slug string) uuid.UUID {
	return UUID("gurukul:post:" + strings.ToLower(strings.TrimSpace(slug)))
}
