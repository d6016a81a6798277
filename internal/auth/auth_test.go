package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusride/carpool/internal/domain"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse"))
}

func testUser() domain.User {
	return domain.User{ID: uuid.New(), Login: "ada.lovelace", Roles: []string{domain.RoleUser}}
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("s3cret", time.Hour, "carpool-api")
	u := testUser()

	token, err := m.Issue(u)
	require.NoError(t, err)

	id, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: u.ID, Login: u.Login, Roles: u.Roles}, id)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("s3cret", time.Minute, "carpool-api")
	issued := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.Issue(testUser())
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.Parse(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	m := NewTokenManager("s3cret", time.Hour, "carpool-api")

	otherSecret, err := NewTokenManager("other", time.Hour, "carpool-api").Issue(testUser())
	require.NoError(t, err)
	otherIssuer, err := NewTokenManager("s3cret", time.Hour, "someone-else").Issue(testUser())
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": uuid.NewString()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": otherSecret,
		"wrong issuer": otherIssuer,
		"alg none":     unsigned,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer abc.def", "abc.def", true},
		{"Bearer ", "", false},
		{"Basic dXNlcg==", "", false},
		{"", "", false},
		{"abc.def", "", false},
	}
	for _, tc := range cases {
		got, ok := BearerToken(tc.header)
		assert.Equal(t, tc.ok, ok, "header %q", tc.header)
		assert.Equal(t, tc.want, got, "header %q", tc.header)
	}
}
