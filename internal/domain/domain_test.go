package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusride/carpool/internal/domain"
)

func TestDayWindow_InclusiveBounds(t *testing.T) {
	day, err := domain.ParseDay("2024-06-01")
	require.NoError(t, err)

	from, to := domain.DayWindow(day)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC), to)

	lastSecond := time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.False(t, lastSecond.After(to), "23:59:59 must fall inside the window")
	assert.True(t, nextDay.After(to), "midnight of the next day must fall outside the window")
}

func TestDayWindow_IgnoresTimeOfDay(t *testing.T) {
	from, _ := domain.DayWindow(time.Date(2024, 7, 1, 8, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), from)
}

func TestParseDay_Invalid(t *testing.T) {
	for _, in := range []string{"", "2024-13-01", "01/06/2024", "2024-06-01 08:00:00"} {
		_, err := domain.ParseDay(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestError_KindMatching(t *testing.T) {
	err := fmt.Errorf("service.ParticipationService.Enroll: %w", domain.ErrCapacityExceeded)

	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrAlreadyEnrolled)
	assert.Equal(t, "trip is full", domain.Message(err, "fallback"))
}

func TestMessage_FallbackForForeignErrors(t *testing.T) {
	err := errors.New(`pq: duplicate key value violates unique constraint "cars_matriculation_key"`)

	assert.Equal(t, "fallback", domain.Message(err, "fallback"))
}

func TestOptional(t *testing.T) {
	id := uuid.New()

	some := domain.Some(id)
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, id, v)
	require.NotNil(t, some.Ptr())
	assert.Equal(t, id, *some.Ptr())

	none := domain.None[uuid.UUID]()
	assert.False(t, none.Present())
	assert.Nil(t, none.Ptr())
	assert.Equal(t, uuid.Nil, none.OrElse(uuid.Nil))

	assert.False(t, domain.FromPtr[string](nil).Present())
	s := "Clio"
	assert.Equal(t, "Clio", domain.FromPtr(&s).OrElse(""))
}

func TestOptional_JSON(t *testing.T) {
	type body struct {
		Car domain.Optional[string] `json:"car"`
	}

	b, err := json.Marshal(body{Car: domain.None[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"car":null}`, string(b))

	b, err = json.Marshal(body{Car: domain.Some("Clio")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"car":"Clio"}`, string(b))

	var got body
	require.NoError(t, json.Unmarshal([]byte(`{}`), &got))
	assert.False(t, got.Car.Present())
	require.NoError(t, json.Unmarshal([]byte(`{"car":"208"}`), &got))
	assert.Equal(t, "208", got.Car.OrElse(""))
}

func TestIdentity_IsAdmin(t *testing.T) {
	assert.True(t, domain.Identity{Roles: []string{domain.RoleUser, domain.RoleAdmin}}.IsAdmin())
	assert.False(t, domain.Identity{Roles: []string{domain.RoleUser}}.IsAdmin())
	assert.True(t, domain.User{Roles: []string{domain.RoleAdmin}}.IsAdmin())
}
