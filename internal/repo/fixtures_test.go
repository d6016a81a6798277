package repo_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/repo"
	"github.com/campusride/carpool/testutil"
)

// newTestRepos returns every repository bound to a transaction that is
// rolled back when the test finishes.
func newTestRepos(t *testing.T) repo.Repos {
	t.Helper()
	return repo.NewRepos(testutil.NewTx(t))
}

// unique returns a short suffix so fixtures never collide on unique columns.
func unique() string {
	return uuid.NewString()[:8]
}

func seedCity(t *testing.T, r repo.Repos, name string) domain.City {
	t.Helper()
	c, err := r.Cities.Create(context.Background(), domain.City{Name: name + "-" + unique(), Zipcode: "35000"})
	require.NoError(t, err, "seed city")
	return c
}

func seedUser(t *testing.T, r repo.Repos, roles ...string) domain.User {
	t.Helper()
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}
	u, err := r.Users.Create(context.Background(), domain.User{
		Login:        "user-" + unique(),
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarealhash",
		Roles:        roles,
	})
	require.NoError(t, err, "seed user")
	return u
}

func seedStudent(t *testing.T, r repo.Repos, cityID uuid.UUID) domain.Student {
	t.Helper()
	u := seedUser(t, r)
	suffix := unique()
	s, err := r.Students.Create(context.Background(), domain.Student{
		Firstname:    "Ada",
		Name:         "Lovelace-" + suffix,
		Phone:        fmt.Sprintf("06%08d", rand.IntN(100000000)),
		Email:        "ada-" + suffix + "@example.com",
		RegisteredBy: u.ID,
		CityID:       cityID,
	})
	require.NoError(t, err, "seed student")
	return s
}

func tripFixture(driverID, startID, arriveID uuid.UUID, places int) domain.Trip {
	return domain.Trip{
		DriverID:      driverID,
		StartCityID:   startID,
		ArriveCityID:  arriveID,
		KmDistance:    120.5,
		TravelDate:    time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		PlacesOffered: places,
	}
}

func seedTrip(t *testing.T, r repo.Repos, places int) (domain.Trip, domain.City, domain.City) {
	t.Helper()
	start := seedCity(t, r, "Rennes")
	arrive := seedCity(t, r, "Nantes")
	driver := seedStudent(t, r, start.ID)

	trip, err := r.Trips.Create(context.Background(), tripFixture(driver.ID, start.ID, arrive.ID, places))
	require.NoError(t, err, "seed trip")
	return trip, start, arrive
}
