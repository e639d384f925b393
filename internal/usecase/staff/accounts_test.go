package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	staffDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

func newAccounts() (*Accounts, *memUsers, *memClinics, *memAudit) {
	users := newMemUsers()
	clinics := &memClinics{rows: map[string]*models.Clinic{}, users: users}
	rec := &memAudit{}
	return NewAccounts(clinics, users, stubTokens{}, nil, rec), users, clinics, rec
}

func registerInput() RegisterInput {
	return RegisterInput{
		ClinicName: "Clínica Sorriso",
		ClinicSlug: " Sorriso-Centro ",
		Profile: staffDomain.Profile{
			Name:     "Carla",
			Email:    "Carla@Sorriso.com",
			Password: "segredo123",
		},
	}
}

func TestAccounts_Register(t *testing.T) {
	ctx := context.Background()
	acc, users, _, rec := newAccounts()

	s, err := acc.Register(ctx, registerInput())
	require.NoError(t, err)

	assert.Equal(t, "sorriso-centro", s.Clinic.Slug)
	assert.Equal(t, timezone.Default(), s.Clinic.Timezone)
	assert.Equal(t, models.RoleAdmin, s.User.Role)
	assert.Equal(t, "carla@sorriso.com", s.User.Email)
	assert.Equal(t, s.Clinic.ID, s.User.ClinicID)
	assert.Equal(t, "token-"+s.User.ID, s.Token)
	assert.NotEqual(t, "segredo123", users.rows[s.User.ID].PasswordHash)
	assert.Equal(t, []string{"clinic_registered"}, rec.actions())

	t.Run("slug taken", func(t *testing.T) {
		in := registerInput()
		in.Email = "outra@sorriso.com"
		_, err := acc.Register(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "slug_already_exists"))
	})

	t.Run("email taken", func(t *testing.T) {
		in := registerInput()
		in.ClinicSlug = "sorriso-norte"
		_, err := acc.Register(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "email_already_registered"))
	})

	t.Run("bad slug", func(t *testing.T) {
		in := registerInput()
		in.ClinicSlug = "a--b"
		_, err := acc.Register(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "invalid_slug"))
	})

	t.Run("bad timezone", func(t *testing.T) {
		in := registerInput()
		in.ClinicSlug = "sorriso-sul"
		in.Email = "x@sorriso.com"
		in.Timezone = "Marte/Olympus"
		_, err := acc.Register(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "invalid_timezone"))
	})

	t.Run("email domain rejected", func(t *testing.T) {
		users := newMemUsers()
		clinics := &memClinics{rows: map[string]*models.Clinic{}, users: users}
		strict := NewAccounts(clinics, users, stubTokens{}, func(string) bool { return false }, &memAudit{})

		_, err := strict.Register(ctx, registerInput())
		assert.True(t, httperr.IsBusiness(err, "invalid_email_domain"))
	})
}

func TestAccounts_Login(t *testing.T) {
	ctx := context.Background()
	acc, users, _, _ := newAccounts()

	s, err := acc.Register(ctx, registerInput())
	require.NoError(t, err)

	got, err := acc.Login(ctx, " CARLA@sorriso.com ", "segredo123")
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, got.User.ID)
	assert.Equal(t, s.Clinic.ID, got.Clinic.ID)

	_, err = acc.Login(ctx, "carla@sorriso.com", "errada")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
	assert.Equal(t, httperr.KindUnauthorized, httperr.KindOf(err))

	_, err = acc.Login(ctx, "ninguem@sorriso.com", "segredo123")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	users.rows[s.User.ID].Status = models.UserStatusInactive
	_, err = acc.Login(ctx, "carla@sorriso.com", "segredo123")
	assert.True(t, httperr.IsBusiness(err, "user_inactive"))
}

func TestAccounts_Me(t *testing.T) {
	ctx := context.Background()
	acc, _, _, _ := newAccounts()

	s, err := acc.Register(ctx, registerInput())
	require.NoError(t, err)

	u, c, err := acc.Me(ctx, s.Clinic.ID, s.User.ID)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, u.ID)
	assert.Equal(t, "sorriso-centro", c.Slug)

	_, _, err = acc.Me(ctx, "outra-clinica", s.User.ID)
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
}
