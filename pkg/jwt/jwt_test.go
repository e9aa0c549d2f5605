package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/hotel-warehouse/pkg/jwt"
)

func TestGenerateParse_RoundTripsProfile(t *testing.T) {
	tok, err := pkgjwt.Generate("secret", "u-1", "Admin User", "Manager", "hotel-warehouse", 5)
	require.NoError(t, err)

	id, name, role, err := pkgjwt.Parse("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)
	assert.Equal(t, "Admin User", name)
	assert.Equal(t, "Manager", role)
}

func TestParse_RejectsWrongSecretAndExpired(t *testing.T) {
	tok, err := pkgjwt.Generate("secret", "u-1", "Admin User", "Manager", "hotel-warehouse", 5)
	require.NoError(t, err)
	_, _, _, err = pkgjwt.Parse("other", tok)
	assert.Error(t, err)

	expired, err := pkgjwt.Generate("secret", "u-1", "Admin User", "Manager", "hotel-warehouse", -1)
	require.NoError(t, err)
	_, _, _, err = pkgjwt.Parse("secret", expired)
	assert.Error(t, err)
}

func TestGenerate_RequiresSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "n", "Staff", "i", 5)
	assert.Error(t, err)
}
