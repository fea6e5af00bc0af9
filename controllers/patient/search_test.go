package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameFilterEmpty(t *testing.T) {
	assert.Nil(t, ParseNameFilter(""))
	assert.Nil(t, ParseNameFilter("   "))
}

func TestParseNameFilterSingleToken(t *testing.T) {
	nf := ParseNameFilter("smith")
	require.NotNil(t, nf)
	assert.Equal(t, "(users.first_name ILIKE ? OR users.last_name ILIKE ?)", nf.Clause)
	assert.Equal(t, []interface{}{"%smith%", "%smith%"}, nf.Args)
}

func TestParseNameFilterTwoTokensAnchored(t *testing.T) {
	nf := ParseNameFilter("john smith")
	require.NotNil(t, nf)
	assert.Equal(t, "(users.first_name ILIKE ? AND users.last_name ILIKE ?)", nf.Clause)
	assert.Equal(t, []interface{}{"john%", "smith%"}, nf.Args)
}

func TestParseNameFilterExtraTokensIgnored(t *testing.T) {
	nf := ParseNameFilter("john  smith jr")
	require.NotNil(t, nf)
	assert.Equal(t, []interface{}{"john%", "smith%"}, nf.Args)
}

func TestSortColumn(t *testing.T) {
	assert.Equal(t, "doctor_profiles.years_experience", sortColumn("experience"))
	assert.Equal(t, "doctor_profiles.rating", sortColumn("rating"))
	assert.Equal(t, "doctor_profiles.consultation_fee", sortColumn("fee"))
	assert.Equal(t, "users.last_name", sortColumn("name"))
	assert.Equal(t, "users.last_name", sortColumn(""))
	assert.Equal(t, "users.last_name", sortColumn("bogus"))
}
