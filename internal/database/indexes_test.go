package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexSpecsEnforceInvariants(t *testing.T) {
	specs := indexSpecs()

	for _, coll := range []string{"follows", "subscriptions", "likes", "histories", "watch_later"} {
		require.NotEmpty(t, specs[coll], coll)
		first := specs[coll][0]
		require.NotNil(t, first.Options, coll)
		require.NotNil(t, first.Options.Unique, coll)
		assert.True(t, *first.Options.Unique, coll)
	}

	ttl := specs["activities"][0].Options
	require.NotNil(t, ttl.ExpireAfterSeconds)
	assert.Equal(t, int32(90*24*60*60), *ttl.ExpireAfterSeconds)
}
