package db_models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gormTag(t *testing.T, model any, field string) string {
	t.Helper()
	f, ok := reflect.TypeOf(model).FieldByName(field)
	require.True(t, ok, "field %s", field)
	return f.Tag.Get("gorm")
}

// The pair indexes are what makes duplicate friend requests and duplicate
// share rows lose at the database, not just in the service-layer check.
func TestFriendshipPairIsUnique(t *testing.T) {
	assert.True(t, strings.Contains(gormTag(t, Friendship{}, "RequesterID"), "uniqueIndex:idx_friendship_pair"))
	assert.True(t, strings.Contains(gormTag(t, Friendship{}, "RecipientID"), "uniqueIndex:idx_friendship_pair"))
}

func TestTripSharePairIsUnique(t *testing.T) {
	assert.True(t, strings.Contains(gormTag(t, TripShare{}, "TripID"), "uniqueIndex:idx_trip_share_pair"))
	assert.True(t, strings.Contains(gormTag(t, TripShare{}, "UserID"), "uniqueIndex:idx_trip_share_pair"))
}
