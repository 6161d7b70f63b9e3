package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestMongoDocument_RoundTrip(t *testing.T) {
	t.Parallel()

	changed := time.Date(2024, 11, 5, 9, 30, 0, 0, time.UTC)
	v := Defaults(changed)
	v.City = "Lisbon"
	v.AvatarKey = "avatars/01J.png"
	v.Security.TwoFactorEnabled = true
	v.UpdatedAt = changed.Add(time.Hour)

	raw, err := bson.Marshal(mongoDocument{Key: "soar@soar.com", Settings: v})
	require.NoError(t, err)

	var flat bson.M
	require.NoError(t, bson.Unmarshal(raw, &flat))
	assert.Equal(t, "soar@soar.com", flat["_id"])
	assert.Equal(t, "Lisbon", flat["city"], "profile fields are inlined")
	assert.NotContains(t, flat, "profile")
	assert.NotContains(t, flat, "settings")
	assert.Contains(t, flat, "preferences")

	var got mongoDocument
	require.NoError(t, bson.Unmarshal(raw, &got))
	assert.Equal(t, "soar@soar.com", got.Key)
	assert.Equal(t, v, got.Settings)
}

func TestMongoDocument_OmitsEmptyAvatarKey(t *testing.T) {
	t.Parallel()

	raw, err := bson.Marshal(mongoDocument{Key: "k", Settings: Defaults(time.Unix(0, 0))})
	require.NoError(t, err)

	var flat bson.M
	require.NoError(t, bson.Unmarshal(raw, &flat))
	assert.NotContains(t, flat, "avatarKey")
}
