package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
)

func TestBuildFilter(t *testing.T) {
	t.Run("range only", func(t *testing.T) {
		filter := buildFilter(entities.Criteria{Start: 1000, End: 2000})
		assert.Equal(t, bson.M{
			"originationTime": bson.M{"$gte": int64(1000), "$lte": int64(2000)},
		}, filter)
	})

	t.Run("one key per active constraint", func(t *testing.T) {
		filter := buildFilter(entities.Criteria{
			Start:     1000,
			End:       2000,
			Phone:     "SEP123",
			Voicemail: "VM123",
			UserID:    "1001",
			ClusterID: "cluster-a",
		})
		assert.Equal(t, bson.M{
			"originationTime":   bson.M{"$gte": int64(1000), "$lte": int64(2000)},
			"devices.phone":     "SEP123",
			"devices.voicemail": "VM123",
			"userId":            "1001",
			"clusterId":         "cluster-a",
		}, filter)
	})

	t.Run("empty optional fields impose no constraint", func(t *testing.T) {
		filter := buildFilter(entities.Criteria{Start: 0, End: 10, UserID: "1001"})
		assert.Len(t, filter, 2)
		assert.NotContains(t, filter, "devices.phone")
		assert.NotContains(t, filter, "clusterId")
	})
}
