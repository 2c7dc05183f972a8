package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveOwnerID(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name string
		ref  interface{}
		want string
	}{
		{"nil", nil, ""},
		{"hex string", "64a000000000000000000001", "64a000000000000000000001"},
		{"object id", oid, oid.Hex()},
		{"map with _id", map[string]interface{}{"_id": oid}, oid.Hex()},
		{"map with id", map[string]interface{}{"id": "u-42"}, "u-42"},
		{"map with sub", map[string]interface{}{"sub": "u-43"}, "u-43"},
		{"nested object", bson.M{"_id": bson.M{"id": "u-44"}}, "u-44"},
		{"bson document", bson.D{{Key: "_id", Value: oid}}, oid.Hex()},
		{"prefers _id over sub", bson.M{"_id": "u-1", "sub": "u-2"}, "u-1"},
		{"unsupported type", 42, ""},
		{"empty map", bson.M{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveOwnerID(tt.ref))
		})
	}
}
