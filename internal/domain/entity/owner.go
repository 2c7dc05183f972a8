package entity

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolveOwnerID normalizes an owner reference into a canonical id
// string. Older documents store the reference as a raw ObjectID or hex
// string; documents written by clients that expanded the reference
// carry an object with an "_id", "id" or "sub" field. Every ownership
// comparison must go through this function.
func ResolveOwnerID(ref interface{}) string {
	switch v := ref.(type) {
	case nil:
		return ""
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	case bson.M:
		return resolveFromMap(map[string]interface{}(v))
	case map[string]interface{}:
		return resolveFromMap(v)
	case bson.D:
		m := make(map[string]interface{}, len(v))
		for _, e := range v {
			m[e.Key] = e.Value
		}
		return resolveFromMap(m)
	default:
		return ""
	}
}

func resolveFromMap(m map[string]interface{}) string {
	for _, key := range []string{"_id", "id", "sub"} {
		if v, ok := m[key]; ok {
			if id := ResolveOwnerID(v); id != "" {
				return id
			}
		}
	}
	return ""
}
