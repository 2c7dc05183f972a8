package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func legacyBikeRaw(t *testing.T, productionYear interface{}) []byte {
	t.Helper()
	raw, err := bson.Marshal(bson.M{
		"_id":             primitive.NewObjectID(),
		"brand":           "Honda",
		"model":           "CB500",
		"production_year": productionYear,
		"engine":          "500cc",
		"price":           4000.0,
		"location":        "Tirana",
		"user_id":         primitive.NewObjectID(),
		"is_sold":         false,
		"published":       primitive.NewDateTimeFromTime(time.Now()),
	})
	assert.NoError(t, err)
	return raw
}

func TestBikeDoc_DecodesDatetimeProductionYear(t *testing.T) {
	stored := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	raw := legacyBikeRaw(t, primitive.NewDateTimeFromTime(stored))

	var doc bikeDoc
	assert.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, 2019, doc.toEntity().ProductionYear)
}

func TestBikeDoc_DecodesIntegerProductionYear(t *testing.T) {
	raw := legacyBikeRaw(t, 2021)

	var doc bikeDoc
	assert.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, 2021, doc.toEntity().ProductionYear)
}

func TestYearOf(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int
	}{
		{"nil", nil, 0},
		{"int", 2020, 2020},
		{"int32", int32(2018), 2018},
		{"int64", int64(2017), 2017},
		{"float", 2016.0, 2016},
		{"datetime", primitive.NewDateTimeFromTime(time.Date(2015, 3, 4, 12, 0, 0, 0, time.UTC)), 2015},
		{"time", time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC), 2014},
		{"numeric string", " 2013 ", 2013},
		{"garbage string", "soon", 0},
		{"unsupported", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, yearOf(tt.in))
		})
	}
}
