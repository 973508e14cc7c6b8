package validators

import "go.mongodb.org/mongo-driver/bson"

var CarValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"model", "make", "price", "type", "image"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":   bson.M{"bsonType": "objectId"},
			"model": bson.M{"bsonType": "string"},
			"make":  bson.M{"bsonType": "string"},
			"price": bson.M{"bsonType": "number", "minimum": 0},
			"type": bson.M{
				"bsonType": "string",
				"enum":     []string{"suv", "economy", "luxury"},
			},
			"image": bson.M{"bsonType": "string"},
		},
	},
}
