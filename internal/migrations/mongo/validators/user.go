package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "contactNo", "email", "createdAt", "updatedAt"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":       bson.M{"bsonType": "objectId"},
			"name":      bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
			"contactNo": bson.M{"bsonType": "string", "minLength": 1},
			"email":     bson.M{"bsonType": "string", "minLength": 3, "maxLength": 254},
			"otp":       bson.M{"bsonType": "string"},
			"createdAt": bson.M{"bsonType": "date"},
			"updatedAt": bson.M{"bsonType": "date"},
		},
	},
}
