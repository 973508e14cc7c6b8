package validators

import "go.mongodb.org/mongo-driver/bson"

var location = bson.M{
	"bsonType": "object",
	"required": []string{"address"},
	"properties": bson.M{
		"address": bson.M{"bsonType": "string", "minLength": 1},
		"coordinates": bson.M{
			"bsonType": "object",
			"required": []string{"lat", "lng"},
			"properties": bson.M{
				"lat": bson.M{"bsonType": "number", "minimum": -90, "maximum": 90},
				"lng": bson.M{"bsonType": "number", "minimum": -180, "maximum": 180},
			},
		},
	},
}

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"userInfo",
			"searchCriteria",
			"selectedCars",
			"pickupLocation",
			"dropoffLocation",
			"contactName",
			"contactNo",
			"contactEmail",
			"totalPrice",
			"chauffeurSelected",
			"bookingDateTime",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"userInfo": bson.M{
				"bsonType": "objectId",
			},

			"searchCriteria": bson.M{
				"bsonType": "object",
				"required": []string{"carType", "startDate", "endDate", "startTime", "endTime"},
				"properties": bson.M{
					"carType":   bson.M{"bsonType": "string"},
					"startDate": bson.M{"bsonType": "date"},
					"endDate":   bson.M{"bsonType": "date"},
					"startTime": bson.M{"bsonType": "string"},
					"endTime":   bson.M{"bsonType": "string"},
				},
			},

			"selectedCars": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"car", "quantity"},
					"properties": bson.M{
						"car":      bson.M{"bsonType": "objectId"},
						"quantity": bson.M{"bsonType": []string{"int", "long"}, "minimum": 1},
					},
				},
			},

			"pickupLocation":  location,
			"dropoffLocation": location,

			"distance": bson.M{
				"bsonType": "number",
				"minimum":  0,
			},

			"contactName":  bson.M{"bsonType": "string"},
			"contactNo":    bson.M{"bsonType": "string"},
			"contactEmail": bson.M{"bsonType": "string"},

			"totalPrice": bson.M{
				"bsonType": "number",
				"minimum":  0,
			},

			"chauffeurSelected": bson.M{"bsonType": "bool"},
			"breakdown":         bson.M{"bsonType": "object"},
			"bookingDateTime":   bson.M{"bsonType": "date"},
		},
	},
}
