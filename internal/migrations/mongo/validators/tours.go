package validators

import "go.mongodb.org/mongo-driver/bson"

var bookingSchema = bson.M{
	"bsonType": "object",
	"required": []string{"_id", "title", "start", "end"},
	"properties": bson.M{
		"_id": bson.M{
			"bsonType":  "string",
			"minLength": 36,
			"maxLength": 36,
		},
		"year": bson.M{
			"bsonType": []string{"int", "long"},
		},
		"title": bson.M{
			"bsonType":  "string",
			"minLength": 1,
			"maxLength": 200,
		},
		"start": bson.M{
			"bsonType": "date",
		},
		"end": bson.M{
			"bsonType": "date",
		},
		"status": bson.M{
			"bsonType":  "string",
			"maxLength": 50,
		},
		"participants": bson.M{
			"bsonType": []string{"int", "long"},
			"minimum":  0,
			"maximum":  1000,
		},
		"snacks": bson.M{
			"bsonType": "bool",
		},
		"contactEmail": bson.M{
			"bsonType": "string",
		},
	},
}

// TourValidator describes a YearDocument: one document per calendar year
// with the bookings of that year embedded.
var TourValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"year", "bookings"},
		"properties": bson.M{
			"year": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1970,
				"maximum":  9999,
			},
			"bookings": bson.M{
				"bsonType": "array",
				"items":    bookingSchema,
			},
		},
	},
}
