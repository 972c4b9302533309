package validators

import "go.mongodb.org/mongo-driver/bson"

var GuideValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"fullName", "email", "active"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},
			"fullName": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},
			"email": bson.M{
				"bsonType": "string",
				"pattern":  `^[^@\s]+@[^@\s]+$`,
			},
			"photo": bson.M{
				"bsonType": "string",
			},
			"active": bson.M{
				"bsonType": "bool",
			},
			"updatedAt": bson.M{
				"bsonType": "date",
			},
			"updatedBy": bson.M{
				"bsonType": "string",
			},
		},
	},
}
