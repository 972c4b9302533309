package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"name", "email", "role", "password", "active"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},
			"email": bson.M{
				"bsonType": "string",
				"pattern":  `^[^@\s]+@[^@\s]+$`,
			},
			"role": bson.M{
				"bsonType": "string",
				"enum":     []string{"admin", "staff"},
			},
			"password": bson.M{
				"bsonType":  "string",
				"minLength": 59,
			},
			"active": bson.M{
				"bsonType": "bool",
			},
			"resetTokenHash": bson.M{
				"bsonType":  "string",
				"minLength": 64,
				"maxLength": 64,
			},
			"resetTokenExpires": bson.M{
				"bsonType": "date",
			},
		},
	},
}
