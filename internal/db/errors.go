package db

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// IsDuplicateKeyError checks if an error from MongoDB is a duplicate key error
// (code 11000). Used to translate unique index violations into domain errors.
func IsDuplicateKeyError(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, writeError := range we.WriteErrors {
			if writeError.Code == 11000 {
				return true
			}
		}
	}
	// Also check for BulkWriteException, which can contain duplicate key errors
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, writeError := range bwe.WriteErrors {
			if writeError.Code == 11000 {
				return true
			}
		}
	}
	return false
}
