package services

import "go.mongodb.org/mongo-driver/bson/primitive"

// CanMutate decides whether the caller may update or delete a property.
// Single-owner model: only the identity that created the property qualifies.
func CanMutate(callerID, ownerID primitive.ObjectID) bool {
	return callerID == ownerID
}
