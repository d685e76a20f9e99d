package models

// Host is an identity reference only. The record is owned by the external
// auth collaborator; this service reads it and never writes it.
type Host struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}
