// Package entities contains core domain data structures.
package entities

// Devices holds the device identifiers attached to a record. Either field
// may be empty when the record has no such device; an absent device is a
// normal state, not an error.
type Devices struct {
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Voicemail string `json:"voicemail,omitempty" bson:"voicemail,omitempty"`
}

// Record is a single call-detail event. Records are created by the active
// backend's data source and are read-only in this system.
type Record struct {
	ID              int64   `json:"id" bson:"id"`
	OriginationTime int64   `json:"originationTime" bson:"originationTime"`
	ClusterID       string  `json:"clusterId" bson:"clusterId"`
	UserID          string  `json:"userId" bson:"userId"`
	Devices         Devices `json:"devices" bson:"devices"`
}
