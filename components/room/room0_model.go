package room

import (
	"time"

	"pingpal/components/account"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateRoom struct {
	UID       string    `json:"uid" bson:"uid"`
	Label     string    `json:"label" bson:"label"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	Access    []string  `json:"access" bson:"access"`
}

type Room struct {
	Id        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	UID       string             `json:"uid" bson:"uid"`
	Label     string             `json:"label" bson:"label"`
	CreatedAt time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	Access    []string           `json:"access" bson:"access"`

	// Accounts is hydrated on read when requested, never persisted.
	Accounts []*account.ResponseAccount `json:"accounts,omitempty" bson:"-"`
}

func (me *Room) HasAccess(accountUID string) bool {
	for _, uid := range me.Access {
		if uid == accountUID {
			return true
		}
	}
	return false
}

type ResponseAccess struct {
	HasAccess bool `json:"hasAccess"`
}
