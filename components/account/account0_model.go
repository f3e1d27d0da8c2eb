package account

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status = string

const (
	Pending  Status = "pending"
	Waiting  Status = "waiting"
	Resolved Status = "resolved"
	Rejected Status = "rejected"
)

var ValidStatuses = [4]Status{Pending, Waiting, Resolved, Rejected}

// ProtectedFields are stripped from any generic partial-update payload
// before merging. Clients mutate these through dedicated endpoints only.
var ProtectedFields = []string{"_id", "uid", "password", "contact", "rooms", "friends", "invites", "storage"}

const FlagNeedsInit = "needs_init"

type AccountContact struct {
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

type AccountDetails struct {
	FirstName  string     `json:"first_name,omitempty" bson:"first_name,omitempty"`
	MiddleName string     `json:"middle_name,omitempty" bson:"middle_name,omitempty"`
	LastName   string     `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Birthdate  *time.Time `json:"birthdate,omitempty" bson:"birthdate,omitempty"`
	Sex        string     `json:"sex,omitempty" bson:"sex,omitempty"`
}

// Friend is a contact entry embedded in its owning account. It references
// another account, it does not own it.
type Friend struct {
	AccountId     string     `json:"account_id" bson:"account_id"`
	Favorite      bool       `json:"favorite" bson:"favorite"`
	LastContacted *time.Time `json:"last_contacted,omitempty" bson:"last_contacted,omitempty"`
}

// Invite tracks one side of a friend request. Both parties carry a copy
// sharing the same id; the copies move to resolved or rejected together and
// stay around as history.
type Invite struct {
	Id        string    `json:"id" bson:"id"`
	AccountId string    `json:"account_id" bson:"account_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Status    Status    `json:"status" bson:"status"`
}

func (me *Invite) IsTerminal() bool {
	return me.Status == Resolved || me.Status == Rejected
}

type CreateAccount struct {
	UID       string                 `json:"uid" bson:"uid"`
	Label     string                 `json:"label" bson:"label"`
	Password  string                 `json:"-" bson:"password,omitempty"`
	CreatedAt time.Time              `json:"created_at,omitempty" bson:"created_at,omitempty"`
	AvatarUrl string                 `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Contact   *AccountContact        `json:"contact" bson:"contact"`
	Flags     []string               `json:"flags,omitempty" bson:"flags,omitempty"`
	Friends   []*Friend              `json:"friends" bson:"friends"`
	Invites   []*Invite              `json:"invites" bson:"invites"`
	Storage   map[string]interface{} `json:"-" bson:"storage,omitempty"`
}

type DBAccount struct {
	Id        primitive.ObjectID     `json:"-" bson:"_id,omitempty"`
	UID       string                 `json:"uid" bson:"uid"`
	Label     string                 `json:"label" bson:"label"`
	Password  string                 `json:"-" bson:"password,omitempty"`
	CreatedAt time.Time              `json:"created_at,omitempty" bson:"created_at,omitempty"`
	AvatarUrl string                 `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Contact   *AccountContact        `json:"contact" bson:"contact"`
	Details   *AccountDetails        `json:"details,omitempty" bson:"details,omitempty"`
	Flags     []string               `json:"flags,omitempty" bson:"flags,omitempty"`
	Friends   []*Friend              `json:"friends,omitempty" bson:"friends,omitempty"`
	Invites   []*Invite              `json:"invites,omitempty" bson:"invites,omitempty"`
	Storage   map[string]interface{} `json:"-" bson:"storage,omitempty"`
}

// FindFriend returns the friend entry referencing uid, or nil.
func (me *DBAccount) FindFriend(uid string) *Friend {
	for _, f := range me.Friends {
		if f != nil && f.AccountId == uid {
			return f
		}
	}
	return nil
}

// FindInvite returns the invite copy with the given id, or nil.
func (me *DBAccount) FindInvite(id string) *Invite {
	for _, inv := range me.Invites {
		if inv != nil && inv.Id == id {
			return inv
		}
	}
	return nil
}

// HasOpenInviteWith reports whether a non-terminal invite referencing uid
// exists in this account's history.
func (me *DBAccount) HasOpenInviteWith(uid string) bool {
	for _, inv := range me.Invites {
		if inv != nil && inv.AccountId == uid && !inv.IsTerminal() {
			return true
		}
	}
	return false
}

func (me *DBAccount) RemoveFlag(flag string) {
	for i, f := range me.Flags {
		if f == flag {
			me.Flags = append(me.Flags[:i], me.Flags[i+1:]...)
			return
		}
	}
}

// AccountRoom is the slim view of a room hydrated into an info response.
type AccountRoom struct {
	UID       string    `json:"uid"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	Access    []string  `json:"access"`
}

// I_RoomFinder is what the account controller needs from the room side to
// hydrate an info response. Implemented by room.RoomService.
type I_RoomFinder interface {
	FindAccountRooms(accountUID string) ([]*AccountRoom, error)
}

type ResponseAccount struct {
	UID       string          `json:"uid"`
	Label     string          `json:"label"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	AvatarUrl string          `json:"avatar_url,omitempty"`
	Contact   *AccountContact `json:"contact,omitempty"`
	Details   *AccountDetails `json:"details,omitempty"`
	Flags     []string        `json:"flags,omitempty"`
	Friends   []*Friend       `json:"friends,omitempty"`
	Invites   []*Invite       `json:"invites,omitempty"`
	Rooms     []*AccountRoom  `json:"rooms,omitempty"`
}

type ResponseAccountId struct {
	AccountId string `json:"account_id"`
}

type ResponseInviteId struct {
	InviteId string `json:"invite_id"`
}
