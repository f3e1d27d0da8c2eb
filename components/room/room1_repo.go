package room

import (
	"context"
	"errors"
	"time"

	"pingpal/components/account"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrRoomNotFound = errors.New("room doesn't exist")

type I_RoomRepo interface {
	AddRoom(room *CreateRoom) (*Room, error)
	FindRoomById(uid string) (*Room, error)
	FindRooms(volume int) ([]*Room, error)
	FindRoomsByAccess(accountUID string) ([]*Room, error)
	FindAccountRooms(accountUID string) ([]*account.AccountRoom, error)
	DeleteRoom(uid string) error
}

type RoomService struct {
	roomCollection *mongo.Collection
	ctx            context.Context
}

func NewRoomService(roomCollection *mongo.Collection, ctx context.Context) I_RoomRepo {
	return &RoomService{roomCollection, ctx}
}

func (me *RoomService) AddRoom(room *CreateRoom) (*Room, error) {
	room.CreatedAt = time.Now()

	res, err := me.roomCollection.InsertOne(me.ctx, room)
	if err != nil {
		if er, ok := err.(mongo.WriteException); ok && len(er.WriteErrors) > 0 && er.WriteErrors[0].Code == 11000 {
			return nil, errors.New("room already exists")
		}
		return nil, err
	}

	opt := options.Index()
	opt.SetUnique(true)

	index := mongo.IndexModel{Keys: bson.M{"uid": 1}, Options: opt}

	if _, err := me.roomCollection.Indexes().CreateOne(me.ctx, index); err != nil {
		return nil, err
	}

	var newRoom *Room
	query := bson.M{"_id": res.InsertedID}
	if err = me.roomCollection.FindOne(me.ctx, query).Decode(&newRoom); err != nil {
		return nil, err
	}

	return newRoom, nil
}

func (me *RoomService) FindRoomById(uid string) (*Room, error) {
	query := bson.M{"uid": uid}

	var room *Room
	if err := me.roomCollection.FindOne(me.ctx, query).Decode(&room); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return room, nil
}

func (me *RoomService) FindRooms(volume int) ([]*Room, error) {
	opt := options.FindOptions{}
	if volume > 0 {
		opt.SetLimit(int64(volume))
	}

	cursor, err := me.roomCollection.Find(me.ctx, bson.M{}, &opt)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var rooms []*Room
	for cursor.Next(me.ctx) {
		r := &Room{}
		err := cursor.Decode(r)

		if err != nil {
			return nil, err
		}

		rooms = append(rooms, r)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(rooms) == 0 {
		return []*Room{}, nil
	}

	return rooms, nil
}

func (me *RoomService) FindRoomsByAccess(accountUID string) ([]*Room, error) {
	query := bson.M{"access": accountUID}

	cursor, err := me.roomCollection.Find(me.ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var rooms []*Room
	for cursor.Next(me.ctx) {
		r := &Room{}
		err := cursor.Decode(r)

		if err != nil {
			return nil, err
		}

		rooms = append(rooms, r)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(rooms) == 0 {
		return []*Room{}, nil
	}

	return rooms, nil
}

// FindAccountRooms implements account.I_RoomFinder for info hydration.
func (me *RoomService) FindAccountRooms(accountUID string) ([]*account.AccountRoom, error) {
	rooms, err := me.FindRoomsByAccess(accountUID)
	if err != nil {
		return nil, err
	}

	accountRooms := make([]*account.AccountRoom, 0, len(rooms))
	for _, r := range rooms {
		accountRooms = append(accountRooms, &account.AccountRoom{
			UID:       r.UID,
			Label:     r.Label,
			CreatedAt: r.CreatedAt,
			Access:    r.Access,
		})
	}

	return accountRooms, nil
}

func (me *RoomService) DeleteRoom(uid string) error {
	query := bson.M{"uid": uid}

	res, err := me.roomCollection.DeleteOne(me.ctx, query)
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrRoomNotFound
	}

	return nil
}
