package account

import (
	"context"
	"errors"
	"time"

	"pingpal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrAccountNotFound = errors.New("account doesn't exist")
	ErrAlreadyExists   = errors.New("already exists")
)

type I_AccountRepo interface {
	CreateAccount(*CreateAccount) (*DBAccount, error)
	UpdateAccount(uid string, account *DBAccount) (*DBAccount, error)
	FindAccountById(uid string) (*DBAccount, error)
	FindAccountByEmail(email string) (*DBAccount, error)
	FindAccounts(volume int) ([]*DBAccount, error)
	FindAccountsByIds(uids []string) ([]*DBAccount, error)
}

type AccountService struct {
	accountCollection *mongo.Collection
	ctx               context.Context
}

func NewAccountService(accountCollection *mongo.Collection, ctx context.Context) I_AccountRepo {
	return &AccountService{accountCollection, ctx}
}

func (me *AccountService) GetCollection() *mongo.Collection {
	return me.accountCollection
}

func (me *AccountService) CreateAccount(account *CreateAccount) (*DBAccount, error) {
	account.CreatedAt = time.Now()

	res, err := me.accountCollection.InsertOne(me.ctx, account)
	if err != nil {
		if er, ok := err.(mongo.WriteException); ok && len(er.WriteErrors) > 0 && er.WriteErrors[0].Code == 11000 {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	opt := options.Index()
	opt.SetUnique(true)

	index := mongo.IndexModel{Keys: bson.M{"contact.email": 1}, Options: opt}

	if _, err := me.accountCollection.Indexes().CreateOne(me.ctx, index); err != nil {
		return nil, err
	}

	var newAccount *DBAccount
	query := bson.M{"_id": res.InsertedID}
	if err = me.accountCollection.FindOne(me.ctx, query).Decode(&newAccount); err != nil {
		return nil, err
	}

	return newAccount, nil
}

func (me *AccountService) UpdateAccount(uid string, account *DBAccount) (*DBAccount, error) {
	doc, err := utils.ToDoc(account)
	if err != nil {
		return nil, err
	}

	query := bson.D{{Key: "uid", Value: uid}}
	update := bson.D{{Key: "$set", Value: doc}}
	res := me.accountCollection.FindOneAndUpdate(me.ctx, query, update, options.FindOneAndUpdate().SetReturnDocument(1))

	var updatedAccount *DBAccount

	if err := res.Decode(&updatedAccount); err != nil {
		return nil, ErrAccountNotFound
	}

	return updatedAccount, nil
}

func (me *AccountService) FindAccountById(uid string) (*DBAccount, error) {
	query := bson.M{"uid": uid}

	var account *DBAccount
	if err := me.accountCollection.FindOne(me.ctx, query).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

func (me *AccountService) FindAccountByEmail(email string) (*DBAccount, error) {
	query := bson.M{"contact.email": email}

	var account *DBAccount
	if err := me.accountCollection.FindOne(me.ctx, query).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

func (me *AccountService) FindAccounts(volume int) ([]*DBAccount, error) {
	opt := options.FindOptions{}
	if volume > 0 {
		opt.SetLimit(int64(volume))
	}

	cursor, err := me.accountCollection.Find(me.ctx, bson.M{}, &opt)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var accounts []*DBAccount
	for cursor.Next(me.ctx) {
		acc := &DBAccount{}
		err := cursor.Decode(acc)

		if err != nil {
			return nil, err
		}

		accounts = append(accounts, acc)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return []*DBAccount{}, nil
	}

	return accounts, nil
}

func (me *AccountService) FindAccountsByIds(uids []string) ([]*DBAccount, error) {
	query := bson.M{"uid": bson.M{"$in": uids}}

	cursor, err := me.accountCollection.Find(me.ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var accounts []*DBAccount
	for cursor.Next(me.ctx) {
		acc := &DBAccount{}
		err := cursor.Decode(acc)

		if err != nil {
			return nil, err
		}

		accounts = append(accounts, acc)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return []*DBAccount{}, nil
	}

	return accounts, nil
}
