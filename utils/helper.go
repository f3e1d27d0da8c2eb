package utils

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/asaskevich/govalidator"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var logger logr.Logger = logr.Discard()

func SetLogger(l logr.Logger) {
	logger = l
}

func Log() logr.Logger {
	return logger
}

func GetRandomUUID() string {
	return uuid.New().String()
}

func ToDoc(v interface{}) (doc *bson.D, err error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return
	}

	err = bson.Unmarshal(data, &doc)
	return
}

// ToMap flattens a document struct into a generic map, one level of keys,
// so it can run through MergeChanges.
func ToMap(v interface{}) (map[string]interface{}, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// FromMap is the inverse of ToMap, decoding a merged map back into dst.
func FromMap(doc map[string]interface{}, dst interface{}) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return err
	}

	return bson.Unmarshal(data, dst)
}

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

func IsValidLabel(s string) (bool, error) {
	if len(s) == 0 {
		return false, errors.New("label can not empty")
	}

	if len(s) > 50 {
		return false, errors.New("label to long, max 50 characters")
	}

	return true, nil
}

func IsValidPassword(s string) (bool, error) {
	if len(s) == 0 {
		return false, errors.New("password can not empty")
	}

	if len(s) < 12 {
		return false, errors.New("password didn't meet requirements")
	}

	return true, nil
}

func IsValidStorageKey(s string) (bool, error) {
	if len(s) == 0 {
		return false, errors.New("key can not empty")
	}

	match, err := regexp.MatchString(`^[a-zA-Z0-9][a-zA-Z0-9-_.]*$`, s)
	if !match || err != nil {
		return false, errors.New("key can only have alphanumeric charater, '-', '_', '.'")
	}

	return true, nil
}

func IsValidEmail(s string) bool {
	return govalidator.IsEmail(s)
}

func IsValidUid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func GetAvatarUrl(label string) string {
	return fmt.Sprintf("https://eu.ui-avatars.com/api/?name=%s", label)
}
