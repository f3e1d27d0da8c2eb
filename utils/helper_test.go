package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'utils'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'utils'")
}

func Test_StringInSlice(t *testing.T) {
	asserts := assert.New(t)
	list := []string{"uid", "password", "storage"}

	asserts.True(StringInSlice("password", list))
	asserts.False(StringInSlice("label", list))
	asserts.False(StringInSlice("uid", nil))
}

func Test_MergeChanges(t *testing.T) {
	asserts := assert.New(t)

	entity := map[string]interface{}{"a": 1, "b": 2}
	changes := map[string]interface{}{"b": 3, "c": 4}

	merged := MergeChanges(entity, changes, nil)
	asserts.Equal(map[string]interface{}{"a": 1, "b": 3, "c": 4}, merged)

	// inputs stay untouched
	asserts.Equal(2, entity["b"])
}

func Test_MergeChangesProtected(t *testing.T) {
	asserts := assert.New(t)

	entity := map[string]interface{}{"uid": "keep", "label": "old"}
	changes := map[string]interface{}{"uid": "evil", "password": "evil", "label": "new"}

	merged := MergeChanges(entity, changes, []string{"uid", "password"})
	asserts.Equal("keep", merged["uid"])
	asserts.Equal("new", merged["label"])
	asserts.NotContains(merged, "password")
}

func Test_MergeChangesShallow(t *testing.T) {
	asserts := assert.New(t)

	entity := map[string]interface{}{
		"details": map[string]interface{}{"first_name": "Alice", "last_name": "Smith"},
	}
	changes := map[string]interface{}{
		"details": map[string]interface{}{"first_name": "Mike"},
	}

	merged := MergeChanges(entity, changes, nil)
	details := merged["details"].(map[string]interface{})
	asserts.Equal("Mike", details["first_name"])
	asserts.NotContains(details, "last_name")
}

func Test_MapRoundTrip(t *testing.T) {
	asserts := assert.New(t)

	type sample struct {
		Label string `bson:"label"`
		Count int    `bson:"count"`
	}

	doc, err := ToMap(&sample{Label: "lobby", Count: 3})
	asserts.Nil(err)
	asserts.Equal("lobby", doc["label"])

	var back sample
	asserts.Nil(FromMap(doc, &back))
	asserts.Equal("lobby", back.Label)
	asserts.Equal(3, back.Count)
}

func Test_IsValidLabel(t *testing.T) {
	asserts := assert.New(t)

	ok, err := IsValidLabel("alice")
	asserts.True(ok)
	asserts.Nil(err)

	ok, _ = IsValidLabel("")
	asserts.False(ok)

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	ok, _ = IsValidLabel(string(long))
	asserts.False(ok)
}

func Test_IsValidPassword(t *testing.T) {
	asserts := assert.New(t)

	ok, err := IsValidPassword("averylongpassword")
	asserts.True(ok)
	asserts.Nil(err)

	ok, _ = IsValidPassword("elevenchars")
	asserts.False(ok)

	ok, _ = IsValidPassword("")
	asserts.False(ok)
}

func Test_IsValidStorageKey(t *testing.T) {
	asserts := assert.New(t)

	ok, err := IsValidStorageKey("theme.dark-mode_v2")
	asserts.True(ok)
	asserts.Nil(err)

	ok, _ = IsValidStorageKey("")
	asserts.False(ok)

	ok, _ = IsValidStorageKey("-leading")
	asserts.False(ok)

	ok, _ = IsValidStorageKey("has space")
	asserts.False(ok)
}

func Test_IsValidEmail(t *testing.T) {
	asserts := assert.New(t)

	asserts.True(IsValidEmail("alice@example.com"))
	asserts.False(IsValidEmail("not-an-email"))
}

func Test_IsValidUid(t *testing.T) {
	asserts := assert.New(t)

	asserts.True(IsValidUid("8e6ae697-6a0f-4f4e-9551-a69cdd46c32a"))
	asserts.False(IsValidUid("nope"))
}

func Test_GetAvatarUrl(t *testing.T) {
	asserts := assert.New(t)

	asserts.Equal("https://eu.ui-avatars.com/api/?name=alice", GetAvatarUrl("alice"))
}
