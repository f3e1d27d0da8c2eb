package contacts

import (
	"fmt"
	"testing"
	"time"

	"pingpal/components/account"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'contacts'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'contacts'")
}

type fakeAccountRepo struct {
	accounts map[string]*account.DBAccount
}

func newFakeAccountRepo(accounts ...*account.DBAccount) *fakeAccountRepo {
	repo := &fakeAccountRepo{accounts: make(map[string]*account.DBAccount)}
	for _, acc := range accounts {
		repo.accounts[acc.UID] = acc
	}
	return repo
}

func cloneAccount(acc *account.DBAccount) *account.DBAccount {
	c := *acc
	c.Friends = make([]*account.Friend, 0, len(acc.Friends))
	for _, f := range acc.Friends {
		fc := *f
		c.Friends = append(c.Friends, &fc)
	}
	c.Invites = make([]*account.Invite, 0, len(acc.Invites))
	for _, inv := range acc.Invites {
		ic := *inv
		c.Invites = append(c.Invites, &ic)
	}
	return &c
}

func (me *fakeAccountRepo) CreateAccount(na *account.CreateAccount) (*account.DBAccount, error) {
	acc := &account.DBAccount{
		UID:       na.UID,
		Label:     na.Label,
		Password:  na.Password,
		CreatedAt: na.CreatedAt,
		AvatarUrl: na.AvatarUrl,
		Contact:   na.Contact,
		Flags:     na.Flags,
		Friends:   na.Friends,
		Invites:   na.Invites,
	}
	me.accounts[acc.UID] = acc
	return cloneAccount(acc), nil
}

func (me *fakeAccountRepo) UpdateAccount(uid string, acc *account.DBAccount) (*account.DBAccount, error) {
	if _, ok := me.accounts[uid]; !ok {
		return nil, account.ErrAccountNotFound
	}
	me.accounts[uid] = cloneAccount(acc)
	return cloneAccount(acc), nil
}

func (me *fakeAccountRepo) FindAccountById(uid string) (*account.DBAccount, error) {
	acc, ok := me.accounts[uid]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return cloneAccount(acc), nil
}

func (me *fakeAccountRepo) FindAccountByEmail(email string) (*account.DBAccount, error) {
	for _, acc := range me.accounts {
		if acc.Contact != nil && acc.Contact.Email == email {
			return cloneAccount(acc), nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (me *fakeAccountRepo) FindAccounts(volume int) ([]*account.DBAccount, error) {
	accounts := make([]*account.DBAccount, 0, len(me.accounts))
	for _, acc := range me.accounts {
		if volume > 0 && len(accounts) == volume {
			break
		}
		accounts = append(accounts, cloneAccount(acc))
	}
	return accounts, nil
}

func (me *fakeAccountRepo) FindAccountsByIds(uids []string) ([]*account.DBAccount, error) {
	accounts := make([]*account.DBAccount, 0, len(uids))
	for _, uid := range uids {
		if acc, ok := me.accounts[uid]; ok {
			accounts = append(accounts, cloneAccount(acc))
		}
	}
	return accounts, nil
}

func makeAccount(uid, label string) *account.DBAccount {
	return &account.DBAccount{
		UID:       uid,
		Label:     label,
		CreatedAt: time.Now(),
		Contact:   &account.AccountContact{Email: label + "@example.com"},
	}
}

const (
	uidA = "8e6ae697-6a0f-4f4e-9551-a69cdd46c32a"
	uidB = "10c8b681-7bf4-4a60-91a7-4cf224ee0e4a"
)

func Test_InviteAndAccept(t *testing.T) {
	asserts := assert.New(t)
	repo := newFakeAccountRepo(makeAccount(uidA, "alice"), makeAccount(uidB, "bob"))
	ctr := NewContactController(repo)

	res := ctr.InviteFriend(uidA, uidB)
	asserts.Equal(200, res.Status)

	inviteId := res.Data.(*account.ResponseInviteId).InviteId
	asserts.NotEmpty(inviteId)

	a := repo.accounts[uidA]
	b := repo.accounts[uidB]
	asserts.Len(a.Invites, 1)
	asserts.Len(b.Invites, 1)
	asserts.Equal(account.Waiting, a.Invites[0].Status)
	asserts.Equal(account.Pending, b.Invites[0].Status)
	asserts.Equal(a.Invites[0].Id, b.Invites[0].Id)
	asserts.Equal(uidB, a.Invites[0].AccountId)
	asserts.Equal(uidA, b.Invites[0].AccountId)

	res = ctr.AnswerInvite(uidB, uidA, inviteId, true)
	asserts.Equal(204, res.Status)

	a = repo.accounts[uidA]
	b = repo.accounts[uidB]
	asserts.Equal(account.Resolved, a.Invites[0].Status)
	asserts.Equal(account.Resolved, b.Invites[0].Status)
	asserts.NotNil(a.FindFriend(uidB))
	asserts.NotNil(b.FindFriend(uidA))
	asserts.False(a.FindFriend(uidB).Favorite)
}

func Test_InviteAndReject(t *testing.T) {
	asserts := assert.New(t)
	repo := newFakeAccountRepo(makeAccount(uidA, "alice"), makeAccount(uidB, "bob"))
	ctr := NewContactController(repo)

	res := ctr.InviteFriend(uidA, uidB)
	asserts.Equal(200, res.Status)
	inviteId := res.Data.(*account.ResponseInviteId).InviteId

	res = ctr.AnswerInvite(uidB, uidA, inviteId, false)
	asserts.Equal(204, res.Status)

	a := repo.accounts[uidA]
	b := repo.accounts[uidB]
	asserts.Equal(account.Rejected, a.Invites[0].Status)
	asserts.Equal(account.Rejected, b.Invites[0].Status)
	asserts.Empty(a.Friends)
	asserts.Empty(b.Friends)
}

func Test_AnswerInviteIdempotent(t *testing.T) {
	asserts := assert.New(t)
	repo := newFakeAccountRepo(makeAccount(uidA, "alice"), makeAccount(uidB, "bob"))
	ctr := NewContactController(repo)

	res := ctr.InviteFriend(uidA, uidB)
	inviteId := res.Data.(*account.ResponseInviteId).InviteId

	res = ctr.AnswerInvite(uidB, uidA, inviteId, true)
	asserts.Equal(204, res.Status)

	// answering again must not duplicate the friend entries
	res = ctr.AnswerInvite(uidB, uidA, inviteId, true)
	asserts.Equal(204, res.Status)

	asserts.Len(repo.accounts[uidA].Friends, 1)
	asserts.Len(repo.accounts[uidB].Friends, 1)
}

func Test_InviteConflicts(t *testing.T) {
	asserts := assert.New(t)
	repo := newFakeAccountRepo(makeAccount(uidA, "alice"), makeAccount(uidB, "bob"))
	ctr := NewContactController(repo)

	res := ctr.InviteFriend(uidA, uidA)
	asserts.Equal(400, res.Status)

	res = ctr.InviteFriend(uidA, "missing")
	asserts.Equal(404, res.Status)

	res = ctr.InviteFriend(uidA, uidB)
	asserts.Equal(200, res.Status)

	// handshake still open
	res = ctr.InviteFriend(uidA, uidB)
	asserts.Equal(409, res.Status)
	res = ctr.InviteFriend(uidB, uidA)
	asserts.Equal(409, res.Status)

	inviteId := repo.accounts[uidA].Invites[0].Id
	res = ctr.AnswerInvite(uidB, uidA, inviteId, true)
	asserts.Equal(204, res.Status)

	// already friends
	res = ctr.InviteFriend(uidA, uidB)
	asserts.Equal(409, res.Status)
}

func Test_AddContactTwice(t *testing.T) {
	asserts := assert.New(t)
	repo := newFakeAccountRepo(makeAccount(uidA, "alice"), makeAccount(uidB, "bob"))
	ctr := NewContactController(repo)

	res := ctr.AddContact(uidA, uidB)
	asserts.Equal(204, res.Status)

	res = ctr.AddContact(uidA, uidB)
	asserts.Equal(409, res.Status)

	// one-sided by design, and the failed call left the list alone
	asserts.Len(repo.accounts[uidA].Friends, 1)
	asserts.Empty(repo.accounts[uidB].Friends)
}

func Test_UpdateContactIdempotent(t *testing.T) {
	asserts := assert.New(t)
	a := makeAccount(uidA, "alice")
	a.Friends = []*account.Friend{{AccountId: uidB}}
	repo := newFakeAccountRepo(a, makeAccount(uidB, "bob"))
	ctr := NewContactController(repo)

	changes := `{"favorite":true,"last_contacted":"2024-03-01T10:00:00Z"}`

	res := ctr.UpdateContact(uidA, uidB, changes)
	asserts.Equal(204, res.Status)
	first := *repo.accounts[uidA].FindFriend(uidB)

	res = ctr.UpdateContact(uidA, uidB, changes)
	asserts.Equal(204, res.Status)
	second := *repo.accounts[uidA].FindFriend(uidB)

	asserts.Equal(first.Favorite, second.Favorite)
	asserts.True(first.LastContacted.Equal(*second.LastContacted))
}

func Test_UpdateContactValidation(t *testing.T) {
	asserts := assert.New(t)
	a := makeAccount(uidA, "alice")
	a.Friends = []*account.Friend{{AccountId: uidB}}
	repo := newFakeAccountRepo(a, makeAccount(uidB, "bob"))
	ctr := NewContactController(repo)

	res := ctr.UpdateContact(uidA, uidB, `{"last_contacted":"not-a-date"}`)
	asserts.Equal(400, res.Status)

	res = ctr.UpdateContact(uidA, uidB, `{}`)
	asserts.Equal(404, res.Status)

	res = ctr.UpdateContact(uidA, "missing", `{"favorite":true}`)
	asserts.Equal(404, res.Status)

	b := repo.accounts[uidB]
	asserts.Empty(b.Friends)
	res = ctr.UpdateContact(uidB, uidA, `{"favorite":true}`)
	asserts.Equal(404, res.Status)
	asserts.Equal("Got no friends yet.", res.Message)
}

func Test_DeleteContactTwice(t *testing.T) {
	asserts := assert.New(t)
	a := makeAccount(uidA, "alice")
	a.Friends = []*account.Friend{{AccountId: uidB}}
	repo := newFakeAccountRepo(a, makeAccount(uidB, "bob"))
	ctr := NewContactController(repo)

	res := ctr.DeleteContact(uidA, uidB)
	asserts.Equal(204, res.Status)
	asserts.Empty(repo.accounts[uidA].Friends)

	// deleting an absent pair is still a success
	res = ctr.DeleteContact(uidA, uidB)
	asserts.Equal(204, res.Status)
}

func Test_ParseLastContacted(t *testing.T) {
	asserts := assert.New(t)

	_, err := ParseLastContacted("2024-03-01")
	asserts.Nil(err)

	_, err = ParseLastContacted("2024-03-01T10:00:00Z")
	asserts.Nil(err)

	_, err = ParseLastContacted("never")
	asserts.NotNil(err)
}
