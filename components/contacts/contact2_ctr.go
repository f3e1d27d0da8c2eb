package contacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pingpal/components/account"
	"pingpal/envelope"
	"pingpal/utils"
)

type ContactController struct {
	accountService account.I_AccountRepo
}

func NewContactController(accountService account.I_AccountRepo) ContactController {
	return ContactController{accountService}
}

// InviteFriend opens a friend-request handshake. Both parties get an invite
// copy sharing one id: the inviter's copy starts waiting, the invitee's
// pending. The two document writes are sequential and not atomic; a failure
// in between surfaces as a 500 and leaves the first write committed.
func (me *ContactController) InviteFriend(accountUID, friendUID string) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("invite friend %s to %s", accountUID, friendUID))

	if accountUID == "" {
		return envelope.NotFound("Account id not provided.")
	}

	if friendUID == "" {
		return envelope.NotFound("Friend id not provided.")
	}

	if accountUID == friendUID {
		return envelope.Invalid("can not invite yourself")
	}

	acc, err := me.accountService.FindAccountById(accountUID)
	if err != nil {
		return me.lookupError(err, "Account not found.")
	}

	if acc.FindFriend(friendUID) != nil {
		return envelope.Conflict("Friend already added.")
	}

	friend, err := me.accountService.FindAccountById(friendUID)
	if err != nil {
		return me.lookupError(err, "Friend account not found.")
	}

	if acc.HasOpenInviteWith(friendUID) || friend.HasOpenInviteWith(accountUID) {
		return envelope.Conflict("Friend invite already open.")
	}

	inviteId := utils.GetRandomUUID()
	now := time.Now()

	acc.Invites = append(acc.Invites, &account.Invite{
		Id:        inviteId,
		AccountId: friendUID,
		CreatedAt: now,
		Status:    account.Waiting,
	})
	friend.Invites = append(friend.Invites, &account.Invite{
		Id:        inviteId,
		AccountId: accountUID,
		CreatedAt: now,
		Status:    account.Pending,
	})

	if _, err := me.accountService.UpdateAccount(accountUID, acc); err != nil {
		Logger.Error(err, "error updating inviter account")
		return envelope.Internal(err)
	}

	if _, err := me.accountService.UpdateAccount(friendUID, friend); err != nil {
		Logger.Error(err, "error updating invitee account")
		return envelope.Internal(err)
	}

	Logger.V(2).Info("invite friend success")
	return envelope.Make(200, &account.ResponseInviteId{InviteId: inviteId})
}

// AnswerInvite resolves or rejects both invite copies. Either party may
// answer with its own view of the pair. Answering an invite that already
// reached a terminal status is a no-op success.
func (me *ContactController) AnswerInvite(accountUID, friendUID, inviteId string, accept bool) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("answer invite %s accept=%t", inviteId, accept))

	if accountUID == "" {
		return envelope.NotFound("Account id not provided.")
	}

	if friendUID == "" {
		return envelope.NotFound("Friend id not provided.")
	}

	if inviteId == "" {
		return envelope.NotFound("Invite id not provided.")
	}

	acc, err := me.accountService.FindAccountById(accountUID)
	if err != nil {
		return me.lookupError(err, "Account not found.")
	}

	friend, err := me.accountService.FindAccountById(friendUID)
	if err != nil {
		return me.lookupError(err, "Friend account not found.")
	}

	selfInvite := acc.FindInvite(inviteId)
	friendInvite := friend.FindInvite(inviteId)

	if selfInvite == nil || friendInvite == nil {
		return envelope.NotFound("Invite not found.")
	}

	if selfInvite.IsTerminal() && friendInvite.IsTerminal() {
		Logger.V(2).Info("invite already answered")
		return envelope.NoContent()
	}

	finalStatus := account.Rejected
	if accept {
		finalStatus = account.Resolved
	}

	selfInvite.Status = finalStatus
	friendInvite.Status = finalStatus

	if accept {
		if acc.FindFriend(friendUID) == nil {
			acc.Friends = append(acc.Friends, &account.Friend{AccountId: friendUID, Favorite: false})
		}
		if friend.FindFriend(accountUID) == nil {
			friend.Friends = append(friend.Friends, &account.Friend{AccountId: accountUID, Favorite: false})
		}
	}

	if _, err := me.accountService.UpdateAccount(accountUID, acc); err != nil {
		Logger.Error(err, "error updating responder account")
		return envelope.Internal(err)
	}

	if _, err := me.accountService.UpdateAccount(friendUID, friend); err != nil {
		Logger.Error(err, "error updating other party account")
		return envelope.Internal(err)
	}

	Logger.V(2).Info("answer invite success")
	return envelope.NoContent()
}

// AddContact appends a one-sided friend entry. The invite handshake is the
// mutual path; this one touches only the owner's list.
func (me *ContactController) AddContact(accountUID, friendUID string) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("add contact %s to %s", accountUID, friendUID))

	if accountUID == "" {
		return envelope.NotFound("Account id not provided.")
	}

	if friendUID == "" {
		return envelope.NotFound("Friend id not provided.")
	}

	if accountUID == friendUID {
		return envelope.Invalid("can not add yourself")
	}

	acc, err := me.accountService.FindAccountById(accountUID)
	if err != nil {
		return me.lookupError(err, "Account not found.")
	}

	if acc.FindFriend(friendUID) != nil {
		return envelope.Conflict("Friend already added.")
	}

	acc.Friends = append(acc.Friends, &account.Friend{AccountId: friendUID, Favorite: false})

	if _, err := me.accountService.UpdateAccount(accountUID, acc); err != nil {
		return envelope.Internal(err)
	}

	Logger.V(2).Info("add contact success")
	return envelope.NoContent()
}

func (me *ContactController) UpdateContact(accountUID, friendUID, changes string) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("update contact %s of %s", friendUID, accountUID))

	if accountUID == "" {
		return envelope.NotFound("Account id not provided.")
	}

	if friendUID == "" {
		return envelope.NotFound("Friend id not provided.")
	}

	if changes == "" {
		return envelope.NotFound("Changes do not provided.")
	}

	var req UpdateFriendRequest
	if err := json.Unmarshal([]byte(changes), &req); err != nil {
		return envelope.Invalid(err.Error())
	}

	if req.IsEmpty() {
		return envelope.NotFound("No changes provided.")
	}

	var lastContacted *time.Time
	if req.LastContacted != nil {
		t, err := ParseLastContacted(*req.LastContacted)
		if err != nil {
			return envelope.Invalid("Last contacted date is invalid.")
		}
		lastContacted = &t
	}

	acc, err := me.accountService.FindAccountById(accountUID)
	if err != nil {
		return me.lookupError(err, "Account not found.")
	}

	if len(acc.Friends) == 0 {
		return envelope.NotFound("Got no friends yet.")
	}

	fr := acc.FindFriend(friendUID)
	if fr == nil {
		return envelope.NotFound("Contact not found.")
	}

	if req.Favorite != nil {
		fr.Favorite = *req.Favorite
	}
	if lastContacted != nil {
		fr.LastContacted = lastContacted
	}

	if _, err := me.accountService.UpdateAccount(accountUID, acc); err != nil {
		return envelope.Internal(err)
	}

	Logger.V(2).Info("update contact success")
	return envelope.NoContent()
}

// DeleteContact removes the matching friend entry. Deleting an absent pair
// is a success no-op.
func (me *ContactController) DeleteContact(accountUID, friendUID string) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("delete contact %s of %s", friendUID, accountUID))

	if accountUID == "" {
		return envelope.NotFound("Account id not provided.")
	}

	if friendUID == "" {
		return envelope.NotFound("Contact id not provided.")
	}

	acc, err := me.accountService.FindAccountById(accountUID)
	if err != nil {
		return me.lookupError(err, "Account not found.")
	}

	friends := make([]*account.Friend, 0, len(acc.Friends))
	for _, f := range acc.Friends {
		if f != nil && f.AccountId != friendUID {
			friends = append(friends, f)
		}
	}
	acc.Friends = friends

	if _, err := me.accountService.UpdateAccount(accountUID, acc); err != nil {
		return envelope.Internal(err)
	}

	Logger.V(2).Info("delete contact success")
	return envelope.NoContent()
}

func (me *ContactController) lookupError(err error, notFoundMsg string) *envelope.Response {
	if errors.Is(err, account.ErrAccountNotFound) {
		return envelope.NotFound(notFoundMsg)
	}
	return envelope.Internal(err)
}
