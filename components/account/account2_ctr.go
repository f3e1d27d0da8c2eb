package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pingpal/auth"
	"pingpal/envelope"
	"pingpal/utils"

	"github.com/google/uuid"
)

type AccountController struct {
	accountService I_AccountRepo
	roomService    I_RoomFinder
}

func NewAccountController(accountService I_AccountRepo, roomService I_RoomFinder) AccountController {
	return AccountController{accountService, roomService}
}

func (me *AccountController) CreateAccount(email, password, label string) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("create account %s", email))

	if email == "" {
		return envelope.Invalid("Email not provided")
	}

	if password == "" {
		return envelope.Invalid("Password not provided")
	}

	if _, err := utils.IsValidPassword(password); err != nil {
		return envelope.Invalid("Password didn't meet requirements.")
	}

	email = strings.ToLower(email)
	if !utils.IsValidEmail(email) {
		return envelope.Invalid("Email is not valid.")
	}

	if exist, _ := me.accountService.FindAccountByEmail(email); exist != nil {
		return envelope.Conflict("Account with this email already exists.")
	}

	if label == "" {
		label = "Unknown"
	}

	hash, err := auth.GeneratePassword(password)
	if err != nil {
		return envelope.Internal(err)
	}

	na := &CreateAccount{
		UID:       uuid.New().String(),
		Label:     label,
		Password:  hash,
		AvatarUrl: utils.GetAvatarUrl(label),
		Contact:   &AccountContact{Email: email},
		Flags:     []string{FlagNeedsInit},
		Friends:   []*Friend{},
		Invites:   []*Invite{},
	}

	newAccount, err := me.accountService.CreateAccount(na)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return envelope.Conflict("Account with this email already exists.")
		}
		return envelope.Internal(err)
	}

	Logger.V(2).Info("create account success")
	return envelope.Make(200, &ResponseAccountId{AccountId: newAccount.UID})
}

// ChangeAccount applies a sparse JSON changes object onto the account
// document. Protected fields are dropped before merging and the needs_init
// flag is cleared on the first successful edit.
func (me *AccountController) ChangeAccount(accountUID, changes string) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("change account %s", accountUID))

	if accountUID == "" {
		return envelope.NotFound("Account id not provided.")
	}

	if changes == "" {
		return envelope.NotFound("Changes do not provided.")
	}

	var parsedChanges map[string]interface{}
	if err := json.Unmarshal([]byte(changes), &parsedChanges); err != nil {
		return envelope.Invalid(err.Error())
	}

	if len(parsedChanges) == 0 {
		return envelope.NotFound("No changes provided.")
	}

	account, err := me.accountService.FindAccountById(accountUID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return envelope.NotFound("Account not found.")
		}
		return envelope.Internal(err)
	}

	account.RemoveFlag(FlagNeedsInit)

	doc, err := utils.ToMap(account)
	if err != nil {
		return envelope.Internal(err)
	}

	merged := utils.MergeChanges(doc, parsedChanges, ProtectedFields)

	var updated DBAccount
	if err := utils.FromMap(merged, &updated); err != nil {
		return envelope.Invalid(err.Error())
	}

	if _, err := me.accountService.UpdateAccount(accountUID, &updated); err != nil {
		return envelope.Internal(err)
	}

	Logger.V(2).Info("change account success")
	return envelope.NoContent()
}

func (me *AccountController) AccountInfo(accountUID string, withRooms, withFlags, withFriends, withInvites bool) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("account info %s", accountUID))

	if accountUID == "" {
		return envelope.Invalid("Account id not provided.")
	}

	account, err := me.accountService.FindAccountById(accountUID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			// 409 kept for wire compatibility with older clients.
			return envelope.Conflict("Account not found.")
		}
		return envelope.Internal(err)
	}

	res := me.toResponse(account)

	if !withFlags {
		res.Flags = nil
	}

	if withFriends {
		res.Friends = account.Friends
	}

	if withInvites {
		res.Invites = account.Invites
	}

	if withRooms {
		rooms, err := me.roomService.FindAccountRooms(accountUID)
		if err != nil {
			return envelope.Internal(err)
		}
		res.Rooms = rooms
	}

	return envelope.Make(200, res)
}

func (me *AccountController) Login(token string) *envelope.Response {
	Logger.V(2).Info("login attempt")

	if token == "" {
		return envelope.Invalid("Token not provided.")
	}

	accountUID := auth.VerifyAccountToken(token)
	if accountUID == "" {
		return envelope.NotFound("Token expired.")
	}

	Logger.V(2).Info(fmt.Sprintf("logged in %s", accountUID))
	return envelope.Make(200, &ResponseAccountId{AccountId: accountUID})
}

func (me *AccountController) FindAccount(email, label string) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("find account email=%s label=%s", email, label))

	if email == "" && label == "" {
		return envelope.Invalid("No query provided.")
	}

	var account *DBAccount
	var err error

	if email != "" {
		account, err = me.accountService.FindAccountByEmail(strings.ToLower(email))
	} else {
		account, err = me.findAccountByLabel(label)
	}

	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return envelope.NotFound("Account not found.")
		}
		return envelope.Internal(err)
	}

	return envelope.Make(200, me.toResponse(account))
}

func (me *AccountController) findAccountByLabel(label string) (*DBAccount, error) {
	accounts, err := me.accountService.FindAccounts(0)
	if err != nil {
		return nil, err
	}

	for _, acc := range accounts {
		if acc.Label == label {
			return acc, nil
		}
	}

	return nil, ErrAccountNotFound
}

func (me *AccountController) ListAccounts(volumeStr string) *envelope.Response {
	volume := 0
	if volumeStr != "" {
		v, err := strconv.Atoi(volumeStr)
		if err != nil {
			return envelope.Invalid("invalid volume input")
		}
		volume = v
	}

	accounts, err := me.accountService.FindAccounts(volume)
	if err != nil {
		return envelope.Internal(err)
	}

	resaccounts := make([]*ResponseAccount, 0, len(accounts))
	for _, acc := range accounts {
		resaccounts = append(resaccounts, me.toResponse(acc))
	}

	Logger.V(2).Info(fmt.Sprintf("list count %d", len(resaccounts)))
	return envelope.Make(200, resaccounts)
}

func (me *AccountController) StorageGet(accountUID, key string) *envelope.Response {
	if accountUID == "" {
		return envelope.Invalid("Account id not provided.")
	}

	if _, err := utils.IsValidStorageKey(key); err != nil {
		return envelope.Invalid(err.Error())
	}

	account, err := me.accountService.FindAccountById(accountUID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return envelope.Conflict("Account not found.")
		}
		return envelope.Internal(err)
	}

	value, ok := account.Storage[key]
	if !ok || value == nil {
		return envelope.NotFound(fmt.Sprintf("Storage field with key %s doesn't exist.", key))
	}

	return envelope.Make(200, value)
}

func (me *AccountController) StorageSet(accountUID, key, value string) *envelope.Response {
	if accountUID == "" {
		return envelope.Invalid("Account id not provided.")
	}

	if _, err := utils.IsValidStorageKey(key); err != nil {
		return envelope.Invalid(err.Error())
	}

	if value == "" {
		return envelope.NotFound(fmt.Sprintf("Storage field with key %s doesn't exist.", key))
	}

	account, err := me.accountService.FindAccountById(accountUID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return envelope.Conflict("Account not found.")
		}
		return envelope.Internal(err)
	}

	if account.Storage == nil {
		account.Storage = make(map[string]interface{})
	}
	account.Storage[key] = value

	if _, err := me.accountService.UpdateAccount(accountUID, account); err != nil {
		return envelope.Internal(err)
	}

	return envelope.NoContent()
}

func (me *AccountController) toResponse(account *DBAccount) *ResponseAccount {
	return &ResponseAccount{
		UID:       account.UID,
		Label:     account.Label,
		CreatedAt: account.CreatedAt,
		AvatarUrl: account.AvatarUrl,
		Contact:   account.Contact,
		Details:   account.Details,
		Flags:     account.Flags,
	}
}
