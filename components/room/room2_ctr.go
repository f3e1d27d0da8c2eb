package room

import (
	"errors"
	"fmt"
	"strconv"

	"pingpal/components/account"
	"pingpal/envelope"
	"pingpal/utils"

	"github.com/google/uuid"
)

type RoomController struct {
	roomService    I_RoomRepo
	accountService account.I_AccountRepo
}

func NewRoomController(roomService I_RoomRepo, accountService account.I_AccountRepo) RoomController {
	return RoomController{roomService, accountService}
}

func (me *RoomController) ListRooms(volumeStr string) *envelope.Response {
	volume := 0
	if volumeStr != "" {
		v, err := strconv.Atoi(volumeStr)
		if err != nil {
			return envelope.Invalid("invalid volume input")
		}
		volume = v
	}

	rooms, err := me.roomService.FindRooms(volume)
	if err != nil {
		return envelope.Internal(err)
	}

	Logger.V(2).Info(fmt.Sprintf("list count %d", len(rooms)))
	return envelope.Make(200, rooms)
}

func (me *RoomController) RoomInfo(roomUID string, withAccounts bool) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("room info %s", roomUID))

	if roomUID == "" {
		return envelope.Invalid("Room id not provided.")
	}

	room, err := me.roomService.FindRoomById(roomUID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return envelope.NotFound("Room not found.")
		}
		return envelope.Internal(err)
	}

	if withAccounts {
		accounts, err := me.accountService.FindAccountsByIds(room.Access)
		if err != nil {
			return envelope.Internal(err)
		}

		room.Accounts = make([]*account.ResponseAccount, 0, len(accounts))
		for _, acc := range accounts {
			room.Accounts = append(room.Accounts, &account.ResponseAccount{
				UID:       acc.UID,
				Label:     acc.Label,
				CreatedAt: acc.CreatedAt,
				AvatarUrl: acc.AvatarUrl,
				Contact:   acc.Contact,
				Details:   acc.Details,
			})
		}
	}

	return envelope.Make(200, room)
}

func (me *RoomController) CheckAccess(accountUID, roomUID string) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("check access %s to %s", accountUID, roomUID))

	if accountUID == "" {
		return envelope.Invalid("Account id not provided.")
	}

	if roomUID == "" {
		return envelope.Invalid("Room id not provided.")
	}

	room, err := me.roomService.FindRoomById(roomUID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return envelope.NotFound("Room not found.")
		}
		return envelope.Internal(err)
	}

	return envelope.Make(200, &ResponseAccess{HasAccess: room.HasAccess(accountUID)})
}

// CreateRoom provisions a room with the creating account on the access list.
func (me *RoomController) CreateRoom(label, accountUID string) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("create room %s by %s", label, accountUID))

	if accountUID == "" {
		return envelope.Invalid("Account id not provided.")
	}

	if _, err := utils.IsValidLabel(label); err != nil {
		return envelope.Invalid(err.Error())
	}

	if _, err := me.accountService.FindAccountById(accountUID); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return envelope.NotFound("Account not found.")
		}
		return envelope.Internal(err)
	}

	nr := &CreateRoom{
		UID:    uuid.New().String(),
		Label:  label,
		Access: []string{accountUID},
	}

	newRoom, err := me.roomService.AddRoom(nr)
	if err != nil {
		return envelope.Internal(err)
	}

	Logger.V(2).Info("create room success")
	return envelope.Make(200, newRoom)
}
