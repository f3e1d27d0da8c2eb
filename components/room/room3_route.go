package room

import (
	"context"
	"fmt"
	"net/http"

	"pingpal/components/account"
	"pingpal/envelope"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

var Logger logr.Logger = logr.Discard()

type RoomRoute struct {
	roomController RoomController
	limiter        *ratelimit.Bucket
}

func NewRoomRoute(mongoclient *mongo.Client, ctx context.Context, l logr.Logger, limiter *ratelimit.Bucket, accountService account.I_AccountRepo) RoomRoute {
	Logger = l
	Logger.V(2).Info("NewRoomRoute created")
	roomCollection := mongoclient.Database("pingpal").Collection("rooms")
	roomService := NewRoomService(roomCollection, ctx)
	roomController := NewRoomController(roomService, accountService)
	return RoomRoute{roomController, limiter}
}

func (me *RoomRoute) GetRoomService() I_RoomRepo {
	return me.roomController.roomService
}

func (me *RoomRoute) InitRouteTo(rg *gin.RouterGroup) {
	router := rg.Group("/room")
	router.GET("/list", me.RateLimit, me.ListHandler)
	router.GET("/info", me.RateLimit, me.InfoHandler)
	router.GET("/access", me.RateLimit, me.AccessHandler)
	router.GET("/create", me.RateLimit, me.CreateHandler)
}

func (me *RoomRoute) RateLimit(ctx *gin.Context) {
	if me.limiter.TakeAvailable(1) == 0 {
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func reply(ctx *gin.Context, res *envelope.Response) {
	if !res.Ok() {
		Logger.Error(fmt.Errorf(res.Message), "response with error")
	}
	ctx.JSON(http.StatusOK, res)
}

func (me *RoomRoute) ListHandler(ctx *gin.Context) {
	res := me.roomController.ListRooms(ctx.Query("volume"))
	reply(ctx, res)
}

func (me *RoomRoute) InfoHandler(ctx *gin.Context) {
	withAccounts := ctx.Query("accounts") == "true" || ctx.Query("accounts") == "1"
	res := me.roomController.RoomInfo(ctx.Query("room_id"), withAccounts)
	reply(ctx, res)
}

func (me *RoomRoute) AccessHandler(ctx *gin.Context) {
	res := me.roomController.CheckAccess(ctx.Query("account_id"), ctx.Query("room_id"))
	reply(ctx, res)
}

func (me *RoomRoute) CreateHandler(ctx *gin.Context) {
	res := me.roomController.CreateRoom(ctx.Query("label"), ctx.Query("account_id"))
	reply(ctx, res)
}
